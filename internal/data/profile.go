package data

import (
	"encoding/json"
	"fmt"
	"os"

	"feeder-dispatch/internal/model"
)

func LoadSolarJSON(path string) (*model.SolarProfile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var p model.SolarProfile
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("profile %s: %w", path, err)
	}
	return &p, nil
}

func SaveSolarJSON(path string, p *model.SolarProfile) error {
	raw, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0o644)
}
