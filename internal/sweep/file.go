package sweep

import (
	"fmt"
	"os"

	"feeder-dispatch/internal/config"

	"gopkg.in/yaml.v3"
)

// fileSpec is the on-disk sweep shape: a base battery plus named variations
// that override parts of it.
type fileSpec struct {
	Battery    config.BatteryConfig `yaml:"battery"`
	Variations []variationSpec      `yaml:"variations"`
}

type variationSpec struct {
	Name     string                `yaml:"name"`
	Battery  *config.BatteryConfig `yaml:"battery"`
	Strategy config.StrategyConfig `yaml:"strategy"`
}

// LoadFile reads a sweep YAML and expands it into runnable variations.
func LoadFile(path string) ([]Variation, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sweep file %s: %w", path, err)
	}
	var spec fileSpec
	if err := yaml.Unmarshal(raw, &spec); err != nil {
		return nil, fmt.Errorf("failed to parse sweep file %s: %w", path, err)
	}
	if len(spec.Variations) == 0 {
		return nil, fmt.Errorf("sweep file %s has no variations", path)
	}

	variations := make([]Variation, 0, len(spec.Variations))
	for i, v := range spec.Variations {
		if v.Name == "" {
			return nil, fmt.Errorf("sweep file %s: variation %d has no name", path, i)
		}
		batt := spec.Battery
		if v.Battery != nil {
			batt = config.MergeBattery(spec.Battery, *v.Battery)
		}
		if batt.InitialSOC == 0 {
			batt.InitialSOC = batt.MinSOC
		}
		variations = append(variations, Variation{
			Name:     v.Name,
			Battery:  batt,
			Strategy: v.Strategy,
		})
	}
	return variations, nil
}
