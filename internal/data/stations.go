package data

import (
	"encoding/json"
	"fmt"
	"os"
)

// Station describes a feeder-connected solar station available for
// simulation.
type Station struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	FeederCapMW float64 `json:"feeder_cap_mw"`
	PeakMW      float64 `json:"peak_mw"`
	Timezone    string  `json:"timezone"`
}

// StationList is the on-disk catalog of known stations.
type StationList struct {
	Stations []Station `json:"stations"`
}

// DefaultStationsPath returns the stations catalog path, honoring the
// STATIONS_FILE environment variable.
func DefaultStationsPath() string {
	if path := os.Getenv("STATIONS_FILE"); path != "" {
		return path
	}
	return "examples/stations.json"
}

// LoadStations reads the station catalog from a JSON file.
func LoadStations(path string) (*StationList, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read stations file %s: %w", path, err)
	}
	var list StationList
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("failed to parse stations file %s: %w", path, err)
	}
	for i, s := range list.Stations {
		if s.ID == "" {
			return nil, fmt.Errorf("station %d has empty id", i)
		}
	}
	return &list, nil
}

// SaveStations writes the station catalog as indented JSON.
func SaveStations(path string, list *StationList) error {
	raw, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal stations: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("failed to write stations file %s: %w", path, err)
	}
	return nil
}

// Find returns the station with the given id, or nil.
func (l *StationList) Find(id string) *Station {
	for i := range l.Stations {
		if l.Stations[i].ID == id {
			return &l.Stations[i]
		}
	}
	return nil
}
