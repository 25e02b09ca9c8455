package model

import "errors"

// SolarProfile matches the JSON shape of a feeder solar-generation file.
//
// Example:
//
//	{
//	  "station": "rural-feeder-7",
//	  "dt_hours": 1.0,
//	  "samples_mw": [0, 0, 1.2, ...]
//	}
type SolarProfile struct {
	Station   string    `json:"station"`
	DtHours   float64   `json:"dt_hours"`
	SamplesMW []float64 `json:"samples_mw"`
}

// Validate checks the profile is usable as simulation input.
// Order of samples is significant and is never reordered downstream.
func (p SolarProfile) Validate() error {
	if p.DtHours <= 0 {
		return errors.New("dt_hours must be > 0")
	}
	if len(p.SamplesMW) == 0 {
		return errors.New("samples_mw is empty")
	}
	return nil
}

// Hours returns the total span of the profile in hours.
func (p SolarProfile) Hours() float64 {
	return float64(len(p.SamplesMW)) * p.DtHours
}

// HourOfDay maps a sample index to its hour on a 24h clock, assuming the
// series starts at midnight. Sub-hourly steps land on fractional hours,
// truncated.
func (p SolarProfile) HourOfDay(index int) int {
	return int(float64(index)*p.DtHours) % 24
}

// EnergyMWh integrates a power series over the profile's step size.
func EnergyMWh(series []float64, dtHours float64) float64 {
	sum := 0.0
	for _, v := range series {
		sum += v
	}
	return sum * dtHours
}
