package data

import (
	"math"

	"feeder-dispatch/internal/model"
)

// SyntheticParams shapes a clear-sky generation profile: a daily bell curve
// between sunrise and sunset, repeated for the requested number of days.
type SyntheticParams struct {
	Station     string
	Days        int
	PeakMW      float64
	DtHours     float64
	SunriseHour float64
	SunsetHour  float64
}

// SyntheticProfile generates an idealized solar series. It is deterministic:
// the same params always produce the same samples, which keeps sweeps and
// tests reproducible.
func SyntheticProfile(p SyntheticParams) *model.SolarProfile {
	if p.Days <= 0 {
		p.Days = 1
	}
	if p.DtHours <= 0 {
		p.DtHours = 1.0
	}
	if p.SunriseHour == 0 && p.SunsetHour == 0 {
		p.SunriseHour = 6
		p.SunsetHour = 20
	}

	stepsPerDay := int(math.Round(24 / p.DtHours))
	samples := make([]float64, 0, stepsPerDay*p.Days)
	dayLen := p.SunsetHour - p.SunriseHour

	for d := 0; d < p.Days; d++ {
		for i := 0; i < stepsPerDay; i++ {
			h := float64(i) * p.DtHours
			if h < p.SunriseHour || h >= p.SunsetHour || dayLen <= 0 {
				samples = append(samples, 0)
				continue
			}
			// Half-sine between sunrise and sunset, peaking at solar noon.
			frac := (h - p.SunriseHour) / dayLen
			samples = append(samples, p.PeakMW*math.Sin(math.Pi*frac))
		}
	}

	return &model.SolarProfile{
		Station:   p.Station,
		DtHours:   p.DtHours,
		SamplesMW: samples,
	}
}
