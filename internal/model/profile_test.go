package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSolarProfile_Validate(t *testing.T) {
	ok := SolarProfile{DtHours: 1, SamplesMW: []float64{0, 1}}
	assert.NoError(t, ok.Validate())

	assert.Error(t, SolarProfile{DtHours: 0, SamplesMW: []float64{1}}.Validate())
	assert.Error(t, SolarProfile{DtHours: 1}.Validate())
}

func TestSolarProfile_HourOfDay(t *testing.T) {
	hourly := SolarProfile{DtHours: 1, SamplesMW: make([]float64, 30)}
	assert.Equal(t, 0, hourly.HourOfDay(0))
	assert.Equal(t, 23, hourly.HourOfDay(23))
	// Wraps onto the next day.
	assert.Equal(t, 1, hourly.HourOfDay(25))

	halfHourly := SolarProfile{DtHours: 0.5, SamplesMW: make([]float64, 96)}
	assert.Equal(t, 0, halfHourly.HourOfDay(1))
	assert.Equal(t, 1, halfHourly.HourOfDay(2))
	assert.Equal(t, 1, halfHourly.HourOfDay(3))
}

func TestSolarProfile_Hours(t *testing.T) {
	p := SolarProfile{DtHours: 0.25, SamplesMW: make([]float64, 96)}
	assert.InDelta(t, 24, p.Hours(), 1e-12)
}

func TestEnergyMWh(t *testing.T) {
	assert.InDelta(t, 13, EnergyMWh([]float64{0, 5, 10, 8, 3}, 0.5), 1e-12)
	assert.Zero(t, EnergyMWh(nil, 1))
}

func TestActionFromPowerMW(t *testing.T) {
	assert.Equal(t, ActionCharging, ActionFromPowerMW(-1))
	assert.Equal(t, ActionDischarging, ActionFromPowerMW(2))
	assert.Equal(t, ActionIdle, ActionFromPowerMW(0))
}
