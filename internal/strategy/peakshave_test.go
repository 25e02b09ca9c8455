package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPeakShaving_DerivedThreshold(t *testing.T) {
	// Positive samples sorted: [2,4,6,8,10]; p80 interpolates to 8.4.
	solar := []float64{0, 2, 4, 0, 6, 8, 10}
	s, err := NewPeakShavingStrategy(solar, PeakShavingParams{}, DefaultTunables())
	require.NoError(t, err)
	assert.InDelta(t, 8.4, s.ThresholdMW(), 1e-9)
}

func TestPeakShaving_ExplicitThresholdWins(t *testing.T) {
	s, err := NewPeakShavingStrategy([]float64{1, 2, 3}, PeakShavingParams{ThresholdMW: 5}, DefaultTunables())
	require.NoError(t, err)
	assert.InDelta(t, 5, s.ThresholdMW(), 1e-12)
}

func TestPeakShaving_NoPositiveSamples(t *testing.T) {
	_, err := NewPeakShavingStrategy([]float64{0, 0, 0}, PeakShavingParams{}, DefaultTunables())
	assert.Error(t, err)
}

func TestPeakShaving_AbsorbsAboveThreshold(t *testing.T) {
	s, err := NewPeakShavingStrategy(nil, PeakShavingParams{ThresholdMW: 4}, DefaultTunables())
	require.NoError(t, err)
	b := newLosslessBattery(t, 0.50)

	out, err := s.Step(Context{Index: 0, SolarMW: 6, DtHours: 1, Battery: b})
	require.NoError(t, err)
	assert.InDelta(t, -2, out.BatteryMW, 1e-9)
	assert.InDelta(t, 4, out.GridMW, 1e-9)
	// Missed absorption is exported, never curtailed.
	assert.Zero(t, out.CurtailedMW)
}

func TestPeakShaving_SaturatedBatteryExportsThePeak(t *testing.T) {
	s, err := NewPeakShavingStrategy(nil, PeakShavingParams{ThresholdMW: 4}, DefaultTunables())
	require.NoError(t, err)
	b := newLosslessBattery(t, 1.0)

	out, err := s.Step(Context{Index: 0, SolarMW: 6, DtHours: 1, Battery: b})
	require.NoError(t, err)
	assert.InDelta(t, 6, out.GridMW, 1e-9)
	assert.Zero(t, out.BatteryMW)
	assert.Zero(t, out.CurtailedMW)
}

func TestPeakShaving_TopsUpLulls(t *testing.T) {
	s, err := NewPeakShavingStrategy(nil, PeakShavingParams{ThresholdMW: 10}, DefaultTunables())
	require.NoError(t, err)
	b := newLosslessBattery(t, 0.50)

	// gen 1 < 0.3*10; top-up is min(0.5*rating, 3-1) = min(1.5, 2) = 1.5.
	out, err := s.Step(Context{Index: 0, SolarMW: 1, DtHours: 1, Battery: b})
	require.NoError(t, err)
	assert.InDelta(t, 1.5, out.BatteryMW, 1e-9)
	assert.InDelta(t, 2.5, out.GridMW, 1e-9)
}

func TestPeakShaving_TopUpGatedBySOC(t *testing.T) {
	s, err := NewPeakShavingStrategy(nil, PeakShavingParams{ThresholdMW: 10}, DefaultTunables())
	require.NoError(t, err)
	b := newLosslessBattery(t, 0.15)

	out, err := s.Step(Context{Index: 0, SolarMW: 1, DtHours: 1, Battery: b})
	require.NoError(t, err)
	assert.Zero(t, out.BatteryMW)
	assert.InDelta(t, 1, out.GridMW, 1e-12)
}
