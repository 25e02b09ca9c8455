package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultNightShift(t *testing.T) *NightShiftStrategy {
	t.Helper()
	s, err := NewNightShiftStrategy(NightShiftParams{
		ChargeStartHour:    9,
		ChargeEndHour:      16,
		DischargeStartHour: 19,
		DischargeEndHour:   23,
	}, DefaultTunables(), 3, 10)
	require.NoError(t, err)
	return s
}

func TestNightShift_TargetBoundedByCapacity(t *testing.T) {
	// Rating x window = 3*4 = 12 MWh, usable cap 0.85*10 = 8.5 MWh.
	s := defaultNightShift(t)
	assert.InDelta(t, 8.5, s.TargetMWh(), 1e-12)

	// A short window makes rating the binding limit.
	short, err := NewNightShiftStrategy(NightShiftParams{
		ChargeStartHour:    9,
		ChargeEndHour:      16,
		DischargeStartHour: 19,
		DischargeEndHour:   21,
	}, DefaultTunables(), 3, 100)
	require.NoError(t, err)
	assert.InDelta(t, 6, short.TargetMWh(), 1e-12)
}

func TestNightShift_RejectsBadHours(t *testing.T) {
	_, err := NewNightShiftStrategy(NightShiftParams{ChargeStartHour: 25}, DefaultTunables(), 3, 10)
	assert.Error(t, err)
}

func TestNightShift_ChargesShareOfDaytimeGeneration(t *testing.T) {
	s := defaultNightShift(t)
	b := newLosslessBattery(t, 0)

	// Hour 10, gen 2.5: absorb 0.8 * 2.5 = 2 MW.
	out, err := s.Step(Context{Index: 10, SolarMW: 2.5, DtHours: 1, Battery: b})
	require.NoError(t, err)
	assert.InDelta(t, -2, out.BatteryMW, 1e-9)
	assert.InDelta(t, 0.5, out.GridMW, 1e-9)
}

func TestNightShift_StopsChargingAtTarget(t *testing.T) {
	s := defaultNightShift(t)
	b := newLosslessBattery(t, 0.90) // 9 MWh deliverable, above the 8.5 target

	out, err := s.Step(Context{Index: 10, SolarMW: 5, DtHours: 1, Battery: b})
	require.NoError(t, err)
	assert.Zero(t, out.BatteryMW)
	assert.InDelta(t, 5, out.GridMW, 1e-12)
}

func TestNightShift_EveningDischarge(t *testing.T) {
	s := defaultNightShift(t)
	b := newLosslessBattery(t, 0.50)

	// Hour 20, no sun: discharge at 0.6 * rating = 1.8 MW.
	out, err := s.Step(Context{Index: 20, SolarMW: 0, DtHours: 1, Battery: b})
	require.NoError(t, err)
	assert.InDelta(t, 1.8, out.BatteryMW, 1e-9)
	assert.InDelta(t, 1.8, out.GridMW, 1e-9)
}

func TestNightShift_IdleBetweenWindows(t *testing.T) {
	s := defaultNightShift(t)
	b := newLosslessBattery(t, 0.50)

	out, err := s.Step(Context{Index: 17, SolarMW: 1, DtHours: 1, Battery: b})
	require.NoError(t, err)
	assert.Zero(t, out.BatteryMW)
	assert.InDelta(t, 1, out.GridMW, 1e-12)
}
