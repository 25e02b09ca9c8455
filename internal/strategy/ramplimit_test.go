package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRampLimit_RequiresPositiveLimit(t *testing.T) {
	_, err := NewRampLimitStrategy(RampLimitParams{MaxRampPerHourMW: 0}, DefaultTunables())
	assert.Error(t, err)
}

func TestRampLimit_FirstStepPassesThrough(t *testing.T) {
	s, err := NewRampLimitStrategy(RampLimitParams{MaxRampPerHourMW: 1}, DefaultTunables())
	require.NoError(t, err)
	b := newLosslessBattery(t, 0.50)

	out, err := s.Step(Context{Index: 0, SolarMW: 7, DtHours: 1, PrevGridMW: 7, Battery: b})
	require.NoError(t, err)
	assert.InDelta(t, 7, out.GridMW, 1e-12)
	assert.Zero(t, out.BatteryMW)
}

func TestRampLimit_WithinBoundPassesThrough(t *testing.T) {
	s, err := NewRampLimitStrategy(RampLimitParams{MaxRampPerHourMW: 2}, DefaultTunables())
	require.NoError(t, err)
	b := newLosslessBattery(t, 0.50)

	out, err := s.Step(Context{Index: 1, SolarMW: 4, DtHours: 1, PrevGridMW: 3, Battery: b})
	require.NoError(t, err)
	assert.InDelta(t, 4, out.GridMW, 1e-12)
	assert.Zero(t, out.BatteryMW)
}

func TestRampLimit_AbsorbsUpRamp(t *testing.T) {
	s, err := NewRampLimitStrategy(RampLimitParams{MaxRampPerHourMW: 1}, DefaultTunables())
	require.NoError(t, err)
	b := newLosslessBattery(t, 0.50)

	// Prev 2, gen 6: export may rise to 3, battery absorbs the 3 MW excess.
	out, err := s.Step(Context{Index: 1, SolarMW: 6, DtHours: 1, PrevGridMW: 2, Battery: b})
	require.NoError(t, err)
	assert.InDelta(t, 3, out.GridMW, 1e-9)
	assert.InDelta(t, -3, out.BatteryMW, 1e-9)
	assert.Zero(t, out.CurtailedMW)
}

func TestRampLimit_CurtailsWhatBatteryCannotAbsorb(t *testing.T) {
	s, err := NewRampLimitStrategy(RampLimitParams{MaxRampPerHourMW: 1}, DefaultTunables())
	require.NoError(t, err)
	// Full battery: no headroom to absorb the jump.
	b := newLosslessBattery(t, 1.0)

	out, err := s.Step(Context{Index: 1, SolarMW: 6, DtHours: 1, PrevGridMW: 2, Battery: b})
	require.NoError(t, err)
	assert.InDelta(t, 3, out.GridMW, 1e-9)
	assert.InDelta(t, 3, out.CurtailedMW, 1e-9)
	assert.Zero(t, out.BatteryMW)
}

func TestRampLimit_SupplementsDownRamp(t *testing.T) {
	s, err := NewRampLimitStrategy(RampLimitParams{MaxRampPerHourMW: 1}, DefaultTunables())
	require.NoError(t, err)
	b := newLosslessBattery(t, 0.50)

	// Prev 6, gen 2: export may fall to 5; battery supplies the 3 MW gap.
	out, err := s.Step(Context{Index: 1, SolarMW: 2, DtHours: 1, PrevGridMW: 6, Battery: b})
	require.NoError(t, err)
	assert.InDelta(t, 5, out.GridMW, 1e-9)
	assert.InDelta(t, 3, out.BatteryMW, 1e-9)
}

func TestRampLimit_AcceptsViolationWhenBatteryEmpty(t *testing.T) {
	s, err := NewRampLimitStrategy(RampLimitParams{MaxRampPerHourMW: 1}, DefaultTunables())
	require.NoError(t, err)
	b := newLosslessBattery(t, 0)

	out, err := s.Step(Context{Index: 1, SolarMW: 0, DtHours: 1, PrevGridMW: 6, Battery: b})
	require.NoError(t, err)
	// Nothing to discharge: the down-ramp violation stands.
	assert.InDelta(t, 0, out.GridMW, 1e-12)
	assert.Zero(t, out.BatteryMW)
}

func TestRampLimit_SubHourlyAllowance(t *testing.T) {
	s, err := NewRampLimitStrategy(RampLimitParams{MaxRampPerHourMW: 4}, DefaultTunables())
	require.NoError(t, err)
	b := newLosslessBattery(t, 0.50)

	// 15-minute steps allow a 1 MW change; prev 2, gen 6 exceeds it.
	out, err := s.Step(Context{Index: 1, SolarMW: 6, DtHours: 0.25, PrevGridMW: 2, Battery: b})
	require.NoError(t, err)
	assert.InDelta(t, 3, out.GridMW, 1e-9)
	assert.InDelta(t, -3, out.BatteryMW, 1e-9)
}
