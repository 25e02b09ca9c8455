package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testParams = BatteryParams{
	CapacityMWh:         10,
	PowerRatingMW:       5,
	RoundTripEfficiency: 0.81, // one-way legs are exactly 0.9
	MinSOC:              0.10,
	MaxSOC:              0.90,
}

func TestNewBattery_Validation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*BatteryParams)
		soc    float64
	}{
		{"zero capacity", func(p *BatteryParams) { p.CapacityMWh = 0 }, 0.5},
		{"zero rating", func(p *BatteryParams) { p.PowerRatingMW = 0 }, 0.5},
		{"efficiency above one", func(p *BatteryParams) { p.RoundTripEfficiency = 1.2 }, 0.5},
		{"efficiency zero", func(p *BatteryParams) { p.RoundTripEfficiency = 0 }, 0.5},
		{"inverted soc bounds", func(p *BatteryParams) { p.MinSOC = 0.9; p.MaxSOC = 0.1 }, 0.5},
		{"initial soc below floor", func(p *BatteryParams) {}, 0.05},
		{"initial soc above ceiling", func(p *BatteryParams) {}, 0.95},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := testParams
			tc.mutate(&p)
			_, err := NewBattery(p, tc.soc)
			assert.Error(t, err)
		})
	}
}

func TestBattery_EfficiencySplit(t *testing.T) {
	assert.InDelta(t, 0.9, testParams.ChargeEfficiency(), 1e-12)
	assert.InDelta(t, 0.9, testParams.DischargeEfficiency(), 1e-12)
}

func TestBattery_ChargeAccounting(t *testing.T) {
	b, err := NewBattery(testParams, 0.50)
	require.NoError(t, err)

	// Absorb 2 MW for 1h: 2 MWh from the feeder, 1.8 MWh stored, 0.2 MWh lost.
	res, err := b.Step(-2, 1)
	require.NoError(t, err)
	assert.InDelta(t, -2, res.ActualPowerMW, 1e-12)
	assert.InDelta(t, 0.2, res.EnergyLossMWh, 1e-12)
	assert.InDelta(t, 0.68, res.SOC, 1e-12)
	assert.InDelta(t, 0.68, b.State.SOC, 1e-12)
}

func TestBattery_ChargeClampedByRatingAndSOC(t *testing.T) {
	b, err := NewBattery(testParams, 0.50)
	require.NoError(t, err)

	// Request 8 MW: rating clips to 5, then the SOC ceiling binds first.
	// Storable: (0.90-0.50)*10 = 4 MWh, grid-side 4/0.9 = 4.444 MWh.
	res, err := b.Step(-8, 1)
	require.NoError(t, err)
	assert.InDelta(t, -4/0.9, res.ActualPowerMW, 1e-9)
	assert.InDelta(t, 0.90, b.State.SOC, 1e-9)
	assert.InDelta(t, 4/0.9-4, res.EnergyLossMWh, 1e-9)

	// Battery full: further charging is a no-op.
	res, err = b.Step(-3, 1)
	require.NoError(t, err)
	assert.InDelta(t, 0, res.ActualPowerMW, 1e-12)
	assert.InDelta(t, 0, res.EnergyLossMWh, 1e-12)
}

func TestBattery_DischargeAccounting(t *testing.T) {
	b, err := NewBattery(testParams, 0.50)
	require.NoError(t, err)

	// Deliver 2 MW for 1h: withdraw 2/0.9 MWh from storage.
	res, err := b.Step(2, 1)
	require.NoError(t, err)
	assert.InDelta(t, 2, res.ActualPowerMW, 1e-12)
	assert.InDelta(t, 2/0.9-2, res.EnergyLossMWh, 1e-9)
	assert.InDelta(t, 0.5-(2/0.9)/10, b.State.SOC, 1e-9)
}

func TestBattery_DischargeStopsAtFloor(t *testing.T) {
	b, err := NewBattery(testParams, 0.10)
	require.NoError(t, err)

	res, err := b.Step(5, 1)
	require.NoError(t, err)
	assert.InDelta(t, 0, res.ActualPowerMW, 1e-12)
	assert.InDelta(t, 0.10, b.State.SOC, 1e-12)
}

func TestBattery_ZeroRequestIsNoop(t *testing.T) {
	b, err := NewBattery(testParams, 0.50)
	require.NoError(t, err)

	res, err := b.Step(0, 1)
	require.NoError(t, err)
	assert.Zero(t, res.ActualPowerMW)
	assert.Zero(t, res.EnergyLossMWh)
	assert.InDelta(t, 0.50, b.State.SOC, 1e-12)
}

func TestBattery_BadDt(t *testing.T) {
	b, err := NewBattery(testParams, 0.50)
	require.NoError(t, err)
	_, err = b.Step(1, 0)
	assert.Error(t, err)
}

func TestBattery_SubHourlyStep(t *testing.T) {
	b, err := NewBattery(testParams, 0.50)
	require.NoError(t, err)

	// 5 MW for 15 minutes moves 1.25 MWh grid-side.
	res, err := b.Step(-5, 0.25)
	require.NoError(t, err)
	assert.InDelta(t, -5, res.ActualPowerMW, 1e-12)
	assert.InDelta(t, 0.5+1.25*0.9/10, b.State.SOC, 1e-9)
}

func TestBattery_Helpers(t *testing.T) {
	b, err := NewBattery(testParams, 0.50)
	require.NoError(t, err)

	assert.InDelta(t, 4.0, b.StoredMWh(), 1e-12)
	assert.InDelta(t, 4.0*0.9, b.DeliverableMWh(), 1e-12)
	assert.InDelta(t, 4.0/0.9, b.HeadroomMWh(), 1e-9)
}

func TestBattery_StoredDeltaMatchesFlows(t *testing.T) {
	b, err := NewBattery(testParams, 0.50)
	require.NoError(t, err)

	// A few arbitrary steps; the stored-energy change must always equal
	// -(grid-side battery energy + losses).
	var bessMWh, lossMWh float64
	for _, req := range []float64{-3, 1.5, -0.7, 4, -2.2} {
		res, err := b.Step(req, 1)
		require.NoError(t, err)
		bessMWh += res.ActualPowerMW
		lossMWh += res.EnergyLossMWh
	}
	storedDelta := (b.State.SOC - 0.50) * testParams.CapacityMWh
	assert.InDelta(t, 0, storedDelta+bessMWh+lossMWh, 1e-9)
	assert.True(t, math.Abs(storedDelta) < testParams.CapacityMWh)
}
