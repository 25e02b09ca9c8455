package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findRecord(t *testing.T, v *Validation, check string) Record {
	t.Helper()
	for _, r := range v.Records {
		if r.Check == check {
			return r
		}
	}
	t.Fatalf("no record for check %q", check)
	return Record{}
}

func TestEnergyBalance_ShapeErrors(t *testing.T) {
	th := DefaultThresholds()

	_, err := EnergyBalance(BalanceInput{SolarMW: []float64{1}, BatteryMW: []float64{0}, DtHours: 0}, th)
	assert.Error(t, err)
	_, err = EnergyBalance(BalanceInput{SolarMW: nil, BatteryMW: nil, DtHours: 1}, th)
	assert.Error(t, err)
	_, err = EnergyBalance(BalanceInput{SolarMW: []float64{1, 2}, BatteryMW: []float64{0}, DtHours: 1}, th)
	assert.Error(t, err)
	_, err = EnergyBalance(BalanceInput{
		SolarMW: []float64{1, 2}, BatteryMW: []float64{0, 0},
		LossesMW: []float64{0}, DtHours: 1,
	}, th)
	assert.Error(t, err)
}

func TestEnergyBalance_CleanPassThrough(t *testing.T) {
	v, err := EnergyBalance(BalanceInput{
		SolarMW:   []float64{0, 5, 10, 5, 0},
		BatteryMW: []float64{0, 0, 0, 0, 0},
		DtHours:   1,
	}, DefaultThresholds())
	require.NoError(t, err)

	assert.Equal(t, SeverityValid, v.Overall)
	assert.InDelta(t, 20, v.Flows.SolarEnergyMWh, 1e-12)
	assert.InDelta(t, 20, v.Flows.ExportedEnergyMWh, 1e-12)
	assert.InDelta(t, 0, v.Flows.LossPct, 1e-12)
	// No charging at all reads as a perfect round trip.
	assert.InDelta(t, 100, v.Flows.BESSEfficiencyPct, 1e-12)
}

func TestEnergyBalance_LossSeverityBands(t *testing.T) {
	// Solar energy 20 MWh; the battery leg absorbs exactly the loss so the
	// exported/theoretical balance stays clean in each case.
	cases := []struct {
		name     string
		lossMWh  float64
		expected Severity
	}{
		{"six percent valid", 1.2, SeverityValid},
		{"nine percent warning", 1.8, SeverityWarning},
		{"fifteen percent error", 3.0, SeverityError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v, err := EnergyBalance(BalanceInput{
				SolarMW:      []float64{10, 10},
				BatteryMW:    []float64{-tc.lossMWh, 0},
				TotalLossMWh: tc.lossMWh,
				DtHours:      1,
			}, DefaultThresholds())
			require.NoError(t, err)

			assert.Equal(t, tc.expected, findRecord(t, v, "loss_pct").Severity)
			assert.Equal(t, SeverityValid, findRecord(t, v, "energy_balance").Severity)
		})
	}
}

func TestEnergyBalance_BalanceGapIsError(t *testing.T) {
	// Battery injects energy with no loss and no retained-charge accounting:
	// exported exceeds theoretical.
	v, err := EnergyBalance(BalanceInput{
		SolarMW:   []float64{10, 10},
		BatteryMW: []float64{2, 0},
		DtHours:   1,
	}, DefaultThresholds())
	require.NoError(t, err)

	r := findRecord(t, v, "energy_balance")
	assert.Equal(t, SeverityError, r.Severity)
	assert.InDelta(t, 2, r.Measured, 1e-12)
	assert.NotEmpty(t, r.Suggestion)
}

func TestEnergyBalance_ConservationCritical(t *testing.T) {
	// A 10 MWh residual against 20 MWh of solar is far beyond the 1% escalation
	// fraction.
	v, err := EnergyBalance(BalanceInput{
		SolarMW:   []float64{10, 10},
		BatteryMW: []float64{5, 5},
		DtHours:   1,
	}, DefaultThresholds())
	require.NoError(t, err)

	assert.Equal(t, SeverityCritical, findRecord(t, v, "conservation").Severity)
	assert.Equal(t, SeverityCritical, v.Overall)
}

func TestEnergyBalance_RetainedChargeWithoutTrace(t *testing.T) {
	// The battery charged 2 MWh and kept it. Without the SOC trace the
	// conservation check sees an unexplained residual.
	v, err := EnergyBalance(BalanceInput{
		SolarMW:      []float64{10, 10},
		BatteryMW:    []float64{-2, 0},
		TotalLossMWh: 0.2,
		DtHours:      1,
	}, DefaultThresholds())
	require.NoError(t, err)
	assert.True(t, findRecord(t, v, "conservation").Severity >= SeverityError)
}

func TestEnergyBalance_SOCTraceExplainsRetainedCharge(t *testing.T) {
	// Same flows as above, but the SOC trace shows where the energy went:
	// charge 2 MWh grid-side, store 1.8, keep it. Conservation is exact.
	v, err := EnergyBalance(BalanceInput{
		SolarMW:     []float64{10, 10},
		BatteryMW:   []float64{-2, 0},
		LossesMW:    []float64{0.2, 0},
		DtHours:     1,
		CurtailedMW: []float64{0, 0},
		SOC:         []float64{0.68, 0.68},
		CapacityMWh: 10,
	}, DefaultThresholds())
	require.NoError(t, err)

	assert.Equal(t, SeverityValid, findRecord(t, v, "conservation").Severity)
	assert.InDelta(t, 1.8, v.Flows.StoredDeltaMWh, 1e-9)
}

func TestEnergyBalance_FullCycleWithTrace(t *testing.T) {
	// Charge then discharge on a 10 MWh battery with 0.9 one-way legs:
	// absorb 2 (store 1.8), deliver 2 (withdraw 2/0.9).
	withdrawn := 2 / 0.9
	v, err := EnergyBalance(BalanceInput{
		SolarMW:     []float64{10, 0},
		BatteryMW:   []float64{-2, 2},
		LossesMW:    []float64{0.2, withdrawn - 2},
		DtHours:     1,
		CurtailedMW: []float64{0, 0},
		SOC:         []float64{0.68, 0.68 - withdrawn/10},
		CapacityMWh: 10,
	}, DefaultThresholds())
	require.NoError(t, err)

	assert.Equal(t, SeverityValid, findRecord(t, v, "conservation").Severity)
	assert.InDelta(t, 2.0, v.Flows.ChargeEnergyMWh, 1e-9)
	assert.InDelta(t, 2.0, v.Flows.DischargeEnergyMWh, 1e-9)
	assert.InDelta(t, 100, v.Flows.BESSEfficiencyPct, 1e-9)
}

func TestEnergyBalance_LowEfficiencyWarns(t *testing.T) {
	// Discharge recovers far less than was charged.
	v, err := EnergyBalance(BalanceInput{
		SolarMW:      []float64{10, 0},
		BatteryMW:    []float64{-4, 2},
		TotalLossMWh: 0,
		DtHours:      1,
	}, DefaultThresholds())
	require.NoError(t, err)

	r := findRecord(t, v, "bess_efficiency")
	assert.Equal(t, SeverityWarning, r.Severity)
	assert.InDelta(t, 50, r.Measured, 1e-9)
}
