package validate

import (
	"errors"
	"fmt"
	"math"
)

// Thresholds are the operating limits the validator compares against.
// They are configuration defaults, not hard-coded law.
type Thresholds struct {
	BalanceToleranceMWh  float64
	LossWarnPct          float64
	LossErrorPct         float64
	MinBESSEfficiencyPct float64
	SOCMinPct            float64
	SOCMaxPct            float64
	// CriticalConservationFrac escalates a conservation mismatch to Critical
	// once the residual exceeds this fraction of the solar energy.
	CriticalConservationFrac float64
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		BalanceToleranceMWh:      0.001,
		LossWarnPct:              7.0,
		LossErrorPct:             10.5,
		MinBESSEfficiencyPct:     85.0,
		SOCMinPct:                10.0,
		SOCMaxPct:                95.0,
		CriticalConservationFrac: 0.01,
	}
}

// BalanceInput feeds EnergyBalance. LossesMW may be nil when only the scalar
// TotalLossMWh is known. CurtailedMW, SOC and CapacityMWh are optional; when
// present, the conservation check accounts for curtailed energy and the
// change in stored energy instead of assuming the battery returned to its
// starting charge.
type BalanceInput struct {
	SolarMW   []float64
	BatteryMW []float64
	LossesMW  []float64
	// TotalLossMWh is used when LossesMW is nil.
	TotalLossMWh float64
	DtHours      float64

	CurtailedMW []float64
	SOC         []float64
	CapacityMWh float64
}

// EnergyBalance recomputes conservation and efficiency metrics from the
// simulation output series and classifies each property. Input-shape problems
// (length mismatches, bad dt) return an error; everything the checks find is
// reported as records.
func (in BalanceInput) validateShape() error {
	if in.DtHours <= 0 {
		return fmt.Errorf("dt must be > 0, got %v", in.DtHours)
	}
	n := len(in.SolarMW)
	if n == 0 {
		return errors.New("solar series is empty")
	}
	if len(in.BatteryMW) != n {
		return fmt.Errorf("battery series length %d != solar length %d", len(in.BatteryMW), n)
	}
	if in.LossesMW != nil && len(in.LossesMW) != n {
		return fmt.Errorf("losses series length %d != solar length %d", len(in.LossesMW), n)
	}
	if in.CurtailedMW != nil && len(in.CurtailedMW) != n {
		return fmt.Errorf("curtailed series length %d != solar length %d", len(in.CurtailedMW), n)
	}
	if in.SOC != nil && len(in.SOC) != n {
		return fmt.Errorf("soc trace length %d != solar length %d", len(in.SOC), n)
	}
	return nil
}

func EnergyBalance(in BalanceInput, th Thresholds) (*Validation, error) {
	if err := in.validateShape(); err != nil {
		return nil, err
	}

	dt := in.DtHours
	f := Flows{}
	for _, v := range in.SolarMW {
		f.SolarEnergyMWh += v * dt
	}
	for _, v := range in.BatteryMW {
		f.BessEnergyMWh += v * dt
		if v < 0 {
			f.ChargeEnergyMWh += -v * dt
		} else {
			f.DischargeEnergyMWh += v * dt
		}
	}
	if in.LossesMW != nil {
		for _, v := range in.LossesMW {
			f.TotalLossMWh += v * dt
		}
	} else {
		f.TotalLossMWh = in.TotalLossMWh
	}
	for _, v := range in.CurtailedMW {
		f.CurtailedEnergyMWh += v * dt
	}
	if in.SOC != nil && in.CapacityMWh > 0 {
		f.StoredDeltaMWh = (in.SOC[len(in.SOC)-1] - socStart(in)) * in.CapacityMWh
	}

	f.ExportedEnergyMWh = f.SolarEnergyMWh + f.BessEnergyMWh
	f.TheoreticalEnergyMWh = f.SolarEnergyMWh - f.TotalLossMWh
	if f.SolarEnergyMWh > 0 {
		f.LossPct = f.TotalLossMWh / f.SolarEnergyMWh * 100
	}
	if f.ChargeEnergyMWh > 0 {
		f.BESSEfficiencyPct = f.DischargeEnergyMWh / f.ChargeEnergyMWh * 100
	} else {
		// No charging happened; nothing was lost in the round trip.
		f.BESSEfficiencyPct = 100
	}

	v := &Validation{Flows: f}

	// Balance: exported vs theoretical. A persistent gap usually means the
	// battery retained charge, or a strategy used requested instead of actual
	// power.
	gap := math.Abs(f.ExportedEnergyMWh - f.TheoreticalEnergyMWh)
	if gap < th.BalanceToleranceMWh {
		v.add(Record{
			Severity:  SeverityValid,
			Check:     "energy_balance",
			Message:   "exported energy matches theoretical output",
			Measured:  gap,
			Threshold: th.BalanceToleranceMWh,
		})
	} else {
		v.add(Record{
			Severity:   SeverityError,
			Check:      "energy_balance",
			Message:    "exported energy deviates from theoretical output",
			Measured:   gap,
			Threshold:  th.BalanceToleranceMWh,
			Suggestion: "verify strategies derive grid power from actual battery power, and account for retained charge",
		})
	}

	// Loss percentage: informative, not fatal.
	switch {
	case f.LossPct <= th.LossWarnPct:
		v.add(Record{
			Severity:  SeverityValid,
			Check:     "loss_pct",
			Message:   "conversion losses within expected range",
			Measured:  f.LossPct,
			Threshold: th.LossWarnPct,
		})
	case f.LossPct <= th.LossErrorPct:
		v.add(Record{
			Severity:   SeverityWarning,
			Check:      "loss_pct",
			Message:    "conversion losses are elevated",
			Measured:   f.LossPct,
			Threshold:  th.LossWarnPct,
			Suggestion: "check the battery round-trip efficiency and cycling frequency",
		})
	default:
		v.add(Record{
			Severity:   SeverityError,
			Check:      "loss_pct",
			Message:    "conversion losses are excessive",
			Measured:   f.LossPct,
			Threshold:  th.LossErrorPct,
			Suggestion: "the strategy may be cycling the battery on negligible imbalances",
		})
	}

	// Round-trip efficiency measured from the flows themselves.
	if f.BESSEfficiencyPct < th.MinBESSEfficiencyPct {
		v.add(Record{
			Severity:   SeverityWarning,
			Check:      "bess_efficiency",
			Message:    "measured round-trip efficiency is low",
			Measured:   f.BESSEfficiencyPct,
			Threshold:  th.MinBESSEfficiencyPct,
			Suggestion: "inspect the discharge/charge energy ratio; retained charge at end of run depresses it",
		})
	} else {
		v.add(Record{
			Severity:  SeverityValid,
			Check:     "bess_efficiency",
			Message:   "measured round-trip efficiency acceptable",
			Measured:  f.BESSEfficiencyPct,
			Threshold: th.MinBESSEfficiencyPct,
		})
	}

	// Conservation: total input vs net output plus losses. With the SOC trace
	// and curtailment available the residual is exact; otherwise retained
	// charge shows up as a residual.
	residual := f.BessEnergyMWh + f.TotalLossMWh
	if in.SOC != nil && in.CapacityMWh > 0 {
		residual += f.StoredDeltaMWh
	}
	absResidual := math.Abs(residual)
	switch {
	case absResidual < th.BalanceToleranceMWh:
		v.add(Record{
			Severity:  SeverityValid,
			Check:     "conservation",
			Message:   "input energy equals net output plus losses",
			Measured:  absResidual,
			Threshold: th.BalanceToleranceMWh,
		})
	case f.SolarEnergyMWh > 0 && absResidual > th.CriticalConservationFrac*f.SolarEnergyMWh:
		v.add(Record{
			Severity:   SeverityCritical,
			Check:      "conservation",
			Message:    "energy conservation violated far beyond tolerance",
			Measured:   absResidual,
			Threshold:  th.BalanceToleranceMWh,
			Suggestion: "the dispatch implementation is creating or destroying energy; audit its per-step accounting",
		})
	default:
		v.add(Record{
			Severity:   SeverityError,
			Check:      "conservation",
			Message:    "energy conservation violated",
			Measured:   absResidual,
			Threshold:  th.BalanceToleranceMWh,
			Suggestion: "supply the SOC trace and curtailed series for exact accounting, or audit the strategy",
		})
	}

	return v, nil
}

func socStart(in BalanceInput) float64 {
	// The trace records SOC after each step; reconstruct the starting point
	// by undoing the first step's stored-energy change.
	first := in.SOC[0]
	if in.CapacityMWh <= 0 {
		return first
	}
	// stored delta of step 0 = -(battery + loss) energy of step 0
	var loss0 float64
	if in.LossesMW != nil {
		loss0 = in.LossesMW[0] * in.DtHours
	}
	delta := -(in.BatteryMW[0]*in.DtHours + loss0)
	return first - delta/in.CapacityMWh
}
