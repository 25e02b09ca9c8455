package validate

import (
	"errors"
	"fmt"

	"feeder-dispatch/internal/analysis"
)

// CheckSOCBounds verifies the SOC trace never left the allowed band.
func CheckSOCBounds(soc []float64, th Thresholds) (*Validation, error) {
	if len(soc) == 0 {
		return nil, errors.New("soc trace is empty")
	}

	minSOC, maxSOC := soc[0], soc[0]
	for _, s := range soc[1:] {
		if s < minSOC {
			minSOC = s
		}
		if s > maxSOC {
			maxSOC = s
		}
	}
	minPct := minSOC * 100
	maxPct := maxSOC * 100

	v := &Validation{}
	// Tiny slack absorbs float drift from repeated SOC updates.
	const slack = 1e-9

	if minPct < th.SOCMinPct-slack {
		v.add(Record{
			Severity:   SeverityError,
			Check:      "soc_lower_bound",
			Message:    "SOC fell below the minimum bound",
			Measured:   minPct,
			Threshold:  th.SOCMinPct,
			Suggestion: "the battery device must clamp discharge at MinSOC; check its step implementation",
		})
	} else {
		v.add(Record{
			Severity:  SeverityValid,
			Check:     "soc_lower_bound",
			Message:   "SOC stayed above the minimum bound",
			Measured:  minPct,
			Threshold: th.SOCMinPct,
		})
	}

	if maxPct > th.SOCMaxPct+slack {
		v.add(Record{
			Severity:   SeverityError,
			Check:      "soc_upper_bound",
			Message:    "SOC rose above the maximum bound",
			Measured:   maxPct,
			Threshold:  th.SOCMaxPct,
			Suggestion: "the battery device must clamp charge at MaxSOC; check its step implementation",
		})
	} else {
		v.add(Record{
			Severity:  SeverityValid,
			Check:     "soc_upper_bound",
			Message:   "SOC stayed below the maximum bound",
			Measured:  maxPct,
			Threshold: th.SOCMaxPct,
		})
	}

	return v, nil
}

// PerformanceTargets are strategy-goal minimums; zero values fall back to
// modest defaults per goal class.
type PerformanceTargets struct {
	PeakReductionPct        float64
	EnergyShiftedMWh        float64
	VariabilityReductionPct float64
}

// CheckStrategyPerformance measures whether the dispatch achieved its
// strategy-specific goal. Misses are Warnings: an underperforming
// configuration is still a usable data point in a sweep.
func CheckStrategyPerformance(strategyName string, solarMW, gridMW []float64, dtHours float64, targets PerformanceTargets) (*Validation, error) {
	if len(solarMW) == 0 || len(gridMW) != len(solarMW) {
		return nil, fmt.Errorf("solar/grid series must be non-empty and equal length (%d vs %d)", len(solarMW), len(gridMW))
	}
	if dtHours <= 0 {
		return nil, fmt.Errorf("dt must be > 0, got %v", dtHours)
	}

	v := &Validation{}
	switch strategyName {
	case "capshave", "peakshave":
		target := targets.PeakReductionPct
		if target == 0 {
			target = 10
		}
		measured := analysis.PeakReductionPct(solarMW, gridMW)
		v.add(perfRecord("peak_reduction", "exported peak reduced by", measured, target,
			"raise the battery power rating or lower the cap/threshold"))

	case "flatday", "nightshift":
		target := targets.EnergyShiftedMWh
		if target == 0 {
			target = 1
		}
		measured := analysis.EnergyShiftedMWh(solarMW, gridMW, dtHours)
		v.add(perfRecord("energy_shifted", "energy shifted into other hours", measured, target,
			"widen the charge window or increase capacity"))

	case "ramplimit":
		target := targets.VariabilityReductionPct
		if target == 0 {
			target = 10
		}
		measured := analysis.VariabilityReductionPct(solarMW, gridMW)
		v.add(perfRecord("variability_reduction", "step-to-step variability reduced by", measured, target,
			"tighten the ramp limit or increase the battery power rating"))

	default:
		return nil, fmt.Errorf("unknown strategy for performance check: %q", strategyName)
	}

	return v, nil
}

func perfRecord(check, what string, measured, target float64, suggestion string) Record {
	if measured >= target {
		return Record{
			Severity:  SeverityValid,
			Check:     check,
			Message:   fmt.Sprintf("%s %.2f meets target", what, measured),
			Measured:  measured,
			Threshold: target,
		}
	}
	return Record{
		Severity:   SeverityWarning,
		Check:      check,
		Message:    fmt.Sprintf("%s %.2f misses target", what, measured),
		Measured:   measured,
		Threshold:  target,
		Suggestion: suggestion,
	}
}
