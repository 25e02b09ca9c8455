package analysis

import "math"

// Strategy-goal metrics computed from the solar input and the exported grid
// series. All are defined to be 0 rather than NaN on degenerate inputs so a
// sweep over many configurations never has to special-case them.

// PeakReductionPct is how much the exported peak sits below the solar peak.
func PeakReductionPct(solarMW, gridMW []float64) float64 {
	solarPeak := maxOf(solarMW)
	if solarPeak <= 0 {
		return 0
	}
	gridPeak := maxOf(gridMW)
	return (solarPeak - gridPeak) / solarPeak * 100
}

// EnergyShiftedMWh is the energy delivered to the feeder in excess of
// concurrent generation, i.e. what the battery moved into other hours.
func EnergyShiftedMWh(solarMW, gridMW []float64, dtHours float64) float64 {
	shifted := 0.0
	for i := range gridMW {
		if extra := gridMW[i] - solarMW[i]; extra > 0 {
			shifted += extra * dtHours
		}
	}
	return shifted
}

// VariabilityReductionPct compares the standard deviation of step-to-step
// changes before and after dispatch.
func VariabilityReductionPct(solarMW, gridMW []float64) float64 {
	solarStd := StdDev(diffs(solarMW))
	if solarStd <= 0 {
		return 0
	}
	gridStd := StdDev(diffs(gridMW))
	return (solarStd - gridStd) / solarStd * 100
}

func diffs(series []float64) []float64 {
	if len(series) < 2 {
		return nil
	}
	out := make([]float64, len(series)-1)
	for i := 1; i < len(series); i++ {
		out[i-1] = series[i] - series[i-1]
	}
	return out
}

func maxOf(series []float64) float64 {
	m := math.Inf(-1)
	for _, v := range series {
		if v > m {
			m = v
		}
	}
	if math.IsInf(m, -1) {
		return 0
	}
	return m
}
