package analysis

import (
	"math"
	"sort"
)

// SeriesStats is a power-series summary used for reporting and for deriving
// strategy thresholds.
type SeriesStats struct {
	Count int

	MinMW  float64
	MaxMW  float64
	MeanMW float64
	StdMW  float64

	P05MW float64
	P80MW float64
	P95MW float64
}

func ComputeStats(series []float64) SeriesStats {
	s := SeriesStats{}
	if len(series) == 0 {
		return s
	}
	s.Count = len(series)

	sum := 0.0
	minv := math.Inf(1)
	maxv := math.Inf(-1)
	vals := make([]float64, 0, len(series))
	for _, v := range series {
		vals = append(vals, v)
		sum += v
		if v < minv {
			minv = v
		}
		if v > maxv {
			maxv = v
		}
	}
	sort.Float64s(vals)
	s.MinMW = minv
	s.MaxMW = maxv
	s.MeanMW = sum / float64(len(vals))
	s.StdMW = StdDev(series)
	s.P05MW = PercentileSorted(vals, 0.05)
	s.P80MW = PercentileSorted(vals, 0.80)
	s.P95MW = PercentileSorted(vals, 0.95)
	return s
}

// PercentileSorted expects an ascending slice.
func PercentileSorted(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	// Linear interpolation between order stats.
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// StdDev is the population standard deviation.
func StdDev(series []float64) float64 {
	n := len(series)
	if n == 0 {
		return 0
	}
	mean := 0.0
	for _, v := range series {
		mean += v
	}
	mean /= float64(n)

	ss := 0.0
	for _, v := range series {
		d := v - mean
		ss += d * d
	}
	return math.Sqrt(ss / float64(n))
}
