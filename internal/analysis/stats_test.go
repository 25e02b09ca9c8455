package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeStats(t *testing.T) {
	s := ComputeStats([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	assert.Equal(t, 8, s.Count)
	assert.InDelta(t, 2, s.MinMW, 1e-12)
	assert.InDelta(t, 9, s.MaxMW, 1e-12)
	assert.InDelta(t, 5, s.MeanMW, 1e-12)
	assert.InDelta(t, 2, s.StdMW, 1e-12)

	empty := ComputeStats(nil)
	assert.Zero(t, empty.Count)
}

func TestPercentileSorted(t *testing.T) {
	sorted := []float64{2, 4, 6, 8, 10}
	assert.InDelta(t, 2, PercentileSorted(sorted, 0), 1e-12)
	assert.InDelta(t, 10, PercentileSorted(sorted, 1), 1e-12)
	assert.InDelta(t, 6, PercentileSorted(sorted, 0.5), 1e-12)
	// 0.8 lands at position 3.2: interpolate between 8 and 10.
	assert.InDelta(t, 8.4, PercentileSorted(sorted, 0.8), 1e-12)
	assert.Zero(t, PercentileSorted(nil, 0.5))
}

func TestStdDev(t *testing.T) {
	assert.Zero(t, StdDev(nil))
	assert.Zero(t, StdDev([]float64{3, 3, 3}))
	assert.InDelta(t, 2, StdDev([]float64{2, 4, 4, 4, 5, 5, 7, 9}), 1e-12)
}
