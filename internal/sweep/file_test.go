package sweep

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sweep.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
battery:
  power_rating_mw: 3.0
  capacity_mwh: 6.0
  round_trip_efficiency: 0.9
  min_soc: 0.1
  max_soc: 0.95
variations:
  - name: a
    strategy:
      name: capshave
      params:
        cap_mw: 6.0
  - name: b
    battery:
      capacity_mwh: 20.0
    strategy:
      name: nightshift
`), 0o644))

	variations, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, variations, 2)

	assert.Equal(t, "a", variations[0].Name)
	assert.InDelta(t, 6.0, variations[0].Battery.CapacityMWh, 1e-12)
	// initial_soc omitted: defaults to min_soc.
	assert.InDelta(t, 0.1, variations[0].Battery.InitialSOC, 1e-12)

	// Per-variation battery overlays the base.
	assert.InDelta(t, 20.0, variations[1].Battery.CapacityMWh, 1e-12)
	assert.InDelta(t, 3.0, variations[1].Battery.PowerRatingMW, 1e-12)
	assert.Equal(t, "nightshift", variations[1].Strategy.Name)
}

func TestLoadFile_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadFile(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	empty := filepath.Join(dir, "empty.yaml")
	require.NoError(t, os.WriteFile(empty, []byte("battery: {}\n"), 0o644))
	_, err = LoadFile(empty)
	assert.Error(t, err)

	unnamed := filepath.Join(dir, "unnamed.yaml")
	require.NoError(t, os.WriteFile(unnamed, []byte("variations:\n  - strategy:\n      name: capshave\n"), 0o644))
	_, err = LoadFile(unnamed)
	assert.Error(t, err)
}
