package data

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSolarJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "profile.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"station": "rural-feeder-7",
		"dt_hours": 0.5,
		"samples_mw": [0, 1.5, 3.2]
	}`), 0o644))

	p, err := LoadSolarJSON(path)
	require.NoError(t, err)
	assert.Equal(t, "rural-feeder-7", p.Station)
	assert.InDelta(t, 0.5, p.DtHours, 1e-12)
	assert.Len(t, p.SamplesMW, 3)
}

func TestLoadSolarJSON_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadSolarJSON(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("not json"), 0o644))
	_, err = LoadSolarJSON(bad)
	assert.Error(t, err)

	// Parses but fails validation: no samples.
	empty := filepath.Join(dir, "empty.json")
	require.NoError(t, os.WriteFile(empty, []byte(`{"dt_hours": 1, "samples_mw": []}`), 0o644))
	_, err = LoadSolarJSON(empty)
	assert.Error(t, err)
}

func TestSaveSolarJSON_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.json")

	want := SyntheticProfile(SyntheticParams{Station: "gen", Days: 1, PeakMW: 8, DtHours: 1})
	require.NoError(t, SaveSolarJSON(path, want))

	got, err := LoadSolarJSON(path)
	require.NoError(t, err)
	assert.Equal(t, want.Station, got.Station)
	assert.InDelta(t, want.DtHours, got.DtHours, 1e-12)
	assert.Equal(t, len(want.SamplesMW), len(got.SamplesMW))
}

func TestStations(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stations.json")

	list := &StationList{Stations: []Station{
		{ID: "a", Name: "Station A", FeederCapMW: 6, PeakMW: 10},
		{ID: "b", Name: "Station B", FeederCapMW: 25, PeakMW: 42},
	}}
	require.NoError(t, SaveStations(path, list))

	loaded, err := LoadStations(path)
	require.NoError(t, err)
	require.Len(t, loaded.Stations, 2)

	assert.Equal(t, "Station B", loaded.Find("b").Name)
	assert.Nil(t, loaded.Find("c"))
}

func TestLoadStations_RejectsEmptyID(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stations.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"stations":[{"id":"","name":"x"}]}`), 0o644))
	_, err := LoadStations(path)
	assert.Error(t, err)
}
