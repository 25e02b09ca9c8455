package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"feeder-dispatch/internal/data"
)

// Generates a synthetic solar profile JSON for local runs, so the CLI and
// demo work without a profile service API key.
func main() {
	station := flag.String("station", "synthetic-1", "Station id to stamp on the profile")
	days := flag.Int("days", 1, "Number of days to generate")
	peakMW := flag.Float64("peak", 10.0, "Peak generation in MW")
	dtHours := flag.Float64("dt", 1.0, "Sample resolution in hours")
	sunrise := flag.Float64("sunrise", 6, "Sunrise hour of day")
	sunset := flag.Float64("sunset", 20, "Sunset hour of day")
	outPath := flag.String("out", "profile.json", "Output JSON path")
	flag.Parse()

	profile := data.SyntheticProfile(data.SyntheticParams{
		Station:     *station,
		Days:        *days,
		PeakMW:      *peakMW,
		DtHours:     *dtHours,
		SunriseHour: *sunrise,
		SunsetHour:  *sunset,
	})

	if dir := filepath.Dir(*outPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			panic(err)
		}
	}
	if err := data.SaveSolarJSON(*outPath, profile); err != nil {
		panic(err)
	}

	fmt.Printf("Wrote %d samples (%.1f MW peak, dt=%.2fh) to %s\n",
		len(profile.SamplesMW), *peakMW, profile.DtHours, *outPath)
}
