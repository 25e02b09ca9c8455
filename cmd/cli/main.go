package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"feeder-dispatch/internal/config"
	"feeder-dispatch/internal/data"
	"feeder-dispatch/internal/model"
	"feeder-dispatch/internal/sim"
	"feeder-dispatch/internal/strategy"
	"feeder-dispatch/internal/sweep"
	"feeder-dispatch/internal/validate"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "simulate":
		cmdSimulate(os.Args[2:])
	case "validate":
		cmdValidate(os.Args[2:])
	case "sweep":
		cmdSweep(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  cli simulate --profile profile.json --config examples/config.yaml --out results/dispatch.csv")
	fmt.Println("  cli validate --profile profile.json --config examples/config.yaml")
	fmt.Println("  cli sweep --profile profile.json --config examples/sweep.yaml --workers 4")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - simulate writes a per-step CSV ledger with action=CHARGING/IDLE/DISCHARGING")
	fmt.Println("  - validate runs the energy-balance checks and prints the report")
	fmt.Println("  - sweep runs every variation in the sweep file and ranks the outcomes")
}

func cmdSimulate(args []string) {
	fs := flag.NewFlagSet("simulate", flag.ExitOnError)
	profilePath := fs.String("profile", "profile.json", "Path to solar profile JSON")
	cfgPath := fs.String("config", "", "Path to YAML config")
	outPath := fs.String("out", "results/dispatch.csv", "Output CSV path")
	n := fs.Int("n", 0, "Optional: limit to first N samples (0=all)")
	_ = fs.Parse(args)

	if *cfgPath == "" {
		fmt.Println("--config is required")
		os.Exit(2)
	}

	cfg, res := runFromFiles(*profilePath, *cfgPath, *n)

	if err := os.MkdirAll(filepath.Dir(*outPath), 0o755); err != nil {
		panic(err)
	}
	if err := sim.WriteLedgerCSV(*outPath, res.Ledger); err != nil {
		panic(err)
	}

	fmt.Printf("Wrote %d rows to %s\n", len(res.Ledger), *outPath)
	fmt.Printf("Strategy=%s Exported=%.3f MWh Curtailed=%.3f MWh Losses=%.3f MWh Final SOC=%.3f\n",
		cfg.Strategy.Name, res.ExportedEnergyMWh, res.CurtailedMWh, res.LossMWh, res.FinalSOC)
}

func cmdValidate(args []string) {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	profilePath := fs.String("profile", "profile.json", "Path to solar profile JSON")
	cfgPath := fs.String("config", "", "Path to YAML config")
	n := fs.Int("n", 0, "Optional: limit to first N samples (0=all)")
	_ = fs.Parse(args)

	if *cfgPath == "" {
		fmt.Println("--config is required")
		os.Exit(2)
	}

	cfg, res := runFromFiles(*profilePath, *cfgPath, *n)

	solar := make([]float64, len(res.Ledger))
	for i, row := range res.Ledger {
		solar[i] = row.SolarMW
	}

	th := cfg.Validation.ToThresholds()
	v, err := validate.EnergyBalance(validate.BalanceInput{
		SolarMW:     solar,
		BatteryMW:   res.Battery,
		LossesMW:    res.Losses,
		DtHours:     res.DtHours,
		CurtailedMW: res.Curtailed,
		SOC:         res.SOC,
		CapacityMWh: cfg.Battery.CapacityMWh,
	}, th)
	if err != nil {
		panic(err)
	}
	if socV, err := validate.CheckSOCBounds(res.SOC, th); err == nil {
		v.Merge(socV)
	}
	if perfV, err := validate.CheckStrategyPerformance(cfg.Strategy.Name, solar, res.Grid, res.DtHours, validate.PerformanceTargets{}); err == nil {
		v.Merge(perfV)
	}

	fmt.Print(validate.FormatReport(v))
	if v.Overall >= validate.SeverityError {
		os.Exit(1)
	}
}

func cmdSweep(args []string) {
	fs := flag.NewFlagSet("sweep", flag.ExitOnError)
	profilePath := fs.String("profile", "profile.json", "Path to solar profile JSON")
	sweepPath := fs.String("config", "", "Path to sweep YAML (base config plus variations)")
	workers := fs.Int("workers", 4, "Worker pool size")
	_ = fs.Parse(args)

	if *sweepPath == "" {
		fmt.Println("--config is required")
		os.Exit(2)
	}

	profile, err := data.LoadSolarJSON(*profilePath)
	if err != nil {
		panic(err)
	}

	variations, err := sweep.LoadFile(*sweepPath)
	if err != nil {
		panic(err)
	}

	runner := sweep.NewRunner(*workers)
	sink := sweep.SinkFunc(func(done, total int, r sweep.RunSummary) {
		status := r.Severity.String()
		if r.Err != "" {
			status = "failed: " + r.Err
		}
		fmt.Printf("[%d/%d] %-24s %s\n", done, total, r.Name, status)
	})
	summaries := runner.Run(profile.SamplesMW, profile.DtHours, variations, sink)

	ranked := sweep.Rank(summaries)
	fmt.Printf("\n%-4s %-24s %-12s %-10s %-12s %-12s %-10s\n",
		"rank", "name", "strategy", "status", "curtailed", "losses", "final_soc")
	for i, r := range ranked {
		status := r.Severity.String()
		if r.Err != "" {
			status = "failed"
		}
		fmt.Printf("%-4d %-24s %-12s %-10s %-12.3f %-12.3f %-10.3f\n",
			i+1, r.Name, r.StrategyName, status, r.CurtailedMWh, r.LossMWh, r.FinalSOC)
	}
}

// runFromFiles loads the profile and config, builds the battery and strategy
// and runs the simulation. Shared by simulate and validate.
func runFromFiles(profilePath, cfgPath string, n int) (*config.Config, *sim.Result) {
	profile, err := data.LoadSolarJSON(profilePath)
	if err != nil {
		panic(err)
	}
	solarMW := profile.SamplesMW
	if n > 0 && n < len(solarMW) {
		solarMW = solarMW[:n]
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		panic(err)
	}

	batt, err := model.NewBattery(cfg.Battery.ToModelParams(), cfg.Battery.InitialSOC)
	if err != nil {
		panic(err)
	}

	strat, err := strategy.Build(cfg.Strategy.Name, cfg.Strategy.Params, cfg.Tunables.ToTunables(), solarMW, profile.DtHours, batt)
	if err != nil {
		panic(err)
	}

	res, err := sim.New().Run(solarMW, profile.DtHours, batt, strat)
	if err != nil {
		panic(err)
	}
	return cfg, res
}
