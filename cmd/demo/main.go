package main

import (
	"flag"
	"fmt"

	"feeder-dispatch/internal/model"
	"feeder-dispatch/internal/sim"
	"feeder-dispatch/internal/strategy"
	"feeder-dispatch/internal/validate"
)

// Demo:
// - Build a small single-day solar series inline
// - Instantiate a battery model and the cap-shaving strategy
// - Run the simulation, print the ledger and the validation report
func main() {
	capMW := flag.Float64("cap", 6.0, "Feeder export cap in MW")
	flag.Parse()

	solarMW := []float64{0, 0, 5, 10, 8, 3, 0, 0}
	dtHours := 1.0

	params := model.BatteryParams{
		CapacityMWh:         6,
		PowerRatingMW:       3,
		RoundTripEfficiency: 0.90,
		MinSOC:              0.10,
		MaxSOC:              0.95,
	}
	batt, err := model.NewBattery(params, 0.50)
	if err != nil {
		panic(err)
	}

	strat := strategy.NewCapShavingStrategy(strategy.CapShavingParams{
		CapMW:         *capMW,
		SoftDischarge: false,
	}, strategy.DefaultTunables())

	res, err := sim.New().Run(solarMW, dtHours, batt, strat)
	if err != nil {
		panic(err)
	}

	fmt.Printf("%-4s %-8s %-8s %-9s %-10s %-9s %-12s %-8s\n",
		"idx", "solar", "grid", "battery", "curtailed", "loss", "action", "soc")
	for _, row := range res.Ledger {
		fmt.Printf("%-4d %-8.2f %-8.2f %-9.2f %-10.2f %-9.4f %-12s %-8.3f\n",
			row.Index, row.SolarMW, row.GridMW, row.BatteryMW,
			row.CurtailedMW, row.LossMWh, row.Action, row.SOCEnd)
	}

	fmt.Printf("\nSolar=%.2f MWh Exported=%.2f MWh Curtailed=%.2f MWh Losses=%.3f MWh Final SOC=%.3f\n",
		res.SolarEnergyMWh, res.ExportedEnergyMWh, res.CurtailedMWh, res.LossMWh, res.FinalSOC)

	th := validate.DefaultThresholds()
	v, err := validate.EnergyBalance(validate.BalanceInput{
		SolarMW:     solarMW,
		BatteryMW:   res.Battery,
		LossesMW:    res.Losses,
		DtHours:     dtHours,
		CurtailedMW: res.Curtailed,
		SOC:         res.SOC,
		CapacityMWh: params.CapacityMWh,
	}, th)
	if err != nil {
		panic(err)
	}
	if socV, err := validate.CheckSOCBounds(res.SOC, th); err == nil {
		v.Merge(socV)
	}

	fmt.Println()
	fmt.Print(validate.FormatReport(v))
}
