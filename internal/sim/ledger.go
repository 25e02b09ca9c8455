package sim

import "feeder-dispatch/internal/model"

// LedgerRow is one row of per-step output.
// This is the primary artifact for "what happened" in a simulation.
type LedgerRow struct {
	Index int

	SolarMW     float64
	GridMW      float64
	BatteryMW   float64
	CurtailedMW float64
	LossMWh     float64

	Action model.Action

	SOCStart float64
	SOCEnd   float64

	CumCurtailedMWh float64
	CumLossMWh      float64
}

// Result bundles the parallel output series with the ledger and run totals.
// All series share the input length; Losses holds MW-equivalent values
// (step loss energy divided by dt) so the series stay unit-consistent.
type Result struct {
	Grid      []float64
	Battery   []float64
	Curtailed []float64
	Losses    []float64
	SOC       []float64

	Ledger []LedgerRow

	DtHours           float64
	SolarEnergyMWh    float64
	ExportedEnergyMWh float64
	CurtailedMWh      float64
	LossMWh           float64
	InitialSOC        float64
	FinalSOC          float64
}
