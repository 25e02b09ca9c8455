package sim

import (
	"fmt"

	"feeder-dispatch/internal/model"
	"feeder-dispatch/internal/strategy"
)

type Runner struct{}

func New() *Runner { return &Runner{} }

// Run drives the strategy across the solar series, strictly in time order.
// The battery is exclusively owned by this run; at most one battery step
// happens per sample, and every output series is fully populated even where
// the action is "none".
func (r *Runner) Run(solarMW []float64, dtHours float64, batt *model.Battery, strat strategy.Strategy) (*Result, error) {
	if batt == nil {
		return nil, fmt.Errorf("battery is nil")
	}
	if strat == nil {
		return nil, fmt.Errorf("strategy is nil")
	}
	if len(solarMW) == 0 {
		return nil, fmt.Errorf("no solar samples")
	}
	if dtHours <= 0 {
		return nil, fmt.Errorf("dtHours must be > 0, got %v", dtHours)
	}

	n := len(solarMW)
	res := &Result{
		Grid:       make([]float64, n),
		Battery:    make([]float64, n),
		Curtailed:  make([]float64, n),
		Losses:     make([]float64, n),
		SOC:        make([]float64, n),
		Ledger:     make([]LedgerRow, 0, n),
		DtHours:    dtHours,
		InitialSOC: batt.State.SOC,
	}

	prevGrid := solarMW[0]
	cumCurtailed := 0.0
	cumLoss := 0.0

	for i, gen := range solarMW {
		socStart := batt.State.SOC
		out, err := strat.Step(strategy.Context{
			Index:      i,
			SolarMW:    gen,
			DtHours:    dtHours,
			PrevGridMW: prevGrid,
			Battery:    batt,
		})
		if err != nil {
			return nil, fmt.Errorf("step %d (%s): %w", i, strat.Name(), err)
		}

		res.Grid[i] = out.GridMW
		res.Battery[i] = out.BatteryMW
		res.Curtailed[i] = out.CurtailedMW
		res.Losses[i] = out.LossMWh / dtHours
		res.SOC[i] = batt.State.SOC

		cumCurtailed += out.CurtailedMW * dtHours
		cumLoss += out.LossMWh

		res.Ledger = append(res.Ledger, LedgerRow{
			Index:           i,
			SolarMW:         gen,
			GridMW:          out.GridMW,
			BatteryMW:       out.BatteryMW,
			CurtailedMW:     out.CurtailedMW,
			LossMWh:         out.LossMWh,
			Action:          model.ActionFromPowerMW(out.BatteryMW),
			SOCStart:        socStart,
			SOCEnd:          batt.State.SOC,
			CumCurtailedMWh: cumCurtailed,
			CumLossMWh:      cumLoss,
		})

		res.SolarEnergyMWh += gen * dtHours
		res.ExportedEnergyMWh += out.GridMW * dtHours
		prevGrid = out.GridMW
	}

	res.CurtailedMWh = cumCurtailed
	res.LossMWh = cumLoss
	res.FinalSOC = batt.State.SOC
	return res, nil
}
