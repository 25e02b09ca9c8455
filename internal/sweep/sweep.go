package sweep

import (
	"sync"

	"feeder-dispatch/internal/analysis"
	"feeder-dispatch/internal/config"
	"feeder-dispatch/internal/model"
	"feeder-dispatch/internal/sim"
	"feeder-dispatch/internal/strategy"
	"feeder-dispatch/internal/validate"
)

// Variation is one (battery, strategy) configuration to simulate.
type Variation struct {
	Name     string
	Battery  config.BatteryConfig
	Strategy config.StrategyConfig
}

// RunSummary is the per-configuration outcome. A configuration that could not
// even be constructed carries Err; a configuration that ran carries its
// validation severity and metrics. Either way the sweep keeps going.
type RunSummary struct {
	Name         string
	StrategyName string

	Err      string
	Severity validate.Severity

	SolarEnergyMWh    float64
	ExportedEnergyMWh float64
	CurtailedMWh      float64
	LossMWh           float64
	FinalSOC          float64

	PeakReductionPct        float64
	EnergyShiftedMWh        float64
	VariabilityReductionPct float64
}

// ProgressSink receives each configuration's summary as it completes.
// Implementations must be safe for concurrent calls.
type ProgressSink interface {
	OnResult(done, total int, r RunSummary)
}

// SinkFunc adapts a function to the ProgressSink interface.
type SinkFunc func(done, total int, r RunSummary)

func (f SinkFunc) OnResult(done, total int, r RunSummary) { f(done, total, r) }

// Runner executes variations over one solar series with a bounded worker
// pool. Runs share no mutable state: each owns a fresh battery.
type Runner struct {
	Workers    int
	Thresholds validate.Thresholds
	Tunables   strategy.Tunables
}

func NewRunner(workers int) *Runner {
	if workers <= 0 {
		workers = 4
	}
	return &Runner{
		Workers:    workers,
		Thresholds: validate.DefaultThresholds(),
		Tunables:   strategy.DefaultTunables(),
	}
}

func (s *Runner) Run(solarMW []float64, dtHours float64, variations []Variation, sink ProgressSink) []RunSummary {
	out := make([]RunSummary, len(variations))

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		done int
	)
	jobs := make(chan int)

	workers := s.Workers
	if workers > len(variations) {
		workers = len(variations)
	}
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				out[i] = s.runOne(solarMW, dtHours, variations[i])
				mu.Lock()
				done++
				d := done
				mu.Unlock()
				if sink != nil {
					sink.OnResult(d, len(variations), out[i])
				}
			}
		}()
	}
	for i := range variations {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return out
}

func (s *Runner) runOne(solarMW []float64, dtHours float64, v Variation) RunSummary {
	summary := RunSummary{Name: v.Name, StrategyName: v.Strategy.Name}

	bc := v.Battery
	if bc.InitialSOC == 0 {
		bc.InitialSOC = bc.MinSOC
	}
	batt, err := model.NewBattery(bc.ToModelParams(), bc.InitialSOC)
	if err != nil {
		summary.Err = err.Error()
		return summary
	}

	strat, err := strategy.Build(v.Strategy.Name, v.Strategy.Params, s.Tunables, solarMW, dtHours, batt)
	if err != nil {
		summary.Err = err.Error()
		return summary
	}

	res, err := sim.New().Run(solarMW, dtHours, batt, strat)
	if err != nil {
		summary.Err = err.Error()
		return summary
	}

	summary.SolarEnergyMWh = res.SolarEnergyMWh
	summary.ExportedEnergyMWh = res.ExportedEnergyMWh
	summary.CurtailedMWh = res.CurtailedMWh
	summary.LossMWh = res.LossMWh
	summary.FinalSOC = res.FinalSOC
	summary.PeakReductionPct = analysis.PeakReductionPct(solarMW, res.Grid)
	summary.EnergyShiftedMWh = analysis.EnergyShiftedMWh(solarMW, res.Grid, dtHours)
	summary.VariabilityReductionPct = analysis.VariabilityReductionPct(solarMW, res.Grid)

	validation, err := validate.EnergyBalance(validate.BalanceInput{
		SolarMW:     solarMW,
		BatteryMW:   res.Battery,
		LossesMW:    res.Losses,
		DtHours:     dtHours,
		CurtailedMW: res.Curtailed,
		SOC:         res.SOC,
		CapacityMWh: batt.Params.CapacityMWh,
	}, s.Thresholds)
	if err != nil {
		summary.Err = err.Error()
		return summary
	}
	if soc, err := validate.CheckSOCBounds(res.SOC, s.Thresholds); err == nil {
		validation.Merge(soc)
	}
	if perf, err := validate.CheckStrategyPerformance(strat.Name(), solarMW, res.Grid, dtHours, validate.PerformanceTargets{}); err == nil {
		validation.Merge(perf)
	}

	summary.Severity = validation.Overall
	return summary
}
