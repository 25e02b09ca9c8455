package strategy

import (
	"fmt"
	"math"
	"sort"

	"feeder-dispatch/internal/analysis"
)

// PeakShavingParams stores generation above a threshold and tops up lulls.
// A zero threshold means "derive it from the series": the 80th percentile of
// positive samples.
type PeakShavingParams struct {
	ThresholdMW float64
}

type PeakShavingStrategy struct {
	Params   PeakShavingParams
	Tunables Tunables

	thresholdMW float64
}

func NewPeakShavingStrategy(solarMW []float64, params PeakShavingParams, tun Tunables) (*PeakShavingStrategy, error) {
	thr := params.ThresholdMW
	if thr < 0 {
		return nil, fmt.Errorf("threshold_mw must be >= 0, got %v", thr)
	}
	if thr == 0 {
		positive := make([]float64, 0, len(solarMW))
		for _, v := range solarMW {
			if v > 0 {
				positive = append(positive, v)
			}
		}
		if len(positive) == 0 {
			return nil, fmt.Errorf("cannot derive threshold: series has no positive samples")
		}
		sort.Float64s(positive)
		thr = analysis.PercentileSorted(positive, 0.80)
	}
	return &PeakShavingStrategy{Params: params, Tunables: tun, thresholdMW: thr}, nil
}

func (s *PeakShavingStrategy) Name() string { return "peakshave" }

// ThresholdMW reports the effective threshold, derived or configured.
func (s *PeakShavingStrategy) ThresholdMW() float64 { return s.thresholdMW }

func (s *PeakShavingStrategy) Step(ctx Context) (Outcome, error) {
	gen := ctx.SolarMW
	thr := s.thresholdMW
	eps := s.Tunables.ActionEpsilonMW

	excess := gen - thr
	if excess > eps {
		res, err := ctx.Battery.Step(-excess, ctx.DtHours)
		if err != nil {
			return Outcome{}, err
		}
		// Whatever the battery could not absorb is still exported; a missed
		// peak shows up in the performance check, not as curtailment.
		return Outcome{
			GridMW:    gen + res.ActualPowerMW,
			BatteryMW: res.ActualPowerMW,
			LossMWh:   res.EnergyLossMWh,
		}, nil
	}

	if gen < 0.3*thr && ctx.Battery.State.SOC > s.Tunables.TopUpMinSOC {
		topUp := math.Min(s.Tunables.TopUpFrac*ctx.Battery.Params.PowerRatingMW, 0.3*thr-gen)
		if topUp > eps {
			res, err := ctx.Battery.Step(topUp, ctx.DtHours)
			if err != nil {
				return Outcome{}, err
			}
			return Outcome{
				GridMW:    gen + res.ActualPowerMW,
				BatteryMW: res.ActualPowerMW,
				LossMWh:   res.EnergyLossMWh,
			}, nil
		}
	}

	return passThrough(ctx), nil
}
