package strategy

import "math"

// CapShavingParams limits exported power to a fixed cap by storing the excess.
type CapShavingParams struct {
	CapMW float64
	// SoftDischarge enables a low-generation trickle discharge that smooths
	// the exported profile and frees capacity for the next peak.
	SoftDischarge bool
}

type CapShavingStrategy struct {
	Params   CapShavingParams
	Tunables Tunables
}

func NewCapShavingStrategy(params CapShavingParams, tun Tunables) *CapShavingStrategy {
	return &CapShavingStrategy{Params: params, Tunables: tun}
}

func (s *CapShavingStrategy) Name() string { return "capshave" }

func (s *CapShavingStrategy) Step(ctx Context) (Outcome, error) {
	gen := ctx.SolarMW
	cap := s.Params.CapMW
	eps := s.Tunables.ActionEpsilonMW

	excess := gen - cap
	if excess > eps {
		res, err := ctx.Battery.Step(-excess, ctx.DtHours)
		if err != nil {
			return Outcome{}, err
		}
		absorbed := -res.ActualPowerMW
		leftover := excess - absorbed

		out := Outcome{
			BatteryMW: res.ActualPowerMW,
			LossMWh:   res.EnergyLossMWh,
		}
		// Small overshoot is exported rather than curtailed.
		if leftover <= cap*s.Tunables.CapOvershootFrac {
			out.GridMW = cap + leftover
		} else {
			out.GridMW = cap
			out.CurtailedMW = leftover
		}
		return out, nil
	}

	if s.Params.SoftDischarge && gen < cap/2 && ctx.Battery.State.SOC > s.Tunables.SoftDischargeMinSOC {
		trickle := math.Min(s.Tunables.TrickleFrac*ctx.Battery.Params.PowerRatingMW, cap-gen)
		if trickle > eps {
			res, err := ctx.Battery.Step(trickle, ctx.DtHours)
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
