package strategy

import "fmt"

// RampLimitParams bounds the step-to-step change of exported power.
type RampLimitParams struct {
	MaxRampPerHourMW float64
}

type RampLimitStrategy struct {
	Params   RampLimitParams
	Tunables Tunables
}

func NewRampLimitStrategy(params RampLimitParams, tun Tunables) (*RampLimitStrategy, error) {
	if params.MaxRampPerHourMW <= 0 {
		return nil, fmt.Errorf("max_ramp_per_hour_mw must be > 0, got %v", params.MaxRampPerHourMW)
	}
	return &RampLimitStrategy{Params: params, Tunables: tun}, nil
}

func (s *RampLimitStrategy) Name() string { return "ramplimit" }

func (s *RampLimitStrategy) Step(ctx Context) (Outcome, error) {
	if ctx.Index == 0 {
		// No previous export to ramp from.
		return passThrough(ctx), nil
	}

	gen := ctx.SolarMW
	eps := s.Tunables.ActionEpsilonMW
	allowed := s.Params.MaxRampPerHourMW * ctx.DtHours
	delta := gen - ctx.PrevGridMW

	if delta > allowed+eps {
		// Up-ramp violation: absorb down to the allowed ceiling, curtail the
		// rest.
		target := ctx.PrevGridMW + allowed
		res, err := ctx.Battery.Step(-(gen - target), ctx.DtHours)
		if err != nil {
			return Outcome{}, err
		}
		out := Outcome{
			BatteryMW: res.ActualPowerMW,
			LossMWh:   res.EnergyLossMWh,
		}
		grid := gen + res.ActualPowerMW
		if grid > target {
			out.CurtailedMW = grid - target
			grid = target
		}
		out.GridMW = grid
		return out, nil
	}

	if delta < -(allowed + eps) {
		// Down-ramp violation: supplement up toward the allowed floor. If the
		// battery saturates, the violation is accepted.
		target := ctx.PrevGridMW - allowed
		res, err := ctx.Battery.Step(target-gen, ctx.DtHours)
		if err != nil {
			return Outcome{}, err
		}
		return Outcome{
			GridMW:    gen + res.ActualPowerMW,
			BatteryMW: res.ActualPowerMW,
			LossMWh:   res.EnergyLossMWh,
		}, nil
	}

	return passThrough(ctx), nil
}
