package strategy

import (
	"fmt"
	"math"
)

// FlatDayParams targets a flat exported power over a daily hour window,
// charging surpluses and discharging to fill gaps so the feeder sees a
// constant block of power.
type FlatDayParams struct {
	FlatMW    float64
	StartHour int
	EndHour   int
}

// FlatDayStrategy precomputes, from the full series, the energy the battery
// must deliver inside the window; outside the window it charges
// opportunistically only until the battery holds enough to cover that deficit.
// The remaining need is derived from the battery's SOC at each step, so the
// strategy itself carries no mutable state.
type FlatDayStrategy struct {
	Params   FlatDayParams
	Tunables Tunables

	deficitMWh float64
}

func NewFlatDayStrategy(solarMW []float64, dtHours float64, params FlatDayParams, tun Tunables) (*FlatDayStrategy, error) {
	if params.FlatMW <= 0 {
		return nil, fmt.Errorf("flat_mw must be > 0, got %v", params.FlatMW)
	}
	if params.StartHour < 0 || params.StartHour > 23 || params.EndHour < 0 || params.EndHour > 23 {
		return nil, fmt.Errorf("window hours must be in [0,23], got %d..%d", params.StartHour, params.EndHour)
	}
	if dtHours <= 0 {
		return nil, fmt.Errorf("dtHours must be > 0")
	}

	// Sum of positive gaps between the target and the available generation
	// inside the window: the energy the battery has to supply.
	deficit := 0.0
	for i, gen := range solarMW {
		if !inHourWindow(hourOfDay(i, dtHours), params.StartHour, params.EndHour) {
			continue
		}
		if gap := params.FlatMW - gen; gap > 0 {
			deficit += gap * dtHours
		}
	}

	return &FlatDayStrategy{Params: params, Tunables: tun, deficitMWh: deficit}, nil
}

func (s *FlatDayStrategy) Name() string { return "flatday" }

// DeficitMWh reports the precomputed window energy deficit.
func (s *FlatDayStrategy) DeficitMWh() float64 { return s.deficitMWh }

func (s *FlatDayStrategy) Step(ctx Context) (Outcome, error) {
	gen := ctx.SolarMW
	flat := s.Params.FlatMW
	eps := s.Tunables.ActionEpsilonMW

	if inHourWindow(hourOfDay(ctx.Index, ctx.DtHours), s.Params.StartHour, s.Params.EndHour) {
		if gen >= flat {
			excess := gen - flat
			if excess <= eps {
				return passThrough(ctx), nil
			}
			res, err := ctx.Battery.Step(-excess, ctx.DtHours)
			if err != nil {
				return Outcome{}, err
			}
			absorbed := -res.ActualPowerMW
			// Export exactly the target; curtail anything the battery
			// could not take.
			return Outcome{
				GridMW:      flat,
				BatteryMW:   res.ActualPowerMW,
				CurtailedMW: excess - absorbed,
				LossMWh:     res.EnergyLossMWh,
			}, nil
		}

		gap := flat - gen
		if gap <= eps {
			return passThrough(ctx), nil
		}
		// Decide before touching the battery: a Step call moves SOC, so a
		// result we would not account for must never be requested.
		if ctx.Battery.DeliverableMWh()/ctx.DtHours <= eps {
			return passThrough(ctx), nil
		}
		res, err := ctx.Battery.Step(gap, ctx.DtHours)
		if err != nil {
			return Outcome{}, err
		}
		return Outcome{
			GridMW:    gen + res.ActualPowerMW,
			BatteryMW: res.ActualPowerMW,
			LossMWh:   res.EnergyLossMWh,
		}, nil
	}

	// Outside the window: charge only what is still needed to cover the
	// known deficit.
	needMWh := s.deficitMWh - ctx.Battery.DeliverableMWh()
	if gen > eps && needMWh > 0 {
		// Delivering one grid-side MWh later costs 1/roundtrip MWh absorbed now.
		needMW := needMWh / (ctx.Battery.Params.RoundTripEfficiency * ctx.DtHours)
		req := math.Min(gen, needMW)
		if req > eps {
			res, err := ctx.Battery.Step(-req, ctx.DtHours)
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
