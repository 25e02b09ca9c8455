package strategy

import (
	"fmt"
	"math"
)

// NightShiftParams moves daytime generation into an evening delivery window.
type NightShiftParams struct {
	ChargeStartHour    int
	ChargeEndHour      int
	DischargeStartHour int
	DischargeEndHour   int

	// ChargeFrac is the share of generation absorbed during the charge
	// window. Zero means the default.
	ChargeFrac float64
	// DischargeFrac is the discharge power as a fraction of rating.
	DischargeFrac float64
	// UsableCapFrac bounds the delivery target as a fraction of capacity.
	UsableCapFrac float64
}

type NightShiftStrategy struct {
	Params   NightShiftParams
	Tunables Tunables

	// targetMWh is the most energy that can usefully be delivered during the
	// discharge window, bounded by rating x duration and by usable capacity.
	targetMWh float64
}

func NewNightShiftStrategy(params NightShiftParams, tun Tunables, rating, capacity float64) (*NightShiftStrategy, error) {
	for _, h := range []int{params.ChargeStartHour, params.ChargeEndHour, params.DischargeStartHour, params.DischargeEndHour} {
		if h < 0 || h > 23 {
			return nil, fmt.Errorf("window hours must be in [0,23], got %d", h)
		}
	}
	if params.ChargeFrac == 0 {
		params.ChargeFrac = 0.8
	}
	if params.DischargeFrac == 0 {
		params.DischargeFrac = 0.6
	}
	if params.UsableCapFrac == 0 {
		params.UsableCapFrac = 0.85
	}

	dischargeHours := float64(hourWindowLen(params.DischargeStartHour, params.DischargeEndHour))
	target := math.Min(rating*dischargeHours, params.UsableCapFrac*capacity)

	return &NightShiftStrategy{Params: params, Tunables: tun, targetMWh: target}, nil
}

func (s *NightShiftStrategy) Name() string { return "nightshift" }

// TargetMWh reports the delivery target for the discharge window.
func (s *NightShiftStrategy) TargetMWh() float64 { return s.targetMWh }

func (s *NightShiftStrategy) Step(ctx Context) (Outcome, error) {
	gen := ctx.SolarMW
	eps := s.Tunables.ActionEpsilonMW
	h := hourOfDay(ctx.Index, ctx.DtHours)

	if inHourWindow(h, s.Params.ChargeStartHour, s.Params.ChargeEndHour) {
		// Stop charging once the battery already holds the target.
		if ctx.Battery.DeliverableMWh() >= s.targetMWh {
			return passThrough(ctx), nil
		}
		req := s.Params.ChargeFrac * gen
		if req <= eps {
			return passThrough(ctx), nil
		}
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

	if inHourWindow(h, s.Params.DischargeStartHour, s.Params.DischargeEndHour) {
		req := s.Params.DischargeFrac * ctx.Battery.Params.PowerRatingMW
		if req <= eps {
			return passThrough(ctx), nil
		}
		res, err := ctx.Battery.Step(req, ctx.DtHours)
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
