package model

import (
	"errors"
	"math"
)

// BatteryParams defines the physical parameters of the storage device.
// Units:
// - CapacityMWh: usable energy capacity, MWh
// - PowerRatingMW: MW
// - RoundTripEfficiency: 0..1 (grid-to-grid)
// - SOC bounds: fractions of capacity, 0..1
type BatteryParams struct {
	CapacityMWh         float64
	PowerRatingMW       float64
	RoundTripEfficiency float64
	MinSOC              float64
	MaxSOC              float64
}

// ChargeEfficiency is the one-way charging efficiency. The round-trip number
// is split evenly across the charge and discharge legs.
func (p BatteryParams) ChargeEfficiency() float64 {
	return math.Sqrt(p.RoundTripEfficiency)
}

// DischargeEfficiency is the one-way discharging efficiency.
func (p BatteryParams) DischargeEfficiency() float64 {
	return math.Sqrt(p.RoundTripEfficiency)
}

// BatteryState captures mutable state.
type BatteryState struct {
	// SOC is the state of charge as a fraction [0,1].
	SOC float64
}

// Battery is a convenience wrapper bundling params + state.
// A Battery is exclusively owned by one simulation run; it is never shared
// across concurrent runs.
type Battery struct {
	Params BatteryParams
	State  BatteryState
}

// StepResult is produced once per call to Step.
// ActualPowerMW is signed: negative = charging, positive = discharging.
// It may differ from the requested power when the rating or SOC bounds bind;
// callers must treat it, not the request, as ground truth.
type StepResult struct {
	ActualPowerMW float64
	EnergyLossMWh float64
	SOC           float64
}

func NewBattery(params BatteryParams, initialSOC float64) (*Battery, error) {
	b := &Battery{
		Params: params,
		State:  BatteryState{SOC: initialSOC},
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *Battery) Validate() error {
	p := b.Params
	if p.CapacityMWh <= 0 {
		return errors.New("CapacityMWh must be > 0")
	}
	if p.PowerRatingMW <= 0 {
		return errors.New("PowerRatingMW must be > 0")
	}
	if p.RoundTripEfficiency <= 0 || p.RoundTripEfficiency > 1 {
		return errors.New("RoundTripEfficiency must be in (0, 1]")
	}
	if p.MinSOC < 0 || p.MinSOC > 1 || p.MaxSOC < 0 || p.MaxSOC > 1 || p.MinSOC > p.MaxSOC {
		return errors.New("MinSOC/MaxSOC must satisfy 0<=MinSOC<=MaxSOC<=1")
	}
	if b.State.SOC < p.MinSOC || b.State.SOC > p.MaxSOC {
		return errors.New("initial SOC must be within [MinSOC, MaxSOC]")
	}
	return nil
}

// clipPower enforces the power rating, without applying SOC constraints.
func (b *Battery) clipPower(requestedMW float64) float64 {
	if requestedMW > b.Params.PowerRatingMW {
		return b.Params.PowerRatingMW
	}
	if requestedMW < -b.Params.PowerRatingMW {
		return -b.Params.PowerRatingMW
	}
	return requestedMW
}

// Step applies a requested power setpoint for a single interval, enforcing:
// - power rating
// - SOC bounds (by clipping the requested power)
//
// Convention: negative MW = charge from the feeder, positive MW = discharge to
// the feeder. dtHours is the interval length in hours.
func (b *Battery) Step(requestedMW float64, dtHours float64) (StepResult, error) {
	if dtHours <= 0 {
		return StepResult{}, errors.New("dtHours must be > 0")
	}

	p := b.clipPower(requestedMW)
	res := StepResult{}

	// SOC constraints determine the max feasible charge/discharge for the interval.
	maxChargeMWhGrid := b.maxChargeEnergyFromGridMWh(dtHours)
	maxDischargeMWhGrid := b.maxDischargeEnergyToGridMWh(dtHours)

	if p < 0 {
		// Charging: power magnitude is MW absorbed grid-side.
		reqFromGridMWh := math.Abs(p) * dtHours
		if reqFromGridMWh > maxChargeMWhGrid {
			reqFromGridMWh = maxChargeMWhGrid
			p = -reqFromGridMWh / dtHours
		}
		// SOC increases by stored energy = fromGrid * chargeEff.
		storedMWh := reqFromGridMWh * b.Params.ChargeEfficiency()
		b.State.SOC = clamp01((b.State.SOC*b.Params.CapacityMWh + storedMWh) / b.Params.CapacityMWh)

		res.ActualPowerMW = p
		res.EnergyLossMWh = reqFromGridMWh - storedMWh
	} else if p > 0 {
		// Discharging: power is MW delivered grid-side.
		reqToGridMWh := p * dtHours
		if reqToGridMWh > maxDischargeMWhGrid {
			reqToGridMWh = maxDischargeMWhGrid
			p = reqToGridMWh / dtHours
		}
		// SOC decreases by withdrawn energy = toGrid / dischargeEff.
		withdrawnMWh := reqToGridMWh / b.Params.DischargeEfficiency()
		b.State.SOC = clamp01((b.State.SOC*b.Params.CapacityMWh - withdrawnMWh) / b.Params.CapacityMWh)

		res.ActualPowerMW = p
		res.EnergyLossMWh = withdrawnMWh - reqToGridMWh
	}

	res.SOC = b.State.SOC
	return res, nil
}

// StoredMWh is the energy currently held above the discharge floor.
func (b *Battery) StoredMWh() float64 {
	return math.Max(0, (b.State.SOC-b.Params.MinSOC)*b.Params.CapacityMWh)
}

// DeliverableMWh is the grid-side energy the battery could still deliver
// before hitting MinSOC, ignoring the power rating.
func (b *Battery) DeliverableMWh() float64 {
	return b.StoredMWh() * b.Params.DischargeEfficiency()
}

// HeadroomMWh is the grid-side energy the battery could still absorb before
// hitting MaxSOC, ignoring the power rating.
func (b *Battery) HeadroomMWh() float64 {
	storable := math.Max(0, (b.Params.MaxSOC-b.State.SOC)*b.Params.CapacityMWh)
	return storable / b.Params.ChargeEfficiency()
}

func (b *Battery) maxChargeEnergyFromGridMWh(dtHours float64) float64 {
	// Max additional stored energy before hitting MaxSOC.
	storableMWh := (b.Params.MaxSOC - b.State.SOC) * b.Params.CapacityMWh
	if storableMWh <= 0 {
		return 0
	}
	// Grid energy required = stored / eff.
	limitBySOC := storableMWh / b.Params.ChargeEfficiency()
	limitByPower := b.Params.PowerRatingMW * dtHours
	return math.Max(0, math.Min(limitBySOC, limitByPower))
}

func (b *Battery) maxDischargeEnergyToGridMWh(dtHours float64) float64 {
	// Max withdrawable stored energy before hitting MinSOC.
	withdrawableMWh := (b.State.SOC - b.Params.MinSOC) * b.Params.CapacityMWh
	if withdrawableMWh <= 0 {
		return 0
	}
	// Grid energy delivered = withdrawn * eff.
	limitBySOC := withdrawableMWh * b.Params.DischargeEfficiency()
	limitByPower := b.Params.PowerRatingMW * dtHours
	return math.Max(0, math.Min(limitBySOC, limitByPower))
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
