package strategy

import "feeder-dispatch/internal/model"

// Context is the per-step input handed to a strategy by the runner.
// PrevGridMW is the power exported in the previous step; for the first step
// it equals the first solar sample.
type Context struct {
	Index      int
	SolarMW    float64
	DtHours    float64
	PrevGridMW float64
	Battery    *model.Battery
}

// Outcome is what one step did with the generation sample.
// Units: GridMW/BatteryMW/CurtailedMW are MW for the step, LossMWh is energy.
// BatteryMW is signed: negative = charging, positive = discharging.
type Outcome struct {
	GridMW      float64
	BatteryMW   float64
	CurtailedMW float64
	LossMWh     float64
}

// Strategy decides, for each step in order, whether to pass generation
// through, charge the battery, or discharge it. A strategy is a pure function
// of its configuration, the battery state, and the step context; it calls
// Battery.Step at most once per sample.
type Strategy interface {
	Name() string
	Step(ctx Context) (Outcome, error)
}

// Tunables are the soft-tolerance constants shared by the strategies.
// They are policy defaults, not hard-coded law; configs may override them.
type Tunables struct {
	// ActionEpsilonMW: requests below this magnitude are treated as
	// "no meaningful action" and routed as pass-through.
	ActionEpsilonMW float64
	// CapOvershootFrac: cap-shaving exports up to cap*(1+frac) before
	// curtailing what the battery could not absorb.
	CapOvershootFrac float64
	// TrickleFrac: cap-shaving soft-discharge power as a fraction of rating.
	TrickleFrac float64
	// SoftDischargeMinSOC: SOC floor gating the cap-shaving trickle.
	SoftDischargeMinSOC float64
	// TopUpFrac: peak-shaving top-up power as a fraction of rating.
	TopUpFrac float64
	// TopUpMinSOC: SOC floor gating the peak-shaving top-up.
	TopUpMinSOC float64
}

func DefaultTunables() Tunables {
	return Tunables{
		ActionEpsilonMW:     0.1,
		CapOvershootFrac:    0.01,
		TrickleFrac:         0.2,
		SoftDischargeMinSOC: 0.30,
		TopUpFrac:           0.5,
		TopUpMinSOC:         0.20,
	}
}

// passThrough routes the sample straight to the feeder with no battery use.
func passThrough(ctx Context) Outcome {
	return Outcome{GridMW: ctx.SolarMW}
}

// inHourWindow checks whether hour h is in [start, end) on a 24h clock.
// If start == end, the window is empty (always false).
// If start > end, it wraps across midnight.
func inHourWindow(h, start, end int) bool {
	if start == end {
		return false
	}
	if start < end {
		return h >= start && h < end
	}
	// wrap
	return h >= start || h < end
}

// hourWindowLen is the duration of [start, end) in hours on a 24h clock.
func hourWindowLen(start, end int) int {
	if start == end {
		return 0
	}
	if start < end {
		return end - start
	}
	return 24 - start + end
}

// hourOfDay maps a step index to its clock hour, assuming the series starts
// at midnight.
func hourOfDay(index int, dtHours float64) int {
	return int(float64(index)*dtHours) % 24
}
