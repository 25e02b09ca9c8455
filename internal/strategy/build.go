package strategy

import (
	"fmt"
	"strings"

	"feeder-dispatch/internal/model"
)

// Build constructs a strategy by name from a loose params map (YAML/JSON
// config shape). Unknown names and malformed params fail fast; they are
// configuration errors, not domain findings.
func Build(name string, params map[string]any, tun Tunables, solarMW []float64, dtHours float64, batt *model.Battery) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "capshave":
		capMW := paramNum(params, "cap_mw", 0)
		if capMW <= 0 {
			return nil, fmt.Errorf("capshave: cap_mw must be > 0")
		}
		return NewCapShavingStrategy(CapShavingParams{
			CapMW:         capMW,
			SoftDischarge: paramBool(params, "soft_discharge", false),
		}, tun), nil

	case "flatday":
		return NewFlatDayStrategy(solarMW, dtHours, FlatDayParams{
			FlatMW:    paramNum(params, "flat_mw", 0),
			StartHour: int(paramNum(params, "start_hour", 8)),
			EndHour:   int(paramNum(params, "end_hour", 18)),
		}, tun)

	case "nightshift":
		return NewNightShiftStrategy(NightShiftParams{
			ChargeStartHour:    int(paramNum(params, "charge_start_hour", 9)),
			ChargeEndHour:      int(paramNum(params, "charge_end_hour", 16)),
			DischargeStartHour: int(paramNum(params, "discharge_start_hour", 19)),
			DischargeEndHour:   int(paramNum(params, "discharge_end_hour", 23)),
			ChargeFrac:         paramNum(params, "charge_frac", 0),
			DischargeFrac:      paramNum(params, "discharge_frac", 0),
			UsableCapFrac:      paramNum(params, "usable_cap_frac", 0),
		}, tun, batt.Params.PowerRatingMW, batt.Params.CapacityMWh)

	case "ramplimit":
		return NewRampLimitStrategy(RampLimitParams{
			MaxRampPerHourMW: paramNum(params, "max_ramp_per_hour_mw", 0),
		}, tun)

	case "peakshave":
		return NewPeakShavingStrategy(solarMW, PeakShavingParams{
			ThresholdMW: paramNum(params, "threshold_mw", 0),
		}, tun)

	default:
		return nil, fmt.Errorf("unsupported strategy: %q", name)
	}
}

// Names lists the strategies Build accepts.
func Names() []string {
	return []string{"capshave", "flatday", "nightshift", "ramplimit", "peakshave"}
}

func paramNum(m map[string]any, key string, def float64) float64 {
	if v, ok := m[key]; ok && v != nil {
		switch x := v.(type) {
		case float64:
			return x
		case float32:
			return float64(x)
		case int:
			return float64(x)
		case int64:
			return float64(x)
		}
	}
	return def
}

func paramBool(m map[string]any, key string, def bool) bool {
	if v, ok := m[key]; ok && v != nil {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return def
}
