package model

// Action labels what the battery did during a step. The strings appear
// verbatim in ledger CSVs and API responses, so they must not change.
type Action string

const (
	ActionCharging    Action = "CHARGING"
	ActionDischarging Action = "DISCHARGING"
	ActionIdle        Action = "IDLE"
)

// ActionFromPowerMW classifies a dispatch power under the convention that
// negative means the battery is charging.
func ActionFromPowerMW(powerMW float64) Action {
	if powerMW < 0 {
		return ActionCharging
	}
	if powerMW > 0 {
		return ActionDischarging
	}
	return ActionIdle
}
