package models

// SimulateRequest represents the request body for running a dispatch simulation
type SimulateRequest struct {
	Profile ProfileInput    `json:"profile" binding:"required"`
	Config  SimConfig       `json:"config" binding:"required"`
	Options SimulateOptions `json:"options,omitempty"`
}

// ProfileInput defines where the solar series comes from. Either the
// samples are supplied inline, or a station id plus date range is given
// and the series is fetched from the profile service.
type ProfileInput struct {
	Source    string    `json:"source" binding:"required"` // "inline" or "station"
	DtHours   float64   `json:"dt_hours,omitempty"`        // default 1.0
	SamplesMW []float64 `json:"samples_mw,omitempty"`      // for source=inline
	APIKey    string    `json:"api_key,omitempty"`         // for source=station
	StationID string    `json:"station_id,omitempty"`
	StartDate string    `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate   string    `json:"end_date,omitempty"`
}

// SimConfig contains battery and strategy configuration
type SimConfig struct {
	BatteryFile string         `json:"battery_file,omitempty"`
	Battery     BatteryConfig  `json:"battery,omitempty"`
	Strategy    StrategyConfig `json:"strategy" binding:"required"`
}

// BatteryConfig defines battery parameters
type BatteryConfig struct {
	Name                string  `json:"name,omitempty"`
	CapacityMWh         float64 `json:"capacity_mwh"`
	PowerRatingMW       float64 `json:"power_rating_mw"`
	RoundTripEfficiency float64 `json:"round_trip_efficiency"`
	MinSOC              float64 `json:"min_soc"`
	MaxSOC              float64 `json:"max_soc"`
	InitialSOC          float64 `json:"initial_soc,omitempty"`
}

// StrategyConfig defines strategy and its parameters
type StrategyConfig struct {
	Name   string                 `json:"name" binding:"required"`
	Params map[string]interface{} `json:"params,omitempty"`
}

// SimulateOptions contains optional simulation parameters
type SimulateOptions struct {
	LimitSamples  int  `json:"limit_samples,omitempty"`  // 0 = all
	IncludeLedger bool `json:"include_ledger,omitempty"` // default: false
	IncludeSeries bool `json:"include_series,omitempty"` // default: false
}

// CompareRequest represents a request to compare multiple configurations
// against the same solar series
type CompareRequest struct {
	Profile    ProfileInput   `json:"profile" binding:"required"`
	BaseConfig SimConfig      `json:"base_config" binding:"required"`
	Variations []SimVariation `json:"variations" binding:"required"`
}

// SimVariation defines a variation to test
type SimVariation struct {
	Name   string    `json:"name" binding:"required"`
	Config SimConfig `json:"config" binding:"required"`
}

// SweepRequest is the first websocket message sent by a sweep client.
// Each variation is run against the shared profile and progress is
// streamed back as runs complete.
type SweepRequest struct {
	Profile    ProfileInput   `json:"profile"`
	BaseConfig SimConfig      `json:"base_config"`
	Variations []SimVariation `json:"variations"`
	Workers    int            `json:"workers,omitempty"`
}
