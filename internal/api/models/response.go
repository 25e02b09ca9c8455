package models

// SimulateResponse represents the response from a simulation run
type SimulateResponse struct {
	Status     string            `json:"status"`
	Summary    SimSummary        `json:"summary"`
	Validation ValidationReport  `json:"validation"`
	Series     *SeriesPayload    `json:"series,omitempty"`
	Ledger     []LedgerRow       `json:"ledger,omitempty"`
}

// SimSummary contains aggregated simulation results
type SimSummary struct {
	Strategy          string  `json:"strategy"`
	Samples           int     `json:"samples"`
	DtHours           float64 `json:"dt_hours"`
	SolarEnergyMWh    float64 `json:"solar_energy_mwh"`
	ExportedEnergyMWh float64 `json:"exported_energy_mwh"`
	CurtailedMWh      float64 `json:"curtailed_mwh"`
	LossMWh           float64 `json:"loss_mwh"`
	InitialSOC        float64 `json:"initial_soc"`
	FinalSOC          float64 `json:"final_soc"`

	PeakReductionPct        float64 `json:"peak_reduction_pct"`
	EnergyShiftedMWh        float64 `json:"energy_shifted_mwh"`
	VariabilityReductionPct float64 `json:"variability_reduction_pct"`
}

// SeriesPayload carries the parallel per-step output series
type SeriesPayload struct {
	SolarMW     []float64 `json:"solar_mw"`
	GridMW      []float64 `json:"grid_mw"`
	BatteryMW   []float64 `json:"battery_mw"`
	CurtailedMW []float64 `json:"curtailed_mw"`
	LossesMW    []float64 `json:"losses_mw"`
	SOC         []float64 `json:"soc"`
}

// ValidationReport is the JSON form of a validation run
type ValidationReport struct {
	Overall string             `json:"overall"`
	Records []ValidationRecord `json:"records"`
	Flows   EnergyFlows        `json:"flows"`
}

// ValidationRecord is one checked property
type ValidationRecord struct {
	Severity   string  `json:"severity"`
	Check      string  `json:"check"`
	Message    string  `json:"message"`
	Measured   float64 `json:"measured"`
	Threshold  float64 `json:"threshold"`
	Suggestion string  `json:"suggestion,omitempty"`
}

// EnergyFlows are the derived energy quantities the balance checks compare
type EnergyFlows struct {
	SolarEnergyMWh       float64 `json:"solar_energy_mwh"`
	BessEnergyMWh        float64 `json:"bess_energy_mwh"`
	ExportedEnergyMWh    float64 `json:"exported_energy_mwh"`
	TheoreticalEnergyMWh float64 `json:"theoretical_energy_mwh"`
	ChargeEnergyMWh      float64 `json:"charge_energy_mwh"`
	DischargeEnergyMWh   float64 `json:"discharge_energy_mwh"`
	TotalLossMWh         float64 `json:"total_loss_mwh"`
	CurtailedEnergyMWh   float64 `json:"curtailed_energy_mwh"`
	StoredDeltaMWh       float64 `json:"stored_delta_mwh"`
	LossPct              float64 `json:"loss_pct"`
	BESSEfficiencyPct    float64 `json:"bess_efficiency_pct"`
}

// LedgerRow represents one step in the simulation ledger
type LedgerRow struct {
	Index           int     `json:"index"`
	SolarMW         float64 `json:"solar_mw"`
	GridMW          float64 `json:"grid_mw"`
	BatteryMW       float64 `json:"battery_mw"`
	CurtailedMW     float64 `json:"curtailed_mw"`
	LossMWh         float64 `json:"loss_mwh"`
	Action          string  `json:"action"` // "CHARGING", "DISCHARGING", "IDLE"
	SOCStart        float64 `json:"soc_start"`
	SOCEnd          float64 `json:"soc_end"`
	CumCurtailedMWh float64 `json:"cum_curtailed_mwh"`
	CumLossMWh      float64 `json:"cum_loss_mwh"`
}

// CompareResponse represents the response from a comparison
type CompareResponse struct {
	Comparison []ComparisonResult `json:"comparison"`
}

// ComparisonResult contains results for one variation
type ComparisonResult struct {
	Name       string           `json:"name"`
	Summary    SimSummary       `json:"summary"`
	Validation ValidationReport `json:"validation"`
}

// SweepProgress is one streamed websocket frame
type SweepProgress struct {
	Type    string       `json:"type"` // "progress", "done", "error"
	Done    int          `json:"done,omitempty"`
	Total   int          `json:"total,omitempty"`
	Result  *SweepResult `json:"result,omitempty"`
	Ranked  []SweepResult `json:"ranked,omitempty"`
	Message string       `json:"message,omitempty"`
}

// SweepResult is the per-configuration outcome of a sweep run
type SweepResult struct {
	Name                    string  `json:"name"`
	Strategy                string  `json:"strategy"`
	Error                   string  `json:"error,omitempty"`
	Severity                string  `json:"severity"`
	SolarEnergyMWh          float64 `json:"solar_energy_mwh"`
	ExportedEnergyMWh       float64 `json:"exported_energy_mwh"`
	CurtailedMWh            float64 `json:"curtailed_mwh"`
	LossMWh                 float64 `json:"loss_mwh"`
	FinalSOC                float64 `json:"final_soc"`
	PeakReductionPct        float64 `json:"peak_reduction_pct"`
	EnergyShiftedMWh        float64 `json:"energy_shifted_mwh"`
	VariabilityReductionPct float64 `json:"variability_reduction_pct"`
}

// BatteryInfo represents information about a battery preset
type BatteryInfo struct {
	ID    string       `json:"id"`
	Name  string       `json:"name"`
	File  string       `json:"file"`
	Specs BatterySpecs `json:"specs"`
}

// BatterySpecs contains battery specifications
type BatterySpecs struct {
	CapacityMWh   float64 `json:"capacity_mwh"`
	PowerRatingMW float64 `json:"power_rating_mw"`
}

// StrategyInfo represents information about a strategy
type StrategyInfo struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Parameters  []ParameterInfo `json:"parameters"`
}

// ParameterInfo describes a strategy parameter
type ParameterInfo struct {
	Name        string      `json:"name"`
	Type        string      `json:"type"` // "float", "int", "bool"
	Description string      `json:"description"`
	Default     interface{} `json:"default,omitempty"`
}

// StationInfo represents information about a solar station
type StationInfo struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	FeederCapMW float64 `json:"feeder_cap_mw"`
	PeakMW      float64 `json:"peak_mw"`
	Timezone    string  `json:"timezone"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
