package handlers

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"feeder-dispatch/internal/analysis"
	"feeder-dispatch/internal/api/models"
	"feeder-dispatch/internal/config"
	"feeder-dispatch/internal/data"
	"feeder-dispatch/internal/model"
	"feeder-dispatch/internal/sim"
	"feeder-dispatch/internal/strategy"
	"feeder-dispatch/internal/validate"

	"github.com/gin-gonic/gin"
)

// SimulateHandler handles dispatch simulation requests
type SimulateHandler struct{}

// NewSimulateHandler creates a new simulate handler
func NewSimulateHandler() *SimulateHandler {
	return &SimulateHandler{}
}

// RunSimulation handles POST /api/v1/simulate
func (h *SimulateHandler) RunSimulation(c *gin.Context) {
	var req models.SimulateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: err.Error(),
			},
		})
		return
	}

	solarMW, dtHours, err := resolveProfile(req.Profile)
	if err != nil {
		writeProfileError(c, err)
		return
	}

	if req.Options.LimitSamples > 0 && req.Options.LimitSamples < len(solarMW) {
		solarMW = solarMW[:req.Options.LimitSamples]
	}

	cfg, err := buildConfig(req.Config)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_CONFIG",
				Message: err.Error(),
			},
		})
		return
	}

	result, validation, err := runConfigured(solarMW, dtHours, cfg)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "SIMULATION_ERROR",
				Message: err.Error(),
			},
		})
		return
	}

	response := models.SimulateResponse{
		Status:     "completed",
		Summary:    buildSummary(cfg.Strategy.Name, result),
		Validation: convertValidation(validation),
	}
	if req.Options.IncludeSeries {
		response.Series = &models.SeriesPayload{
			SolarMW:     solarMW,
			GridMW:      result.Grid,
			BatteryMW:   result.Battery,
			CurtailedMW: result.Curtailed,
			LossesMW:    result.Losses,
			SOC:         result.SOC,
		}
	}
	if req.Options.IncludeLedger {
		response.Ledger = convertLedger(result.Ledger)
	}
	c.JSON(http.StatusOK, response)
}

// Compare handles POST /api/v1/simulate/compare
func (h *SimulateHandler) Compare(c *gin.Context) {
	var req models.CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: err.Error(),
			},
		})
		return
	}

	solarMW, dtHours, err := resolveProfile(req.Profile)
	if err != nil {
		writeProfileError(c, err)
		return
	}

	comparison := make([]models.ComparisonResult, 0, len(req.Variations))
	for _, variation := range req.Variations {
		merged := mergeConfig(req.BaseConfig, variation.Config)

		cfg, err := buildConfig(merged)
		if err != nil {
			log.Printf("SimulateHandler: skipping variation %q: %v", variation.Name, err)
			continue
		}
		result, validation, err := runConfigured(solarMW, dtHours, cfg)
		if err != nil {
			log.Printf("SimulateHandler: variation %q failed: %v", variation.Name, err)
			continue
		}
		comparison = append(comparison, models.ComparisonResult{
			Name:       variation.Name,
			Summary:    buildSummary(cfg.Strategy.Name, result),
			Validation: convertValidation(validation),
		})
	}

	c.JSON(http.StatusOK, models.CompareResponse{Comparison: comparison})
}

// Helper functions shared with the sweep handler

// resolveProfile turns a profile input into a solar series.
func resolveProfile(p models.ProfileInput) ([]float64, float64, error) {
	dtHours := p.DtHours
	if dtHours == 0 {
		dtHours = 1.0
	}

	switch p.Source {
	case "inline":
		if len(p.SamplesMW) == 0 {
			return nil, 0, fmt.Errorf("samples_mw is required for inline profiles")
		}
		profile := model.SolarProfile{DtHours: dtHours, SamplesMW: p.SamplesMW}
		if err := profile.Validate(); err != nil {
			return nil, 0, err
		}
		return p.SamplesMW, dtHours, nil

	case "station":
		start, err := time.Parse("2006-01-02", p.StartDate)
		if err != nil {
			return nil, 0, fmt.Errorf("invalid start_date: %w", err)
		}
		end, err := time.Parse("2006-01-02", p.EndDate)
		if err != nil {
			return nil, 0, fmt.Errorf("invalid end_date: %w", err)
		}
		client := data.NewProfileClient(p.APIKey, os.Getenv("PROFILE_BASE_URL"))
		profile, err := client.QueryStation(data.QueryProfileParams{
			StationID: p.StationID,
			StartTime: start,
			EndTime:   end,
			DtHours:   p.DtHours,
		})
		if err != nil {
			return nil, 0, err
		}
		return profile.SamplesMW, profile.DtHours, nil

	default:
		return nil, 0, fmt.Errorf("unsupported profile source: %q", p.Source)
	}
}

func writeProfileError(c *gin.Context, err error) {
	if pErr, ok := err.(*data.ProfileError); ok {
		statusCode := http.StatusBadRequest
		if pErr.StatusCode == http.StatusForbidden || pErr.StatusCode == http.StatusUnauthorized {
			statusCode = http.StatusUnauthorized
		} else if pErr.StatusCode == http.StatusTooManyRequests {
			statusCode = http.StatusTooManyRequests
		}
		c.JSON(statusCode, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    pErr.Code,
				Message: pErr.Message,
				Details: map[string]interface{}{
					"status_code": pErr.StatusCode,
					"retry_after": pErr.RetryAfter,
				},
			},
		})
		return
	}
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    "PROFILE_ERROR",
			Message: err.Error(),
		},
	})
}

// buildConfig converts the request config to the internal config shape,
// loading and merging a battery preset file when one is named.
func buildConfig(req models.SimConfig) (*config.Config, error) {
	cfg := &config.Config{
		BatteryFile: req.BatteryFile,
		Battery: config.BatteryConfig{
			Name:                req.Battery.Name,
			CapacityMWh:         req.Battery.CapacityMWh,
			PowerRatingMW:       req.Battery.PowerRatingMW,
			RoundTripEfficiency: req.Battery.RoundTripEfficiency,
			MinSOC:              req.Battery.MinSOC,
			MaxSOC:              req.Battery.MaxSOC,
			InitialSOC:          req.Battery.InitialSOC,
		},
		Strategy: config.StrategyConfig{
			Name:   req.Strategy.Name,
			Params: req.Strategy.Params,
		},
	}

	if cfg.BatteryFile != "" {
		// battery_file is just the preset name; files live in examples/batteries/
		batteryPath := filepath.Join(batteryDir(), cfg.BatteryFile+".yaml")
		loaded, err := config.LoadUnchecked(batteryPath)
		if err == nil {
			cfg.Battery = config.MergeBattery(loaded.Battery, cfg.Battery)
		} else {
			log.Printf("SimulateHandler: failed to load battery file %s: %v", batteryPath, err)
		}
	}

	if cfg.Battery.InitialSOC == 0 {
		cfg.Battery.InitialSOC = cfg.Battery.MinSOC
	}
	return cfg, nil
}

func batteryDir() string {
	dir := os.Getenv("BATTERY_DIR")
	if dir == "" {
		wd, err := os.Getwd()
		if err == nil {
			dir = filepath.Join(wd, "examples", "batteries")
		} else {
			dir = "./examples/batteries"
		}
	}
	return dir
}

func mergeConfig(base, override models.SimConfig) models.SimConfig {
	merged := base
	if override.BatteryFile != "" {
		merged.BatteryFile = override.BatteryFile
	}
	if override.Battery.Name != "" {
		merged.Battery.Name = override.Battery.Name
	}
	if override.Battery.CapacityMWh != 0 {
		merged.Battery.CapacityMWh = override.Battery.CapacityMWh
	}
	if override.Battery.PowerRatingMW != 0 {
		merged.Battery.PowerRatingMW = override.Battery.PowerRatingMW
	}
	if override.Battery.RoundTripEfficiency != 0 {
		merged.Battery.RoundTripEfficiency = override.Battery.RoundTripEfficiency
	}
	if override.Battery.MinSOC != 0 {
		merged.Battery.MinSOC = override.Battery.MinSOC
	}
	if override.Battery.MaxSOC != 0 {
		merged.Battery.MaxSOC = override.Battery.MaxSOC
	}
	if override.Battery.InitialSOC != 0 {
		merged.Battery.InitialSOC = override.Battery.InitialSOC
	}
	if override.Strategy.Name != "" {
		merged.Strategy = override.Strategy
	}
	return merged
}

// runConfigured builds the battery and strategy, runs the simulation and
// validates the output.
func runConfigured(solarMW []float64, dtHours float64, cfg *config.Config) (*sim.Result, *validate.Validation, error) {
	batt, err := model.NewBattery(cfg.Battery.ToModelParams(), cfg.Battery.InitialSOC)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid battery: %w", err)
	}

	strat, err := strategy.Build(cfg.Strategy.Name, cfg.Strategy.Params, cfg.Tunables.ToTunables(), solarMW, dtHours, batt)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid strategy: %w", err)
	}

	result, err := sim.New().Run(solarMW, dtHours, batt, strat)
	if err != nil {
		return nil, nil, err
	}

	th := cfg.Validation.ToThresholds()
	validation, err := validate.EnergyBalance(validate.BalanceInput{
		SolarMW:     solarMW,
		BatteryMW:   result.Battery,
		LossesMW:    result.Losses,
		DtHours:     dtHours,
		CurtailedMW: result.Curtailed,
		SOC:         result.SOC,
		CapacityMWh: cfg.Battery.CapacityMWh,
	}, th)
	if err != nil {
		return nil, nil, err
	}
	if socV, err := validate.CheckSOCBounds(result.SOC, th); err == nil {
		validation.Merge(socV)
	}
	if perfV, err := validate.CheckStrategyPerformance(cfg.Strategy.Name, solarMW, result.Grid, dtHours, validate.PerformanceTargets{}); err == nil {
		validation.Merge(perfV)
	}
	return result, validation, nil
}

func buildSummary(strategyName string, result *sim.Result) models.SimSummary {
	solar := solarOf(result)
	return models.SimSummary{
		Strategy:          strategyName,
		Samples:           len(result.Grid),
		DtHours:           result.DtHours,
		SolarEnergyMWh:    result.SolarEnergyMWh,
		ExportedEnergyMWh: result.ExportedEnergyMWh,
		CurtailedMWh:      result.CurtailedMWh,
		LossMWh:           result.LossMWh,
		InitialSOC:        result.InitialSOC,
		FinalSOC:          result.FinalSOC,

		PeakReductionPct:        analysis.PeakReductionPct(solar, result.Grid),
		EnergyShiftedMWh:        analysis.EnergyShiftedMWh(solar, result.Grid, result.DtHours),
		VariabilityReductionPct: analysis.VariabilityReductionPct(solar, result.Grid),
	}
}

func solarOf(result *sim.Result) []float64 {
	solar := make([]float64, len(result.Ledger))
	for i, row := range result.Ledger {
		solar[i] = row.SolarMW
	}
	return solar
}

func convertValidation(v *validate.Validation) models.ValidationReport {
	records := make([]models.ValidationRecord, len(v.Records))
	for i, r := range v.Records {
		records[i] = models.ValidationRecord{
			Severity:   r.Severity.String(),
			Check:      r.Check,
			Message:    r.Message,
			Measured:   r.Measured,
			Threshold:  r.Threshold,
			Suggestion: r.Suggestion,
		}
	}
	return models.ValidationReport{
		Overall: v.Overall.String(),
		Records: records,
		Flows: models.EnergyFlows{
			SolarEnergyMWh:       v.Flows.SolarEnergyMWh,
			BessEnergyMWh:        v.Flows.BessEnergyMWh,
			ExportedEnergyMWh:    v.Flows.ExportedEnergyMWh,
			TheoreticalEnergyMWh: v.Flows.TheoreticalEnergyMWh,
			ChargeEnergyMWh:      v.Flows.ChargeEnergyMWh,
			DischargeEnergyMWh:   v.Flows.DischargeEnergyMWh,
			TotalLossMWh:         v.Flows.TotalLossMWh,
			CurtailedEnergyMWh:   v.Flows.CurtailedEnergyMWh,
			StoredDeltaMWh:       v.Flows.StoredDeltaMWh,
			LossPct:              v.Flows.LossPct,
			BESSEfficiencyPct:    v.Flows.BESSEfficiencyPct,
		},
	}
}

func convertLedger(ledger []sim.LedgerRow) []models.LedgerRow {
	result := make([]models.LedgerRow, len(ledger))
	for i, row := range ledger {
		result[i] = models.LedgerRow{
			Index:           row.Index,
			SolarMW:         row.SolarMW,
			GridMW:          row.GridMW,
			BatteryMW:       row.BatteryMW,
			CurtailedMW:     row.CurtailedMW,
			LossMWh:         row.LossMWh,
			Action:          string(row.Action),
			SOCStart:        row.SOCStart,
			SOCEnd:          row.SOCEnd,
			CumCurtailedMWh: row.CumCurtailedMWh,
			CumLossMWh:      row.CumLossMWh,
		}
	}
	return result
}
