package handlers

import (
	"net/http"

	"feeder-dispatch/internal/api/models"

	"github.com/gin-gonic/gin"
)

// StrategyHandler handles strategy metadata requests
type StrategyHandler struct{}

// NewStrategyHandler creates a new strategy handler
func NewStrategyHandler() *StrategyHandler {
	return &StrategyHandler{}
}

// ListStrategies handles GET /api/v1/strategies
func (h *StrategyHandler) ListStrategies(c *gin.Context) {
	strategies := []models.StrategyInfo{
		{
			Name:        "capshave",
			Description: "Limits grid export to a feeder cap. Charges with excess generation, curtails what the battery cannot absorb.",
			Parameters: []models.ParameterInfo{
				{
					Name:        "cap_mw",
					Type:        "float",
					Description: "Feeder export cap in MW",
				},
				{
					Name:        "soft_discharge",
					Type:        "bool",
					Description: "Trickle energy back to the grid during low-generation hours",
					Default:     false,
				},
			},
		},
		{
			Name:        "flatday",
			Description: "Exports a constant level inside a daily window, charging excess and filling gaps from the battery.",
			Parameters: []models.ParameterInfo{
				{
					Name:        "flat_mw",
					Type:        "float",
					Description: "Target export level in MW during the window",
				},
				{
					Name:        "start_hour",
					Type:        "int",
					Description: "Window start hour of day",
					Default:     8,
				},
				{
					Name:        "end_hour",
					Type:        "int",
					Description: "Window end hour of day (exclusive)",
					Default:     18,
				},
			},
		},
		{
			Name:        "nightshift",
			Description: "Charges during daytime hours and discharges the stored energy during an evening window.",
			Parameters: []models.ParameterInfo{
				{
					Name:        "charge_start_hour",
					Type:        "int",
					Description: "Charge window start hour",
					Default:     9,
				},
				{
					Name:        "charge_end_hour",
					Type:        "int",
					Description: "Charge window end hour (exclusive)",
					Default:     16,
				},
				{
					Name:        "discharge_start_hour",
					Type:        "int",
					Description: "Discharge window start hour",
					Default:     19,
				},
				{
					Name:        "discharge_end_hour",
					Type:        "int",
					Description: "Discharge window end hour (exclusive)",
					Default:     23,
				},
			},
		},
		{
			Name:        "ramplimit",
			Description: "Bounds the step-to-step change of grid export, buffering fast generation swings through the battery.",
			Parameters: []models.ParameterInfo{
				{
					Name:        "max_ramp_per_hour_mw",
					Type:        "float",
					Description: "Maximum allowed export change per hour in MW",
				},
			},
		},
		{
			Name:        "peakshave",
			Description: "Absorbs generation above a threshold and tops the export back up during low-generation hours.",
			Parameters: []models.ParameterInfo{
				{
					Name:        "threshold_mw",
					Type:        "float",
					Description: "Shaving threshold in MW; 0 derives the 80th percentile of positive samples",
					Default:     0.0,
				},
			},
		},
	}

	c.JSON(http.StatusOK, gin.H{"strategies": strategies})
}
