package handlers

import (
	"log"
	"net/http"
	"sync"

	"feeder-dispatch/internal/api/models"
	"feeder-dispatch/internal/sweep"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// SweepHandler streams parameter sweep progress over a websocket.
type SweepHandler struct {
	upgrader websocket.Upgrader
}

// NewSweepHandler creates a new sweep handler
func NewSweepHandler() *SweepHandler {
	return &SweepHandler{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The browser UI is served from a different origin in development.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// StreamSweep handles GET /api/v1/sweep/ws. The client sends one SweepRequest
// frame; the server replies with a progress frame per completed run and a
// final ranked frame.
func (h *SweepHandler) StreamSweep(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("SweepHandler: upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	var req models.SweepRequest
	if err := conn.ReadJSON(&req); err != nil {
		writeSweepError(conn, "INVALID_REQUEST", err.Error())
		return
	}
	if len(req.Variations) == 0 {
		writeSweepError(conn, "INVALID_REQUEST", "at least one variation is required")
		return
	}

	solarMW, dtHours, err := resolveProfile(req.Profile)
	if err != nil {
		writeSweepError(conn, "PROFILE_ERROR", err.Error())
		return
	}

	variations := make([]sweep.Variation, 0, len(req.Variations))
	for _, v := range req.Variations {
		cfg, err := buildConfig(mergeConfig(req.BaseConfig, v.Config))
		if err != nil {
			log.Printf("SweepHandler: skipping variation %q: %v", v.Name, err)
			continue
		}
		variations = append(variations, sweep.Variation{
			Name:     v.Name,
			Battery:  cfg.Battery,
			Strategy: cfg.Strategy,
		})
	}

	// Gorilla connections allow one concurrent writer, so progress frames from
	// the worker pool are serialized here.
	var writeMu sync.Mutex
	sink := sweep.SinkFunc(func(done, total int, r sweep.RunSummary) {
		result := convertSweepResult(r)
		writeMu.Lock()
		defer writeMu.Unlock()
		if err := conn.WriteJSON(models.SweepProgress{
			Type:   "progress",
			Done:   done,
			Total:  total,
			Result: &result,
		}); err != nil {
			log.Printf("SweepHandler: write failed: %v", err)
		}
	})

	runner := sweep.NewRunner(req.Workers)
	summaries := runner.Run(solarMW, dtHours, variations, sink)

	ranked := sweep.Rank(summaries)
	results := make([]models.SweepResult, len(ranked))
	for i, r := range ranked {
		results[i] = convertSweepResult(r)
	}

	writeMu.Lock()
	defer writeMu.Unlock()
	if err := conn.WriteJSON(models.SweepProgress{
		Type:   "done",
		Done:   len(summaries),
		Total:  len(summaries),
		Ranked: results,
	}); err != nil {
		log.Printf("SweepHandler: final write failed: %v", err)
	}
}

func writeSweepError(conn *websocket.Conn, code, message string) {
	_ = conn.WriteJSON(models.SweepProgress{
		Type:    "error",
		Message: code + ": " + message,
	})
}

func convertSweepResult(r sweep.RunSummary) models.SweepResult {
	return models.SweepResult{
		Name:                    r.Name,
		Strategy:                r.StrategyName,
		Error:                   r.Err,
		Severity:                r.Severity.String(),
		SolarEnergyMWh:          r.SolarEnergyMWh,
		ExportedEnergyMWh:       r.ExportedEnergyMWh,
		CurtailedMWh:            r.CurtailedMWh,
		LossMWh:                 r.LossMWh,
		FinalSOC:                r.FinalSOC,
		PeakReductionPct:        r.PeakReductionPct,
		EnergyShiftedMWh:        r.EnergyShiftedMWh,
		VariabilityReductionPct: r.VariabilityReductionPct,
	}
}
