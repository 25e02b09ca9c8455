package handlers

import (
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"feeder-dispatch/internal/api/models"
	"feeder-dispatch/internal/config"

	"github.com/gin-gonic/gin"
	"gopkg.in/yaml.v3"
)

// BatteryHandler handles battery preset requests
type BatteryHandler struct {
	batteryDir string
}

// NewBatteryHandler creates a new battery handler
func NewBatteryHandler() *BatteryHandler {
	dir := batteryDir()
	if absDir, err := filepath.Abs(dir); err == nil {
		dir = absDir
	}
	log.Printf("BatteryHandler: using battery directory: %s", dir)
	return &BatteryHandler{batteryDir: dir}
}

// ListBatteries handles GET /api/v1/batteries
func (h *BatteryHandler) ListBatteries(c *gin.Context) {
	batteries := []models.BatteryInfo{}

	entries, err := os.ReadDir(h.batteryDir)
	if err != nil {
		log.Printf("BatteryHandler: failed to read battery directory %s: %v", h.batteryDir, err)
		c.JSON(http.StatusOK, gin.H{"batteries": batteries})
		return
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		path := filepath.Join(h.batteryDir, entry.Name())
		info, err := h.loadBatteryInfo(path, entry.Name())
		if err != nil {
			log.Printf("BatteryHandler: failed to load battery file %s: %v", path, err)
			continue
		}
		batteries = append(batteries, *info)
	}

	c.JSON(http.StatusOK, gin.H{"batteries": batteries})
}

func (h *BatteryHandler) loadBatteryInfo(path, filename string) (*models.BatteryInfo, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var wrapper struct {
		Battery config.BatteryConfig `yaml:"battery"`
	}
	if err := yaml.Unmarshal(raw, &wrapper); err != nil {
		return nil, err
	}

	id := strings.TrimSuffix(filename, ".yaml")
	name := wrapper.Battery.Name
	if name == "" {
		name = id
	}

	return &models.BatteryInfo{
		ID:   id,
		Name: name,
		File: path,
		Specs: models.BatterySpecs{
			CapacityMWh:   wrapper.Battery.CapacityMWh,
			PowerRatingMW: wrapper.Battery.PowerRatingMW,
		},
	}, nil
}
