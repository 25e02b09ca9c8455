package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"os"

	"feeder-dispatch/internal/api/models"
	"feeder-dispatch/internal/data"

	"github.com/gin-gonic/gin"
)

// ListStations handles GET /api/v1/stations
func ListStations(c *gin.Context) {
	list, err := data.LoadStations(data.DefaultStationsPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			c.JSON(http.StatusOK, gin.H{"stations": []models.StationInfo{}, "count": 0})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "STATIONS_LOAD_ERROR",
				Message: fmt.Sprintf("failed to load stations: %v", err),
			},
		})
		return
	}

	stations := make([]models.StationInfo, len(list.Stations))
	for i, s := range list.Stations {
		stations[i] = models.StationInfo{
			ID:          s.ID,
			Name:        s.Name,
			FeederCapMW: s.FeederCapMW,
			PeakMW:      s.PeakMW,
			Timezone:    s.Timezone,
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"stations": stations,
		"count":    len(stations),
	})
}
