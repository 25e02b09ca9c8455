package main

import (
	"fmt"
	"log"
	"os"

	"feeder-dispatch/internal/api/handlers"
	"feeder-dispatch/internal/api/middleware"

	"github.com/gin-gonic/gin"
)

func main() {
	port := os.Getenv("API_PORT")
	if port == "" {
		port = "8080"
	}

	if os.Getenv("API_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(middleware.Logger())
	router.Use(middleware.CORS())
	router.Use(middleware.ErrorHandler())

	simulateHandler := handlers.NewSimulateHandler()
	batteryHandler := handlers.NewBatteryHandler()
	strategyHandler := handlers.NewStrategyHandler()
	sweepHandler := handlers.NewSweepHandler()

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	{
		api.POST("/simulate", simulateHandler.RunSimulation)
		api.POST("/simulate/compare", simulateHandler.Compare)

		api.GET("/sweep/ws", sweepHandler.StreamSweep)

		api.GET("/batteries", batteryHandler.ListBatteries)
		api.GET("/strategies", strategyHandler.ListStrategies)
		api.GET("/stations", handlers.ListStations)
	}

	// Serve the built UI when present (SPA routing falls back to index.html).
	staticDir := os.Getenv("STATIC_DIR")
	if staticDir == "" {
		staticDir = "./web/dist"
	}
	if _, err := os.Stat(staticDir); err == nil {
		router.Static("/assets", staticDir+"/assets")
		router.StaticFile("/favicon.ico", staticDir+"/favicon.ico")
		router.NoRoute(func(c *gin.Context) {
			path := c.Request.URL.Path
			if len(path) >= 4 && path[:4] == "/api" {
				c.JSON(404, gin.H{"error": "Not found"})
			} else {
				c.File(staticDir + "/index.html")
			}
		})
		log.Printf("Serving static files from %s", staticDir)
	}

	addr := fmt.Sprintf(":%s", port)
	log.Printf("Starting API server on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
