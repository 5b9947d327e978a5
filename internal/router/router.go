// Package router wires the Gin engine for the admin surface.
package router

import (
	"github.com/gin-gonic/gin"

	"licencewatch/internal/handler"
	"licencewatch/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	healthH *handler.HealthHandler,
	harvestH *handler.HarvestHandler,
	exportH *handler.ExportHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")
	v1.POST("/harvest", harvestH.Trigger)
	v1.GET("/runs/latest", harvestH.LatestRuns)
	v1.GET("/licences/export", exportH.Export)

	return r
}
