package router

import (
	"github.com/gin-gonic/gin"

	"redline/internal/handler"
	"redline/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	accessH *handler.AccessHandler,
	auditH *handler.AuditHandler,
	reportH *handler.ReportHandler,
	healthH *handler.HealthHandler,
	corsOrigins []string,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(corsOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	access := v1.Group("/access")
	access.POST("/check", accessH.Check)

	audits := v1.Group("/audits")
	audits.POST("", auditH.Run)

	reports := v1.Group("/reports")
	reports.GET("/:id/download", reportH.Download)

	return r
}
