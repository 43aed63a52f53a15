package http

import (
	"github.com/gin-gonic/gin"

	"github.com/ammotrack/backend/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))
	router.Use(RateLimitMiddleware(cfg.RateLimit.PerIP, cfg.RateLimit.Burst))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Ingestion: raw documents in, structured records out
		v1.POST("/extract", handler.ExtractListing)
		v1.POST("/deals", handler.IngestDeal)
		v1.POST("/sessions", handler.LogSession)

		// Read surface for dashboards and exporters
		v1.GET("/products/best", handler.BestPrices)
		v1.GET("/deals/recent", handler.RecentDeals)
		v1.GET("/sessions/recent", handler.RecentSessions)
	}

	return router
}
