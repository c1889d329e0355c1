package api

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/lokrain/harmonia-api/internal/api/handlers"
	apimiddleware "github.com/lokrain/harmonia-api/internal/api/middleware"
	"github.com/lokrain/harmonia-api/internal/config"
	"github.com/lokrain/harmonia-api/internal/metrics"
	"github.com/lokrain/harmonia-api/internal/planner"
	"github.com/lokrain/harmonia-api/internal/templates"
)

func SetupRouter(db *gorm.DB, cfg *config.Config, rec metrics.Recorder) *gin.Engine {
	router := gin.New()

	// Recovery middleware (must be first)
	router.Use(apimiddleware.RecoverWithSentry())

	// Sentry middleware for error tracking
	router.Use(apimiddleware.SentryMiddleware())

	// Request tracking and structured logging
	router.Use(apimiddleware.RequestTracking())

	// CORS middleware
	router.Use(apimiddleware.CORS())

	// Health check
	healthHandler := handlers.NewHealthHandler(db)
	router.GET("/health", healthHandler.HealthCheck)

	// Template resolution: stored templates shadow nothing, builtins always
	// resolve. Without a database only builtins are served.
	var store *templates.Store
	if db != nil {
		store = templates.NewStore(db)
	}
	provider := templates.NewProvider(store)
	service := planner.NewService(provider, rec)

	// API routes v1
	v1 := router.Group("/api/v1")
	switch cfg.AuthMode {
	case "gateway":
		v1.Use(apimiddleware.GatewayAuth())
	case "jwt":
		v1.Use(apimiddleware.JWTAuth(cfg))
	default:
		v1.Use(apimiddleware.NoAuth())
	}
	{
		planHandler := handlers.NewPlanHandler(service)
		v1.POST("/plan", planHandler.Plan)

		v1.GET("/styles", handlers.ListStyles)

		templatesHandler := handlers.NewTemplatesHandler(provider)
		v1.GET("/templates", templatesHandler.List)
		v1.GET("/templates/:id", templatesHandler.Get)
		v1.POST("/templates", templatesHandler.Import)
		v1.DELETE("/templates/:id", templatesHandler.Delete)
	}

	return router
}
