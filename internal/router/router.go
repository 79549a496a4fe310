// Package router wires handlers and middleware into a gin engine.
package router

import (
	"github.com/gin-gonic/gin"
	"github.com/polyglot/api/internal/analyzer"
	"github.com/polyglot/api/internal/handlers"
	"github.com/polyglot/api/internal/history"
	"github.com/polyglot/api/internal/metrics"
	"github.com/polyglot/api/internal/middleware"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	_ "github.com/polyglot/api/docs" // Swagger docs
)

// Deps are the collaborators the HTTP surface needs
type Deps struct {
	Logger    *zap.Logger
	Metrics   *metrics.Metrics
	Generator handlers.Generator
	Analyzer  *analyzer.Engine
	History   history.Store

	// Health lists dependencies checked by /api/health/deep. A nil value is
	// reported as not configured.
	Health    map[string]handlers.Pinger
	LLMStatus func() string

	ServiceName        string
	Version            string
	JWTSecret          string
	RateLimitPerMinute int
}

// New builds the engine with the global middleware chain and all routes
func New(deps Deps) *gin.Engine {
	router := gin.New()
	router.Use(middleware.Recovery(deps.Logger))
	router.Use(otelgin.Middleware(deps.ServiceName))
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(deps.Logger, deps.Metrics))
	router.Use(middleware.CORS())

	SetupRoutes(router, deps)
	return router
}

func SetupRoutes(router *gin.Engine, deps Deps) {
	router.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	if deps.Metrics != nil {
		router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	healthHandler := handlers.NewHealthHandler(deps.Version, deps.Health, deps.LLMStatus)
	generationHandler := handlers.NewGenerationHandler(deps.Generator, deps.Analyzer, deps.History, deps.Metrics, deps.Logger)
	analyzeHandler := handlers.NewAnalyzeHandler(deps.Analyzer, deps.Metrics, deps.Logger)
	languagesHandler := handlers.NewLanguagesHandler()
	historyHandler := handlers.NewHistoryHandler(deps.History, deps.Logger)

	api := router.Group("/api")
	{
		api.GET("/health", healthHandler.Health)
		api.GET("/health/deep", healthHandler.DeepHealth)

		api.GET("/languages", languagesHandler.List)
		api.GET("/languages/:language/hints", languagesHandler.Hints)

		identified := api.Group("")
		identified.Use(middleware.ClientIdentity(deps.JWTSecret))
		{
			identified.POST("/generate",
				middleware.RateLimitMiddleware(middleware.PerMinute(deps.RateLimitPerMinute)),
				generationHandler.Generate,
			)
			identified.POST("/analyze", analyzeHandler.Analyze)

			hist := identified.Group("/history")
			{
				hist.GET("", historyHandler.List)
				hist.POST("", historyHandler.Append)
				hist.DELETE("", historyHandler.Clear)
				hist.DELETE("/:id", historyHandler.Delete)
			}
		}
	}
}
