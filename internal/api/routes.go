package api

import (
	"studyquiz/internal/api/handlers"
	"studyquiz/internal/config"
	"studyquiz/internal/logger"
	"studyquiz/internal/observability"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// NewRouter builds the gin engine with middleware and routes.
func NewRouter(cfg *config.Config, handler *handlers.Handler, log *logger.Logger) *gin.Engine {
	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	if cfg.Tracing.Enabled {
		router.Use(otelgin.Middleware(observability.ServiceName))
	}
	router.Use(RequestID(), RequestLogger(log), CORSMiddleware(cfg.AllowedOrigins))

	SetupRoutes(router, handler)
	return router
}

// SetupRoutes sets up the API routes
func SetupRoutes(router *gin.Engine, handler *handlers.Handler) {
	router.GET("/healthz", handler.HandleHealth)

	api := router.Group("/api")
	{
		api.POST("/quiz", handler.HandleGenerateQuiz)

		api.GET("/materials/list", handler.HandleListMaterials)
		api.GET("/materials/:topic/:level/download", handler.HandleDownloadMaterial)
	}
}
