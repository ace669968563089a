package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/insighthub/meeting-insights/internal/infrastructure/http/middleware"
	"github.com/insighthub/meeting-insights/pkg/config"
	"github.com/insighthub/meeting-insights/pkg/jwt"
)

// Router holds all handlers
type Router struct {
	cfg               *config.Config
	transcriptHandler *Transcript
	botHandler        *Bot
	jwtManager        *jwt.Manager
}

// NewRouter creates a new router with all handlers
func NewRouter(cfg *config.Config, transcriptHandler *Transcript, botHandler *Bot, jwtManager *jwt.Manager) *Router {
	return &Router{
		cfg:               cfg,
		transcriptHandler: transcriptHandler,
		botHandler:        botHandler,
		jwtManager:        jwtManager,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	e.GET("/health", rt.healthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	v1 := e.Group("/v1")

	// Bot boundary stays outside service-token auth; the messaging platform
	// authenticates with its own scheme
	v1.POST("/messages", rt.botHandler.Messages)

	api := v1
	if !rt.cfg.JWT.AuthDisabled {
		api = v1.Group("", middleware.EchoAuth(rt.jwtManager))
	}
	rt.setupTranscriptRoutes(api)
}

// setupTranscriptRoutes configures transcript routes
func (rt *Router) setupTranscriptRoutes(g *echo.Group) {
	transcriptGroup := g.Group("/transcripts")

	transcriptGroup.GET("", rt.transcriptHandler.List)
	transcriptGroup.GET("/search", rt.transcriptHandler.Search)
	transcriptGroup.GET("/:id", rt.transcriptHandler.Get)
	transcriptGroup.POST("", rt.transcriptHandler.Create)
	transcriptGroup.DELETE("/:id", rt.transcriptHandler.Delete)
	transcriptGroup.POST("/:id/process", rt.transcriptHandler.Process)
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"environment": rt.cfg.Server.Environment,
	})
}
