package http

import (
	"time"

	"minesweeper_webapp/internal/config"
	"minesweeper_webapp/internal/http/handlers"
	"minesweeper_webapp/internal/http/middleware"
	"minesweeper_webapp/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Deps are the wired components the router exposes.
type Deps struct {
	Handler *handlers.Handler
	Health  *handlers.HealthHandler
	Hub     *ws.Hub
}

type limits struct {
	auth       int
	authWindow time.Duration
	game       int
	gameWindow time.Duration
}

func RegisterRoutes(r *gin.Engine, d Deps, cfg *config.Config) {
	r.Use(middleware.RequestID(), middleware.Metrics())

	// Health checks and metrics (no rate limiting)
	r.GET("/health", d.Health.Health)
	r.GET("/healthz", d.Health.Liveness)
	r.GET("/readyz", d.Health.Readiness)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	l := limits{
		auth:       cfg.AuthRateLimit,
		authWindow: cfg.AuthRateWindow,
		game:       cfg.GameRateLimit,
		gameWindow: cfg.GameRateWindow,
	}

	// API v1 routes
	v1 := r.Group("/api/v1")
	v1.Use(middleware.RedisRateLimit("api", cfg.APIRateLimit, cfg.APIRateWindow))
	registerAPIRoutes(v1, d.Handler, l)

	// Legacy /api routes
	api := r.Group("/api")
	api.Use(middleware.RedisRateLimit("api", cfg.APIRateLimit, cfg.APIRateWindow))
	api.GET("/health", d.Health.Health)
	registerAPIRoutes(api, d.Handler, l)

	r.GET("/ws", ws.HandleWS(d.Hub, d.Handler.Games, cfg.AllowedOrigin))
}

func registerAPIRoutes(api *gin.RouterGroup, h *handlers.Handler, l limits) {
	// Auth
	authRL := middleware.RedisRateLimit("auth", l.auth, l.authWindow)
	api.POST("/auth/register", authRL, h.Register)
	api.POST("/auth/login", authRL, h.Login)

	// User profile
	api.GET("/me", middleware.JWT(), h.Me)
	api.GET("/me/stats", middleware.JWT(), h.MyStats)
	api.GET("/me/history", middleware.JWT(), h.MyHistory)

	// Live game, board actions limited per user
	gameRL := middleware.GameRateLimit(l.game, l.gameWindow)
	api.POST("/game/new", middleware.JWT(), gameRL, h.NewGame)
	api.GET("/game/state", middleware.JWT(), h.GameState)
	api.POST("/game/reveal", middleware.JWT(), gameRL, h.Reveal)
	api.POST("/game/flag", middleware.JWT(), gameRL, h.Flag)
	api.POST("/game/save", middleware.JWT(), h.SaveGame)
	api.POST("/game/resume/:id", middleware.JWT(), h.ResumeGame)

	// Saved games
	api.GET("/showSavedGames", h.ListSavedGames)
	api.GET("/showSavedGames/:id", middleware.OptionalJWT(), h.GetSavedGame)
	api.DELETE("/deleteOneGame/:id", middleware.JWT(), h.DeleteSavedGame)
}
