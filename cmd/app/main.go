package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"minesweeper_webapp/internal/config"
	"minesweeper_webapp/internal/db"
	"minesweeper_webapp/internal/game"
	httpServer "minesweeper_webapp/internal/http"
	"minesweeper_webapp/internal/http/handlers"
	"minesweeper_webapp/internal/http/middleware"
	"minesweeper_webapp/internal/logger"
	"minesweeper_webapp/internal/repository"
	"minesweeper_webapp/internal/service"
	"minesweeper_webapp/internal/session"
	"minesweeper_webapp/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogFormat)
	service.InitJWT(cfg.JWTSecret)

	dbPool := db.Connect(cfg.DatabaseURL)
	defer dbPool.Close()

	checks := map[string]handlers.Check{
		"database": dbPool.Ping,
	}

	var (
		store  session.Store
		locker session.Locker
	)

	rdb := connectRedis(cfg)
	if rdb != nil {
		defer rdb.Close()
		store = session.NewRedisStore(rdb, cfg.SessionTTL)
		locker = session.NewRedisLocker(rdb)
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
		middleware.UseRedis(rdb)
		logger.Info("sessions stored in redis", "addr", cfg.RedisAddr, "ttl", cfg.SessionTTL)
	} else {
		mem := session.NewMemoryStore(cfg.SessionTTL, 5*time.Minute)
		defer mem.Close()
		store = mem
		locker = session.NewLocalLocker()
		logger.Warn("REDIS_ADDR not set, sessions kept in process memory")
	}

	users := repository.NewUserRepository(dbPool)
	games := service.NewGameService(
		game.NewEngine(game.NewCryptoRand()),
		store,
		locker,
		repository.NewSavedGameRepository(dbPool),
		repository.NewGameHistoryRepository(dbPool),
	)
	auth := service.NewAuthService(users, cfg.PasswordMinScore)

	r := gin.New()
	r.Use(gin.Recovery())

	// CORS for a frontend served from another origin
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" && (cfg.AllowedOrigin == "" || origin == cfg.AllowedOrigin) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")
			c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		}
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	httpServer.RegisterRoutes(r, httpServer.Deps{
		Handler: handlers.NewHandler(games, auth, users),
		Health:  handlers.NewHealthHandler(cfg.AppVersion, checks),
		Hub:     ws.NewHub(),
	}, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server started", "port", cfg.AppPort, "version", cfg.AppVersion)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("listen failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
}

// connectRedis returns nil when Redis is not configured or not reachable.
func connectRedis(cfg *config.Config) *redis.Client {
	if cfg.RedisAddr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Error("redis unreachable, falling back to memory", "addr", cfg.RedisAddr, "error", err)
		_ = client.Close()
		return nil
	}
	return client
}
