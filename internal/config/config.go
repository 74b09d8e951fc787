package config

import (
	"os"
	"strconv"
	"time"

	"minesweeper_webapp/internal/logger"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort       string
	AppVersion    string
	DatabaseURL   string
	JWTSecret     string
	AllowedOrigin string

	LogLevel  string
	LogFormat string // text | json

	// Redis is optional: without it sessions, locks and rate-limit counters
	// live in process memory.
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	SessionTTL time.Duration

	// zxcvbn score (0-4) a new password must reach
	PasswordMinScore int

	// Rate limits
	APIRateLimit   int
	APIRateWindow  time.Duration
	AuthRateLimit  int
	AuthRateWindow time.Duration
	GameRateLimit  int
	GameRateWindow time.Duration
}

// Load reads the environment (and a .env file when present).
func Load() *Config {
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		logger.Fatal("DATABASE_URL is not set")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logger.Fatal("JWT_SECRET is not set")
	}

	return &Config{
		AppPort:       envString("APP_PORT", "8080"),
		AppVersion:    envString("APP_VERSION", "dev"),
		DatabaseURL:   dbURL,
		JWTSecret:     jwtSecret,
		AllowedOrigin: os.Getenv("ALLOWED_ORIGIN"),

		LogLevel:  envString("LOG_LEVEL", "info"),
		LogFormat: envString("LOG_FORMAT", "text"),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       envInt("REDIS_DB", 0),

		SessionTTL: envSeconds("SESSION_TTL_SECONDS", 24*time.Hour),

		PasswordMinScore: envInt("PASSWORD_MIN_SCORE", 2),

		APIRateLimit:   envInt("API_RATE_LIMIT", 120),
		APIRateWindow:  envSeconds("API_RATE_WINDOW_SECONDS", time.Minute),
		AuthRateLimit:  envInt("AUTH_RATE_LIMIT", 5),
		AuthRateWindow: envSeconds("AUTH_RATE_WINDOW_SECONDS", time.Minute),
		GameRateLimit:  envInt("GAME_RATE_LIMIT", 240),
		GameRateWindow: envSeconds("GAME_RATE_WINDOW", time.Minute),
	}
}

func envString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// envInt ignores values that do not parse or are negative.
func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			return n
		}
		logger.Warn("ignoring invalid env value", "key", key, "value", v)
	}
	return def
}

func envSeconds(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return time.Duration(n) * time.Second
		}
		logger.Warn("ignoring invalid env value", "key", key, "value", v)
	}
	return def
}
