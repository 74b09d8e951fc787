package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/minesweeper")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("APP_PORT", "")
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("SESSION_TTL_SECONDS", "")
	t.Setenv("GAME_RATE_LIMIT", "")
	t.Setenv("PASSWORD_MIN_SCORE", "")

	cfg := Load()

	assert.Equal(t, "8080", cfg.AppPort)
	assert.Equal(t, "", cfg.RedisAddr)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 240, cfg.GameRateLimit)
	assert.Equal(t, time.Minute, cfg.GameRateWindow)
	assert.Equal(t, 2, cfg.PasswordMinScore)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/minesweeper")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("APP_PORT", "9000")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("SESSION_TTL_SECONDS", "600")
	t.Setenv("GAME_RATE_LIMIT", "not-a-number")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("PASSWORD_MIN_SCORE", "0")

	cfg := Load()

	assert.Equal(t, "9000", cfg.AppPort)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 2, cfg.RedisDB)
	assert.Equal(t, 10*time.Minute, cfg.SessionTTL)
	assert.Equal(t, 240, cfg.GameRateLimit)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 0, cfg.PasswordMinScore)
}
