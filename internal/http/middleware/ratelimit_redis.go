package middleware

import (
	"net/http"
	"strconv"
	"time"

	"minesweeper_webapp/internal/logger"
	"minesweeper_webapp/internal/metrics"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

var redisClient *redis.Client

// UseRedis shares a connected client with the rate limiters. With a nil
// client the limiters fall back to in-process counters.
func UseRedis(client *redis.Client) {
	redisClient = client
}

// RedisRateLimit implements a fixed-window rate limiter using Redis INCR/EXPIRE.
// Limiters with different scopes never share a counter.
// key format: rl:<scope>:<window_seconds>:<ip>
func RedisRateLimit(scope string, maxRequests int, window time.Duration) gin.HandlerFunc {
	client := redisClient
	if client == nil {
		logger.Warn("redis not configured, using in-process rate limiter")
		return SimpleRateLimit(maxRequests, window)
	}

	return func(c *gin.Context) {
		key := rateLimitKey(scope, window, c.ClientIP())
		ctx := c.Request.Context()

		val, err := client.Incr(ctx, key).Result()
		if err != nil {
			// fail-open
			c.Header("X-RateLimit-Error", "redis-error")
			logger.FromContext(ctx).Warn("rate limiter redis error", "error", err)
			c.Next()
			return
		}

		if val == 1 {
			client.Expire(ctx, key, window)
		}

		if val > int64(maxRequests) {
			metrics.RLBlocked.WithLabelValues(c.FullPath()).Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}

		metrics.RLRequests.WithLabelValues(c.FullPath()).Inc()
		c.Next()
	}
}

func rateLimitKey(scope string, window time.Duration, ip string) string {
	return "rl:" + scope + ":" + strconv.FormatInt(int64(window.Seconds()), 10) + ":" + ip
}
