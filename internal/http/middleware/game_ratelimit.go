package middleware

import (
	"net/http"
	"strconv"
	"time"

	"minesweeper_webapp/internal/metrics"

	"github.com/gin-gonic/gin"
)

// GameRateLimit limits board actions per user (not per IP). It reads the
// user id set by JWT, so it must run after it.
func GameRateLimit(maxActions int, window time.Duration) gin.HandlerFunc {
	local := newLocalLimiter()

	return func(c *gin.Context) {
		userID, ok := UserID(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		key := "game_rl:" + strconv.FormatInt(userID, 10) + ":" + strconv.FormatInt(int64(window.Seconds()), 10)

		var val int64
		if redisClient != nil {
			ctx := c.Request.Context()
			n, err := redisClient.Incr(ctx, key).Result()
			if err != nil {
				c.Header("X-GameRateLimit-Error", "redis-error")
				c.Next()
				return
			}
			if n == 1 {
				redisClient.Expire(ctx, key, window)
			}
			val = n
		} else {
			val = local.allow(key, window)
		}

		c.Header("X-GameRateLimit-Limit", strconv.Itoa(maxActions))
		c.Header("X-GameRateLimit-Remaining", strconv.FormatInt(max(0, int64(maxActions)-val), 10))

		if val > int64(maxActions) {
			metrics.RLBlocked.WithLabelValues("game:" + c.FullPath()).Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "game rate limit exceeded",
				"retry_after": int(window.Seconds()),
			})
			return
		}

		metrics.RLRequests.WithLabelValues("game:" + c.FullPath()).Inc()
		c.Next()
	}
}
