package middleware

import (
	"strconv"
	"time"

	"minesweeper_webapp/internal/logger"
	"minesweeper_webapp/internal/metrics"

	"github.com/gin-gonic/gin"
)

// Metrics observes request latency and logs each request.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := c.Writer.Status()
		elapsed := time.Since(start)

		metrics.HTTPDuration.
			WithLabelValues(c.Request.Method, path, strconv.Itoa(status)).
			Observe(elapsed.Seconds())

		logger.FromContext(c.Request.Context()).Debug("request",
			"method", c.Request.Method,
			"path", path,
			"status", status,
			"duration_ms", elapsed.Milliseconds(),
		)
	}
}
