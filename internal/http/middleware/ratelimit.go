package middleware

import (
	"net/http"
	"sync"
	"time"

	"minesweeper_webapp/internal/metrics"

	"github.com/gin-gonic/gin"
)

type clientInfo struct {
	last  time.Time
	count int
}

// localLimiter is a fixed-window counter kept in process memory. It backs
// the Redis limiters when no Redis client is configured.
type localLimiter struct {
	mu      sync.Mutex
	clients map[string]*clientInfo
	calls   int
	now     func() time.Time
}

func newLocalLimiter() *localLimiter {
	return &localLimiter{clients: make(map[string]*clientInfo), now: time.Now}
}

// allow counts one hit for key and returns the count inside the window.
// Every 1024 calls stale windows are dropped.
func (l *localLimiter) allow(key string, window time.Duration) int64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()

	l.calls++
	if l.calls%1024 == 0 {
		for k, ci := range l.clients {
			if now.Sub(ci.last) > window {
				delete(l.clients, k)
			}
		}
	}

	ci, ok := l.clients[key]
	if !ok || now.Sub(ci.last) > window {
		l.clients[key] = &clientInfo{last: now, count: 1}
		return 1
	}

	ci.count++
	return int64(ci.count)
}

// SimpleRateLimit blocks clients that send more than maxRequests per window,
// keyed by IP, without Redis.
func SimpleRateLimit(maxRequests int, window time.Duration) gin.HandlerFunc {
	l := newLocalLimiter()

	return func(c *gin.Context) {
		if l.allow(c.ClientIP(), window) > int64(maxRequests) {
			metrics.RLBlocked.WithLabelValues(c.FullPath()).Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}

		metrics.RLRequests.WithLabelValues(c.FullPath()).Inc()
		c.Next()
	}
}
