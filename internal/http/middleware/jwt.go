package middleware

import (
	"net/http"
	"strings"

	"minesweeper_webapp/internal/logger"
	"minesweeper_webapp/internal/service"

	"github.com/gin-gonic/gin"
)

const userIDKey = "user_id"

// JWT requires "Authorization: Bearer <token>" and stores the user id in
// the gin context.
func JWT() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			return
		}

		userID, err := service.ParseJWT(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		setUser(c, userID)
		c.Next()
	}
}

// OptionalJWT identifies the caller when a valid bearer token is present and
// lets anonymous requests through.
func OptionalJWT() gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer "); ok && token != "" {
			if userID, err := service.ParseJWT(token); err == nil {
				setUser(c, userID)
			}
		}
		c.Next()
	}
}

func setUser(c *gin.Context, userID int64) {
	c.Set(userIDKey, userID)

	ctx := c.Request.Context()
	l := logger.FromContext(ctx).With("user_id", userID)
	c.Request = c.Request.WithContext(logger.NewContext(ctx, l))
}

// UserID returns the id stored by JWT.
func UserID(c *gin.Context) (int64, bool) {
	v, ok := c.Get(userIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}
