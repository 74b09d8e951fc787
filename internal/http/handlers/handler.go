package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"minesweeper_webapp/internal/game"
	"minesweeper_webapp/internal/http/middleware"
	"minesweeper_webapp/internal/logger"
	"minesweeper_webapp/internal/repository"
	"minesweeper_webapp/internal/service"
	"minesweeper_webapp/internal/session"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	Games *service.GameService
	Auth  *service.AuthService
	Users UserLookup
}

func NewHandler(games *service.GameService, auth *service.AuthService, users UserLookup) *Handler {
	return &Handler{
		Games: games,
		Auth:  auth,
		Users: users,
	}
}

// getUserID returns the id stored by the JWT middleware.
func getUserID(c *gin.Context) (int64, bool) {
	return middleware.UserID(c)
}

func paramID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

// writeError maps service errors onto status codes.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, session.ErrNoGame):
		c.JSON(http.StatusNotFound, gin.H{"error": "no active game"})
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	case errors.Is(err, game.ErrCorruptState):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "saved game is corrupt"})
	default:
		logger.FromContext(c.Request.Context()).Error("request failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
