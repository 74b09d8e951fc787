package handlers

import (
	"context"
	"errors"
	"net/http"

	"minesweeper_webapp/internal/domain"
	"minesweeper_webapp/internal/repository"
	"minesweeper_webapp/internal/service"

	"github.com/gin-gonic/gin"
)

// UserLookup resolves the authenticated user for /me.
type UserLookup interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) Register(c *gin.Context) {
	var req service.RegisterInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request", "details": err.Error()})
		return
	}

	user, err := h.Auth.Register(c.Request.Context(), req)
	if errors.Is(err, repository.ErrUsernameTaken) {
		c.JSON(http.StatusConflict, gin.H{"error": "username already taken"})
		return
	}
	if errors.Is(err, service.ErrWeakPassword) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "password too weak"})
		return
	}
	if errors.Is(err, service.ErrPasswordTooLong) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "password too long"})
		return
	}
	if err != nil {
		writeError(c, err)
		return
	}

	token, err := service.GenerateJWT(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token generation failed"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"token": token, "user": user})
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	token, user, err := h.Auth.Login(c.Request.Context(), req.Username, req.Password)
	if errors.Is(err, service.ErrInvalidCredentials) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid username or password"})
		return
	}
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

func (h *Handler) Me(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	user, err := h.Users.GetByID(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}
