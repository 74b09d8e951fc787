package handlers

import (
	"net/http"
	"time"

	"minesweeper_webapp/internal/game"

	"github.com/gin-gonic/gin"
)

// SavedGameView is what non-owners see of a saved game: the board as the
// player saw it, never the raw blob.
type SavedGameView struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	DateSaved time.Time `json:"dateSaved"`
	Game      GameView  `json:"game"`
}

// ListSavedGames returns every saved game without its board.
func (h *Handler) ListSavedGames(c *gin.Context) {
	games, err := h.Games.ListSaved(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, games)
}

func (h *Handler) GetSavedGame(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	sg, err := h.Games.GetSaved(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	// the owner may download the blob, everyone else gets the masked board
	if userID, ok := getUserID(c); ok && userID == sg.UserID {
		c.JSON(http.StatusOK, sg)
		return
	}

	st, err := game.Unmarshal([]byte(sg.GameData))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, SavedGameView{
		ID:        sg.ID,
		UserID:    sg.UserID,
		DateSaved: sg.DateSaved,
		Game:      newGameView(st),
	})
}

func (h *Handler) DeleteSavedGame(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	id, ok := paramID(c)
	if !ok {
		return
	}

	deleted, err := h.Games.DeleteSaved(c.Request.Context(), userID, id)
	if err != nil {
		writeError(c, err)
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
