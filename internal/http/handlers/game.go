package handlers

import (
	"context"
	"net/http"
	"strconv"

	"minesweeper_webapp/internal/game"
	"minesweeper_webapp/internal/service"

	"github.com/gin-gonic/gin"
)

type NewGameRequest struct {
	Rows  int `json:"rows"`
	Cols  int `json:"cols"`
	Mines int `json:"mines"`
}

// CellRequest uses pointers so a missing coordinate is a bad request rather
// than (0, 0).
type CellRequest struct {
	R *int `json:"r" binding:"required"`
	C *int `json:"c" binding:"required"`
}

type SaveRequest struct {
	ElapsedSeconds int `json:"elapsedSeconds" binding:"min=0"`
}

// GameView is the full client view of the live game. Hidden cells do not
// expose mines while the game is running.
type GameView struct {
	Rows           int                 `json:"rows"`
	Cols           int                 `json:"cols"`
	Mines          int                 `json:"mines"`
	FlagsLeft      int                 `json:"flagsLeft"`
	StatusMessage  string              `json:"statusMessage"`
	IsGameOver     bool                `json:"isGameOver"`
	IsWin          bool                `json:"isWin"`
	ElapsedSeconds int                 `json:"elapsedSeconds"`
	Board          [][]game.CellUpdate `json:"board"`
}

func newGameView(st *game.State) GameView {
	snap := game.Snapshot(st)

	board := make([][]game.CellUpdate, st.Rows)
	for r := range board {
		board[r] = snap.Updates[r*st.Cols : (r+1)*st.Cols]
	}

	return GameView{
		Rows:           st.Rows,
		Cols:           st.Cols,
		Mines:          st.Mines,
		FlagsLeft:      snap.FlagsLeft,
		StatusMessage:  snap.StatusMessage,
		IsGameOver:     snap.IsGameOver,
		IsWin:          snap.IsWin,
		ElapsedSeconds: st.ElapsedSeconds,
		Board:          board,
	}
}

func (h *Handler) NewGame(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req NewGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	st, err := h.Games.NewGame(c.Request.Context(), userID, req.Rows, req.Cols, req.Mines)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, service.Summarize(st))
}

func (h *Handler) GameState(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	st, err := h.Games.State(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, newGameView(st))
}

func (h *Handler) Reveal(c *gin.Context) {
	h.cellAction(c, h.Games.Reveal)
}

func (h *Handler) Flag(c *gin.Context) {
	h.cellAction(c, h.Games.ToggleFlag)
}

func (h *Handler) cellAction(c *gin.Context, action func(ctx context.Context, userID int64, r, col int) (*game.UpdateResult, error)) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req CellRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "r and c are required"})
		return
	}

	res, err := action(c.Request.Context(), userID, *req.R, *req.C)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *Handler) SaveGame(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req SaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	id, err := h.Games.SaveGame(c.Request.Context(), userID, req.ElapsedSeconds)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (h *Handler) ResumeGame(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	id, ok := paramID(c)
	if !ok {
		return
	}

	st, err := h.Games.ResumeSaved(c.Request.Context(), userID, id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, newGameView(st))
}

func (h *Handler) MyStats(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	stats, err := h.Games.Stats(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// MyHistory lists the caller's finished games. ?limit= caps the count.
func (h *Handler) MyHistory(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	limit := service.MaxHistoryLimit
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = n
	}

	games, err := h.Games.History(c.Request.Context(), userID, limit)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, games)
}
