package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"minesweeper_webapp/internal/domain"
	"minesweeper_webapp/internal/game"
	"minesweeper_webapp/internal/logger"
	"minesweeper_webapp/internal/metrics"
	"minesweeper_webapp/internal/repository"
	"minesweeper_webapp/internal/session"
)

var ErrForbidden = errors.New("forbidden")

const MaxHistoryLimit = 100

// SavedGameRepository is the subset of repository.SavedGameRepository the
// service needs.
type SavedGameRepository interface {
	Save(ctx context.Context, userID int64, gameData []byte, dateSaved time.Time) (int64, error)
	List(ctx context.Context) ([]domain.SavedGameSummary, error)
	Get(ctx context.Context, id int64) (*domain.SavedGame, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type GameHistoryRepository interface {
	Create(ctx context.Context, gh *domain.GameHistory) error
	GetByUser(ctx context.Context, userID int64, limit int) ([]*domain.GameHistory, error)
	GetUserStats(ctx context.Context, userID int64) (*domain.UserStats, error)
}

// NewGameSummary is returned when a board is created or resumed.
type NewGameSummary struct {
	Rows          int    `json:"rows"`
	Cols          int    `json:"cols"`
	Mines         int    `json:"mines"`
	FlagsLeft     int    `json:"flagsLeft"`
	StatusMessage string `json:"statusMessage"`
}

func Summarize(st *game.State) NewGameSummary {
	return NewGameSummary{
		Rows:          st.Rows,
		Cols:          st.Cols,
		Mines:         st.Mines,
		FlagsLeft:     st.FlagsLeft,
		StatusMessage: st.StatusMessage,
	}
}

// GameService owns the live game of each user. Every mutation runs under the
// user's lock: load, apply the engine, store.
type GameService struct {
	engine  *game.Engine
	store   session.Store
	locker  session.Locker
	saved   SavedGameRepository
	history GameHistoryRepository
	now     func() time.Time
}

func NewGameService(engine *game.Engine, store session.Store, locker session.Locker, saved SavedGameRepository, history GameHistoryRepository) *GameService {
	return &GameService{
		engine:  engine,
		store:   store,
		locker:  locker,
		saved:   saved,
		history: history,
		now:     time.Now,
	}
}

// NewGame replaces the user's current game with a fresh board. Dimensions
// outside the allowed ranges are clamped.
func (s *GameService) NewGame(ctx context.Context, userID int64, rows, cols, mines int) (*game.State, error) {
	unlock, err := s.locker.Lock(ctx, userID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	st := game.CreateNew(rows, cols, mines)
	if err := s.store.Save(ctx, userID, st); err != nil {
		return nil, err
	}

	metrics.GamesStarted.Inc()
	logger.FromContext(ctx).Debug("game created",
		"user_id", userID, "rows", st.Rows, "cols", st.Cols, "mines", st.Mines)
	return st, nil
}

// State returns the user's live game.
func (s *GameService) State(ctx context.Context, userID int64) (*game.State, error) {
	return s.store.Load(ctx, userID)
}

func (s *GameService) Reveal(ctx context.Context, userID int64, r, c int) (*game.UpdateResult, error) {
	return s.apply(ctx, userID, "reveal", r, c, s.engine.Reveal)
}

func (s *GameService) ToggleFlag(ctx context.Context, userID int64, r, c int) (*game.UpdateResult, error) {
	return s.apply(ctx, userID, "flag", r, c, s.engine.ToggleFlag)
}

func (s *GameService) apply(
	ctx context.Context,
	userID int64,
	action string,
	r, c int,
	move func(*game.State, int, int) *game.UpdateResult,
) (*game.UpdateResult, error) {
	unlock, err := s.locker.Lock(ctx, userID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	st, err := s.store.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	wasTerminal := st.Terminal()
	res := move(st, r, c)

	if err := s.store.Save(ctx, userID, st); err != nil {
		return nil, err
	}
	metrics.Actions.WithLabelValues(action).Inc()

	if !wasTerminal && st.Terminal() {
		s.recordOutcome(ctx, userID, st)
	}
	return res, nil
}

// recordOutcome logs a history row. Failures are logged, the move stands.
func (s *GameService) recordOutcome(ctx context.Context, userID int64, st *game.State) {
	result := domain.GameResultLose
	if st.IsWin {
		result = domain.GameResultWin
	}
	metrics.GamesFinished.WithLabelValues(string(result)).Inc()

	if s.history == nil {
		return
	}

	gh := &domain.GameHistory{
		UserID:         userID,
		Result:         result,
		Rows:           st.Rows,
		Cols:           st.Cols,
		Mines:          st.Mines,
		ElapsedSeconds: st.ElapsedSeconds,
		Details: map[string]interface{}{
			"revealed":  st.RevealedCount,
			"flagsLeft": st.FlagsLeft,
		},
	}
	if err := s.history.Create(ctx, gh); err != nil {
		logger.FromContext(ctx).Error("failed to record game history", "user_id", userID, "error", err)
	}
}

// SaveGame snapshots the live game into the saved-games table.
func (s *GameService) SaveGame(ctx context.Context, userID int64, elapsedSeconds int) (int64, error) {
	unlock, err := s.locker.Lock(ctx, userID)
	if err != nil {
		return 0, err
	}
	defer unlock()

	st, err := s.store.Load(ctx, userID)
	if err != nil {
		return 0, err
	}
	if elapsedSeconds >= 0 {
		st.ElapsedSeconds = elapsedSeconds
	}

	blob, err := game.Marshal(st)
	if err != nil {
		return 0, err
	}

	id, err := s.saved.Save(ctx, userID, blob, s.now().UTC())
	if err != nil {
		return 0, err
	}

	// keep the live copy's clock in step with what was saved
	if err := s.store.Save(ctx, userID, st); err != nil {
		logger.FromContext(ctx).Warn("failed to refresh live game after save", "user_id", userID, "error", err)
	}

	metrics.SavedGames.WithLabelValues("save").Inc()
	return id, nil
}

func (s *GameService) ListSaved(ctx context.Context) ([]domain.SavedGameSummary, error) {
	return s.saved.List(ctx)
}

func (s *GameService) GetSaved(ctx context.Context, id int64) (*domain.SavedGame, error) {
	return s.saved.Get(ctx, id)
}

// ResumeSaved makes a saved game the user's live game. A blob that fails
// validation leaves the current session untouched.
func (s *GameService) ResumeSaved(ctx context.Context, userID, id int64) (*game.State, error) {
	sg, err := s.saved.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if sg.UserID != userID {
		return nil, ErrForbidden
	}

	st, err := game.Unmarshal([]byte(sg.GameData))
	if err != nil {
		return nil, fmt.Errorf("saved game %d: %w", id, err)
	}

	unlock, err := s.locker.Lock(ctx, userID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	if err := s.store.Save(ctx, userID, st); err != nil {
		return nil, err
	}

	metrics.SavedGames.WithLabelValues("resume").Inc()
	metrics.GamesStarted.Inc()
	return st, nil
}

// DeleteSaved removes a saved game owned by userID. It reports false when
// the id does not exist.
func (s *GameService) DeleteSaved(ctx context.Context, userID, id int64) (bool, error) {
	sg, err := s.saved.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if sg.UserID != userID {
		return false, ErrForbidden
	}

	ok, err := s.saved.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if ok {
		metrics.SavedGames.WithLabelValues("delete").Inc()
	}
	return ok, nil
}

// Stats aggregates the user's finished games. Without a history repository
// every counter is zero.
func (s *GameService) Stats(ctx context.Context, userID int64) (*domain.UserStats, error) {
	if s.history == nil {
		return &domain.UserStats{UserID: userID}, nil
	}
	return s.history.GetUserStats(ctx, userID)
}

// History lists the user's finished games, newest first.
func (s *GameService) History(ctx context.Context, userID int64, limit int) ([]*domain.GameHistory, error) {
	if s.history == nil {
		return []*domain.GameHistory{}, nil
	}
	if limit <= 0 || limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}

	games, err := s.history.GetByUser(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	if games == nil {
		games = []*domain.GameHistory{}
	}
	return games, nil
}
