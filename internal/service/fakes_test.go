package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"minesweeper_webapp/internal/domain"
	"minesweeper_webapp/internal/game"
	"minesweeper_webapp/internal/repository"
	"minesweeper_webapp/internal/session"
)

// zeroRand always picks the first candidate, so mines fill the eligible
// cells in row-major order.
type zeroRand struct{}

func (zeroRand) Intn(int) int { return 0 }

type fakeSavedRepo struct {
	mu     sync.Mutex
	nextID int64
	games  map[int64]domain.SavedGame
}

func newFakeSavedRepo() *fakeSavedRepo {
	return &fakeSavedRepo{games: make(map[int64]domain.SavedGame)}
}

func (r *fakeSavedRepo) Save(_ context.Context, userID int64, gameData []byte, dateSaved time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	r.games[r.nextID] = domain.SavedGame{ID: r.nextID, UserID: userID, DateSaved: dateSaved, GameData: string(gameData)}
	return r.nextID, nil
}

func (r *fakeSavedRepo) List(_ context.Context) ([]domain.SavedGameSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.SavedGameSummary, 0, len(r.games))
	for _, g := range r.games {
		out = append(out, domain.SavedGameSummary{ID: g.ID, UserID: g.UserID, DateSaved: g.DateSaved})
	}
	return out, nil
}

func (r *fakeSavedRepo) Get(_ context.Context, id int64) (*domain.SavedGame, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	g, ok := r.games[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &g, nil
}

func (r *fakeSavedRepo) Delete(_ context.Context, id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.games[id]; !ok {
		return false, nil
	}
	delete(r.games, id)
	return true, nil
}

type fakeHistoryRepo struct {
	mu      sync.Mutex
	entries []domain.GameHistory
}

func (r *fakeHistoryRepo) Create(_ context.Context, gh *domain.GameHistory) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	gh.ID = int64(len(r.entries) + 1)
	r.entries = append(r.entries, *gh)
	return nil
}

func (r *fakeHistoryRepo) GetByUser(_ context.Context, userID int64, limit int) ([]*domain.GameHistory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.GameHistory
	for i := len(r.entries) - 1; i >= 0 && len(out) < limit; i-- {
		if r.entries[i].UserID == userID {
			gh := r.entries[i]
			out = append(out, &gh)
		}
	}
	return out, nil
}

func (r *fakeHistoryRepo) GetUserStats(_ context.Context, userID int64) (*domain.UserStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stats := &domain.UserStats{UserID: userID}
	for _, e := range r.entries {
		if e.UserID != userID {
			continue
		}
		stats.TotalGames++
		if e.Result == domain.GameResultWin {
			stats.Wins++
			if stats.BestWinTime == nil || e.ElapsedSeconds < *stats.BestWinTime {
				v := e.ElapsedSeconds
				stats.BestWinTime = &v
			}
		} else {
			stats.Losses++
		}
	}
	return stats, nil
}

type fakeUserRepo struct {
	mu      sync.Mutex
	users   map[string]*domain.User
	creates int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*domain.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.creates++
	if _, ok := r.users[u.Username]; ok {
		return repository.ErrUsernameTaken
	}
	u.ID = int64(len(r.users) + 1)
	u.CreatedAt = time.Now()
	cp := *u
	r.users[u.Username] = &cp
	return nil
}

func (r *fakeUserRepo) UsernameExists(_ context.Context, username string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.users[username]
	return ok, nil
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[username]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

type testDeps struct {
	svc     *GameService
	store   *session.MemoryStore
	saved   *fakeSavedRepo
	history *fakeHistoryRepo
}

func newTestGameService(t *testing.T) testDeps {
	t.Helper()
	store := session.NewMemoryStore(time.Hour, time.Hour)
	t.Cleanup(store.Close)

	saved := newFakeSavedRepo()
	history := &fakeHistoryRepo{}
	svc := NewGameService(game.NewEngine(zeroRand{}), store, session.NewLocalLocker(), saved, history)
	return testDeps{svc: svc, store: store, saved: saved, history: history}
}

// placedState is a 5x5 board with mines at (0,0) and (4,4), already past
// the first click.
func placedState() *game.State {
	st := game.CreateNew(5, 5, 2)
	st.Board[0][0].Mine = true
	st.Board[4][4].Mine = true
	st.FirstClick = false
	game.ComputeNeighbors(st)
	return st
}
