package session

import (
	"context"
	"sync"
	"time"

	"minesweeper_webapp/internal/game"
)

type memEntry struct {
	blob      []byte
	expiresAt time.Time
}

// MemoryStore is the single-process fallback used when Redis is not
// configured. States are stored serialized so callers never share a board.
type MemoryStore struct {
	ttl   time.Duration
	games map[int64]memEntry
	mu    sync.RWMutex
	done  chan struct{}
	once  sync.Once
	now   func() time.Time
}

// NewMemoryStore starts a janitor that drops expired games every interval.
func NewMemoryStore(ttl, interval time.Duration) *MemoryStore {
	s := &MemoryStore{
		ttl:   ttl,
		games: make(map[int64]memEntry),
		done:  make(chan struct{}),
		now:   time.Now,
	}

	go s.cleanupExpired(interval)

	return s
}

func (s *MemoryStore) Load(_ context.Context, userID int64) (*game.State, error) {
	s.mu.RLock()
	e, ok := s.games[userID]
	s.mu.RUnlock()

	if !ok || s.now().After(e.expiresAt) {
		return nil, ErrNoGame
	}
	return game.Unmarshal(e.blob)
}

func (s *MemoryStore) Save(_ context.Context, userID int64, st *game.State) error {
	blob, err := game.Marshal(st)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.games[userID] = memEntry{blob: blob, expiresAt: s.now().Add(s.ttl)}
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, userID int64) error {
	s.mu.Lock()
	delete(s.games, userID)
	s.mu.Unlock()
	return nil
}

// Len returns the number of stored games, expired ones included until the
// janitor runs.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.games)
}

// Close stops the janitor.
func (s *MemoryStore) Close() {
	s.once.Do(func() { close(s.done) })
}

func (s *MemoryStore) cleanupExpired(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.purge()
		}
	}
}

func (s *MemoryStore) purge() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for userID, e := range s.games {
		if now.After(e.expiresAt) {
			delete(s.games, userID)
		}
	}
}
