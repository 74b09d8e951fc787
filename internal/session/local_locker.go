package session

import (
	"context"
	"sync"
)

type localSlot struct {
	ch   chan struct{}
	refs int // holders plus waiters
}

// LocalLocker is the in-process Locker. Waiting honours ctx cancellation.
// A user's slot is dropped once nobody holds or waits for it.
type LocalLocker struct {
	mu    sync.Mutex
	locks map[int64]*localSlot
}

func NewLocalLocker() *LocalLocker {
	return &LocalLocker{locks: make(map[int64]*localSlot)}
}

func (l *LocalLocker) acquire(userID int64) *localSlot {
	l.mu.Lock()
	defer l.mu.Unlock()

	s, ok := l.locks[userID]
	if !ok {
		s = &localSlot{ch: make(chan struct{}, 1)}
		l.locks[userID] = s
	}
	s.refs++
	return s
}

func (l *LocalLocker) release(userID int64, s *localSlot) {
	l.mu.Lock()
	defer l.mu.Unlock()

	s.refs--
	if s.refs == 0 {
		delete(l.locks, userID)
	}
}

func (l *LocalLocker) Lock(ctx context.Context, userID int64) (func(), error) {
	s := l.acquire(userID)

	select {
	case s.ch <- struct{}{}:
	case <-ctx.Done():
		l.release(userID, s)
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-s.ch
			l.release(userID, s)
		})
	}, nil
}

// Len reports how many users currently hold or wait for a lock.
func (l *LocalLocker) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
