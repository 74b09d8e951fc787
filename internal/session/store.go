package session

import (
	"context"
	"errors"
	"strconv"

	"minesweeper_webapp/internal/game"
)

// ErrNoGame is returned by Load when the user has no game in progress.
var ErrNoGame = errors.New("no active game")

// Store keeps the one live game per user between requests.
type Store interface {
	Load(ctx context.Context, userID int64) (*game.State, error)
	Save(ctx context.Context, userID int64, s *game.State) error
	Delete(ctx context.Context, userID int64) error
}

// Locker serializes mutations of a single user's game.
type Locker interface {
	Lock(ctx context.Context, userID int64) (unlock func(), err error)
}

func gameKey(userID int64) string {
	return "ms:game:" + strconv.FormatInt(userID, 10)
}

func lockKey(userID int64) string {
	return "ms:lock:" + strconv.FormatInt(userID, 10)
}
