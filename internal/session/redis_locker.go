package session

import (
	"context"
	"fmt"
	"time"

	"minesweeper_webapp/internal/logger"

	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
)

// RedisLocker holds a redsync mutex per user so several app instances can
// share one Redis without interleaving moves on the same board.
type RedisLocker struct {
	locker *redsync.Redsync
	expiry time.Duration
}

func NewRedisLocker(client *redis.Client) *RedisLocker {
	pool := goredis.NewPool(client)
	return &RedisLocker{
		locker: redsync.New(pool),
		expiry: 5 * time.Second,
	}
}

func (l *RedisLocker) Lock(ctx context.Context, userID int64) (func(), error) {
	mutex := l.locker.NewMutex(lockKey(userID),
		redsync.WithExpiry(l.expiry),
		redsync.WithTries(50),
		redsync.WithRetryDelay(20*time.Millisecond),
	)
	if err := mutex.LockContext(ctx); err != nil {
		return nil, fmt.Errorf("lock game %d: %w", userID, err)
	}

	return func() {
		if _, err := mutex.Unlock(); err != nil {
			logger.Warn("failed to release game lock", "user_id", userID, "error", err)
		}
	}, nil
}
