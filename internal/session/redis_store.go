package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"minesweeper_webapp/internal/game"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps serialized games under ms:game:<userID> with a sliding TTL.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Load(ctx context.Context, userID int64) (*game.State, error) {
	blob, err := s.client.Get(ctx, gameKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNoGame
	}
	if err != nil {
		return nil, fmt.Errorf("load game: %w", err)
	}

	st, err := game.Unmarshal(blob)
	if err != nil {
		return nil, fmt.Errorf("load game: %w", err)
	}
	return st, nil
}

func (s *RedisStore) Save(ctx context.Context, userID int64, st *game.State) error {
	blob, err := game.Marshal(st)
	if err != nil {
		return fmt.Errorf("save game: %w", err)
	}
	if err := s.client.Set(ctx, gameKey(userID), blob, s.ttl).Err(); err != nil {
		return fmt.Errorf("save game: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, userID int64) error {
	return s.client.Del(ctx, gameKey(userID)).Err()
}
