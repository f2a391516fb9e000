package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type redisSessionStore struct {
	rdb *redis.Client
}

func NewRedisSessionStore(rdb *redis.Client) SessionStore {
	return &redisSessionStore{rdb: rdb}
}

func sessionKey(sessionID, key string) string {
	return fmt.Sprintf("session:%s:%s", sessionID, key)
}

func (s *redisSessionStore) Get(ctx context.Context, sessionID, key string) (string, bool, error) {
	val, err := s.rdb.Get(ctx, sessionKey(sessionID, key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}

	return val, true, nil
}

func (s *redisSessionStore) Set(ctx context.Context, sessionID, key, value string, ttl time.Duration) error {
	return s.rdb.Set(ctx, sessionKey(sessionID, key), value, ttl).Err()
}

func (s *redisSessionStore) Delete(ctx context.Context, sessionID string, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	redisKeys := make([]string, len(keys))
	for i, key := range keys {
		redisKeys[i] = sessionKey(sessionID, key)
	}
	return s.rdb.Del(ctx, redisKeys...).Err()
}

// PurgeExpired is a no-op: redis expires keys on its own.
func (s *redisSessionStore) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	return 0, nil
}
