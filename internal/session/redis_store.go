package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "session:"

// RedisStore keeps session tokens in Redis so they survive process restarts.
// Tokens have no TTL; the upstream endpoint decides when a token expires and
// the bootstrap falls back to a fresh login when it does.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context, userID string) (string, error) {
	val, err := s.client.Get(ctx, keyPrefix+userID).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("session get: %w", err)
	}
	return val, nil
}

func (s *RedisStore) Set(ctx context.Context, userID, token string) error {
	if token == "" {
		if err := s.client.Del(ctx, keyPrefix+userID).Err(); err != nil {
			return fmt.Errorf("session clear: %w", err)
		}
		return nil
	}
	if err := s.client.Set(ctx, keyPrefix+userID, token, 0).Err(); err != nil {
		return fmt.Errorf("session set: %w", err)
	}
	return nil
}
