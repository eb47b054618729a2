package flags

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
)

const flagPrefix = "flags:"

// RedisStore keeps flags in Redis without expiry.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore wraps an initialised Redis client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := s.client.Get(ctx, flagPrefix+key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get flag %s: %w", key, err)
	}
	return v, true, nil
}

func (s *RedisStore) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, flagPrefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("failed to set flag %s: %w", key, err)
	}
	return nil
}
