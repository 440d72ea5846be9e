package kvstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps documents in Redis. Documents are small enough that
// plain string values are fine; keys are already versioned by the
// caller, so no TTL is set.
type RedisStore struct {
	Client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{Client: client}
}

func (s *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	if s.Client == nil {
		return "", false, errors.New("document store: redis client is nil")
	}

	if key == "" {
		return "", false, errors.New("get document: key must not be empty")
	}

	body, err := s.Client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get document key=%q: %w", key, err)
	}

	return body, true, nil
}

func (s *RedisStore) Set(ctx context.Context, key, value string) error {
	if s.Client == nil {
		return errors.New("document store: redis client is nil")
	}

	if key == "" {
		return errors.New("set document: key must not be empty")
	}

	if err := s.Client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("set document key=%q: %w", key, err)
	}

	return nil
}
