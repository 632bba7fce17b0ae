package revocation

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultRedisPrefix = "banned_token"

// RedisStore is a Store backed by a Redis keyspace with native per-key TTL.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
}

// NewRedisStore returns a Store over client. prefix defaults to
// "banned_token" when empty.
func NewRedisStore(client redis.UniversalClient, prefix string) *RedisStore {
	if prefix == "" {
		prefix = defaultRedisPrefix
	}
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) key(token string) string {
	return s.prefix + ":" + token
}

// Ban implements Store. A non-positive ttl means the token is already past
// its natural expiry and nothing needs recording.
func (s *RedisStore) Ban(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := s.client.Set(ctx, s.key(token), "1", ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrBackend, err)
	}
	return nil
}

// IsBanned implements Store.
func (s *RedisStore) IsBanned(ctx context.Context, token string) (bool, error) {
	n, err := s.client.Exists(ctx, s.key(token)).Result()
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrBackend, err)
	}
	return n > 0, nil
}
