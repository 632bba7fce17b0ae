package challenge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/kynelabs/authkeep/identity"
)

const defaultRedisPrefix = "two_fa_code"

type redisRecord struct {
	AttemptID string `json:"attempt_id"`
	Code      string `json:"code"`
}

// RedisStore is a Store backed by a Redis keyspace. The key TTL performs the
// expiry bookkeeping; SET on an existing key is the atomic overwrite.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// NewRedisStore returns a Store over client with the given challenge
// lifetime. prefix defaults to "two_fa_code" when empty.
func NewRedisStore(client redis.UniversalClient, prefix string, ttl time.Duration) *RedisStore {
	if prefix == "" {
		prefix = defaultRedisPrefix
	}
	return &RedisStore{client: client, prefix: prefix, ttl: ttl}
}

func (s *RedisStore) key(email identity.Email) string {
	return s.prefix + ":" + email.String()
}

// Store implements Store.
func (s *RedisStore) Store(ctx context.Context, email identity.Email, attemptID identity.AttemptID, code identity.TwoFaCode) error {
	payload, err := json.Marshal(redisRecord{
		AttemptID: attemptID.String(),
		Code:      code.String(),
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBackend, err)
	}
	if err := s.client.Set(ctx, s.key(email), payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrBackend, err)
	}
	return nil
}

// Peek implements Store.
func (s *RedisStore) Peek(ctx context.Context, email identity.Email) (identity.AttemptID, identity.TwoFaCode, error) {
	data, err := s.client.Get(ctx, s.key(email)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return identity.AttemptID{}, identity.TwoFaCode{}, ErrNotFound
		}
		return identity.AttemptID{}, identity.TwoFaCode{}, fmt.Errorf("%w: %v", ErrBackend, err)
	}

	var rec redisRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return identity.AttemptID{}, identity.TwoFaCode{}, fmt.Errorf("%w: %v", ErrBackend, err)
	}
	attemptID, err := identity.ParseAttemptID(rec.AttemptID)
	if err != nil {
		return identity.AttemptID{}, identity.TwoFaCode{}, fmt.Errorf("%w: corrupt attempt id", ErrBackend)
	}
	code, err := identity.ParseTwoFaCode(rec.Code)
	if err != nil {
		return identity.AttemptID{}, identity.TwoFaCode{}, fmt.Errorf("%w: corrupt code", ErrBackend)
	}
	return attemptID, code, nil
}

// Validate implements Store.
func (s *RedisStore) Validate(ctx context.Context, email identity.Email, attemptID identity.AttemptID, code identity.TwoFaCode) error {
	storedAttempt, storedCode, err := s.Peek(ctx, email)
	if err != nil {
		return err
	}
	if !storedAttempt.Equal(attemptID) {
		return ErrAttemptMismatch
	}
	if !storedCode.Equal(code) {
		return ErrCodeMismatch
	}
	return nil
}

// Delete implements Store.
func (s *RedisStore) Delete(ctx context.Context, email identity.Email) error {
	n, err := s.client.Del(ctx, s.key(email)).Result()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBackend, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
