package challenge

import (
	"context"
	"sync"
	"time"

	"github.com/kynelabs/authkeep/identity"
)

type memoryRecord struct {
	attemptID identity.AttemptID
	code      identity.TwoFaCode
	expiresAt time.Time
}

// MemoryStore is an in-process Store for tests and single-node deployments.
// An entry past its expiry reports ErrNotFound even while still physically
// present; removal happens lazily.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]memoryRecord
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryStore returns an empty in-memory Store with the given challenge
// lifetime.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		records: make(map[string]memoryRecord),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Store implements Store.
func (s *MemoryStore) Store(_ context.Context, email identity.Email, attemptID identity.AttemptID, code identity.TwoFaCode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[email.String()] = memoryRecord{
		attemptID: attemptID,
		code:      code,
		expiresAt: s.now().Add(s.ttl),
	}
	return nil
}

// Peek implements Store.
func (s *MemoryStore) Peek(_ context.Context, email identity.Email) (identity.AttemptID, identity.TwoFaCode, error) {
	s.mu.RLock()
	rec, ok := s.records[email.String()]
	s.mu.RUnlock()
	if !ok || s.now().After(rec.expiresAt) {
		return identity.AttemptID{}, identity.TwoFaCode{}, ErrNotFound
	}
	return rec.attemptID, rec.code, nil
}

// Validate implements Store.
func (s *MemoryStore) Validate(ctx context.Context, email identity.Email, attemptID identity.AttemptID, code identity.TwoFaCode) error {
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
func (s *MemoryStore) Delete(_ context.Context, email identity.Email) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[email.String()]
	if !ok {
		return ErrNotFound
	}
	delete(s.records, email.String())
	if s.now().After(rec.expiresAt) {
		return ErrNotFound
	}
	return nil
}
