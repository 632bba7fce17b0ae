package revocation

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is an in-process Store for tests and single-node deployments.
// Expired entries are dropped lazily on access.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]time.Time
	now     func() time.Time
}

// NewMemoryStore returns an empty in-memory Store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]time.Time),
		now:     time.Now,
	}
}

// Ban implements Store.
func (s *MemoryStore) Ban(_ context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[token] = s.now().Add(ttl)
	return nil
}

// IsBanned implements Store.
func (s *MemoryStore) IsBanned(_ context.Context, token string) (bool, error) {
	s.mu.RLock()
	deadline, ok := s.entries[token]
	s.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if s.now().After(deadline) {
		s.mu.Lock()
		// Re-check under the write lock; a concurrent Ban may have renewed it.
		if d, ok := s.entries[token]; ok && s.now().After(d) {
			delete(s.entries, token)
		}
		s.mu.Unlock()
		return false, nil
	}
	return true, nil
}
