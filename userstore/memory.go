package userstore

import (
	"context"
	"sync"

	"github.com/kynelabs/authkeep/identity"
)

// MemoryBackend is an in-process Backend for tests and single-node
// deployments.
type MemoryBackend struct {
	mu    sync.RWMutex
	users map[string]User
}

// NewMemoryBackend returns an empty in-memory Backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{users: make(map[string]User)}
}

// Insert implements Backend. The check and the write happen under one lock,
// giving the insert-if-absent atomicity the uniqueness invariant needs.
func (b *MemoryBackend) Insert(_ context.Context, user User) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.users[user.Email.String()]; ok {
		return ErrUserExists
	}
	b.users[user.Email.String()] = user
	return nil
}

// Get implements Backend.
func (b *MemoryBackend) Get(_ context.Context, email identity.Email) (User, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	user, ok := b.users[email.String()]
	if !ok {
		return User{}, ErrUserNotFound
	}
	return user, nil
}

// UpdatePasswordHash implements Backend.
func (b *MemoryBackend) UpdatePasswordHash(_ context.Context, email identity.Email, hash string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	user, ok := b.users[email.String()]
	if !ok {
		return ErrUserNotFound
	}
	user.PasswordHash = hash
	b.users[email.String()] = user
	return nil
}

// Delete implements Backend.
func (b *MemoryBackend) Delete(_ context.Context, email identity.Email) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.users[email.String()]; !ok {
		return ErrUserNotFound
	}
	delete(b.users, email.String())
	return nil
}

// Len reports the number of stored records. Test helper.
func (b *MemoryBackend) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.users)
}
