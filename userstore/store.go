package userstore

import (
	"context"
	"errors"

	"github.com/kynelabs/authkeep/identity"
)

var (
	// ErrUserExists is returned when registration targets an email that
	// already has a record.
	ErrUserExists = errors.New("user already exists")
	// ErrUserNotFound is returned when no record exists for an email.
	ErrUserNotFound = errors.New("user not found")
	// ErrIncorrectPassword is returned when the record exists but the
	// password does not verify against the stored hash.
	ErrIncorrectPassword = errors.New("incorrect password")
	// ErrBackend wraps storage failures from a concrete implementation.
	ErrBackend = errors.New("user backend unavailable")
)

// User is a persisted user record. The hash is produced once at registration
// and replaced wholesale on password change.
type User struct {
	Email             identity.Email
	PasswordHash      string
	RequiresTwoFactor bool
}

// ValidatedUser is the ephemeral result of successful credential
// verification, handed to the orchestrator and never persisted.
type ValidatedUser struct {
	Email             identity.Email
	TwoFactorRequired bool
}

// Backend persists user records, keyed uniquely by email. Implementations
// must be safe for concurrent use and enforce insert-if-absent atomically.
type Backend interface {
	// Insert persists a new record, failing with ErrUserExists when the
	// email is already taken.
	Insert(ctx context.Context, user User) error

	// Get returns the record for email or ErrUserNotFound.
	Get(ctx context.Context, email identity.Email) (User, error)

	// UpdatePasswordHash replaces the stored hash wholesale.
	UpdatePasswordHash(ctx context.Context, email identity.Email, hash string) error

	// Delete removes the record or returns ErrUserNotFound.
	Delete(ctx context.Context, email identity.Email) error
}
