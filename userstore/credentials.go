package userstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/kynelabs/authkeep/identity"
)

// Hasher is the slice of the password pool the credential store needs.
// Hashing and verification are CPU-heavy; implementations dispatch off the
// request-handling goroutine.
type Hasher interface {
	Hash(ctx context.Context, password identity.Password) (string, error)
	Verify(ctx context.Context, password identity.Password, encodedHash string) (bool, error)
}

// Credentials is the credential store: a record Backend plus the hashing
// integration. It is the sole writer of user records.
type Credentials struct {
	backend Backend
	hasher  Hasher
}

// NewCredentials wires a record backend to a hasher.
func NewCredentials(backend Backend, hasher Hasher) (*Credentials, error) {
	if backend == nil {
		return nil, errors.New("credentials require a backend")
	}
	if hasher == nil {
		return nil, errors.New("credentials require a hasher")
	}
	return &Credentials{backend: backend, hasher: hasher}, nil
}

// Register hashes the password with a fresh salt and inserts the record.
// Fails with ErrUserExists when the email is taken.
func (c *Credentials) Register(ctx context.Context, email identity.Email, password identity.Password, requiresTwoFactor bool) error {
	hash, err := c.hasher.Hash(ctx, password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return c.backend.Insert(ctx, User{
		Email:             email,
		PasswordHash:      hash,
		RequiresTwoFactor: requiresTwoFactor,
	})
}

// Authenticate looks the user up and verifies the password against the
// stored hash. ErrUserNotFound and ErrIncorrectPassword stay distinct here
// for classification; the orchestrator collapses them before anything
// user-visible.
func (c *Credentials) Authenticate(ctx context.Context, email identity.Email, password identity.Password) (ValidatedUser, error) {
	user, err := c.backend.Get(ctx, email)
	if err != nil {
		return ValidatedUser{}, err
	}

	ok, err := c.hasher.Verify(ctx, password, user.PasswordHash)
	if err != nil {
		return ValidatedUser{}, fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		return ValidatedUser{}, ErrIncorrectPassword
	}

	return ValidatedUser{
		Email:             user.Email,
		TwoFactorRequired: user.RequiresTwoFactor,
	}, nil
}

// SetPassword replaces the stored hash wholesale. Tier enforcement (elevated
// token required) belongs to the orchestrator, not here.
func (c *Credentials) SetPassword(ctx context.Context, email identity.Email, newPassword identity.Password) error {
	hash, err := c.hasher.Hash(ctx, newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return c.backend.UpdatePasswordHash(ctx, email, hash)
}

// Delete removes the user record.
func (c *Credentials) Delete(ctx context.Context, email identity.Email) error {
	return c.backend.Delete(ctx, email)
}
