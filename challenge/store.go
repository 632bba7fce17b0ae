package challenge

import (
	"context"
	"errors"

	"github.com/kynelabs/authkeep/identity"
)

var (
	// ErrNotFound is returned when no live challenge exists for an email,
	// whether never stored, already consumed, or expired.
	ErrNotFound = errors.New("two-factor challenge not found")
	// ErrAttemptMismatch is returned when the presented attempt id differs
	// from the stored one. Checked before the code, so a stale login attempt
	// is reported as a mismatched attempt rather than a wrong code.
	ErrAttemptMismatch = errors.New("two-factor attempt id mismatch")
	// ErrCodeMismatch is returned when the attempt id matches but the code
	// does not.
	ErrCodeMismatch = errors.New("two-factor code mismatch")
	// ErrBackend wraps storage failures from a concrete implementation.
	ErrBackend = errors.New("two-factor challenge backend unavailable")
)

// Store owns pending two-factor challenges, keyed by email. Implementations
// must be safe for concurrent use and enforce last-write-wins per email.
type Store interface {
	// Store records a challenge for email, atomically replacing any prior one.
	Store(ctx context.Context, email identity.Email, attemptID identity.AttemptID, code identity.TwoFaCode) error

	// Peek reads the live challenge without consuming it.
	Peek(ctx context.Context, email identity.Email) (identity.AttemptID, identity.TwoFaCode, error)

	// Validate compares the presented pair against the stored one: attempt id
	// first, then code. It does not consume the challenge.
	Validate(ctx context.Context, email identity.Email, attemptID identity.AttemptID, code identity.TwoFaCode) error

	// Delete consumes the challenge. Callers delete immediately after a
	// successful Validate so a code cannot be replayed.
	Delete(ctx context.Context, email identity.Email) error
}
