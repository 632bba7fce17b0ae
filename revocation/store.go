package revocation

import (
	"context"
	"errors"
	"time"
)

// ErrBackend wraps storage failures from a concrete implementation.
var ErrBackend = errors.New("revocation backend unavailable")

// Store records banned tokens with per-entry expiry. Implementations must be
// safe for concurrent use, and a Ban must be visible to every subsequent
// IsBanned call on the same instance.
type Store interface {
	// Ban records token as revoked for ttl, after which the entry may be
	// dropped (the token's own expiry check makes it moot).
	Ban(ctx context.Context, token string, ttl time.Duration) error

	// IsBanned reports whether token has a live revocation entry. Absence,
	// including after natural expiry, means not banned.
	IsBanned(ctx context.Context, token string) (bool, error)
}
