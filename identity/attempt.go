package identity

import (
	"errors"

	"github.com/google/uuid"
)

// ErrInvalidAttemptID is returned when an attempt identifier is not a valid UUID.
var ErrInvalidAttemptID = errors.New("invalid login attempt id")

// AttemptID identifies one in-flight two-factor login attempt. A fresh ID is
// minted per login; presenting a stale ID after a newer login attempt fails
// validation even with the right code.
type AttemptID struct {
	id uuid.UUID
}

// NewAttemptID mints a random 128-bit attempt identifier.
func NewAttemptID() AttemptID {
	return AttemptID{id: uuid.New()}
}

// ParseAttemptID validates an incoming identifier.
func ParseAttemptID(raw string) (AttemptID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return AttemptID{}, ErrInvalidAttemptID
	}
	return AttemptID{id: id}, nil
}

// String returns the canonical UUID form.
func (a AttemptID) String() string {
	return a.id.String()
}

// Equal compares two attempt identifiers.
func (a AttemptID) Equal(other AttemptID) bool {
	return a.id == other.id
}
