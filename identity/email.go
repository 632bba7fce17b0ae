package identity

import (
	"errors"
	"regexp"
)

// ErrInvalidEmail is returned when an address does not match the accepted grammar.
var ErrInvalidEmail = errors.New("invalid email address")

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Email is a validated email address. Equality is case-sensitive on the
// stored form; an Email is immutable once constructed and serves as the
// primary key for users, challenges, and token subjects.
type Email struct {
	address string
}

// ParseEmail validates an address against the accepted grammar.
func ParseEmail(address string) (Email, error) {
	if !emailPattern.MatchString(address) {
		return Email{}, ErrInvalidEmail
	}
	return Email{address: address}, nil
}

// String returns the address. Email addresses are identifiers, not secrets.
func (e Email) String() string {
	return e.address
}

// IsZero reports whether the value was never constructed through ParseEmail.
func (e Email) IsZero() bool {
	return e.address == ""
}
