package identity

import "errors"

// ErrInvalidPassword is returned when a password is shorter than the minimum length.
var ErrInvalidPassword = errors.New("password must be at least 8 characters")

const minPasswordLength = 8

// Password is a validated plaintext password. It wraps a Secret so the raw
// value never appears in logs or serialized output; callers compare passwords
// only through the hashing scheme, never by raw equality.
type Password struct {
	secret Secret
}

// ParsePassword validates the minimum length requirement.
func ParsePassword(raw string) (Password, error) {
	if len(raw) < minPasswordLength {
		return Password{}, ErrInvalidPassword
	}
	return Password{secret: NewSecret(raw)}, nil
}

// Expose returns the plaintext for hashing or verification.
func (p Password) Expose() string {
	return p.secret.Expose()
}

// String implements fmt.Stringer with a redacted placeholder.
func (p Password) String() string {
	return "Password(*REDACTED*)"
}

// GoString implements fmt.GoStringer so %#v never prints the value.
func (p Password) GoString() string {
	return p.String()
}

// MarshalJSON always emits a redacted placeholder.
func (p Password) MarshalJSON() ([]byte, error) {
	return []byte(`"*REDACTED*"`), nil
}
