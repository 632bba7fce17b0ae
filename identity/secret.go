package identity

// Secret is an opaque holder for sensitive string material (passwords,
// signing keys, API tokens). The wrapped value is reachable only through
// Expose, so accidental logging or JSON serialization yields a redacted
// placeholder instead of the secret itself.
type Secret struct {
	value string
}

// NewSecret wraps raw secret material.
func NewSecret(value string) Secret {
	return Secret{value: value}
}

// Expose returns the wrapped value for use in a cryptographic primitive.
func (s Secret) Expose() string {
	return s.value
}

// IsZero reports whether the holder carries no material.
func (s Secret) IsZero() bool {
	return s.value == ""
}

// String implements fmt.Stringer with a redacted placeholder.
func (s Secret) String() string {
	return "Secret(*REDACTED*)"
}

// GoString implements fmt.GoStringer so %#v never prints the value.
func (s Secret) GoString() string {
	return s.String()
}

// MarshalJSON always emits a redacted placeholder.
func (s Secret) MarshalJSON() ([]byte, error) {
	return []byte(`"*REDACTED*"`), nil
}
