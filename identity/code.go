package identity

import (
	"crypto/rand"
	"errors"
	"math/big"
)

// ErrInvalidCode is returned when a code is not exactly six decimal digits.
var ErrInvalidCode = errors.New("invalid two-factor code format")

const codeDigits = 6

// TwoFaCode is a six-digit numeric one-time code delivered out-of-band
// during a two-factor login.
type TwoFaCode struct {
	code string
}

var ten = big.NewInt(10)

// NewTwoFaCode draws six digits, each uniform over 0-9, from crypto/rand.
func NewTwoFaCode() (TwoFaCode, error) {
	buf := make([]byte, 0, codeDigits)
	for i := 0; i < codeDigits; i++ {
		n, err := rand.Int(rand.Reader, ten)
		if err != nil {
			return TwoFaCode{}, err
		}
		buf = append(buf, byte('0'+n.Int64()))
	}
	return TwoFaCode{code: string(buf)}, nil
}

// ParseTwoFaCode format-checks an incoming code before it reaches any store
// comparison.
func ParseTwoFaCode(raw string) (TwoFaCode, error) {
	if len(raw) != codeDigits {
		return TwoFaCode{}, ErrInvalidCode
	}
	for i := 0; i < len(raw); i++ {
		if raw[i] < '0' || raw[i] > '9' {
			return TwoFaCode{}, ErrInvalidCode
		}
	}
	return TwoFaCode{code: raw}, nil
}

// String returns the six digits.
func (c TwoFaCode) String() string {
	return c.code
}

// Equal compares two codes.
func (c TwoFaCode) Equal(other TwoFaCode) bool {
	return c.code == other.code
}
