package authkeep

import "errors"

var (
	// ErrInvalidInput is returned when an email, password, code, or attempt
	// id fails format validation before any store is touched.
	ErrInvalidInput = errors.New("invalid input")
	// ErrUserExists is returned when registration targets an email that is
	// already taken.
	ErrUserExists = errors.New("user already exists")
	// ErrInvalidCredentials is returned for both an unknown user and a wrong
	// password. The two stay distinct internally; collapsing them here keeps
	// login failures from enumerating accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrTwoFactorInvalid is returned when a challenge is missing, expired,
	// consumed, or presented with a mismatched attempt id or code.
	ErrTwoFactorInvalid = errors.New("invalid two-factor attempt")
	// ErrMissingToken is returned when an operation requires a token and
	// none was presented.
	ErrMissingToken = errors.New("missing token")
	// ErrUnauthorized is returned when a presented token fails verification:
	// bad signature, expired, banned, or wrong tier.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrEngineNotReady is returned when an Engine method is called on a nil
	// or unbuilt engine.
	ErrEngineNotReady = errors.New("engine not initialized")
)
