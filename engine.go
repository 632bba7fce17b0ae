package authkeep

import (
	"context"
	"errors"
	"fmt"

	"github.com/kynelabs/authkeep/challenge"
	"github.com/kynelabs/authkeep/identity"
	"github.com/kynelabs/authkeep/internal/logger"
	"github.com/kynelabs/authkeep/notify"
	"github.com/kynelabs/authkeep/token"
	"github.com/kynelabs/authkeep/userstore"
)

// Engine is the authentication orchestrator. All methods are safe for
// concurrent use; the engine itself holds no per-request state.
type Engine struct {
	config     Config
	users      *userstore.Credentials
	challenges challenge.Store
	tokens     *token.Manager
	notifier   notify.Notifier
	metrics    *Metrics
	log        *logger.Logger
}

func (e *Engine) ready() error {
	if e == nil || e.users == nil || e.tokens == nil {
		return ErrEngineNotReady
	}
	return nil
}

// Metrics exposes the counter snapshot. Returns an empty map when metrics
// are disabled.
func (e *Engine) Metrics() map[MetricID]uint64 {
	if e == nil {
		return map[MetricID]uint64{}
	}
	return e.metrics.Snapshot()
}

/*
====================================
REGISTRATION
====================================
*/

// Register validates the email and password, hashes the password, and
// creates the user record. requiresTwoFactor fixes at registration time
// whether logins for this user demand an out-of-band code.
func (e *Engine) Register(ctx context.Context, email, password string, requiresTwoFactor bool) error {
	if err := e.ready(); err != nil {
		return err
	}

	addr, err := identity.ParseEmail(email)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	pass, err := identity.ParsePassword(password)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := e.users.Register(ctx, addr, pass, requiresTwoFactor); err != nil {
		if errors.Is(err, userstore.ErrUserExists) {
			e.metrics.Inc(MetricRegisterConflict)
			return ErrUserExists
		}
		e.log.Error("register user", "error", err)
		return fmt.Errorf("register user: %w", err)
	}

	e.metrics.Inc(MetricRegisterSuccess)
	e.log.Info("user registered", "email", addr.String(), "two_factor", requiresTwoFactor)
	return nil
}

/*
====================================
LOGIN
====================================
*/

// Login verifies credentials. Users without a second factor get a standard
// token directly. Users with one get a fresh challenge: the code goes out
// through the notifier and the caller receives only the attempt id; no token
// exists until VerifyTwoFactor succeeds.
//
// Unknown email and wrong password both come back as ErrInvalidCredentials.
func (e *Engine) Login(ctx context.Context, email, password string) (LoginResult, error) {
	if err := e.ready(); err != nil {
		return LoginResult{}, err
	}

	addr, err := identity.ParseEmail(email)
	if err != nil {
		return LoginResult{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	pass, err := identity.ParsePassword(password)
	if err != nil {
		return LoginResult{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	user, err := e.users.Authenticate(ctx, addr, pass)
	if err != nil {
		if errors.Is(err, userstore.ErrUserNotFound) || errors.Is(err, userstore.ErrIncorrectPassword) {
			e.metrics.Inc(MetricLoginFailure)
			return LoginResult{}, ErrInvalidCredentials
		}
		e.log.Error("authenticate user", "error", err)
		return LoginResult{}, fmt.Errorf("authenticate user: %w", err)
	}

	if user.TwoFactorRequired {
		return e.beginTwoFactor(ctx, user.Email)
	}

	tok, err := e.tokens.Issue(token.TierStandard, user.Email)
	if err != nil {
		e.log.Error("issue session token", "error", err)
		return LoginResult{}, fmt.Errorf("issue session token: %w", err)
	}

	e.metrics.Inc(MetricLoginSuccess)
	e.log.Info("user logged in", "email", user.Email.String())
	return LoginResult{Token: tok}, nil
}

// beginTwoFactor creates a fresh challenge, stores it (replacing any prior
// one for the email), and sends the code. The attempt id is the only thing
// handed back in-band.
func (e *Engine) beginTwoFactor(ctx context.Context, email identity.Email) (LoginResult, error) {
	if e.notifier == nil {
		return LoginResult{}, errors.New("two-factor login requires a notifier")
	}

	attemptID := identity.NewAttemptID()
	code, err := identity.NewTwoFaCode()
	if err != nil {
		e.log.Error("generate two-factor code", "error", err)
		return LoginResult{}, fmt.Errorf("generate two-factor code: %w", err)
	}

	if err := e.challenges.Store(ctx, email, attemptID, code); err != nil {
		e.log.Error("store two-factor challenge", "error", err)
		return LoginResult{}, fmt.Errorf("store two-factor challenge: %w", err)
	}

	if err := e.notifier.SendCode(ctx, email, code); err != nil {
		e.log.Error("send two-factor code", "error", err)
		return LoginResult{}, fmt.Errorf("send two-factor code: %w", err)
	}

	e.metrics.Inc(MetricTwoFactorIssued)
	e.log.Info("two-factor challenge issued", "email", email.String(), "attempt_id", attemptID.String())
	return LoginResult{TwoFactorRequired: true, AttemptID: attemptID}, nil
}

/*
====================================
TWO-FACTOR VERIFICATION
====================================
*/

// VerifyTwoFactor completes a pending two-factor login. The attempt id must
// match the live challenge and the code must match the one sent. A
// successful verification consumes the challenge before a token is issued,
// so a code is never good twice.
func (e *Engine) VerifyTwoFactor(ctx context.Context, email, attemptID, code string) (string, error) {
	if err := e.ready(); err != nil {
		return "", err
	}

	addr, err := identity.ParseEmail(email)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	attempt, err := identity.ParseAttemptID(attemptID)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	twoFaCode, err := identity.ParseTwoFaCode(code)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := e.challenges.Validate(ctx, addr, attempt, twoFaCode); err != nil {
		switch {
		case errors.Is(err, challenge.ErrNotFound),
			errors.Is(err, challenge.ErrAttemptMismatch),
			errors.Is(err, challenge.ErrCodeMismatch):
			e.metrics.Inc(MetricTwoFactorFailure)
			return "", ErrTwoFactorInvalid
		}
		e.log.Error("validate two-factor challenge", "error", err)
		return "", fmt.Errorf("validate two-factor challenge: %w", err)
	}

	if err := e.challenges.Delete(ctx, addr); err != nil {
		// A concurrent verification won the race to consume the challenge.
		if errors.Is(err, challenge.ErrNotFound) {
			e.metrics.Inc(MetricTwoFactorFailure)
			return "", ErrTwoFactorInvalid
		}
		e.log.Error("consume two-factor challenge", "error", err)
		return "", fmt.Errorf("consume two-factor challenge: %w", err)
	}

	tok, err := e.tokens.Issue(token.TierStandard, addr)
	if err != nil {
		e.log.Error("issue session token", "error", err)
		return "", fmt.Errorf("issue session token: %w", err)
	}

	e.metrics.Inc(MetricTwoFactorSuccess)
	e.log.Info("two-factor login completed", "email", addr.String())
	return tok, nil
}
