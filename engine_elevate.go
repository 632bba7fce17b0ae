package authkeep

import (
	"context"
	"errors"
	"fmt"

	"github.com/kynelabs/authkeep/identity"
	"github.com/kynelabs/authkeep/token"
	"github.com/kynelabs/authkeep/userstore"
)

/*
====================================
TOKEN VERIFICATION AND ELEVATION
====================================
*/

// VerifySession checks a standard-tier token and returns the subject email.
// Signature failures, expiry, and revocation all collapse to
// ErrUnauthorized; an empty token is ErrMissingToken.
func (e *Engine) VerifySession(ctx context.Context, tokenStr string) (identity.Email, error) {
	return e.verifyTier(ctx, token.TierStandard, tokenStr)
}

// VerifyElevated checks an elevated-tier token and returns the subject
// email. A standard token presented here fails: the tiers share nothing.
func (e *Engine) VerifyElevated(ctx context.Context, tokenStr string) (identity.Email, error) {
	return e.verifyTier(ctx, token.TierElevated, tokenStr)
}

func (e *Engine) verifyTier(ctx context.Context, tier token.Tier, tokenStr string) (identity.Email, error) {
	if err := e.ready(); err != nil {
		return identity.Email{}, err
	}
	if tokenStr == "" {
		return identity.Email{}, ErrMissingToken
	}

	claims, err := e.tokens.Verify(ctx, tier, tokenStr)
	if err != nil {
		if errors.Is(err, token.ErrTokenInvalid) || errors.Is(err, token.ErrTokenBanned) {
			e.metrics.Inc(MetricVerifyFailure)
			return identity.Email{}, ErrUnauthorized
		}
		e.log.Error("verify token", "tier", tier.String(), "error", err)
		return identity.Email{}, fmt.Errorf("verify %s token: %w", tier, err)
	}

	addr, err := claims.Email()
	if err != nil {
		e.metrics.Inc(MetricVerifyFailure)
		return identity.Email{}, ErrUnauthorized
	}

	e.metrics.Inc(MetricVerifySuccess)
	return addr, nil
}

// Elevate exchanges a live standard token plus a fresh credential proof for
// a short-lived elevated token. The email must be the token's subject;
// elevation never crosses accounts.
func (e *Engine) Elevate(ctx context.Context, email, password, sessionToken string) (string, error) {
	if err := e.ready(); err != nil {
		return "", err
	}

	subject, err := e.VerifySession(ctx, sessionToken)
	if err != nil {
		return "", err
	}

	addr, err := identity.ParseEmail(email)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	pass, err := identity.ParsePassword(password)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if addr != subject {
		e.metrics.Inc(MetricElevateFailure)
		return "", ErrUnauthorized
	}

	if _, err := e.users.Authenticate(ctx, addr, pass); err != nil {
		if errors.Is(err, userstore.ErrUserNotFound) || errors.Is(err, userstore.ErrIncorrectPassword) {
			e.metrics.Inc(MetricElevateFailure)
			return "", ErrInvalidCredentials
		}
		e.log.Error("authenticate for elevation", "error", err)
		return "", fmt.Errorf("authenticate for elevation: %w", err)
	}

	tok, err := e.tokens.Issue(token.TierElevated, addr)
	if err != nil {
		e.log.Error("issue elevated token", "error", err)
		return "", fmt.Errorf("issue elevated token: %w", err)
	}

	e.metrics.Inc(MetricElevateSuccess)
	e.log.Info("elevated token issued", "email", addr.String())
	return tok, nil
}
