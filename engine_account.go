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
ACCOUNT OPERATIONS
====================================
*/

// ChangePassword replaces the caller's password. It requires a live
// elevated token; the new password is validated and hashed with a fresh
// salt. When Password.RevokeOnChange is set the presented elevated token is
// banned afterwards, otherwise it survives until its natural expiry.
func (e *Engine) ChangePassword(ctx context.Context, elevatedToken, newPassword string) error {
	if err := e.ready(); err != nil {
		return err
	}

	addr, err := e.VerifyElevated(ctx, elevatedToken)
	if err != nil {
		return err
	}

	pass, err := identity.ParsePassword(newPassword)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := e.users.SetPassword(ctx, addr, pass); err != nil {
		if errors.Is(err, userstore.ErrUserNotFound) {
			// Record deleted between token issuance and now.
			return ErrUnauthorized
		}
		e.log.Error("update password", "error", err)
		return fmt.Errorf("update password: %w", err)
	}

	if e.config.Password.RevokeOnChange {
		if err := e.tokens.Revoke(ctx, token.TierElevated, elevatedToken); err != nil {
			e.log.Error("revoke elevated token after password change", "error", err)
		} else {
			e.metrics.Inc(MetricTokenRevoked)
		}
	}

	e.metrics.Inc(MetricPasswordChange)
	e.log.Info("password changed", "email", addr.String())
	return nil
}

// DeleteAccount removes the caller's record. It requires a live elevated
// token, which is banned afterwards so it cannot outlive the account.
func (e *Engine) DeleteAccount(ctx context.Context, elevatedToken string) error {
	if err := e.ready(); err != nil {
		return err
	}

	addr, err := e.VerifyElevated(ctx, elevatedToken)
	if err != nil {
		return err
	}

	if err := e.users.Delete(ctx, addr); err != nil {
		if errors.Is(err, userstore.ErrUserNotFound) {
			return ErrUnauthorized
		}
		e.log.Error("delete account", "error", err)
		return fmt.Errorf("delete account: %w", err)
	}

	if err := e.tokens.Revoke(ctx, token.TierElevated, elevatedToken); err != nil {
		e.log.Error("revoke elevated token after account deletion", "error", err)
	} else {
		e.metrics.Inc(MetricTokenRevoked)
	}

	e.metrics.Inc(MetricAccountDeleted)
	e.log.Info("account deleted", "email", addr.String())
	return nil
}

// Logout revokes the presented tokens for their remaining lifetimes. Either
// token may be empty; revoking an already invalid or expired token is not an
// error. Both revocations are attempted even when the first fails.
func (e *Engine) Logout(ctx context.Context, sessionToken, elevatedToken string) error {
	if err := e.ready(); err != nil {
		return err
	}
	if sessionToken == "" && elevatedToken == "" {
		return ErrMissingToken
	}

	var failures []error
	revoke := func(tier token.Tier, tok string) {
		if tok == "" {
			return
		}
		err := e.tokens.Revoke(ctx, tier, tok)
		switch {
		case err == nil:
			e.metrics.Inc(MetricTokenRevoked)
		case errors.Is(err, token.ErrTokenInvalid):
			// Expired or garbage tokens need no ban entry.
		default:
			e.log.Error("revoke token on logout", "tier", tier.String(), "error", err)
			failures = append(failures, fmt.Errorf("revoke %s token: %w", tier, err))
		}
	}

	revoke(token.TierStandard, sessionToken)
	revoke(token.TierElevated, elevatedToken)

	if err := errors.Join(failures...); err != nil {
		return err
	}

	e.metrics.Inc(MetricLogout)
	return nil
}
