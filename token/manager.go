package token

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/kynelabs/authkeep/identity"
	"github.com/kynelabs/authkeep/revocation"
)

var (
	// ErrTokenInvalid is returned when a token fails the signature or expiry
	// check for the requested tier, or is malformed.
	ErrTokenInvalid = errors.New("invalid token")
	// ErrTokenBanned is returned when a token passes the signature and expiry
	// check but has a live revocation entry.
	ErrTokenBanned = errors.New("token is banned")
)

// Tier selects one of the two independent signing contexts.
type Tier uint8

const (
	// TierStandard is the ordinary session tier.
	TierStandard Tier = iota
	// TierElevated is the short-lived tier for sensitive operations.
	TierElevated
)

// String names the tier for logs.
func (t Tier) String() string {
	switch t {
	case TierStandard:
		return "standard"
	case TierElevated:
		return "elevated"
	default:
		return "unknown"
	}
}

// TierConfig parameterizes one signing context.
type TierConfig struct {
	Secret identity.Secret
	TTL    time.Duration
}

// Claims is the signed payload: subject email and expiry, nothing else.
type Claims struct {
	jwt.RegisteredClaims
}

// Email parses the subject claim back into an identity value.
func (c *Claims) Email() (identity.Email, error) {
	return identity.ParseEmail(c.Subject)
}

// Manager owns the two signing contexts and a reference to the revocation
// store. It holds no persistent state of its own.
type Manager struct {
	tiers  [2]TierConfig
	banned revocation.Store
	now    func() time.Time
}

// NewManager validates both tier configurations. The secrets must be
// non-empty and disjoint; sharing one would collapse the tier isolation
// invariant.
func NewManager(standard, elevated TierConfig, banned revocation.Store) (*Manager, error) {
	if standard.Secret.IsZero() || elevated.Secret.IsZero() {
		return nil, errors.New("both tier secrets are required")
	}
	if standard.Secret.Expose() == elevated.Secret.Expose() {
		return nil, errors.New("tier secrets must be disjoint")
	}
	if standard.TTL <= 0 || elevated.TTL <= 0 {
		return nil, errors.New("tier TTLs must be positive")
	}
	if banned == nil {
		return nil, errors.New("revocation store is required")
	}
	return &Manager{
		tiers:  [2]TierConfig{TierStandard: standard, TierElevated: elevated},
		banned: banned,
		now:    time.Now,
	}, nil
}

func (m *Manager) tier(t Tier) (TierConfig, error) {
	if int(t) >= len(m.tiers) {
		return TierConfig{}, fmt.Errorf("unknown tier %d", t)
	}
	return m.tiers[t], nil
}

// Issue signs a token for email under the tier's secret with expiry at
// now + TTL. Expiry arithmetic that wraps is an error, never a silently
// truncated timestamp.
func (m *Manager) Issue(tier Tier, email identity.Email) (string, error) {
	cfg, err := m.tier(tier)
	if err != nil {
		return "", err
	}

	now := m.now()
	expiresAt := now.Add(cfg.TTL)
	if !expiresAt.After(now) {
		return "", errors.New("token expiry arithmetic overflow")
	}

	return m.sign(cfg, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email.String(),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})
}

// Verify checks signature and expiry against the tier's secret, then
// consults the revocation store on the canonical signed string for the
// verified claims. The ordering is deliberate: garbage tokens never reach
// the store.
func (m *Manager) Verify(ctx context.Context, tier Tier, tokenStr string) (*Claims, error) {
	cfg, err := m.tier(tier)
	if err != nil {
		return nil, err
	}

	claims, err := m.parse(cfg, tokenStr)
	if err != nil {
		return nil, ErrTokenInvalid
	}

	canonical, err := m.sign(cfg, claims)
	if err != nil {
		return nil, fmt.Errorf("re-derive canonical token: %w", err)
	}
	banned, err := m.banned.IsBanned(ctx, canonical)
	if err != nil {
		return nil, err
	}
	if banned {
		return nil, ErrTokenBanned
	}

	return claims, nil
}

// Revoke bans a currently valid token for exactly its remaining lifetime.
// There is no un-ban: revocation is monotonic until the token's natural
// expiry makes the entry moot.
func (m *Manager) Revoke(ctx context.Context, tier Tier, tokenStr string) error {
	cfg, err := m.tier(tier)
	if err != nil {
		return err
	}

	claims, err := m.parse(cfg, tokenStr)
	if err != nil {
		return ErrTokenInvalid
	}

	canonical, err := m.sign(cfg, claims)
	if err != nil {
		return fmt.Errorf("re-derive canonical token: %w", err)
	}

	remaining := claims.ExpiresAt.Time.Sub(m.now())
	return m.banned.Ban(ctx, canonical, remaining)
}

func (m *Manager) sign(cfg TierConfig, claims *Claims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.Secret.Expose()))
}

func (m *Manager) parse(cfg TierConfig, tokenStr string) (*Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)

	parsed, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(cfg.Secret.Expose()), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.ExpiresAt == nil {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}
