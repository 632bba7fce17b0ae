package authkeep

import (
	"errors"
	"time"

	"github.com/kynelabs/authkeep/identity"
)

// Config parameterizes an Engine. It is constructed once at process start
// and passed into Build; nothing in the engine reads ambient state.
type Config struct {
	Token     TokenConfig
	Password  PasswordConfig
	Challenge ChallengeConfig
	Metrics   MetricsConfig
}

/*
====================================
TOKEN CONFIG
====================================
*/

// TokenConfig carries the two independent signing tiers and the revocation
// keyspace prefix.
type TokenConfig struct {
	// StandardSecret signs ordinary session tokens.
	StandardSecret identity.Secret
	// ElevatedSecret signs short-lived tokens for sensitive operations. It
	// must differ from StandardSecret.
	ElevatedSecret identity.Secret
	// StandardTTL is the standard-tier lifetime.
	StandardTTL time.Duration
	// ElevatedTTL is the elevated-tier lifetime, deliberately much shorter.
	ElevatedTTL time.Duration
	// RevocationRedisPrefix namespaces banned-token keys.
	RevocationRedisPrefix string
}

/*
====================================
PASSWORD CONFIG
====================================
*/

// PasswordConfig carries the Argon2id cost parameters (Memory in KiB) and
// the hashing-pool bound.
type PasswordConfig struct {
	Memory      uint32
	Time        uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
	// MaxConcurrentHashes bounds how many Argon2id operations run at once.
	MaxConcurrentHashes int64
	// RevokeOnChange revokes the presented elevated token after a successful
	// password change. Policy flag: deployments wanting the old token to
	// survive until its natural one-minute expiry leave this false.
	RevokeOnChange bool
}

/*
====================================
CHALLENGE CONFIG
====================================
*/

// ChallengeConfig carries the two-factor challenge lifetime and keyspace
// prefix.
type ChallengeConfig struct {
	// TTL is the window in which an issued code can be verified.
	TTL time.Duration
	// RedisPrefix namespaces challenge keys.
	RedisPrefix string
}

/*
====================================
METRICS CONFIG
====================================
*/

// MetricsConfig toggles the engine's internal counters.
type MetricsConfig struct {
	Enabled bool
}

// DefaultConfig returns the baseline configuration: 10-minute standard
// tokens, 1-minute elevated tokens, 10-minute challenges, Argon2id at
// 64 MiB / t=3 / p=2. Secrets are left empty and must be supplied.
func DefaultConfig() Config {
	return Config{
		Token: TokenConfig{
			StandardTTL: 10 * time.Minute,
			ElevatedTTL: time.Minute,
		},
		Password: PasswordConfig{
			Memory:              64 * 1024,
			Time:                3,
			Parallelism:         2,
			SaltLength:          16,
			KeyLength:           32,
			MaxConcurrentHashes: 4,
		},
		Challenge: ChallengeConfig{
			TTL: 10 * time.Minute,
		},
		Metrics: MetricsConfig{Enabled: true},
	}
}

// Validate rejects configurations the engine cannot run with. Argon2
// parameter floors are enforced separately by the password package.
func (c Config) Validate() error {
	if c.Token.StandardSecret.IsZero() {
		return errors.New("Token.StandardSecret is required")
	}
	if c.Token.ElevatedSecret.IsZero() {
		return errors.New("Token.ElevatedSecret is required")
	}
	if c.Token.StandardSecret.Expose() == c.Token.ElevatedSecret.Expose() {
		return errors.New("Token secrets must be disjoint")
	}
	if c.Token.StandardTTL <= 0 || c.Token.ElevatedTTL <= 0 {
		return errors.New("Token TTLs must be positive")
	}
	if c.Challenge.TTL <= 0 {
		return errors.New("Challenge.TTL must be positive")
	}
	if c.Password.MaxConcurrentHashes < 1 {
		return errors.New("Password.MaxConcurrentHashes must be >= 1")
	}
	return nil
}
