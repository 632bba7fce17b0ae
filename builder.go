package authkeep

import (
	"errors"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/kynelabs/authkeep/challenge"
	"github.com/kynelabs/authkeep/internal/logger"
	"github.com/kynelabs/authkeep/notify"
	"github.com/kynelabs/authkeep/password"
	"github.com/kynelabs/authkeep/revocation"
	"github.com/kynelabs/authkeep/token"
	"github.com/kynelabs/authkeep/userstore"
)

// Builder assembles an Engine. Stores default to in-memory implementations
// when no Redis client is supplied; production deployments pass Redis for
// the challenge and revocation stores and a Postgres-backed user backend.
type Builder struct {
	config Config
	redis  *redis.Client

	userBackend userstore.Backend
	notifier    notify.Notifier
	log         *logger.Logger

	// Test seams: overriding stores wholesale replaces the Redis/memory wiring.
	challengeStore  challenge.Store
	revocationStore revocation.Store

	built bool
}

// New returns a Builder seeded with DefaultConfig.
func New() *Builder {
	return &Builder{config: DefaultConfig()}
}

// WithConfig replaces the configuration.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cfg
	return b
}

// WithRedis backs the challenge and revocation stores with Redis.
func (b *Builder) WithRedis(client *redis.Client) *Builder {
	b.redis = client
	return b
}

// WithUserBackend supplies the user record backend. Required.
func (b *Builder) WithUserBackend(backend userstore.Backend) *Builder {
	b.userBackend = backend
	return b
}

// WithNotifier supplies the out-of-band code delivery channel. Required when
// any user registers with a second factor.
func (b *Builder) WithNotifier(n notify.Notifier) *Builder {
	b.notifier = n
	return b
}

// WithLogger supplies a structured logger. Without one the engine is silent.
func (b *Builder) WithLogger(l *slog.Logger) *Builder {
	if l != nil {
		b.log = logger.FromSlog(l)
	}
	return b
}

// WithChallengeStore overrides the challenge store wiring entirely.
func (b *Builder) WithChallengeStore(s challenge.Store) *Builder {
	b.challengeStore = s
	return b
}

// WithRevocationStore overrides the revocation store wiring entirely.
func (b *Builder) WithRevocationStore(s revocation.Store) *Builder {
	b.revocationStore = s
	return b
}

// Build validates the configuration and wires the engine. A Builder builds
// at most once.
func (b *Builder) Build() (*Engine, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}
	b.built = true

	cfg := b.config
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if b.userBackend == nil {
		return nil, errors.New("user backend required")
	}

	hasher, err := password.NewArgon2(password.Config{
		Memory:      cfg.Password.Memory,
		Time:        cfg.Password.Time,
		Parallelism: cfg.Password.Parallelism,
		SaltLength:  cfg.Password.SaltLength,
		KeyLength:   cfg.Password.KeyLength,
	})
	if err != nil {
		return nil, err
	}
	pool, err := password.NewPool(hasher, cfg.Password.MaxConcurrentHashes)
	if err != nil {
		return nil, err
	}

	users, err := userstore.NewCredentials(b.userBackend, pool)
	if err != nil {
		return nil, err
	}

	revoked := b.revocationStore
	if revoked == nil {
		if b.redis != nil {
			revoked = revocation.NewRedisStore(b.redis, cfg.Token.RevocationRedisPrefix)
		} else {
			revoked = revocation.NewMemoryStore()
		}
	}

	challenges := b.challengeStore
	if challenges == nil {
		if b.redis != nil {
			challenges = challenge.NewRedisStore(b.redis, cfg.Challenge.RedisPrefix, cfg.Challenge.TTL)
		} else {
			challenges = challenge.NewMemoryStore(cfg.Challenge.TTL)
		}
	}

	tokens, err := token.NewManager(
		token.TierConfig{Secret: cfg.Token.StandardSecret, TTL: cfg.Token.StandardTTL},
		token.TierConfig{Secret: cfg.Token.ElevatedSecret, TTL: cfg.Token.ElevatedTTL},
		revoked,
	)
	if err != nil {
		return nil, err
	}

	log := b.log
	if log == nil {
		log = logger.Discard()
	}

	return &Engine{
		config:     cfg,
		users:      users,
		challenges: challenges,
		tokens:     tokens,
		notifier:   b.notifier,
		metrics:    NewMetrics(cfg.Metrics),
		log:        log,
	}, nil
}
