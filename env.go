package authkeep

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/kynelabs/authkeep/identity"
)

// Env is the environment-variable surface of a deployment: engine secrets
// and tunables plus the infrastructure addresses the caller wires up
// (Redis, Postgres, Postmark).
type Env struct {
	JWTSecret         string        `env:"JWT_SECRET,required,notEmpty"`
	JWTElevatedSecret string        `env:"JWT_ELEVATED_SECRET,required,notEmpty"`
	StandardTTL       time.Duration `env:"TOKEN_TTL" envDefault:"10m"`
	ElevatedTTL       time.Duration `env:"ELEVATED_TOKEN_TTL" envDefault:"1m"`
	ChallengeTTL      time.Duration `env:"TWO_FA_TTL" envDefault:"10m"`

	RedisAddr   string `env:"REDIS_ADDR" envDefault:"127.0.0.1:6379"`
	DatabaseURL string `env:"DATABASE_URL"`

	PostmarkToken  string `env:"POSTMARK_AUTH_TOKEN"`
	PostmarkSender string `env:"POSTMARK_SENDER"`

	LogLevel int `env:"LOG_LEVEL" envDefault:"0"`
}

// LoadEnv reads a .env file when present, then parses the environment.
func LoadEnv() (*Env, error) {
	_ = godotenv.Load()

	e := &Env{}
	if err := env.Parse(e); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return e, nil
}

// Config converts the environment surface into an engine Config, starting
// from DefaultConfig.
func (e *Env) Config() Config {
	cfg := DefaultConfig()
	cfg.Token.StandardSecret = identity.NewSecret(e.JWTSecret)
	cfg.Token.ElevatedSecret = identity.NewSecret(e.JWTElevatedSecret)
	cfg.Token.StandardTTL = e.StandardTTL
	cfg.Token.ElevatedTTL = e.ElevatedTTL
	cfg.Challenge.TTL = e.ChallengeTTL
	return cfg
}
