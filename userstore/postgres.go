package userstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kynelabs/authkeep/identity"
)

// uniqueViolation is the Postgres error code for a unique-constraint breach.
const uniqueViolation = "23505"

// PostgresBackend is a Backend over a pgx connection pool. The schema needs
// a users table with email as primary key:
//
//	CREATE TABLE users (
//	    email          TEXT PRIMARY KEY,
//	    password_hash  TEXT NOT NULL,
//	    requires_2fa   BOOLEAN NOT NULL DEFAULT FALSE
//	);
type PostgresBackend struct {
	pool *pgxpool.Pool
}

// NewPostgresBackend connects a pool and pings it.
func NewPostgresBackend(ctx context.Context, dsn string) (*PostgresBackend, error) {
	conf, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, conf)
	if err != nil {
		return nil, fmt.Errorf("open connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return &PostgresBackend{pool: pool}, nil
}

// Close releases the underlying pool.
func (b *PostgresBackend) Close() {
	if b.pool != nil {
		b.pool.Close()
	}
}

// Insert implements Backend. The primary-key constraint provides the atomic
// insert-if-absent.
func (b *PostgresBackend) Insert(ctx context.Context, user User) error {
	query := `INSERT INTO users (email, password_hash, requires_2fa) VALUES ($1, $2, $3)`

	_, err := b.pool.Exec(ctx, query, user.Email.String(), user.PasswordHash, user.RequiresTwoFactor)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrUserExists
		}
		return fmt.Errorf("%w: %v", ErrBackend, err)
	}
	return nil
}

// Get implements Backend.
func (b *PostgresBackend) Get(ctx context.Context, email identity.Email) (User, error) {
	query := `SELECT email, password_hash, requires_2fa FROM users WHERE email = $1`

	var (
		address string
		user    User
	)
	err := b.pool.QueryRow(ctx, query, email.String()).Scan(&address, &user.PasswordHash, &user.RequiresTwoFactor)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, ErrUserNotFound
		}
		return User{}, fmt.Errorf("%w: %v", ErrBackend, err)
	}

	user.Email, err = identity.ParseEmail(address)
	if err != nil {
		return User{}, fmt.Errorf("%w: corrupt email in row", ErrBackend)
	}
	return user, nil
}

// UpdatePasswordHash implements Backend.
func (b *PostgresBackend) UpdatePasswordHash(ctx context.Context, email identity.Email, hash string) error {
	query := `UPDATE users SET password_hash = $2 WHERE email = $1`

	tag, err := b.pool.Exec(ctx, query, email.String(), hash)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBackend, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

// Delete implements Backend.
func (b *PostgresBackend) Delete(ctx context.Context, email identity.Email) error {
	query := `DELETE FROM users WHERE email = $1`

	tag, err := b.pool.Exec(ctx, query, email.String())
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBackend, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}
