package userstore

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kynelabs/authkeep/identity"
	"github.com/kynelabs/authkeep/password"
)

func newTestCredentials(t *testing.T) (*Credentials, *MemoryBackend) {
	t.Helper()

	hasher, err := password.NewArgon2(password.Config{
		Memory:      8192,
		Time:        1,
		Parallelism: 1,
		SaltLength:  16,
		KeyLength:   32,
	})
	require.NoError(t, err)
	pool, err := password.NewPool(hasher, 2)
	require.NoError(t, err)

	backend := NewMemoryBackend()
	creds, err := NewCredentials(backend, pool)
	require.NoError(t, err)
	return creds, backend
}

func mustEmail(t *testing.T, addr string) identity.Email {
	t.Helper()
	email, err := identity.ParseEmail(addr)
	require.NoError(t, err)
	return email
}

func mustPassword(t *testing.T, raw string) identity.Password {
	t.Helper()
	pass, err := identity.ParsePassword(raw)
	require.NoError(t, err)
	return pass
}

func TestRegisterAndAuthenticate(t *testing.T) {
	creds, _ := newTestCredentials(t)
	ctx := context.Background()
	email := mustEmail(t, "alice@example.com")

	require.NoError(t, creds.Register(ctx, email, mustPassword(t, "correct-horse"), true))

	user, err := creds.Authenticate(ctx, email, mustPassword(t, "correct-horse"))
	require.NoError(t, err)
	assert.Equal(t, email, user.Email)
	assert.True(t, user.TwoFactorRequired)
}

func TestRegisterDuplicate(t *testing.T) {
	creds, backend := newTestCredentials(t)
	ctx := context.Background()
	email := mustEmail(t, "alice@example.com")

	require.NoError(t, creds.Register(ctx, email, mustPassword(t, "first-password"), false))

	err := creds.Register(ctx, email, mustPassword(t, "second-password"), false)
	assert.ErrorIs(t, err, ErrUserExists)
	assert.Equal(t, 1, backend.Len())

	// The losing registration must not have replaced the hash.
	_, err = creds.Authenticate(ctx, email, mustPassword(t, "first-password"))
	assert.NoError(t, err)
}

func TestAuthenticateFailureModes(t *testing.T) {
	creds, _ := newTestCredentials(t)
	ctx := context.Background()
	email := mustEmail(t, "alice@example.com")

	require.NoError(t, creds.Register(ctx, email, mustPassword(t, "correct-horse"), false))

	_, err := creds.Authenticate(ctx, email, mustPassword(t, "wrong-horse"))
	assert.ErrorIs(t, err, ErrIncorrectPassword)

	_, err = creds.Authenticate(ctx, mustEmail(t, "ghost@example.com"), mustPassword(t, "correct-horse"))
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestStoredHashIsNotThePassword(t *testing.T) {
	creds, backend := newTestCredentials(t)
	ctx := context.Background()
	email := mustEmail(t, "alice@example.com")

	require.NoError(t, creds.Register(ctx, email, mustPassword(t, "plaintext-horse"), false))

	user, err := backend.Get(ctx, email)
	require.NoError(t, err)
	assert.NotContains(t, user.PasswordHash, "plaintext-horse")
	assert.True(t, strings.HasPrefix(user.PasswordHash, "$argon2id$"), "hash %q not PHC encoded", user.PasswordHash)
}

func TestSetPassword(t *testing.T) {
	creds, _ := newTestCredentials(t)
	ctx := context.Background()
	email := mustEmail(t, "alice@example.com")

	require.NoError(t, creds.Register(ctx, email, mustPassword(t, "old-password"), false))
	require.NoError(t, creds.SetPassword(ctx, email, mustPassword(t, "new-password")))

	_, err := creds.Authenticate(ctx, email, mustPassword(t, "old-password"))
	assert.ErrorIs(t, err, ErrIncorrectPassword)

	_, err = creds.Authenticate(ctx, email, mustPassword(t, "new-password"))
	assert.NoError(t, err)

	err = creds.SetPassword(ctx, mustEmail(t, "ghost@example.com"), mustPassword(t, "irrelevant"))
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestDelete(t *testing.T) {
	creds, backend := newTestCredentials(t)
	ctx := context.Background()
	email := mustEmail(t, "alice@example.com")

	require.NoError(t, creds.Register(ctx, email, mustPassword(t, "correct-horse"), false))
	require.NoError(t, creds.Delete(ctx, email))
	assert.Equal(t, 0, backend.Len())

	assert.ErrorIs(t, creds.Delete(ctx, email), ErrUserNotFound)

	_, err := creds.Authenticate(ctx, email, mustPassword(t, "correct-horse"))
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestMemoryBackendConcurrentInsert(t *testing.T) {
	backend := NewMemoryBackend()
	ctx := context.Background()
	email := mustEmail(t, "alice@example.com")

	const writers = 16
	errs := make(chan error, writers)
	for i := 0; i < writers; i++ {
		go func() {
			errs <- backend.Insert(ctx, User{Email: email, PasswordHash: "h"})
		}()
	}

	var wins, conflicts int
	for i := 0; i < writers; i++ {
		switch err := <-errs; {
		case err == nil:
			wins++
		default:
			require.ErrorIs(t, err, ErrUserExists)
			conflicts++
		}
	}

	assert.Equal(t, 1, wins, "exactly one insert may win")
	assert.Equal(t, writers-1, conflicts)
	assert.Equal(t, 1, backend.Len())
}
