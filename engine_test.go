package authkeep

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kynelabs/authkeep/identity"
	"github.com/kynelabs/authkeep/notify"
	"github.com/kynelabs/authkeep/userstore"
)

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Token.StandardSecret = identity.NewSecret("test-standard-secret")
	cfg.Token.ElevatedSecret = identity.NewSecret("test-elevated-secret")
	// Fast hashing so the suite stays quick.
	cfg.Password.Memory = 8192
	cfg.Password.Time = 1
	cfg.Password.Parallelism = 1
	return cfg
}

func newTestEngine(t *testing.T) (*Engine, *notify.Mock) {
	t.Helper()
	notifier := notify.NewMock()
	engine, err := New().
		WithConfig(testConfig()).
		WithUserBackend(userstore.NewMemoryBackend()).
		WithNotifier(notifier).
		Build()
	require.NoError(t, err)
	return engine, notifier
}

func TestRegisterValidation(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := context.Background()

	err := engine.Register(ctx, "not-an-email", "correct-horse", false)
	assert.ErrorIs(t, err, ErrInvalidInput)

	err = engine.Register(ctx, "alice@example.com", "short", false)
	assert.ErrorIs(t, err, ErrInvalidInput)

	require.NoError(t, engine.Register(ctx, "alice@example.com", "correct-horse", false))

	err = engine.Register(ctx, "alice@example.com", "other-password", false)
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestLoginWithoutTwoFactor(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := context.Background()

	require.NoError(t, engine.Register(ctx, "alice@example.com", "correct-horse", false))

	result, err := engine.Login(ctx, "alice@example.com", "correct-horse")
	require.NoError(t, err)
	assert.False(t, result.TwoFactorRequired)
	require.NotEmpty(t, result.Token)

	email, err := engine.VerifySession(ctx, result.Token)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", email.String())
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := context.Background()

	require.NoError(t, engine.Register(ctx, "alice@example.com", "correct-horse", false))

	_, wrongPassword := engine.Login(ctx, "alice@example.com", "wrong-horse")
	_, unknownUser := engine.Login(ctx, "ghost@example.com", "correct-horse")

	assert.ErrorIs(t, wrongPassword, ErrInvalidCredentials)
	assert.ErrorIs(t, unknownUser, ErrInvalidCredentials)
	assert.Equal(t, wrongPassword, unknownUser)
}

func TestTwoFactorLoginFlow(t *testing.T) {
	engine, notifier := newTestEngine(t)
	ctx := context.Background()

	require.NoError(t, engine.Register(ctx, "alice@example.com", "correct-horse", true))

	result, err := engine.Login(ctx, "alice@example.com", "correct-horse")
	require.NoError(t, err)
	assert.True(t, result.TwoFactorRequired)
	assert.Empty(t, result.Token, "no token may exist before the code is verified")

	sent := notifier.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "alice@example.com", sent[0].Recipient.String())

	token, err := engine.VerifyTwoFactor(ctx, "alice@example.com", result.AttemptID.String(), sent[0].Code.String())
	require.NoError(t, err)
	require.NotEmpty(t, token)

	email, err := engine.VerifySession(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", email.String())
}

func TestTwoFactorCodeIsSingleUse(t *testing.T) {
	engine, notifier := newTestEngine(t)
	ctx := context.Background()

	require.NoError(t, engine.Register(ctx, "alice@example.com", "correct-horse", true))

	result, err := engine.Login(ctx, "alice@example.com", "correct-horse")
	require.NoError(t, err)
	code := notifier.Sent()[0].Code.String()

	_, err = engine.VerifyTwoFactor(ctx, "alice@example.com", result.AttemptID.String(), code)
	require.NoError(t, err)

	_, err = engine.VerifyTwoFactor(ctx, "alice@example.com", result.AttemptID.String(), code)
	assert.ErrorIs(t, err, ErrTwoFactorInvalid)
}

func TestSecondLoginInvalidatesFirstChallenge(t *testing.T) {
	engine, notifier := newTestEngine(t)
	ctx := context.Background()

	require.NoError(t, engine.Register(ctx, "alice@example.com", "correct-horse", true))

	first, err := engine.Login(ctx, "alice@example.com", "correct-horse")
	require.NoError(t, err)
	second, err := engine.Login(ctx, "alice@example.com", "correct-horse")
	require.NoError(t, err)

	sent := notifier.Sent()
	require.Len(t, sent, 2)

	_, err = engine.VerifyTwoFactor(ctx, "alice@example.com", first.AttemptID.String(), sent[0].Code.String())
	assert.ErrorIs(t, err, ErrTwoFactorInvalid, "stale attempt must not verify")

	_, err = engine.VerifyTwoFactor(ctx, "alice@example.com", second.AttemptID.String(), sent[1].Code.String())
	assert.NoError(t, err)
}

func TestVerifyTwoFactorRejectsWrongCode(t *testing.T) {
	engine, notifier := newTestEngine(t)
	ctx := context.Background()

	require.NoError(t, engine.Register(ctx, "alice@example.com", "correct-horse", true))

	result, err := engine.Login(ctx, "alice@example.com", "correct-horse")
	require.NoError(t, err)

	code := notifier.Sent()[0].Code.String()
	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}

	_, err = engine.VerifyTwoFactor(ctx, "alice@example.com", result.AttemptID.String(), wrong)
	assert.ErrorIs(t, err, ErrTwoFactorInvalid)

	// A failed attempt does not consume the challenge.
	_, err = engine.VerifyTwoFactor(ctx, "alice@example.com", result.AttemptID.String(), code)
	assert.NoError(t, err)
}

func TestElevate(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := context.Background()

	require.NoError(t, engine.Register(ctx, "alice@example.com", "correct-horse", false))
	result, err := engine.Login(ctx, "alice@example.com", "correct-horse")
	require.NoError(t, err)

	_, err = engine.Elevate(ctx, "alice@example.com", "wrong-horse", result.Token)
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = engine.Elevate(ctx, "mallory@example.com", "correct-horse", result.Token)
	assert.ErrorIs(t, err, ErrUnauthorized, "elevation must not cross accounts")

	elevated, err := engine.Elevate(ctx, "alice@example.com", "correct-horse", result.Token)
	require.NoError(t, err)

	email, err := engine.VerifyElevated(ctx, elevated)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", email.String())

	// Tier isolation at the engine surface.
	_, err = engine.VerifySession(ctx, elevated)
	assert.ErrorIs(t, err, ErrUnauthorized)
	_, err = engine.VerifyElevated(ctx, result.Token)
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = engine.Elevate(ctx, "alice@example.com", "correct-horse", elevated)
	assert.ErrorIs(t, err, ErrUnauthorized, "elevation requires a standard token")
}

func TestVerifySessionMissingToken(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := context.Background()

	_, err := engine.VerifySession(ctx, "")
	assert.ErrorIs(t, err, ErrMissingToken)

	_, err = engine.VerifySession(ctx, "garbage")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestChangePassword(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := context.Background()

	require.NoError(t, engine.Register(ctx, "alice@example.com", "old-password", false))
	result, err := engine.Login(ctx, "alice@example.com", "old-password")
	require.NoError(t, err)
	elevated, err := engine.Elevate(ctx, "alice@example.com", "old-password", result.Token)
	require.NoError(t, err)

	err = engine.ChangePassword(ctx, result.Token, "new-password")
	assert.ErrorIs(t, err, ErrUnauthorized, "standard token must not allow a password change")

	err = engine.ChangePassword(ctx, elevated, "short")
	assert.ErrorIs(t, err, ErrInvalidInput)

	require.NoError(t, engine.ChangePassword(ctx, elevated, "new-password"))

	_, err = engine.Login(ctx, "alice@example.com", "old-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = engine.Login(ctx, "alice@example.com", "new-password")
	assert.NoError(t, err)
}

func TestChangePasswordRevokeOnChange(t *testing.T) {
	cfg := testConfig()
	cfg.Password.RevokeOnChange = true

	engine, err := New().
		WithConfig(cfg).
		WithUserBackend(userstore.NewMemoryBackend()).
		Build()
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, engine.Register(ctx, "alice@example.com", "old-password", false))
	result, err := engine.Login(ctx, "alice@example.com", "old-password")
	require.NoError(t, err)
	elevated, err := engine.Elevate(ctx, "alice@example.com", "old-password", result.Token)
	require.NoError(t, err)

	require.NoError(t, engine.ChangePassword(ctx, elevated, "new-password"))

	_, err = engine.VerifyElevated(ctx, elevated)
	assert.ErrorIs(t, err, ErrUnauthorized, "elevated token must be banned after the change")
}

func TestLogout(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := context.Background()

	require.NoError(t, engine.Register(ctx, "alice@example.com", "correct-horse", false))
	result, err := engine.Login(ctx, "alice@example.com", "correct-horse")
	require.NoError(t, err)
	elevated, err := engine.Elevate(ctx, "alice@example.com", "correct-horse", result.Token)
	require.NoError(t, err)

	require.NoError(t, engine.Logout(ctx, result.Token, elevated))

	_, err = engine.VerifySession(ctx, result.Token)
	assert.ErrorIs(t, err, ErrUnauthorized)
	_, err = engine.VerifyElevated(ctx, elevated)
	assert.ErrorIs(t, err, ErrUnauthorized)

	// Logging out already revoked tokens is idempotent.
	assert.NoError(t, engine.Logout(ctx, result.Token, elevated))

	assert.ErrorIs(t, engine.Logout(ctx, "", ""), ErrMissingToken)
}

func TestDeleteAccount(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := context.Background()

	require.NoError(t, engine.Register(ctx, "alice@example.com", "correct-horse", false))
	result, err := engine.Login(ctx, "alice@example.com", "correct-horse")
	require.NoError(t, err)
	elevated, err := engine.Elevate(ctx, "alice@example.com", "correct-horse", result.Token)
	require.NoError(t, err)

	err = engine.DeleteAccount(ctx, result.Token)
	assert.ErrorIs(t, err, ErrUnauthorized, "standard token must not allow deletion")

	require.NoError(t, engine.DeleteAccount(ctx, elevated))

	_, err = engine.Login(ctx, "alice@example.com", "correct-horse")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = engine.VerifyElevated(ctx, elevated)
	assert.ErrorIs(t, err, ErrUnauthorized, "elevated token must not outlive the account")
}

func TestMetricsCounting(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := context.Background()

	require.NoError(t, engine.Register(ctx, "alice@example.com", "correct-horse", false))
	_, err := engine.Login(ctx, "alice@example.com", "correct-horse")
	require.NoError(t, err)
	_, _ = engine.Login(ctx, "alice@example.com", "wrong-horse")

	snap := engine.Metrics()
	assert.Equal(t, uint64(1), snap[MetricRegisterSuccess])
	assert.Equal(t, uint64(1), snap[MetricLoginSuccess])
	assert.Equal(t, uint64(1), snap[MetricLoginFailure])
}

func TestEngineNotReady(t *testing.T) {
	var engine *Engine
	ctx := context.Background()

	assert.ErrorIs(t, engine.Register(ctx, "a@b.co", "password-x", false), ErrEngineNotReady)
	_, err := engine.Login(ctx, "a@b.co", "password-x")
	assert.ErrorIs(t, err, ErrEngineNotReady)
	_, err = engine.VerifySession(ctx, "tok")
	assert.ErrorIs(t, err, ErrEngineNotReady)
}

func TestElevatedTokenShortLived(t *testing.T) {
	cfg := testConfig()
	assert.Equal(t, 10*time.Minute, cfg.Token.StandardTTL)
	assert.Equal(t, time.Minute, cfg.Token.ElevatedTTL)
	assert.Less(t, cfg.Token.ElevatedTTL, cfg.Token.StandardTTL)
}
