package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/FlashAmarillo/UpTask-MERN-Backend/internal/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserService(t *testing.T) (*UserService, *fakeUserRepo, *fakeMailer) {
	t.Helper()
	users := newFakeUserRepo()
	mailer := newFakeMailer()
	tokens := auth.NewTokenManager([]byte("test-secret"), time.Hour)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewUserService(users, tokens, mailer, log), users, mailer
}

func TestRegisterIssuesConfirmationToken(t *testing.T) {
	svc, users, mailer := newUserService(t)
	ctx := context.Background()

	u, err := svc.Register(ctx, "Ana", "Ana@X.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "ana@x.com", u.Email)
	assert.False(t, u.Confirmed)

	stored, err := users.GetByEmail(ctx, "ana@x.com")
	require.NoError(t, err)
	assert.NotEmpty(t, stored.Token)
	assert.NotEqual(t, "secret123", stored.PasswordHash)
	assert.Equal(t, stored.Token, mailer.confirmations["ana@x.com"])
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := newUserService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Ana", "ana@x.com", "secret123")
	require.NoError(t, err)
	_, err = svc.Register(ctx, "Other", "ana@x.com", "secret123")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestConfirmConsumesToken(t *testing.T) {
	svc, users, mailer := newUserService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Ana", "ana@x.com", "secret123")
	require.NoError(t, err)
	token := mailer.confirmations["ana@x.com"]

	require.NoError(t, svc.Confirm(ctx, token))
	stored, err := users.GetByEmail(ctx, "ana@x.com")
	require.NoError(t, err)
	assert.True(t, stored.Confirmed)
	assert.Empty(t, stored.Token)

	// Replays of a consumed token are rejected.
	assert.ErrorIs(t, svc.Confirm(ctx, token), ErrInvalidToken)
}

func TestLogin(t *testing.T) {
	svc, _, mailer := newUserService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Ana", "ana@x.com", "secret123")
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "ana@x.com", "secret123")
	assert.ErrorIs(t, err, ErrNotConfirmed, "unconfirmed account must not authenticate")

	require.NoError(t, svc.Confirm(ctx, mailer.confirmations["ana@x.com"]))

	_, _, err = svc.Login(ctx, "ana@x.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, "nobody@x.com", "secret123")
	assert.ErrorIs(t, err, ErrNotFound)

	u, token, err := svc.Login(ctx, "ana@x.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "Ana", u.Name)
	assert.NotEmpty(t, token)
}

func TestPasswordResetFlow(t *testing.T) {
	svc, users, mailer := newUserService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Ana", "ana@x.com", "secret123")
	require.NoError(t, err)

	// Reset requires a confirmed account.
	assert.ErrorIs(t, svc.ForgotPassword(ctx, "ana@x.com"), ErrNotConfirmed)
	assert.ErrorIs(t, svc.ForgotPassword(ctx, "nobody@x.com"), ErrNotFound)

	require.NoError(t, svc.Confirm(ctx, mailer.confirmations["ana@x.com"]))
	require.NoError(t, svc.ForgotPassword(ctx, "ana@x.com"))
	token := mailer.resets["ana@x.com"]
	require.NotEmpty(t, token)

	require.NoError(t, svc.CheckResetToken(ctx, token))
	require.NoError(t, svc.ResetPassword(ctx, token, "newpass456"))

	stored, err := users.GetByEmail(ctx, "ana@x.com")
	require.NoError(t, err)
	assert.Empty(t, stored.Token, "reset token must be consumed")

	assert.ErrorIs(t, svc.CheckResetToken(ctx, token), ErrInvalidToken)
	assert.ErrorIs(t, svc.ResetPassword(ctx, token, "again"), ErrInvalidToken)

	_, _, err = svc.Login(ctx, "ana@x.com", "newpass456")
	assert.NoError(t, err)
	_, _, err = svc.Login(ctx, "ana@x.com", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
