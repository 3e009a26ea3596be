package service

import (
	"context"
	"testing"

	"github.com/nebulahq/auth-service/internal/infrastructure/auth"
	"github.com/nebulahq/auth-service/internal/infrastructure/kafka"
	"github.com/nebulahq/auth-service/internal/repository/memory"
	pkgerrors "github.com/nebulahq/auth-service/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *authService {
	t.Helper()
	manager, err := auth.NewManager("secret", "HS256", 0, 0)
	require.NoError(t, err)
	return NewAuthService(memory.NewUserRepository(), manager, kafka.NopPublisher{})
}

func registerAlice(t *testing.T, svc *authService) string {
	t.Helper()
	userID, err := svc.Register(context.Background(), RegisterInput{
		FirstName: "Alice",
		LastName:  "Liddell",
		Email:     "alice@example.com",
		Username:  "alice",
		Password:  "wonderland",
	})
	require.NoError(t, err)
	return userID
}

func TestAuthService_Register(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	t.Run("successful registration", func(t *testing.T) {
		userID := registerAlice(t, svc)
		assert.NotEmpty(t, userID)

		user, err := svc.Profile(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", user.Email)
		// Password is stored hashed, never in plaintext.
		assert.NotEqual(t, "wonderland", user.PasswordHash)
		assert.NotEmpty(t, user.PasswordHash)
	})

	t.Run("duplicate email", func(t *testing.T) {
		_, err := svc.Register(ctx, RegisterInput{
			Email:    "alice@example.com",
			Username: "alice2",
			Password: "pass",
		})
		assert.ErrorIs(t, err, pkgerrors.ErrUserAlreadyExists)
	})

	t.Run("missing fields", func(t *testing.T) {
		_, err := svc.Register(ctx, RegisterInput{Email: "bob@example.com"})
		assert.ErrorIs(t, err, pkgerrors.ErrInvalidInput)
	})
}

func TestAuthService_Login(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	userID := registerAlice(t, svc)

	t.Run("successful login", func(t *testing.T) {
		pair, err := svc.Login(ctx, "alice@example.com", "wonderland")
		require.NoError(t, err)
		assert.NotEmpty(t, pair.AccessToken)
		assert.NotEmpty(t, pair.RefreshToken)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, "alice@example.com", "nope")
		assert.ErrorIs(t, err, pkgerrors.ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(ctx, "bob@example.com", "whatever")
		assert.ErrorIs(t, err, pkgerrors.ErrInvalidCredentials)
	})

	t.Run("issued tokens carry the user id", func(t *testing.T) {
		pair, err := svc.Login(ctx, "alice@example.com", "wonderland")
		require.NoError(t, err)

		sub, ok := svc.tokens.AccessTokens().SubjectOf(pair.AccessToken)
		assert.True(t, ok)
		assert.Equal(t, userID, sub)
	})
}

func TestAuthService_Refresh(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	userID := registerAlice(t, svc)

	pair, err := svc.Login(ctx, "alice@example.com", "wonderland")
	require.NoError(t, err)

	t.Run("valid refresh token", func(t *testing.T) {
		access, ok := svc.Refresh(ctx, pair.RefreshToken)
		require.True(t, ok)

		sub, ok := svc.tokens.AccessTokens().SubjectOf(access)
		assert.True(t, ok)
		assert.Equal(t, userID, sub)
	})

	t.Run("access token rejected", func(t *testing.T) {
		_, ok := svc.Refresh(ctx, pair.AccessToken)
		assert.False(t, ok)
	})

	t.Run("garbage rejected", func(t *testing.T) {
		_, ok := svc.Refresh(ctx, "garbage")
		assert.False(t, ok)
	})
}

func TestAuthService_Profile(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	userID := registerAlice(t, svc)

	user, err := svc.Profile(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "Alice", user.FirstName)

	_, err = svc.Profile(ctx, "missing")
	assert.ErrorIs(t, err, pkgerrors.ErrUserNotFound)
}
