package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_IssuePair(t *testing.T) {
	m, err := NewManager("secret", "HS256", 0, 0)
	require.NoError(t, err)

	pair, err := m.IssuePair("alice")
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)

	sub, ok := m.AccessTokens().SubjectOf(pair.AccessToken)
	assert.True(t, ok)
	assert.Equal(t, "alice", sub)

	sub, ok = m.RefreshTokens().SubjectOf(pair.RefreshToken)
	assert.True(t, ok)
	assert.Equal(t, "alice", sub)

	// Each token validates only against its own kind.
	assert.False(t, m.AccessTokens().Validate(pair.RefreshToken))
	assert.False(t, m.RefreshTokens().Validate(pair.AccessToken))
}

func TestManager_Refresh(t *testing.T) {
	m, err := NewManager("secret", "HS256", 0, 0)
	require.NoError(t, err)

	pair, err := m.IssuePair("alice")
	require.NoError(t, err)

	t.Run("valid refresh token", func(t *testing.T) {
		access, ok := m.Refresh(pair.RefreshToken)
		require.True(t, ok)

		sub, ok := m.AccessTokens().SubjectOf(access)
		assert.True(t, ok)
		assert.Equal(t, "alice", sub)
	})

	t.Run("access token rejected", func(t *testing.T) {
		_, ok := m.Refresh(pair.AccessToken)
		assert.False(t, ok)
	})

	t.Run("garbage rejected", func(t *testing.T) {
		_, ok := m.Refresh("garbage")
		assert.False(t, ok)
	})
}

func TestNewManager_InvalidConfig(t *testing.T) {
	_, err := NewManager("", "HS256", 0, 0)
	assert.Error(t, err)

	_, err = NewManager("secret", "ES256", 0, 0)
	assert.Error(t, err)
}
