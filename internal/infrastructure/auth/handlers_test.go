package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCodec(t *testing.T) *Codec {
	t.Helper()
	codec, err := NewCodec("secret", "HS256")
	require.NoError(t, err)
	return codec
}

func TestAccessHandler_IssueAndSubjectOf(t *testing.T) {
	h := NewAccessHandler(newTestCodec(t), 0)

	token, err := h.Issue("alice", nil)
	require.NoError(t, err)

	sub, ok := h.SubjectOf(token)
	assert.True(t, ok)
	assert.Equal(t, "alice", sub)
	assert.True(t, h.Validate(token))
}

func TestAccessHandler_ExtraClaims(t *testing.T) {
	codec := newTestCodec(t)
	h := NewAccessHandler(codec, 0)

	token, err := h.Issue("alice", map[string]interface{}{
		"role": "admin",
		"sub":  "mallory",
		"type": "refresh",
	})
	require.NoError(t, err)

	claims, err := codec.Decode(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims["role"])
	// sub and type are reserved and cannot be overridden by extra claims.
	assert.Equal(t, "alice", claims["sub"])
	assert.Equal(t, TokenTypeAccess, claims["type"])
}

func TestAccessHandler_RejectsRefreshToken(t *testing.T) {
	codec := newTestCodec(t)
	access := NewAccessHandler(codec, 0)
	refresh := NewRefreshHandler(codec, 0)

	refreshToken, err := refresh.Issue("alice", nil)
	require.NoError(t, err)

	assert.False(t, access.Validate(refreshToken))
	_, ok := access.SubjectOf(refreshToken)
	assert.False(t, ok)
}

func TestAccessHandler_ExpiredToken(t *testing.T) {
	codec := newTestCodec(t)
	h := NewAccessHandler(codec, 0)

	expired, err := codec.EncodeWithTTL(buildClaims("alice", TokenTypeAccess, nil), 0)
	require.NoError(t, err)

	assert.False(t, h.Validate(expired))
	_, ok := h.SubjectOf(expired)
	assert.False(t, ok)
}

func TestAccessHandler_MalformedToken(t *testing.T) {
	h := NewAccessHandler(newTestCodec(t), 0)

	assert.False(t, h.Validate("garbage"))
	_, ok := h.SubjectOf("")
	assert.False(t, ok)
}

func TestRefreshHandler_IssueAndSubjectOf(t *testing.T) {
	h := NewRefreshHandler(newTestCodec(t), 0)

	token, err := h.Issue("bob", nil)
	require.NoError(t, err)

	sub, ok := h.SubjectOf(token)
	assert.True(t, ok)
	assert.Equal(t, "bob", sub)
	assert.True(t, h.Validate(token))
}

func TestRefreshHandler_RejectsAccessToken(t *testing.T) {
	codec := newTestCodec(t)
	access := NewAccessHandler(codec, 0)
	refresh := NewRefreshHandler(codec, 0)

	accessToken, err := access.Issue("bob", nil)
	require.NoError(t, err)

	assert.False(t, refresh.Validate(accessToken))
	_, ok := refresh.SubjectOf(accessToken)
	assert.False(t, ok)
}

func TestRefreshHandler_Exchange(t *testing.T) {
	codec := newTestCodec(t)
	access := NewAccessHandler(codec, 0)
	refresh := NewRefreshHandler(codec, 0)

	t.Run("valid refresh token", func(t *testing.T) {
		refreshToken, err := refresh.Issue("alice", nil)
		require.NoError(t, err)

		accessToken, ok := refresh.Exchange(refreshToken, access)
		require.True(t, ok)

		sub, ok := access.SubjectOf(accessToken)
		assert.True(t, ok)
		assert.Equal(t, "alice", sub)
	})

	t.Run("malformed token", func(t *testing.T) {
		accessToken, ok := refresh.Exchange("definitely-not-a-jwt", access)
		assert.False(t, ok)
		assert.Empty(t, accessToken)
	})

	t.Run("access token is not exchangeable", func(t *testing.T) {
		accessToken, err := access.Issue("alice", nil)
		require.NoError(t, err)

		_, ok := refresh.Exchange(accessToken, access)
		assert.False(t, ok)
	})

	t.Run("expired refresh token", func(t *testing.T) {
		expired, err := codec.EncodeWithTTL(buildClaims("alice", TokenTypeRefresh, nil), -time.Minute)
		require.NoError(t, err)

		_, ok := refresh.Exchange(expired, access)
		assert.False(t, ok)
	})
}

func TestHandlerDefaultTTLs(t *testing.T) {
	codec := newTestCodec(t)

	access := NewAccessHandler(codec, 0)
	assert.Equal(t, DefaultAccessTTL, access.ttl)

	refresh := NewRefreshHandler(codec, 0)
	assert.Equal(t, DefaultRefreshTTL, refresh.ttl)

	custom := NewAccessHandler(codec, 5*time.Minute)
	assert.Equal(t, 5*time.Minute, custom.ttl)
}
