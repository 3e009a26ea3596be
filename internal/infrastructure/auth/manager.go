package auth

import (
	"time"

	"github.com/nebulahq/auth-service/internal/models"
)

// Manager is the composition root of the token subsystem: one access and
// one refresh handler over a single shared codec. It holds no other state
// and is safe for concurrent use.
type Manager struct {
	access  *AccessHandler
	refresh *RefreshHandler
}

// NewManager builds the token manager. Zero TTLs select the per-kind
// defaults (30m access, 7d refresh).
func NewManager(secret, algorithm string, accessTTL, refreshTTL time.Duration) (*Manager, error) {
	codec, err := NewCodec(secret, algorithm)
	if err != nil {
		return nil, err
	}
	return &Manager{
		access:  NewAccessHandler(codec, accessTTL),
		refresh: NewRefreshHandler(codec, refreshTTL),
	}, nil
}

// IssuePair issues one access and one refresh token for userID. The two
// tokens are independent: no shared nonce or correlation.
func (m *Manager) IssuePair(userID string) (models.TokenPair, error) {
	access, err := m.access.Issue(userID, nil)
	if err != nil {
		return models.TokenPair{}, err
	}
	refresh, err := m.refresh.Issue(userID, nil)
	if err != nil {
		return models.TokenPair{}, err
	}
	return models.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Refresh exchanges a valid refresh token for a new access token.
func (m *Manager) Refresh(refreshToken string) (string, bool) {
	return m.refresh.Exchange(refreshToken, m.access)
}

func (m *Manager) AccessTokens() *AccessHandler { return m.access }

func (m *Manager) RefreshTokens() *RefreshHandler { return m.refresh }
