package auth

import "time"

const DefaultRefreshTTL = 7 * 24 * time.Hour

// AccessIssuer mints access tokens for a subject. *AccessHandler
// satisfies it; Exchange depends on nothing else.
type AccessIssuer interface {
	Issue(userID string, extra map[string]interface{}) (string, error)
}

// RefreshHandler issues and validates long-lived refresh tokens and
// exchanges them for fresh access tokens.
type RefreshHandler struct {
	codec *Codec
	ttl   time.Duration
}

func NewRefreshHandler(codec *Codec, ttl time.Duration) *RefreshHandler {
	if ttl <= 0 {
		ttl = DefaultRefreshTTL
	}
	return &RefreshHandler{codec: codec, ttl: ttl}
}

// Issue signs a refresh token for userID. Extra claims are merged in,
// but sub and type are reserved and cannot be overridden.
func (h *RefreshHandler) Issue(userID string, extra map[string]interface{}) (string, error) {
	return h.codec.EncodeWithTTL(buildClaims(userID, TokenTypeRefresh, extra), h.ttl)
}

// Validate reports whether token decodes and carries type "refresh".
func (h *RefreshHandler) Validate(token string) bool {
	claims, err := h.codec.Decode(token)
	return err == nil && claims[claimTokenType] == TokenTypeRefresh
}

// SubjectOf returns the subject of a valid refresh token.
func (h *RefreshHandler) SubjectOf(token string) (string, bool) {
	claims, err := h.codec.Decode(token)
	if err != nil || claims[claimTokenType] != TokenTypeRefresh {
		return "", false
	}
	return subjectClaim(claims)
}

// Exchange validates refreshToken and, in a single decision point, mints
// a new access token for its subject. Any validation failure yields
// absent; no partial issuance and no error surfaces to the caller.
func (h *RefreshHandler) Exchange(refreshToken string, issuer AccessIssuer) (string, bool) {
	sub, ok := h.SubjectOf(refreshToken)
	if !ok {
		return "", false
	}
	access, err := issuer.Issue(sub, nil)
	if err != nil {
		return "", false
	}
	return access, true
}
