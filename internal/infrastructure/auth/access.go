package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token type discriminator carried in the "type" claim. It is part of
// the wire contract: clients and other services rely on the exact values.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

const (
	claimSubject   = "sub"
	claimTokenType = "type"
)

const DefaultAccessTTL = 30 * time.Minute

// AccessHandler issues and validates short-lived access tokens.
type AccessHandler struct {
	codec *Codec
	ttl   time.Duration
}

func NewAccessHandler(codec *Codec, ttl time.Duration) *AccessHandler {
	if ttl <= 0 {
		ttl = DefaultAccessTTL
	}
	return &AccessHandler{codec: codec, ttl: ttl}
}

// Issue signs an access token for userID. Extra claims are merged in,
// but sub and type are reserved and cannot be overridden.
func (h *AccessHandler) Issue(userID string, extra map[string]interface{}) (string, error) {
	return h.codec.EncodeWithTTL(buildClaims(userID, TokenTypeAccess, extra), h.ttl)
}

// Validate reports whether token decodes and carries type "access".
// Expired, malformed and wrongly signed tokens all collapse to false.
func (h *AccessHandler) Validate(token string) bool {
	claims, err := h.codec.Decode(token)
	return err == nil && claims[claimTokenType] == TokenTypeAccess
}

// SubjectOf returns the subject of a valid access token. This is a
// query, not a validation: failures yield absent, never an error.
func (h *AccessHandler) SubjectOf(token string) (string, bool) {
	claims, err := h.codec.Decode(token)
	if err != nil || claims[claimTokenType] != TokenTypeAccess {
		return "", false
	}
	return subjectClaim(claims)
}

func buildClaims(userID, tokenType string, extra map[string]interface{}) jwt.MapClaims {
	claims := jwt.MapClaims{
		claimSubject:   userID,
		claimTokenType: tokenType,
	}
	for k, v := range extra {
		if k == claimSubject || k == claimTokenType {
			continue
		}
		claims[k] = v
	}
	return claims
}

func subjectClaim(claims jwt.MapClaims) (string, bool) {
	sub, ok := claims[claimSubject].(string)
	if !ok || sub == "" {
		return "", false
	}
	return sub, true
}
