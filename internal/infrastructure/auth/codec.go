package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	pkgerrors "github.com/nebulahq/auth-service/pkg/errors"
)

// DefaultTTL is applied by Encode when the caller does not choose one.
const DefaultTTL = 24 * time.Hour

// Codec signs and verifies claim sets with a shared HMAC secret.
// The secret and algorithm are fixed at construction and shared by
// both token kinds; Codec is safe for concurrent use.
type Codec struct {
	secret []byte
	method jwt.SigningMethod
}

func NewCodec(secret, algorithm string) (*Codec, error) {
	if secret == "" {
		return nil, fmt.Errorf("%w: JWT secret is empty", pkgerrors.ErrInvalidInput)
	}
	method := jwt.GetSigningMethod(algorithm)
	if method == nil {
		return nil, fmt.Errorf("%w: unknown signing algorithm %q", pkgerrors.ErrInvalidInput, algorithm)
	}
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("%w: unsupported signing algorithm %q", pkgerrors.ErrInvalidInput, algorithm)
	}
	return &Codec{secret: []byte(secret), method: method}, nil
}

// Encode signs claims with the default TTL.
func (c *Codec) Encode(claims jwt.MapClaims) (string, error) {
	return c.EncodeWithTTL(claims, DefaultTTL)
}

// EncodeWithTTL copies claims, injects exp = now + ttl and signs the result.
// The input map is not mutated. A zero or negative ttl produces a token
// that is already expired.
func (c *Codec) EncodeWithTTL(claims jwt.MapClaims, ttl time.Duration) (string, error) {
	toEncode := make(jwt.MapClaims, len(claims)+1)
	for k, v := range claims {
		toEncode[k] = v
	}
	toEncode["exp"] = jwt.NewNumericDate(time.Now().Add(ttl))

	token := jwt.NewWithClaims(c.method, toEncode)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Decode verifies signature, algorithm and expiry and returns the claims.
// Expired but otherwise well-formed tokens fail with ErrExpiredToken,
// everything else with ErrInvalidToken.
func (c *Codec) Decode(tokenStr string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Method.Alg())
		}
		return c.secret, nil
	}, jwt.WithValidMethods([]string{c.method.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: %v", pkgerrors.ErrExpiredToken, err)
		}
		return nil, fmt.Errorf("%w: %v", pkgerrors.ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, pkgerrors.ErrInvalidToken
	}
	return claims, nil
}

// Verify reports whether Decode would succeed.
func (c *Codec) Verify(tokenStr string) bool {
	_, err := c.Decode(tokenStr)
	return err == nil
}
