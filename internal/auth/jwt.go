package auth

import (
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const defaultViewTTL = 12 * time.Hour

// ViewClaims carries the dashboard view selected by a browser session.
type ViewClaims struct {
	View string `json:"view"`
	jwt.RegisteredClaims
}

// ViewTokens signs and verifies dashboard view-state tokens with HS256.
type ViewTokens struct {
	secret []byte
	ttl    time.Duration
}

// NewViewTokens builds a signer. An empty secret is replaced by 32 random
// bytes, which invalidates every cookie when the process restarts.
func NewViewTokens(secret string, ttl time.Duration) (*ViewTokens, error) {
	key := []byte(secret)
	if len(key) == 0 {
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			return nil, fmt.Errorf("generate view secret: %w", err)
		}
	}
	if ttl <= 0 {
		ttl = defaultViewTTL
	}
	return &ViewTokens{secret: key, ttl: ttl}, nil
}

// Generate returns a signed token for view.
func (v *ViewTokens) Generate(view string) (string, error) {
	now := time.Now()
	claims := &ViewClaims{
		View: view,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(v.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(v.secret)
}

// Validate verifies the token and returns its claims
func (v *ViewTokens) Validate(tokenString string) (*ViewClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &ViewClaims{}, func(token *jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*ViewClaims); ok && token.Valid {
		if claims.View == "" {
			return nil, errors.New("token has no view")
		}
		return claims, nil
	}

	return nil, jwt.ErrTokenInvalidClaims
}
