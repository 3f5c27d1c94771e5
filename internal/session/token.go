package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/cartera-app/cartera-gateway/internal/domain"
)

// TokenClaims is the subset of upstream JWT claims the gateway cares about.
type TokenClaims struct {
	Username  string
	ExpiresAt time.Time
}

// DecodeToken extracts the username (sub) and expiry (exp) from an upstream
// access token without verifying its signature. The gateway never holds the
// signing key; upstream validates the token on every call, the gateway only
// reads identity and expiry out of it.
func DecodeToken(token string) (*TokenClaims, error) {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return nil, domain.ErrInvalidToken
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return nil, domain.ErrInvalidToken
	}

	out := &TokenClaims{Username: sub}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		out.ExpiresAt = exp.Time
	}
	return out, nil
}
