// Package auth reads claims out of the backend-issued access token. The client
// never verifies signatures (the backend does that on every call); it only
// needs the subject and expiry to restore a session from a stored token.
package auth

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

type Claims struct {
	UserID    int64
	Fullname  string
	Role      string
	ExpiresAt time.Time // zero when the token carries no exp claim
}

// Expired reports whether the token's exp claim is in the past.
func (c Claims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && now.After(c.ExpiresAt)
}

type tokenClaims struct {
	Fullname string `json:"fullname"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// ParseToken decodes the token payload without verifying the signature.
// Expired tokens are rejected so a stale stored session forces a fresh login.
func ParseToken(token string) (*Claims, error) {
	var tc tokenClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &tc); err != nil {
		return nil, ErrInvalidToken
	}

	userID, err := strconv.ParseInt(tc.Subject, 10, 64)
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims := &Claims{
		UserID:   userID,
		Fullname: tc.Fullname,
		Role:     tc.Role,
	}
	if tc.ExpiresAt != nil {
		claims.ExpiresAt = tc.ExpiresAt.Time
	}
	if claims.Expired(time.Now()) {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
