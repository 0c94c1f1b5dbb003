package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signToken(t *testing.T, sub string, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":      sub,
		"fullname": "Nguyen Van A",
		"role":     "patient",
		"exp":      exp.Unix(),
	})
	signed, err := tok.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestParseToken(t *testing.T) {
	token := signToken(t, "42", time.Now().Add(time.Hour))
	claims, err := ParseToken(token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.UserID != 42 {
		t.Fatalf("expected user id 42, got %d", claims.UserID)
	}
	if claims.Fullname != "Nguyen Van A" || claims.Role != "patient" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestParseToken_Expired(t *testing.T) {
	token := signToken(t, "42", time.Now().Add(-time.Minute))
	if _, err := ParseToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestParseToken_Garbage(t *testing.T) {
	for _, tok := range []string{"", "not-a-token", "a.b"} {
		if _, err := ParseToken(tok); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("ParseToken(%q): expected ErrInvalidToken, got %v", tok, err)
		}
	}
}

func TestParseToken_NonNumericSubject(t *testing.T) {
	token := signToken(t, "abc", time.Now().Add(time.Hour))
	if _, err := ParseToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for non-numeric subject, got %v", err)
	}
}
