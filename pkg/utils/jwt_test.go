package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, claims jwt.Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func TestParseUnverifiedClaims(t *testing.T) {
	token := signedToken(t, &UnverifiedClaims{
		Email: "founder@acme.dev",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	claims, err := ParseUnverifiedClaims(token)

	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject())
	assert.Equal(t, "founder@acme.dev", claims.Email)
	assert.False(t, claims.IsExpired(time.Now()))
}

func TestParseUnverifiedClaimsIgnoresSignature(t *testing.T) {
	token := signedToken(t, &UnverifiedClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "user-1"},
	})
	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	tampered := parts[0] + "." + parts[1] + ".tampered"

	claims, err := ParseUnverifiedClaims(tampered)

	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject())
}

func TestParseUnverifiedClaimsRejectsGarbage(t *testing.T) {
	_, err := ParseUnverifiedClaims("not-a-jwt")

	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestIsExpired(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		exp     *jwt.NumericDate
		expired bool
	}{
		{name: "expired an hour ago", exp: jwt.NewNumericDate(now.Add(-time.Hour)), expired: true},
		{name: "expires in an hour", exp: jwt.NewNumericDate(now.Add(time.Hour)), expired: false},
		{name: "no expiry claim", exp: nil, expired: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims := &UnverifiedClaims{RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: tt.exp}}
			assert.Equal(t, tt.expired, claims.IsExpired(now))
		})
	}
}
