package service

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gearguard/pkg/errors"
)

func signed(t *testing.T, claims jwt.Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("чужой секрет"))
	require.NoError(t, err)
	return token
}

func TestJWTService_Inspect(t *testing.T) {
	svc := NewJWTService()
	token := signed(t, RemoteClaims{
		UserID:           7,
		Role:             "technician",
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(2 * time.Hour))},
	})

	claims, err := svc.Inspect(token)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), claims.UserID)
	assert.Equal(t, "technician", claims.Role)

	ttl, err := svc.TTL(token, time.Minute)
	require.NoError(t, err)
	assert.InDelta(t, (2 * time.Hour).Seconds(), ttl.Seconds(), 5)
}

func TestJWTService_Expired(t *testing.T) {
	svc := NewJWTService()
	token := signed(t, RemoteClaims{
		UserID:           1,
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute))},
	})

	_, err := svc.Inspect(token)
	assert.ErrorIs(t, err, errors.ErrTokenExpired)
	_, err = svc.TTL(token, time.Hour)
	assert.ErrorIs(t, err, errors.ErrTokenExpired)
}

func TestJWTService_NoExpiryUsesFallback(t *testing.T) {
	svc := NewJWTService()
	token := signed(t, RemoteClaims{UserID: 1})

	ttl, err := svc.TTL(token, 24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 24*time.Hour, ttl)
}

func TestJWTService_Garbage(t *testing.T) {
	_, err := NewJWTService().Inspect("не-токен")
	assert.ErrorIs(t, err, errors.ErrInvalidToken)
}
