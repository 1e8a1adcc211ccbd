package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-for-unit-tests"

func newTestService(t *testing.T, now *time.Time) *JWTService {
	t.Helper()
	svc, err := NewJWTService(testSecret, 0)
	require.NoError(t, err)
	svc.SetClock(func() time.Time { return *now })
	return svc
}

func TestJWTService_RoundTrip(t *testing.T) {
	now := time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)
	svc := newTestService(t, &now)

	token, err := svc.GenerateToken(12, "admin@example.com")
	require.NoError(t, err)

	claims, err := svc.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(12), claims.UserID)
	assert.Equal(t, "admin@example.com", claims.Email)
	assert.Equal(t, now.Add(24*time.Hour).Unix(), claims.ExpiresAt.Unix())
}

func TestJWTService_ExpiryWindow(t *testing.T) {
	issued := time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)
	now := issued
	svc := newTestService(t, &now)

	token, err := svc.GenerateToken(1, "admin@example.com")
	require.NoError(t, err)

	now = issued.Add(23*time.Hour + 59*time.Minute)
	_, err = svc.ParseToken(token)
	assert.NoError(t, err, "token must be accepted at T+23h59m")

	now = issued.Add(24*time.Hour + time.Minute)
	_, err = svc.ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken, "token must be rejected at T+24h01m")
}

func TestJWTService_WrongSecretRejected(t *testing.T) {
	now := time.Now()
	svc := newTestService(t, &now)
	other, err := NewJWTService("another-secret", 0)
	require.NoError(t, err)

	token, err := other.GenerateToken(1, "admin@example.com")
	require.NoError(t, err)

	_, err = svc.ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_MalformedAndForeignTokensRejected(t *testing.T) {
	now := time.Now()
	svc := newTestService(t, &now)

	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, JWTCustomClaims{UserID: 1}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	valid, err := svc.GenerateToken(1, "admin@example.com")
	require.NoError(t, err)
	parts := strings.Split(valid, ".")
	tampered := parts[0] + "." + parts[1] + "x." + parts[2]

	for name, token := range map[string]string{
		"empty":      "",
		"garbage":    "not-a-jwt",
		"alg none":   noneToken,
		"tampered":   tampered,
		"two chunks": parts[0] + "." + parts[1],
	} {
		t.Run(name, func(t *testing.T) {
			_, err := svc.ParseToken(token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestJWTService_TokenWithoutUserRejected(t *testing.T) {
	now := time.Now()
	svc := newTestService(t, &now)

	token, err := svc.GenerateToken(0, "ghost@example.com")
	require.NoError(t, err)

	_, err = svc.ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewJWTService_RequiresSecret(t *testing.T) {
	_, err := NewJWTService("", time.Hour)
	assert.Error(t, err)
}
