package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTokenGenerator(t *testing.T) {
	tests := []struct {
		name          string
		secret        string
		accessExpiry  time.Duration
		refreshExpiry time.Duration
	}{
		{name: "standard initialization", secret: "test-secret-key", accessExpiry: time.Hour, refreshExpiry: 7 * 24 * time.Hour},
		{name: "short expiry times", secret: "short-secret", accessExpiry: time.Minute, refreshExpiry: 10 * time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tg := NewTokenGenerator(tt.secret, tt.accessExpiry, tt.refreshExpiry)

			assert.NotNil(t, tg)
			assert.Equal(t, tt.secret, tg.secret)
			assert.Equal(t, tt.accessExpiry, tg.accessTokenExpiry)
			assert.Equal(t, tt.refreshExpiry, tg.refreshTokenExpiry)
		})
	}
}

func TestTokenGenerator_GenerateTokens(t *testing.T) {
	tg := NewTokenGenerator("b8a3c2267dc85f855dea9b46b452bf20", time.Hour, 7*24*time.Hour)

	t.Run("success", func(t *testing.T) {
		before := time.Now()
		accessToken, refreshToken, expiresAt, err := tg.GenerateTokens("user-1", "student@example.com")

		require.NoError(t, err)
		assert.NotEmpty(t, accessToken)
		assert.NotEmpty(t, refreshToken)
		assert.NotEqual(t, accessToken, refreshToken)
		assert.WithinDuration(t, before.Add(time.Hour), expiresAt, 2*time.Second)
	})

	t.Run("refresh tokens are unique within the same second", func(t *testing.T) {
		_, first, _, err := tg.GenerateTokens("user-1", "student@example.com")
		require.NoError(t, err)
		_, second, _, err := tg.GenerateTokens("user-1", "student@example.com")
		require.NoError(t, err)

		assert.NotEqual(t, first, second)
	})
}

func TestTokenGenerator_ValidateAccessToken(t *testing.T) {
	tg := NewTokenGenerator("secret", time.Hour, 7*24*time.Hour)
	accessToken, refreshToken, _, err := tg.GenerateTokens("user-42", "student@example.com")
	require.NoError(t, err)

	expired := NewTokenGenerator("secret", -time.Hour, time.Hour)
	expiredToken, _, _, err := expired.GenerateTokens("user-42", "student@example.com")
	require.NoError(t, err)

	other := NewTokenGenerator("other-secret", time.Hour, time.Hour)
	foreignToken, _, _, err := other.GenerateTokens("user-42", "student@example.com")
	require.NoError(t, err)

	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"user_id": "user-42",
		"type":    "access",
		"exp":     time.Now().Add(time.Hour).Unix(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name          string
		token         string
		expectedID    string
		expectedEmail string
		expectError   bool
	}{
		{name: "valid access token", token: accessToken, expectedID: "user-42", expectedEmail: "student@example.com"},
		{name: "refresh token rejected", token: refreshToken, expectError: true},
		{name: "expired token", token: expiredToken, expectError: true},
		{name: "wrong secret", token: foreignToken, expectError: true},
		{name: "unsigned token", token: noneToken, expectError: true},
		{name: "garbage", token: "not-a-token", expectError: true},
		{name: "empty", token: "", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := tg.ValidateAccessToken(tt.token)

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, claims)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectedID, claims.UserID)
			assert.Equal(t, tt.expectedEmail, claims.Email)
			assert.False(t, claims.ExpiresAt.IsZero())
		})
	}
}

func TestTokenGenerator_ValidateRefreshToken(t *testing.T) {
	tg := NewTokenGenerator("secret", time.Hour, 7*24*time.Hour)
	accessToken, refreshToken, _, err := tg.GenerateTokens("user-1", "a@b.com")
	require.NoError(t, err)

	assert.NoError(t, tg.ValidateRefreshToken(refreshToken))
	assert.Error(t, tg.ValidateRefreshToken(accessToken))
	assert.Error(t, tg.ValidateRefreshToken("broken"))
}
