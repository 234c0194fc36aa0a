package utils

import (
	"testing"
	"time"

	"simplepay/internal/config"
	"simplepay/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{Secret: "test-secret", TTL: time.Hour, Issuer: "simplepay-test"}
}

func TestGenerateAndParseToken(t *testing.T) {
	cfg := testJWTConfig()
	user := &models.User{ID: 12, Email: "ana@example.com", UserTypeID: models.UserTypeCommon, TokenVersion: 3}

	token, expiresAt, err := GenerateToken(cfg, user)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := ParseToken(cfg, token)
	require.NoError(t, err)
	assert.Equal(t, uint(12), claims.UserID)
	assert.Equal(t, "ana@example.com", claims.Email)
	assert.Equal(t, 3, claims.TokenVersion)
	assert.Equal(t, "12", claims.Subject)
}

func TestParseToken_Rejects(t *testing.T) {
	cfg := testJWTConfig()
	user := &models.User{ID: 1, TokenVersion: 1}

	t.Run("wrong secret", func(t *testing.T) {
		token, _, err := GenerateToken(config.JWTConfig{Secret: "other", TTL: time.Hour, Issuer: cfg.Issuer}, user)
		require.NoError(t, err)
		_, err = ParseToken(cfg, token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		expired := cfg
		expired.TTL = -time.Minute
		token, _, err := GenerateToken(expired, user)
		require.NoError(t, err)
		_, err = ParseToken(cfg, token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		other := cfg
		other.Issuer = "someone-else"
		token, _, err := GenerateToken(other, user)
		require.NoError(t, err)
		_, err = ParseToken(cfg, token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("none algorithm", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodNone, models.UserClaims{UserID: 1}).
			SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		_, err = ParseToken(cfg, token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := ParseToken(cfg, "not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestGenerateToken_RequiresSecret(t *testing.T) {
	_, _, err := GenerateToken(config.JWTConfig{}, &models.User{ID: 1})
	assert.Error(t, err)
}
