package utils

import (
	"testing"
	"time"

	"github.com/lotodata/megasena-backend/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:    "test-secret",
			ExpiresIn: 3600,
		},
	}
}

func TestGenerateAndValidateJWT(t *testing.T) {
	cfg := testConfig()

	token, err := GenerateJWT("admin", "admin", cfg)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateJWT(token, cfg)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims["sub"])
	assert.Equal(t, "admin", claims["role"])

	exp, ok := claims["exp"].(float64)
	require.True(t, ok)
	assert.InDelta(t, time.Now().Add(time.Hour).Unix(), int64(exp), 5)
}

func TestGenerateJWTRequiresSecret(t *testing.T) {
	cfg := testConfig()
	cfg.JWT.Secret = ""

	_, err := GenerateJWT("admin", "admin", cfg)
	assert.Error(t, err)
}

func TestValidateJWTRejectsWrongSecret(t *testing.T) {
	cfg := testConfig()
	token, err := GenerateJWT("admin", "admin", cfg)
	require.NoError(t, err)

	other := testConfig()
	other.JWT.Secret = "some-other-secret"
	_, err = ValidateJWT(token, other)
	assert.Error(t, err)
}

func TestValidateJWTRejectsGarbage(t *testing.T) {
	_, err := ValidateJWT("not.a.token", testConfig())
	assert.Error(t, err)
}

func TestAdminKeyHashRoundTrip(t *testing.T) {
	hash, err := HashAdminKey("super-secret-key")
	require.NoError(t, err)

	assert.True(t, CheckAdminKey("super-secret-key", hash))
	assert.False(t, CheckAdminKey("wrong-key", hash))
	assert.False(t, CheckAdminKey("super-secret-key", "not-a-bcrypt-hash"))
}
