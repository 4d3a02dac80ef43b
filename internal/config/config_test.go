package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg := LoadConfig()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "knowledge_network", cfg.MongoDBName)
	assert.Equal(t, "test-secret", cfg.JWTSecret)
	assert.Zero(t, cfg.TokenExpiry)
}

func TestLoadConfigTokenExpiry(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("TOKEN_EXPIRY", "24h")

	cfg := LoadConfig()
	assert.Equal(t, 24*time.Hour, cfg.TokenExpiry)
}

func TestLoadConfigInvalidTokenExpiry(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("TOKEN_EXPIRY", "soon")

	cfg := LoadConfig()
	assert.Zero(t, cfg.TokenExpiry)
}
