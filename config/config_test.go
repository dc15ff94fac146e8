package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg := LoadConfig()

	assert.Equal(t, "8080", cfg.AppPort)
	assert.Equal(t, 60, cfg.JWTExpiryMin)
	assert.Equal(t, "", cfg.JWTSecret, "secret has no usable default")
	assert.Equal(t, "5432", cfg.DBPort)
	assert.Equal(t, 300, cfg.CacheTTLSec)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("JWT_EXPIRY_MIN", "30")
	t.Setenv("MODEL_BASE_URL", "https://inference.example.com/v1")
	t.Setenv("REDIS_DB", "3")

	cfg := LoadConfig()

	assert.Equal(t, "9090", cfg.AppPort)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.Equal(t, 30, cfg.JWTExpiryMin)
	assert.Equal(t, "https://inference.example.com/v1", cfg.ModelBaseURL)
	assert.Equal(t, 3, cfg.RedisDB)
}

func TestGetEnvAsIntFallback(t *testing.T) {
	t.Setenv("JWT_EXPIRY_MIN", "not-a-number")

	cfg := LoadConfig()
	assert.Equal(t, 60, cfg.JWTExpiryMin)
}
