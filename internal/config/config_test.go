package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	base := Config{
		Port:       "8480",
		JWTSecret:  "0123456789abcdef0123456789abcdef",
		DBPassword: "s3cret-db-pass",
		DBSSLMode:  "require",
		Env:        "production",
	}

	t.Run("valid production config", func(t *testing.T) {
		cfg := base
		assert.NoError(t, cfg.Validate())
	})

	t.Run("missing port", func(t *testing.T) {
		cfg := base
		cfg.Port = ""
		assert.ErrorContains(t, cfg.Validate(), "PORT")
	})

	t.Run("default jwt secret rejected in production", func(t *testing.T) {
		cfg := base
		cfg.JWTSecret = "your-secret-key-change-in-production"
		assert.ErrorContains(t, cfg.Validate(), "JWT_SECRET")
	})

	t.Run("short jwt secret rejected in production", func(t *testing.T) {
		cfg := base
		cfg.JWTSecret = "short"
		assert.ErrorContains(t, cfg.Validate(), "32 characters")
	})

	t.Run("weak db password rejected in production", func(t *testing.T) {
		cfg := base
		cfg.DBPassword = "password"
		assert.ErrorContains(t, cfg.Validate(), "DB_PASSWORD")
	})

	t.Run("development tolerates short secret", func(t *testing.T) {
		cfg := base
		cfg.Env = "development"
		cfg.JWTSecret = "dev-secret"
		assert.NoError(t, cfg.Validate())
	})
}
