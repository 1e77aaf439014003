package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validProductionConfig() *Config {
	return &Config{
		Port:           "8080",
		DBPassword:     "a-strong-password",
		DBSSLMode:      "require",
		JWTSecret:      strings.Repeat("a", 32),
		RefreshSecret:  strings.Repeat("b", 32),
		MinioSecretKey: "a-real-secret",
		Env:            "production",
	}
}

func TestValidateRequiredFields(t *testing.T) {
	t.Parallel()

	t.Run("development defaults pass", func(t *testing.T) {
		t.Parallel()
		cfg := &Config{
			Port:          "8080",
			JWTSecret:     "your-secret-key-change-in-production",
			RefreshSecret: "your-refresh-secret-change-in-production",
			Env:           "development",
		}
		assert.NoError(t, cfg.Validate())
	})

	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"missing port", func(c *Config) { c.Port = "" }, "PORT is required"},
		{"missing jwt secret", func(c *Config) { c.JWTSecret = "" }, "JWT_SECRET is required"},
		{"missing refresh secret", func(c *Config) { c.RefreshSecret = "" }, "REFRESH_SECRET is required"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := validProductionConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidateProductionHardening(t *testing.T) {
	t.Parallel()

	t.Run("hardened config passes", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, validProductionConfig().Validate())
	})

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"default jwt secret", func(c *Config) { c.JWTSecret = "your-secret-key-change-in-production" }},
		{"short jwt secret", func(c *Config) { c.JWTSecret = "short" }},
		{"default refresh secret", func(c *Config) {
			c.RefreshSecret = "your-refresh-secret-change-in-production"
		}},
		{"identical secrets", func(c *Config) { c.RefreshSecret = c.JWTSecret }},
		{"default db password", func(c *Config) { c.DBPassword = "password" }},
		{"empty db password", func(c *Config) { c.DBPassword = "" }},
		{"default minio secret", func(c *Config) { c.MinioSecretKey = "minioadmin" }},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := validProductionConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	t.Run("prod alias is treated as production", func(t *testing.T) {
		t.Parallel()
		cfg := validProductionConfig()
		cfg.Env = "prod"
		cfg.DBPassword = "password"
		assert.Error(t, cfg.Validate())
	})
}
