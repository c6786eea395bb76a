package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 2*1024*1024, cfg.Uploads.PhotoMaxBytes)
	assert.Equal(t, 10, cfg.Auth.LoginRateLimit)
	assert.Equal(t, time.Minute, cfg.Auth.LoginRateWindow)
	assert.True(t, cfg.Roster.CacheEnabled)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("JWT_EXPIRATION", "30m")
	t.Setenv("ALLOWED_ORIGINS", "https://portal.example.com, https://admin.example.com ,")
	t.Setenv("LOGIN_RATE_WINDOW", "not-a-duration")
	t.Setenv("PUBLIC_BASE_URL", "https://portal.example.com/")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, 30*time.Minute, cfg.JWT.Expiration)
	assert.Equal(t, []string{"https://portal.example.com", "https://admin.example.com"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, time.Minute, cfg.Auth.LoginRateWindow)
	assert.Equal(t, "https://portal.example.com", cfg.PublicBaseURL)
}

func TestDatabaseURL(t *testing.T) {
	db := DatabaseConfig{Host: "db", Port: 5432, User: "portal", Password: "p@ss", Name: "portal", SSLMode: "disable"}
	assert.Equal(t, "postgres://portal:p%40ss@db:5432/portal?sslmode=disable", db.URL())
	assert.Contains(t, db.DSN(), "dbname=portal")
}
