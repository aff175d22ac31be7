package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// minimal env for a config that passes validation
func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("AUTH_SESSION_SECRET", "test-secret")
	t.Setenv("AUTH_ALLOWED_EMAILS", "me@example.com")
	t.Setenv("GOOGLE_CLIENT_ID", "client-id")
	t.Setenv("GOOGLE_CLIENT_SECRET", "client-secret")
}

func TestLoadConfigDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "development", cfg.Server.Mode)
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, "unirhub", cfg.Database.DBName)
	assert.Equal(t, "http://localhost:8080/api/v1/auth/callback", cfg.Google.RedirectURL)
	assert.Equal(t, "720h", cfg.Auth.SessionTTL)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("SERVER_MODE", "production")
	t.Setenv("AUTH_ALLOWED_EMAILS", "me@example.com, other@example.com")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, []string{"me@example.com", "other@example.com"}, cfg.Auth.AllowedEmails)
}

func TestLoadConfigFromFile(t *testing.T) {
	setRequiredEnv(t)

	content := []byte(`
server:
  port: "3000"
auth:
  session_ttl: 24h
`)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, content, 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, "24h", cfg.Auth.SessionTTL)
}

func TestLoadConfigValidation(t *testing.T) {
	t.Run("missing session secret", func(t *testing.T) {
		t.Setenv("AUTH_SESSION_SECRET", "")
		t.Setenv("AUTH_ALLOWED_EMAILS", "me@example.com")
		t.Setenv("GOOGLE_CLIENT_ID", "client-id")
		t.Setenv("GOOGLE_CLIENT_SECRET", "client-secret")

		_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.ErrorContains(t, err, "session secret")
	})

	t.Run("empty allow list", func(t *testing.T) {
		t.Setenv("AUTH_SESSION_SECRET", "test-secret")
		t.Setenv("AUTH_ALLOWED_EMAILS", "")
		t.Setenv("GOOGLE_CLIENT_ID", "client-id")
		t.Setenv("GOOGLE_CLIENT_SECRET", "client-secret")

		_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.ErrorContains(t, err, "allowed email")
	})

	t.Run("missing google credentials", func(t *testing.T) {
		t.Setenv("AUTH_SESSION_SECRET", "test-secret")
		t.Setenv("AUTH_ALLOWED_EMAILS", "me@example.com")

		_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.ErrorContains(t, err, "google client credentials")
	})
}

func TestIsEmailAllowed(t *testing.T) {
	cfg := &Config{}
	cfg.Auth.AllowedEmails = []string{"Me@Example.com", " other@example.com "}

	assert.True(t, cfg.IsEmailAllowed("me@example.com"))
	assert.True(t, cfg.IsEmailAllowed("ME@EXAMPLE.COM"))
	assert.True(t, cfg.IsEmailAllowed("other@example.com"))
	assert.False(t, cfg.IsEmailAllowed("stranger@example.com"))
	assert.False(t, cfg.IsEmailAllowed(""))
}
