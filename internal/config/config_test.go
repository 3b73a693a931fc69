package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
  host: "0.0.0.0"
  environment: "sandbox"

square:
  access_token: "test-token"
  location_id: "L123456"
  timeout_seconds: 20

recaptcha:
  secret: "test-secret"
  min_score: 0.7

cors:
  allowed_origins:
    - "https://sisterspromise.com"
    - "http://localhost:5173"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.False(t, cfg.Server.IsProduction())

	assert.Equal(t, "test-token", cfg.Square.AccessToken)
	assert.Equal(t, "L123456", cfg.Square.LocationID)
	assert.Equal(t, 20, cfg.Square.TimeoutSeconds)

	assert.Equal(t, "test-secret", cfg.Recaptcha.Secret)
	assert.Equal(t, 0.7, cfg.Recaptcha.MinScore)

	assert.Equal(t,
		[]string{"https://sisterspromise.com", "http://localhost:5173"},
		cfg.CORS.AllowedOrigins)
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "server: {}\n"))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "localhost", cfg.Server.Host)
	assert.Equal(t, "sandbox", cfg.Server.Environment)
	assert.Equal(t, "https://connect.squareupsandbox.com", cfg.Square.BaseURL)
	assert.Equal(t, 10, cfg.Square.TimeoutSeconds)
	assert.Equal(t, "https://www.google.com", cfg.Recaptcha.BaseURL)
	assert.Equal(t, 0.5, cfg.Recaptcha.MinScore)
	assert.NotEmpty(t, cfg.CORS.AllowedOrigins)
}

func TestLoadProductionBaseURL(t *testing.T) {
	cfg, err := Load(writeConfig(t, "server:\n  environment: production\n"))
	require.NoError(t, err)
	assert.Equal(t, "https://connect.squareup.com", cfg.Square.BaseURL)
}

func TestLoadFromEnvOverrides(t *testing.T) {
	t.Setenv("SQUARE_ACCESS_TOKEN", "env-token")
	t.Setenv("SQUARE_LOCATION_ID", "env-location")
	t.Setenv("RECAPTCHA_SECRET", "env-secret")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com")
	t.Setenv("PORT", "3001")
	t.Setenv("DEV_MODE", "true")

	cfg, err := LoadFromEnv(writeConfig(t, "server: {}\n"))
	require.NoError(t, err)

	assert.Equal(t, "env-token", cfg.Square.AccessToken)
	assert.Equal(t, "env-location", cfg.Square.LocationID)
	assert.Equal(t, "env-secret", cfg.Recaptcha.Secret)
	assert.Equal(t,
		[]string{"https://a.example.com", "https://b.example.com"},
		cfg.CORS.AllowedOrigins)
	assert.Equal(t, 3001, cfg.Server.Port)
	assert.True(t, cfg.Server.Development)
}

func TestLoadFromEnvEnvironmentSwitchesBaseURL(t *testing.T) {
	t.Setenv("SQUARE_ENVIRONMENT", "production")

	cfg, err := LoadFromEnv(writeConfig(t, "server: {}\n"))
	require.NoError(t, err)

	assert.True(t, cfg.Server.IsProduction())
	assert.Equal(t, "https://connect.squareup.com", cfg.Square.BaseURL)
}

func TestValidate(t *testing.T) {
	cfg := &Config{}
	cfg.applyDefaults()
	assert.NoError(t, cfg.Validate(), "sandbox tolerates missing credentials")

	cfg.Server.Environment = "production"
	assert.Error(t, cfg.Validate())

	cfg.Square.AccessToken = "tok"
	cfg.Square.LocationID = "loc"
	cfg.Recaptcha.Secret = "sec"
	assert.NoError(t, cfg.Validate())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
