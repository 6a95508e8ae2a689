package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	// Create a temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
server:
  port: 9090
  host: "0.0.0.0"

database:
  url: "postgres://localhost:5432/notify?sslmode=disable"

ses:
  region: "eu-central-1"
  access_key: "test-access-key"
  secret_key: "test-secret-key"
  timeout_seconds: 45
  enabled: true

sender:
  from_email: "events@shutterfest.io"
  from_name: "Shutterfest Events"

confirm:
  secret: "test-signing-secret"
  base_url: "https://shutterfest.io/confirm"
  ttl_hours: 72

dispatch:
  workers: 4
  rate_per_second: 25
`
	err := os.WriteFile(configPath, []byte(configContent), 0644)
	require.NoError(t, err)

	cfg, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, "postgres://localhost:5432/notify?sslmode=disable", cfg.Database.URL)
	assert.Equal(t, "eu-central-1", cfg.SES.Region)
	assert.True(t, cfg.SES.Enabled)
	assert.Equal(t, 45, cfg.SES.TimeoutSeconds)
	assert.Equal(t, "events@shutterfest.io", cfg.Sender.FromEmail)
	assert.Equal(t, 72, cfg.Confirm.TTLHours)
	assert.Equal(t, 4, cfg.Dispatch.Workers)
	assert.Equal(t, 25, cfg.Dispatch.RatePerSecond)
}

func TestLoadDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("server:\n  port: 0\n"), 0644))

	cfg, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "localhost", cfg.Server.Host)
	assert.Equal(t, "us-west-2", cfg.SES.Region)
	assert.Equal(t, 30, cfg.SES.TimeoutSeconds)
	assert.Equal(t, 587, cfg.SMTP.Port)
	assert.Equal(t, "auto", cfg.SMTP.TLSMode)
	assert.Equal(t, 14*24, cfg.Confirm.TTLHours)
	assert.Equal(t, 8, cfg.Dispatch.Workers)
	assert.Equal(t, 50, cfg.Dispatch.RatePerSecond)
	assert.Equal(t, 2000, cfg.Dispatch.RatePerMinute)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/config.yaml")
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("server:\n  port: 8080\n"), 0644))

	t.Setenv("DATABASE_URL", "postgres://override:5432/notify")
	t.Setenv("CONFIRM_SECRET", "env-secret")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")

	cfg, err := LoadFromEnv(configPath)
	require.NoError(t, err)

	assert.Equal(t, "postgres://override:5432/notify", cfg.Database.URL)
	assert.Equal(t, "env-secret", cfg.Confirm.Secret)
	assert.Equal(t, "redis://localhost:6379/0", cfg.Redis.URL)
	assert.True(t, cfg.Redis.Enabled)
}
