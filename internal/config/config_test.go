package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_DefaultsWithSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "campushub", cfg.Database.DBName)
	assert.Equal(t, "168h", cfg.JWT.TokenExpiration)
	assert.Equal(t, "10m", cfg.OTP.TTL)
	assert.Equal(t, "60s", cfg.OTP.ResendInterval)
}

func TestLoadConfig_FileAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  port: "9090"
jwt:
  secret: "file-secret"
otp:
  ttl: "5m"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("SERVER_PORT", "7070")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	// Env beats file, file beats default
	assert.Equal(t, "7070", cfg.Server.Port)
	assert.Equal(t, "file-secret", cfg.JWT.Secret)
	assert.Equal(t, "5m", cfg.OTP.TTL)
}

func TestLoadConfig_MissingSecretFails(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoadConfig_BadDurationFails(t *testing.T) {
	t.Setenv("JWT_SECRET", "s")
	t.Setenv("OTP_TTL", "not-a-duration")

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
