package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfigYAML = `
env:
  env: test
  log:
    level: debug
http:
  port: 8080
secretKey:
  access: access-secret
  reset: reset-secret
smtp:
  host: smtp.example.com
  port: 587
  dryRun: false
auth:
  accessTokenTTL: 30m
`

func writeTestConfig(t *testing.T, content string) {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o600))
	t.Chdir(dir)
}

func TestLoadWithEnv_ReadsYAMLAndEnvOverrides(t *testing.T) {
	writeTestConfig(t, testConfigYAML)
	t.Setenv("SMTP_HOST", "mail.internal")
	t.Setenv("SMTP_DRYRUN", "true")

	cfg, err := LoadWithEnv[Config]("config")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, "reset-secret", cfg.SecretKey.Reset)
	require.NotNil(t, cfg.SMTP)
	assert.Equal(t, "mail.internal", cfg.SMTP.Host)
	assert.True(t, cfg.SMTP.DryRun)
	require.NotNil(t, cfg.Auth)
	assert.Equal(t, 30*time.Minute, cfg.Auth.AccessTokenTTL)
}

func TestLoadWithEnv_MissingFile(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := LoadWithEnv[Config]("config")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestApplyDefaults(t *testing.T) {
	t.Run("fills unset values", func(t *testing.T) {
		cfg := &Config{
			SecretKey: SecretKeyConfig{Reset: "secret"},
			Storage:   &StorageConfig{BucketURL: "mem://"},
			Metrics:   &MetricsConfig{Enabled: true},
		}

		require.NoError(t, cfg.applyDefaults())

		assert.Equal(t, defaultMaxRequestBodySize, cfg.HTTP.MaxRequestBodySize)
		assert.Equal(t, defaultBcryptCost, cfg.Auth.BcryptCost)
		assert.Equal(t, defaultAccessTokenTTL, cfg.Auth.AccessTokenTTL)
		assert.Equal(t, int64(defaultMaxAvatarBytes), cfg.Storage.MaxAvatarBytes)
		assert.Equal(t, defaultMetricsPath, cfg.Metrics.Path)
	})

	t.Run("requires reset secret", func(t *testing.T) {
		cfg := &Config{}

		err := cfg.applyDefaults()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "secretKey.reset")
	})
}
