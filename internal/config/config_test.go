package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfig(t, `
upstream:
  url: http://localhost:3000
  timeout: 5s
refresh:
  interval: 30m
  retention_days: 14
budget:
  monthly_limit: 50000
server:
  port: 9090
log:
  level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:3000", cfg.Upstream.URL)
	assert.Equal(t, 5*time.Second, cfg.Upstream.Timeout)
	assert.Equal(t, 30*time.Minute, cfg.Refresh.Interval)
	assert.Equal(t, 14, cfg.Refresh.RetentionDays)
	assert.Equal(t, 50000.0, cfg.Budget.MonthlyLimit)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel())
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
upstream:
  url: http://localhost:3000
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 15*time.Second, cfg.Upstream.Timeout)
	assert.Equal(t, time.Hour, cfg.Refresh.Interval)
	assert.Equal(t, 90, cfg.Refresh.RetentionDays)
	assert.Equal(t, 30000.0, cfg.Budget.MonthlyLimit)
	assert.Equal(t, "toolspend.db", cfg.Storage.Path)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel())
}

func TestLoadMissingFileFallsBackToDefaults(t *testing.T) {
	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { os.Chdir(cwd) })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "https://tt-jsonserver-01.alt-tools.tech", cfg.Upstream.URL)
	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestLoadInvalidPort(t *testing.T) {
	path := writeConfig(t, `
upstream:
  url: http://localhost:3000
server:
  port: 70000
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server.port")
}

func TestValidate(t *testing.T) {
	cfg := defaultConfig()
	assert.NoError(t, cfg.Validate())

	cfg.Upstream.URL = ""
	assert.Error(t, cfg.Validate())

	cfg = defaultConfig()
	cfg.Refresh.RetentionDays = 0
	assert.Error(t, cfg.Validate())

	cfg = defaultConfig()
	cfg.Budget.MonthlyLimit = -1
	assert.Error(t, cfg.Validate())
}

func TestRetentionDuration(t *testing.T) {
	cfg := defaultConfig()
	cfg.Refresh.RetentionDays = 7
	assert.Equal(t, 7*24*time.Hour, cfg.RetentionDuration())
}

func TestLogLevelMapping(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"bogus", slog.LevelInfo},
	}

	for _, tt := range tests {
		cfg := defaultConfig()
		cfg.Log.Level = tt.level
		assert.Equal(t, tt.want, cfg.LogLevel())
	}
}
