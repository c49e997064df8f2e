package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWithoutConfigFile(t *testing.T) {
	clearEnv(t)
	home := t.TempDir()

	v, cfg, err := Load(home)
	require.NoError(t, err)

	assert.Equal(t, "http://127.0.0.1:8085", cfg.BaseURL)
	assert.Equal(t, filepath.Join(home, ".invscan", "profiles.toml"), cfg.ProfilesPath)
	assert.Equal(t, filepath.Join(home, ".invscan", "secrets"), cfg.SecretsPath)
	assert.Empty(t, cfg.PassDir)
	assert.Equal(t, 3*time.Second, cfg.PollInterval)
	assert.Equal(t, 9*time.Second, cfg.StaleAfter())
	assert.Equal(t, 600*time.Millisecond, cfg.AckDuration)
	assert.Equal(t, 1200*time.Millisecond, cfg.SettleDelay)
	assert.Equal(t, 15*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, cfg.ProfilesPath, v.GetString(KeyProfilesPath))
}

func TestLoadReadsConfigFile(t *testing.T) {
	clearEnv(t)
	home := t.TempDir()
	writeConfig(t, home, `
[server]
base_url = "https://lager.example.org"

[profiles]
path = "~/inv/profiles.toml"

[secrets]
pass_dir = "~/.password-store-inv"

[poll]
interval = "5s"

[cache]
stale_polls = 2

[scan]
settle_delay = "0s"
`)

	_, cfg, err := Load(home)
	require.NoError(t, err)

	assert.Equal(t, "https://lager.example.org", cfg.BaseURL)
	assert.False(t, cfg.BaseURLPinned)
	assert.Equal(t, filepath.Join(home, "inv", "profiles.toml"), cfg.ProfilesPath)
	assert.Equal(t, filepath.Join(home, ".password-store-inv"), cfg.PassDir)
	assert.Equal(t, 5*time.Second, cfg.PollInterval)
	assert.Equal(t, 10*time.Second, cfg.StaleAfter())
	assert.Zero(t, cfg.SettleDelay)
}

func TestLoadEnvironmentOverridesFile(t *testing.T) {
	clearEnv(t)
	home := t.TempDir()
	writeConfig(t, home, "[server]\nbase_url = \"https://file.example.org\"\n")
	t.Setenv("INVSCAN_BASE_URL", "http://127.0.0.1:9999")
	t.Setenv("INVSCAN_PROFILE", "lager")
	t.Setenv("INVSCAN_TOKEN", " secret ")
	t.Setenv("INVSCAN_LOG_LEVEL", "debug")

	v, cfg, err := Load(home)
	require.NoError(t, err)

	assert.Equal(t, "http://127.0.0.1:9999", cfg.BaseURL)
	assert.Equal(t, "http://127.0.0.1:9999", v.GetString(KeyBaseURL))
	assert.True(t, cfg.BaseURLPinned)
	assert.Equal(t, "lager", cfg.Profile)
	assert.Equal(t, "secret", cfg.Token)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadRejectsMalformedConfig(t *testing.T) {
	clearEnv(t)
	home := t.TempDir()
	writeConfig(t, home, "[server\nbase_url = ")

	_, _, err := Load(home)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")
}

func TestLoadRejectsNonPositivePollInterval(t *testing.T) {
	clearEnv(t)
	home := t.TempDir()
	writeConfig(t, home, "[poll]\ninterval = \"0s\"\n")

	_, _, err := Load(home)
	require.Error(t, err)
	assert.Contains(t, err.Error(), KeyPollInterval)
}

func TestNewLoggerHonoursLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(&buf, "warn")
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("shown", "item", 42)

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "msg=shown item=42")
}

func TestNewLoggerRejectsUnknownLevel(t *testing.T) {
	_, err := NewLogger(&bytes.Buffer{}, "chatty")
	require.Error(t, err)
}

func writeConfig(t *testing.T, home string, body string) {
	t.Helper()
	dir := filepath.Join(home, ".invscan")
	require.NoError(t, os.MkdirAll(dir, 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(body), 0o600))
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"INVSCAN_BASE_URL", "INVSCAN_PROFILE", "INVSCAN_TOKEN", "INVSCAN_LOG_LEVEL"} {
		t.Setenv(key, "")
	}
}
