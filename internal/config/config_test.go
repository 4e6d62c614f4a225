package config_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tasksync/internal/config"
)

func TestLoadSettings_MissingFileUsesDefaults(t *testing.T) {
	s, err := config.LoadSettings(filepath.Join(t.TempDir(), "config.toml"))
	require.NoError(t, err)
	assert.Equal(t, config.DefaultSettings(), s)
	assert.Equal(t, config.DefaultBaseURL, s.BaseURL)
	assert.Equal(t, 10, s.FetchLimit)
	assert.Equal(t, 5*time.Second, s.NotifyTimeout.Duration)
	assert.Zero(t, s.RequestTimeout.Duration)
}

func TestLoadSettings_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
base_url = "http://127.0.0.1:3000/todos"
fetch_limit = 25
user_id = 4
notify_timeout = "2s"
request_timeout = "10s"
log_file = "/tmp/x.log"
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0600))

	s, err := config.LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:3000/todos", s.BaseURL)
	assert.Equal(t, 25, s.FetchLimit)
	assert.Equal(t, 4, s.UserID)
	assert.Equal(t, 2*time.Second, s.NotifyTimeout.Duration)
	assert.Equal(t, 10*time.Second, s.RequestTimeout.Duration)
	assert.Equal(t, "/tmp/x.log", s.LogFile)
}

func TestLoadSettings_ZeroValuesFallBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("base_url = \"\"\nfetch_limit = 0\n"), 0600))

	s, err := config.LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultBaseURL, s.BaseURL)
	assert.Equal(t, config.DefaultFetchLimit, s.FetchLimit)
}

func TestLoadSettings_Invalid(t *testing.T) {
	tests := map[string]string{
		"syntax":   "base_url = ",
		"duration": `notify_timeout = "soon"`,
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			require.NoError(t, os.WriteFile(path, []byte(data), 0600))

			_, err := config.LoadSettings(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid config.toml")
		})
	}
}

func TestNew_UsesGivenDir(t *testing.T) {
	dir := t.TempDir()
	cfg, err := config.New(dir)
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.Dir)
	assert.Equal(t, filepath.Join(dir, "config.toml"), cfg.SettingsPath())
	assert.Equal(t, filepath.Join(dir, "tasksync.log"), cfg.LogPath())

	cfg.LogFile = "/var/log/custom.log"
	assert.Equal(t, "/var/log/custom.log", cfg.LogPath())
}

func TestDefaultConfigDir_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	assert.Equal(t, filepath.Join("/xdg", "tasksync"), config.DefaultConfigDir())
}

func TestEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "tasksync")
	cfg := &config.Config{Dir: dir}
	require.NoError(t, cfg.EnsureDir())

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestCommandLogger_DebugOnly(t *testing.T) {
	var buf bytes.Buffer

	cfg := &config.Config{}
	cfg.CommandLogger(&buf).Error("hidden")
	assert.Empty(t, buf.String())

	cfg.Debug = true
	cfg.CommandLogger(&buf).Debug("shown", "k", "v")
	assert.Contains(t, buf.String(), "msg=shown")
	assert.Contains(t, buf.String(), "k=v")
}
