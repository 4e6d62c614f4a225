// Package config handles the configuration directory and the settings file.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	// AppName is the application directory name.
	AppName = "tasksync"

	// SettingsFile is the settings filename inside the config directory.
	SettingsFile = "config.toml"

	// LogFile is the default log filename for the interactive UI.
	LogFile = "tasksync.log"

	// DefaultBaseURL is the task collection used when none is configured.
	DefaultBaseURL = "https://jsonplaceholder.typicode.com/todos"

	// DefaultFetchLimit is the page size of the initial load.
	DefaultFetchLimit = 10

	// DefaultUserID is the placeholder owner sent with new tasks.
	DefaultUserID = 1

	// DefaultNotifyTimeout is how long a notification stays visible.
	DefaultNotifyTimeout = 5 * time.Second
)

// Duration is a time.Duration that decodes from strings like "5s".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Settings holds the values read from config.toml.
type Settings struct {
	BaseURL        string   `toml:"base_url"`
	FetchLimit     int      `toml:"fetch_limit"`
	UserID         int      `toml:"user_id"`
	NotifyTimeout  Duration `toml:"notify_timeout"`
	RequestTimeout Duration `toml:"request_timeout"`
	LogFile        string   `toml:"log_file"`
}

// DefaultSettings returns the built-in settings.
func DefaultSettings() Settings {
	return Settings{
		BaseURL:       DefaultBaseURL,
		FetchLimit:    DefaultFetchLimit,
		UserID:        DefaultUserID,
		NotifyTimeout: Duration{DefaultNotifyTimeout},
	}
}

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool

	// Log receives diagnostic records. Set by the dispatcher; nil discards.
	Log *slog.Logger

	Settings
}

// New creates a Config for the default or specified config directory and
// loads config.toml from it when present.
// If configDir is empty, uses XDG_CONFIG_HOME/tasksync or $HOME/.config/tasksync.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	settings, err := LoadSettings(filepath.Join(dir, SettingsFile))
	if err != nil {
		return nil, err
	}
	return &Config{Dir: dir, Settings: settings}, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// LoadSettings decodes the settings file at path over the defaults.
// A missing file is not an error.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return s, nil
	}

	if _, err := toml.DecodeFile(path, &s); err != nil {
		return Settings{}, fmt.Errorf("invalid %s: %w", SettingsFile, err)
	}

	if s.BaseURL == "" {
		s.BaseURL = DefaultBaseURL
	}
	if s.FetchLimit <= 0 {
		s.FetchLimit = DefaultFetchLimit
	}
	if s.NotifyTimeout.Duration <= 0 {
		s.NotifyTimeout = Duration{DefaultNotifyTimeout}
	}
	return s, nil
}

// SettingsPath returns the path to the settings file.
func (c *Config) SettingsPath() string {
	return filepath.Join(c.Dir, SettingsFile)
}

// LogPath returns the path of the interactive UI log file.
func (c *Config) LogPath() string {
	if c.LogFile != "" {
		return c.LogFile
	}
	return filepath.Join(c.Dir, LogFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// NewLogger returns a text logger writing to w.
// Debug lowers the level to debug; otherwise info and above are kept.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if c.Debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// CommandLogger returns the logger for non-interactive commands.
// Failures are already reported on errOut, so records are only written with --debug.
func (c *Config) CommandLogger(errOut io.Writer) *slog.Logger {
	if !c.Debug {
		return slog.New(slog.DiscardHandler)
	}
	return c.NewLogger(errOut)
}
