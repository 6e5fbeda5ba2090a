// Package config handles configuration file loading and the environment
// contract shared between cargo-clicker processes.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Default configuration values.
const (
	DefaultCommand  = "cargo"
	DefaultAlias    = "clicker"
	DefaultVolume   = 100
	DefaultSpeedMin = 0.95
	DefaultSpeedMax = 1.05
	DefaultLogLevel = "warn"
)

// Config represents the cargo-clicker configuration file.
type Config struct {
	Delegate DelegateConfig `toml:"delegate"`
	Audio    AudioConfig    `toml:"audio"`
	Log      LogConfig      `toml:"log"`
}

// DelegateConfig controls which tool is wrapped.
type DelegateConfig struct {
	Command string `toml:"command"` // Used when neither CARGO_CLICKER_ACTUAL nor CARGO is set
	Alias   string `toml:"alias"`   // Sub-command name stripped from the front of the arguments
}

// AudioConfig controls response selection and playback.
type AudioConfig struct {
	Responses string  `toml:"responses"` // Directory with Positive/ and Negative/ subdirectories
	Volume    int     `toml:"volume"`    // 0-100
	SpeedMin  float64 `toml:"speed_min"`
	SpeedMax  float64 `toml:"speed_max"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level"` // debug, info, warn, error
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Delegate: DelegateConfig{
			Command: DefaultCommand,
			Alias:   DefaultAlias,
		},
		Audio: AudioConfig{
			Volume:   DefaultVolume,
			SpeedMin: DefaultSpeedMin,
			SpeedMax: DefaultSpeedMax,
		},
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
	}
}

// ConfigPath returns the path to the config file.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config.
func ConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "cargo-clicker", "config.toml")
}

// LoadConfig loads configuration from the specified path.
// If path is empty, uses the default config path.
// Returns default config if file doesn't exist.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}

	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Audio.Volume < 0 || c.Audio.Volume > 100 {
		return fmt.Errorf("audio.volume must be between 0 and 100, got %d", c.Audio.Volume)
	}
	if c.Audio.SpeedMin <= 0 || c.Audio.SpeedMax <= c.Audio.SpeedMin {
		return fmt.Errorf("audio speed band [%g, %g) is empty", c.Audio.SpeedMin, c.Audio.SpeedMax)
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

// LogLevel resolves the slog level, preferring the environment over the file.
func (c *Config) LogLevel(env Env) (slog.Level, error) {
	if env.LogLevel != "" {
		return parseLevel(env.LogLevel)
	}
	return parseLevel(c.Log.Level)
}

// ResponseDir returns the response directory to use, or "" for the built-in set.
func (c *Config) ResponseDir(env Env) string {
	if env.Responses != "" {
		return env.Responses
	}
	return ExpandPath(c.Audio.Responses)
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if s == "" {
		return slog.LevelWarn, nil
	}
	if err := level.UnmarshalText([]byte(strings.ToLower(s))); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return level, nil
}

// ExpandPath expands a leading ~ to the home directory.
func ExpandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
