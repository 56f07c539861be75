// Package config handles configuration and tour definition loading.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Default configuration values.
const (
	DefaultLogLevel     = "info"
	DefaultVolume       = 80
	DefaultWigglePeriod = Duration(900 * time.Millisecond)

	// Default popup palette.
	DefaultBackground = "#3b4252"
	DefaultForeground = "#eceff4"
	DefaultBorder     = "#88c0d0"
	DefaultAccent     = "#ebcb8b"
	DefaultTitle      = "#8fbcbb"
	DefaultHighlight  = "#bf616a"
)

// Config represents the tourtip configuration.
// Loaded from ~/.config/tourtip/config.toml.
type Config struct {
	Log   LogConfig   `toml:"log"`
	Theme ThemeConfig `toml:"theme"`
	Audio AudioConfig `toml:"audio"`
	Demo  DemoConfig  `toml:"demo"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level"` // debug, info, warn, error
}

// ThemeConfig holds popup colors. Accent colors the indicator glyphs
// and highlight marks the target element while its popup is showing;
// individual popups may override background and foreground per instance.
type ThemeConfig struct {
	Background string `toml:"background"`
	Foreground string `toml:"foreground"`
	Border     string `toml:"border"`
	Accent     string `toml:"accent"`
	Title      string `toml:"title"`
	Highlight  string `toml:"highlight"`
}

// AudioConfig holds chime settings.
type AudioConfig struct {
	Enabled bool        `toml:"enabled"`
	Volume  int         `toml:"volume"` // 0-100
	Sounds  SoundConfig `toml:"sounds"`
}

// SoundConfig holds per-event sound file paths. Empty paths disable the
// chime for that event.
type SoundConfig struct {
	Show     string `toml:"show"`     // a popup became visible
	Complete string `toml:"complete"` // every popup on a page is seen
}

// DemoConfig holds settings for the demo host.
type DemoConfig struct {
	StartPage    string   `toml:"start_page"`    // page shown first, empty = first registered
	WigglePeriod Duration `toml:"wiggle_period"` // fallback for popups without their own period
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
		Theme: ThemeConfig{
			Background: DefaultBackground,
			Foreground: DefaultForeground,
			Border:     DefaultBorder,
			Accent:     DefaultAccent,
			Title:      DefaultTitle,
			Highlight:  DefaultHighlight,
		},
		Audio: AudioConfig{
			Enabled: true,
			Volume:  DefaultVolume,
			Sounds:  SoundConfig{},
		},
		Demo: DemoConfig{
			StartPage:    "",
			WigglePeriod: DefaultWigglePeriod,
		},
	}
}

// LoadConfig loads configuration from the specified path. If path is
// empty the default config path is used; a missing file yields the
// defaults.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Overlay the file contents on the defaults.
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Save writes the configuration to the specified path, creating parent
// directories as needed. The write goes through a temp file so a crash
// cannot leave a half-written config behind.
func (c *Config) Save(path string) error {
	if path == "" {
		path = ConfigPath()
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return os.Rename(tmpPath, path)
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Log.Level] {
		return fmt.Errorf("invalid log level %q, must be one of: debug, info, warn, error", c.Log.Level)
	}

	if c.Audio.Volume < 0 || c.Audio.Volume > 100 {
		return fmt.Errorf("volume must be between 0 and 100, got %d", c.Audio.Volume)
	}

	if p := c.Demo.WigglePeriod.Duration(); p != 0 && p < 100*time.Millisecond {
		return fmt.Errorf("wiggle_period must be at least 100ms, got %s", p)
	}

	return nil
}

// SoundForEvent returns the configured sound path for an event name,
// with ~ expanded. Empty means no sound.
func (c *Config) SoundForEvent(event string) string {
	var path string
	switch event {
	case "show":
		path = c.Audio.Sounds.Show
	case "complete":
		path = c.Audio.Sounds.Complete
	}
	return expandPath(path)
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if len(path) >= 2 && path[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
