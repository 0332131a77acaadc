// Package config handles TOML-based configuration loading and validation.
// The relay list and platform backend are data, so they can be swapped
// without rebuilding.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/sirupsen/logrus"

	"linkgrab/internal/httputil"
	"linkgrab/internal/relay"
)

// Config holds all application configuration.
type Config struct {
	Relays         []string `toml:"relays"`
	FailureMarkers []string `toml:"failure_markers"`
	YouTubeBackend string   `toml:"youtube_backend"`
	RelayTimeout   string   `toml:"relay_timeout"`
	UserAgent      string   `toml:"user_agent"`
	DownloadDir    string   `toml:"download_dir"`
	Player         string   `toml:"player"`
	LogLevel       string   `toml:"log_level"`
	LogJSON        bool     `toml:"log_json"`
	Debug          bool     `toml:"debug"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Relays:         append([]string(nil), relay.DefaultTemplates...),
		FailureMarkers: append([]string(nil), relay.DefaultFailureMarkers...),
		YouTubeBackend: "https://ytdl-six.vercel.app/api",
		RelayTimeout:   "15s",
		UserAgent:      httputil.DefaultUserAgent,
		DownloadDir:    "~/Downloads/linkgrab",
		Player:         "mpv",
		LogLevel:       "info",
		LogJSON:        false,
		Debug:          false,
	}
}

// configDir returns the XDG-compliant config directory.
func configDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "linkgrab"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".config", "linkgrab"), nil
}

// ConfigPath returns the path to the config file.
func ConfigPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load reads the config file and merges with defaults.
// If the config file doesn't exist, defaults are returned.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile reads the config file at path and merges it with defaults.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate checks config values are within acceptable bounds.
func (c *Config) Validate() error {
	if len(c.Relays) == 0 {
		return fmt.Errorf("at least one relay is required")
	}
	for _, r := range c.Relays {
		if _, err := relay.ParseTemplate(r); err != nil {
			return err
		}
	}

	if err := httputil.ValidateURL(c.YouTubeBackend); err != nil {
		return fmt.Errorf("youtube_backend: %w", err)
	}

	if _, err := c.Timeout(); err != nil {
		return err
	}

	validPlayers := map[string]bool{
		"mpv": true, "vlc": true, "iina": true, "celluloid": true,
	}
	if !validPlayers[strings.ToLower(c.Player)] {
		return fmt.Errorf("unsupported player %q (valid: mpv, vlc, iina, celluloid)", c.Player)
	}

	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}

	return nil
}

// Timeout returns the parsed per-relay-attempt timeout.
func (c *Config) Timeout() (time.Duration, error) {
	d, err := time.ParseDuration(c.RelayTimeout)
	if err != nil {
		return 0, fmt.Errorf("relay_timeout %q: %w", c.RelayTimeout, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("relay_timeout must be positive, got %s", d)
	}
	return d, nil
}

// Level returns the effective log level; Debug forces debug.
func (c *Config) Level() logrus.Level {
	if c.Debug {
		return logrus.DebugLevel
	}
	lvl, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return logrus.InfoLevel
	}
	return lvl
}

// ExpandDownloadDir resolves ~ in the download directory path.
func (c *Config) ExpandDownloadDir() (string, error) {
	return expandHome(c.DownloadDir)
}

func expandHome(dir string) (string, error) {
	if strings.HasPrefix(dir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expanding home dir: %w", err)
		}
		dir = filepath.Join(home, dir[2:])
	}
	return filepath.Abs(dir)
}
