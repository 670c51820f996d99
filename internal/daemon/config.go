// Package daemon manages the battalert lifecycle and configuration.
package daemon

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/battalert/battalert/internal/infra/platform"
	"github.com/battalert/battalert/internal/infra/sound"
)

// ConfigFile is the name of the config file inside the app directory.
const ConfigFile = "config.toml"

// Config holds all battalert configuration. User-facing alert settings
// (sound, volume, threshold) live in the settings database, not here.
type Config struct {
	Monitor MonitorConfig `toml:"monitor"`
	Notify  NotifyConfig  `toml:"notify"`
	Sound   SoundConfig   `toml:"sound"`
	Metrics MetricsConfig `toml:"metrics"`
	Health  HealthConfig  `toml:"health"`
	Logging LoggingConfig `toml:"logging"`
}

// MonitorConfig controls the polling loop.
type MonitorConfig struct {
	Interval string `toml:"interval"`
}

// NotifyConfig controls OS notifications.
type NotifyConfig struct {
	Title    string `toml:"title"`
	Icon     string `toml:"icon"`
	Duration string `toml:"duration"` // how long the fallback balloon stays up
	Toast    bool   `toml:"toast"`
}

// SoundConfig controls the audio output device.
type SoundConfig struct {
	SampleRate int `toml:"sample_rate"`
}

// MetricsConfig controls the Prometheus textfile export. Empty disables it.
type MetricsConfig struct {
	Textfile string `toml:"textfile"`
}

// HealthConfig controls the background health checker.
type HealthConfig struct {
	Interval string `toml:"interval"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	Level     string `toml:"level"`
	File      string `toml:"file"`
	MaxSizeMB int    `toml:"max_size_mb"`
	MaxFiles  int    `toml:"max_files"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() Config {
	return Config{
		Monitor: MonitorConfig{
			Interval: "5s",
		},
		Notify: NotifyConfig{
			Title:    "Battery Full Alert",
			Duration: "5s",
			Toast:    true,
		},
		Sound: SoundConfig{
			SampleRate: sound.DefaultSampleRate,
		},
		Health: HealthConfig{
			Interval: "60s",
		},
		Logging: LoggingConfig{
			Level:     "info",
			File:      "battalert.log",
			MaxSizeMB: 10,
			MaxFiles:  3,
		},
	}
}

// LoadConfig reads <home>/config.toml, falling back to defaults. A .env file
// in the working directory is loaded first so BATTALERT_HOME can be set there.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return DefaultConfig(), fmt.Errorf("load .env: %w", err)
	}

	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), err
	}
	return loadConfigFile(path)
}

func loadConfigFile(path string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil // No config file yet, use defaults
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	if cfg.Sound.SampleRate <= 0 {
		cfg.Sound.SampleRate = sound.DefaultSampleRate
	}
	return cfg, nil
}

// SaveConfig writes the config to <home>/config.toml and returns the path.
func SaveConfig(cfg Config) (string, error) {
	path, err := ConfigPath()
	if err != nil {
		return "", err
	}
	return path, saveConfigFile(path, cfg)
}

func saveConfigFile(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	return encoder.Encode(cfg)
}

// Home returns the application data directory, creating it if needed.
func Home() (string, error) {
	return platform.AppDir(platform.Current(), platform.AppName)
}

// ConfigPath returns the location of config.toml.
func ConfigPath() (string, error) {
	home, err := Home()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ConfigFile), nil
}

// ─── Resolved Values ────────────────────────────────────────────────────────

// TickInterval returns the monitor period (default 5s, minimum 1s).
func (c Config) TickInterval() time.Duration {
	return max(time.Second, parseDuration(c.Monitor.Interval, 5*time.Second))
}

// HealthInterval returns the health check period.
func (c Config) HealthInterval() time.Duration {
	return parseDuration(c.Health.Interval, 60*time.Second)
}

// BalloonDuration returns how long a fallback notice is shown.
func (c Config) BalloonDuration() time.Duration {
	return parseDuration(c.Notify.Duration, 5*time.Second)
}

// LogFile resolves the log file path against home when relative.
func (c Config) LogFile(home string) string {
	if c.Logging.File == "" || filepath.IsAbs(c.Logging.File) {
		return c.Logging.File
	}
	return filepath.Join(home, c.Logging.File)
}

// parseDuration parses a duration string, returning a fallback on error.
func parseDuration(s string, fallback time.Duration) time.Duration {
	if s == "" {
		return fallback
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
