// Package config loads foretell's configuration from a JSON file in the
// XDG config directory with FORETELL_* environment overrides on top.
package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
)

type Config struct {
	Server  ServerConfig
	Storage StorageConfig
	Log     LogConfig
}

type ServerConfig struct {
	Port int
}

type StorageConfig struct {
	DataDir string
}

type LogConfig struct {
	Level string
}

func defaults() Config {
	return Config{
		Server:  ServerConfig{Port: 4242},
		Storage: StorageConfig{DataDir: defaultDataDir()},
		Log:     LogConfig{Level: "info"},
	}
}

// Load reads configuration from the config file and applies environment
// overrides (FORETELL_PORT, FORETELL_DATA_DIR, FORETELL_LOG_LEVEL).
func Load() (Config, error) {
	return loadWith(newFileBackend())
}

func loadWith(b Backend) (Config, error) {
	cfg := defaults()
	if err := applyBackend(&cfg, b); err != nil {
		return Config{}, err
	}
	applyEnvOverrides(&cfg)
	return cfg, nil
}

func applyBackend(cfg *Config, b Backend) error {
	if v, ok, err := b.GetInt(KeyServerPort); err != nil {
		return err
	} else if ok {
		cfg.Server.Port = v
	}
	if v, ok, err := b.GetString(KeyDataDir); err != nil {
		return err
	} else if ok {
		cfg.Storage.DataDir = v
	}
	if v, ok, err := b.GetString(KeyLogLevel); err != nil {
		return err
	} else if ok {
		cfg.Log.Level = v
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("FORETELL_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = p
		} else {
			slog.Warn("ignoring invalid FORETELL_PORT", "value", v)
		}
	}
	if v := os.Getenv("FORETELL_DATA_DIR"); v != "" {
		cfg.Storage.DataDir = v
	}
	if v := os.Getenv("FORETELL_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
}

// HistoryPath is the prediction history store file.
func (c Config) HistoryPath() string {
	return filepath.Join(c.Storage.DataDir, "history.json")
}

// RemindersPath is the reminder store file.
func (c Config) RemindersPath() string {
	return filepath.Join(c.Storage.DataDir, "reminders.json")
}

// ThemesPath is the custom theme registry file.
func (c Config) ThemesPath() string {
	return filepath.Join(c.Storage.DataDir, "themes.json")
}
