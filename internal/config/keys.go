package config

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	KeyServerPort = "server.port"
	KeyDataDir    = "storage.data_dir"
	KeyLogLevel   = "log.level"
)

var allKeys = []string{KeyServerPort, KeyDataDir, KeyLogLevel}

// KeyValue is one settable config entry, for display.
type KeyValue struct {
	Key   string
	Value string
}

// ShowAll renders the effective configuration as key-value pairs.
func ShowAll(cfg Config) []KeyValue {
	return []KeyValue{
		{KeyServerPort, strconv.Itoa(cfg.Server.Port)},
		{KeyDataDir, cfg.Storage.DataDir},
		{KeyLogLevel, cfg.Log.Level},
	}
}

// SetKey writes one config value to the config file.
func SetKey(key, value string) error {
	b := newFileBackend()
	switch key {
	case KeyServerPort:
		p, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid port %q: %w", value, err)
		}
		return b.SetInt(key, p)
	case KeyDataDir, KeyLogLevel:
		return b.SetString(key, value)
	default:
		return fmt.Errorf("unknown config key %q (known keys: %s)", key, strings.Join(allKeys, ", "))
	}
}
