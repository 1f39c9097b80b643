package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (POLGRAPH_*).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	cfg := DefaultConfig()

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	// POLGRAPH_DATASET_NAME -> dataset_name, etc.
	if err := k.Load(env.Provider("POLGRAPH_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "POLGRAPH_"))
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

var validThemes = map[string]bool{"dark": true, "light": true}

var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d: must be between 1 and 65535", c.Port)
	}
	if !validThemes[c.Theme] {
		return fmt.Errorf("invalid theme %q: must be one of dark, light", c.Theme)
	}
	if _, ok := logLevels[c.LogLevel]; !ok {
		return fmt.Errorf("invalid log_level %q: must be one of debug, info, warn, error", c.LogLevel)
	}
	if c.DatasetName != "" && c.Database == "" {
		return fmt.Errorf("dataset_name requires database")
	}
	if c.InitialFilter == "" {
		return fmt.Errorf("initial_filter is required")
	}
	return nil
}

// SlogLevel maps log_level to a slog.Level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	if l, ok := logLevels[c.LogLevel]; ok {
		return l
	}
	return slog.LevelInfo
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
