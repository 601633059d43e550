// Package config provides configuration file support for latch.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the latch configuration.
type Config struct {
	LockDir string        `yaml:"lock_dir"`
	Format  string        `yaml:"format"` // yaml, json
	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig configures logging behavior.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Format: "yaml",
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Dir returns the directory holding config.yaml: $LATCH_CONFIG_DIR if set,
// else $XDG_CONFIG_HOME/latch, else ~/.config/latch.
func Dir() string {
	if dir := os.Getenv("LATCH_CONFIG_DIR"); dir != "" {
		return dir
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "latch")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".latch"
	}
	return filepath.Join(home, ".config", "latch")
}

// Load loads configuration from config.yaml in Dir().
// Returns default config if the file doesn't exist.
func Load() (*Config, error) {
	cfg := Default()
	cfgPath := filepath.Join(Dir(), "config.yaml")

	data, err := os.ReadFile(cfgPath)
	if os.IsNotExist(err) {
		return cfg, nil // No config file is OK, use defaults
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return cfg, nil
}

// Save writes configuration to config.yaml in Dir().
func Save(cfg *Config) error {
	cfgPath := filepath.Join(Dir(), "config.yaml")

	if err := os.MkdirAll(filepath.Dir(cfgPath), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(cfgPath, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
