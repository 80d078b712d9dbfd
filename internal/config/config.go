// Package config loads the optional YAML config file. A missing file is
// not an error; defaults apply.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// DBPath is the SQLite database location. Defaults next to the
	// config file.
	DBPath string `yaml:"db_path"`

	// DefaultProject names the fallback project for tasks created
	// without one.
	DefaultProject string `yaml:"default_project"`
}

// DefaultPath returns ~/.config/clockwise/config.yml
func DefaultPath() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, "clockwise", "config.yml"), nil
}

// Load reads the config at path, filling unset fields with defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// No file, defaults only.
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if cfg.DBPath == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return nil, err
		}
		cfg.DBPath = filepath.Join(base, "clockwise", "clockwise.db")
	}
	if cfg.DefaultProject == "" {
		cfg.DefaultProject = "Shared Tasks"
	}
	return cfg, nil
}
