package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Load discovers a config file, merges it with defaults, applies environment
// variable overrides, validates the result, and returns the final config.
func Load() (*Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting working directory: %w", err)
	}
	return LoadFrom(cwd)
}

// LoadFrom loads config using the given directory for file discovery. This is
// the testable entry point — Load() calls it with os.Getwd().
func LoadFrom(dir string) (*Config, error) {
	cfg := DefaultConfig()

	path, err := discoverConfigPath(dir)
	if err != nil {
		return nil, fmt.Errorf("config discovery: %w", err)
	}

	if path != "" {
		override, err := loadFromFile(path)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", path, err)
		}
		merge(&cfg, override)
	}

	applyEnvOverrides(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return &cfg, nil
}

// LoadFile loads an explicit config path, bypassing discovery.
func LoadFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	override, err := loadFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	merge(&cfg, override)
	applyEnvOverrides(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return &cfg, nil
}

// discoverConfigPath searches the discovery chain and returns the first config
// file that exists. Returns empty string if none found (defaults-only mode).
func discoverConfigPath(dir string) (string, error) {
	// 1. ./tbtop.yaml (relative to the working directory)
	local := filepath.Join(dir, "tbtop.yaml")
	if _, err := os.Stat(local); err == nil {
		return local, nil
	}

	// 2. ~/.config/tbtop/config.yaml
	home, err := os.UserHomeDir()
	if err != nil {
		return "", nil // can't resolve home, skip
	}
	user := filepath.Join(home, ".config", "tbtop", "config.yaml")
	if _, err := os.Stat(user); err == nil {
		return user, nil
	}

	return "", nil
}

func loadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}

	return &cfg, nil
}

// merge overlays override onto base. Scalar fields override when non-zero;
// pointer-to-bool fields override when non-nil.
func merge(base *Config, override *Config) {
	if override.Server.Host != "" {
		base.Server.Host = override.Server.Host
	}
	if override.Server.Port != 0 {
		base.Server.Port = override.Server.Port
	}
	if override.Server.URL != "" {
		base.Server.URL = override.Server.URL
	}
	if override.Server.TimeoutSeconds != 0 {
		base.Server.TimeoutSeconds = override.Server.TimeoutSeconds
	}
	if override.Server.StartupTimeoutSeconds != 0 {
		base.Server.StartupTimeoutSeconds = override.Server.StartupTimeoutSeconds
	}

	if override.Poll.IntervalSeconds != 0 {
		base.Poll.IntervalSeconds = override.Poll.IntervalSeconds
	}

	if override.UI.Theme != "" {
		base.UI.Theme = override.UI.Theme
	}
	if override.UI.ShowStatusBar != nil {
		base.UI.ShowStatusBar = override.UI.ShowStatusBar
	}

	if override.Logging.File != "" {
		base.Logging.File = override.Logging.File
	}
	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}
}

// applyEnvOverrides applies TBTOP_* environment variables on top of the config.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("TBTOP_URL"); v != "" {
		cfg.Server.URL = v
	}
	if v := os.Getenv("TBTOP_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("TBTOP_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = n
		} else {
			fmt.Fprintf(os.Stderr, "warning: TBTOP_PORT=%q is not a valid integer, ignoring\n", v)
		}
	}
	if v := os.Getenv("TBTOP_POLL_INTERVAL"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Poll.IntervalSeconds = n
		} else {
			fmt.Fprintf(os.Stderr, "warning: TBTOP_POLL_INTERVAL=%q is not a valid integer, ignoring\n", v)
		}
	}
	if v := os.Getenv("TBTOP_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}
