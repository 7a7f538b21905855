package config

import (
	"fmt"
	"net/url"
	"strings"
)

// ValidationError collects multiple validation failures.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed:\n  - %s", strings.Join(e.Errors, "\n  - "))
}

// Validate re-checks the config, e.g. after flag overrides are applied on
// top of a loaded file.
func (c *Config) Validate() error {
	return validate(c)
}

// validate checks the config for internal consistency and returns a
// ValidationError if any checks fail. All checks run — errors are collected,
// not short-circuited.
func validate(cfg *Config) error {
	var errs []string

	if cfg.Server.URL != "" {
		u, err := url.Parse(cfg.Server.URL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, fmt.Sprintf("server.url %q is not a valid URL", cfg.Server.URL))
		}
	}
	if cfg.Server.Host == "" {
		errs = append(errs, "server.host must not be empty")
	}
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("server.port %d must be in 1..65535", cfg.Server.Port))
	}
	if cfg.Server.TimeoutSeconds <= 0 {
		errs = append(errs, "server.timeout_seconds must be positive")
	}
	if cfg.Server.StartupTimeoutSeconds <= 0 {
		errs = append(errs, "server.startup_timeout_seconds must be positive")
	}

	if cfg.Poll.IntervalSeconds < 0 {
		errs = append(errs, "poll.interval_seconds must be zero (off) or positive")
	}

	switch cfg.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, fmt.Sprintf("logging.level %q must be one of debug, info, warn, error", cfg.Logging.Level))
	}

	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}
