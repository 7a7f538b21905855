package config

import "fmt"

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Poll    PollConfig    `yaml:"poll"`
	UI      UIConfig      `yaml:"ui"`
	Logging LoggingConfig `yaml:"logging"`
}

type ServerConfig struct {
	// Host and Port locate an already-running TensorBoard. URL, when set,
	// wins over both.
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
	URL  string `yaml:"url"`

	// TimeoutSeconds bounds each API request.
	TimeoutSeconds int `yaml:"timeout_seconds"`

	// StartupTimeoutSeconds bounds how long an embedded server may take to
	// start listening.
	StartupTimeoutSeconds int `yaml:"startup_timeout_seconds"`
}

type PollConfig struct {
	// IntervalSeconds between scheduled polls. 0 disables scheduled
	// polling; manual refresh still works.
	IntervalSeconds int `yaml:"interval_seconds"`
}

type UIConfig struct {
	Theme         string `yaml:"theme"`
	ShowStatusBar *bool  `yaml:"show_status_bar"`
}

type LoggingConfig struct {
	// File receives all log output; the terminal belongs to the UI.
	// Empty means ~/.local/state/tbtop/tbtop.log.
	File  string `yaml:"file"`
	Level string `yaml:"level"`
}

// BaseURL resolves the server address the client should talk to.
func (s ServerConfig) BaseURL() string {
	if s.URL != "" {
		return s.URL
	}
	return fmt.Sprintf("http://%s:%d", s.Host, s.Port)
}
