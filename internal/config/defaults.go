package config

func boolPtr(b bool) *bool { return &b }

func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Host:                  "localhost",
			Port:                  6006,
			TimeoutSeconds:        10,
			StartupTimeoutSeconds: 30,
		},
		Poll: PollConfig{
			IntervalSeconds: 30,
		},
		UI: UIConfig{
			Theme:         "default",
			ShowStatusBar: boolPtr(true),
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
