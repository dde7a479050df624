package config

const (
	DefaultPort           = 22
	DefaultCommand        = "show configuration commands"
	DefaultTimeoutSeconds = 30
	DefaultRetries        = 1
	DefaultTextReport     = "audit_report.txt"
	DefaultJSONReport     = "audit_report.json"
)

// ApplyDefaults fills in default values for optional fields that were not
// specified in the YAML. It is called after parsing and before validation.
func ApplyDefaults(cfg *Config) {
	if cfg.Device.Port == 0 {
		cfg.Device.Port = DefaultPort
	}
	if cfg.Device.Command == "" {
		cfg.Device.Command = DefaultCommand
	}
	if cfg.Device.TimeoutSeconds == 0 {
		cfg.Device.TimeoutSeconds = DefaultTimeoutSeconds
	}
	if cfg.Device.Retries == 0 {
		cfg.Device.Retries = DefaultRetries
	}

	if cfg.Reports.Text == "" {
		cfg.Reports.Text = DefaultTextReport
	}
	if cfg.Reports.JSON == "" {
		cfg.Reports.JSON = DefaultJSONReport
	}
}

// Default returns a config with every default applied.
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}
