package config

import "time"

// Default values for configuration fields.
const (
	// Server defaults
	DefaultHost            = "0.0.0.0"
	DefaultPort            = 8080
	DefaultReadTimeout     = 30 * time.Second
	DefaultWriteTimeout    = 10 * time.Minute
	DefaultIdleTimeout     = 120 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	// Response defaults
	DefaultGenerator    = "lorem"
	DefaultTargetTokens = 100

	// Error injection defaults
	DefaultTimeoutAfterMS = 30000

	// Telemetry defaults
	DefaultLoggingLevel   = "info"
	DefaultLoggingFormat  = "json"
	DefaultMetricsEnabled = true
	DefaultMetricsPath    = "/metrics"
)

// ApplyDefaults applies default values to a Config struct.
// It sets defaults for any fields that have zero values.
// This function is idempotent and safe to call multiple times.
func ApplyDefaults(cfg *Config) {
	// Server defaults
	if cfg.Server.Host == "" {
		cfg.Server.Host = DefaultHost
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultPort
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = DefaultReadTimeout
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = DefaultWriteTimeout
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = DefaultIdleTimeout
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = DefaultShutdownTimeout
	}

	// Response defaults
	if cfg.Response.Generator == "" {
		cfg.Response.Generator = DefaultGenerator
	}
	if cfg.Response.TargetTokens == 0 {
		cfg.Response.TargetTokens = DefaultTargetTokens
	}

	// Error injection defaults. Rates default to zero, which disables
	// injection.
	if cfg.Errors.TimeoutAfterMS == 0 {
		cfg.Errors.TimeoutAfterMS = DefaultTimeoutAfterMS
	}

	// Telemetry defaults
	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLoggingLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLoggingFormat
	}
	applyMetricsDefaults(cfg)
}

// applyMetricsDefaults applies default values to metrics configuration.
func applyMetricsDefaults(cfg *Config) {
	metrics := &cfg.Telemetry.Metrics

	// Enabled defaults to true when the section is untouched. A populated
	// section with enabled omitted keeps the zero value.
	if !metrics.Enabled && metrics.Path == "" {
		metrics.Enabled = DefaultMetricsEnabled
	}
	if metrics.Path == "" {
		metrics.Path = DefaultMetricsPath
	}
}
