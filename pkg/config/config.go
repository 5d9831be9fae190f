package config

import (
	"time"

	"mercator-hq/llmsim/pkg/faults"
	"mercator-hq/llmsim/pkg/latency"
)

// Config is the root configuration structure for the simulator. It contains
// all configuration sections for the HTTP server, latency model, response
// generation, error injection, model catalog, statistics, and telemetry.
type Config struct {
	// Server contains HTTP server configuration including bind address
	// and timeouts.
	Server ServerConfig `yaml:"server"`

	// Latency contains the latency model configuration. When empty, the
	// simulator derives latency from the requested model name.
	Latency LatencyConfig `yaml:"latency"`

	// Response contains response generation configuration.
	Response ResponseConfig `yaml:"response"`

	// Errors contains probabilistic error injection configuration.
	Errors ErrorsConfig `yaml:"errors"`

	// Models contains the model catalog configuration.
	Models ModelsConfig `yaml:"models"`

	// Stats contains statistics reporting configuration.
	Stats StatsConfig `yaml:"stats"`

	// Telemetry contains observability configuration for logging and
	// metrics.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// ServerConfig contains configuration for the HTTP server.
type ServerConfig struct {
	// Host is the interface to bind to.
	// Default: "0.0.0.0"
	Host string `yaml:"host"`

	// Port is the TCP port to listen on.
	// Default: 8080
	Port int `yaml:"port"`

	// ReadTimeout is the maximum duration for reading the entire request.
	// Default: 30s
	ReadTimeout time.Duration `yaml:"read_timeout"`

	// WriteTimeout is the maximum duration before timing out response
	// writes. Streaming responses need headroom for long generations.
	// Default: 10m
	WriteTimeout time.Duration `yaml:"write_timeout"`

	// IdleTimeout is the keep-alive idle timeout.
	// Default: 120s
	IdleTimeout time.Duration `yaml:"idle_timeout"`

	// ShutdownTimeout is the maximum duration to wait for graceful
	// shutdown before in-flight requests are dropped.
	// Default: 30s
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// LatencyConfig contains the latency model configuration. A named profile
// and explicit parameters are mutually exclusive; explicit parameters win
// when both are set.
type LatencyConfig struct {
	// Profile names a built-in latency profile (e.g. "gpt4o", "fast",
	// "instant"). Empty means derive from the requested model.
	Profile *string `yaml:"profile"`

	// TTFTMeanMS is the mean time to first token in milliseconds.
	TTFTMeanMS *float64 `yaml:"ttft_mean_ms"`

	// TTFTStddevMS is the TTFT standard deviation in milliseconds.
	TTFTStddevMS *float64 `yaml:"ttft_stddev_ms"`

	// TBTMeanMS is the mean time between tokens in milliseconds.
	TBTMeanMS *float64 `yaml:"tbt_mean_ms"`

	// TBTStddevMS is the TBT standard deviation in milliseconds.
	TBTStddevMS *float64 `yaml:"tbt_stddev_ms"`
}

// Configured reports whether the latency section overrides the per-model
// default. Either a named profile or an explicit TTFT mean counts.
func (c *LatencyConfig) Configured() bool {
	return c.Profile != nil || c.TTFTMeanMS != nil
}

// ProfileFor resolves the latency profile for a request. The configured
// profile or explicit parameters take precedence; otherwise the profile is
// inferred from the model name.
func (c *LatencyConfig) ProfileFor(model string) latency.Profile {
	if !c.Configured() {
		return latency.FromModel(model)
	}

	p := latency.GPT5()
	if c.Profile != nil {
		if named, ok := latency.FromName(*c.Profile); ok {
			p = named
		}
	}
	if c.TTFTMeanMS != nil {
		p.TTFTMeanMS = *c.TTFTMeanMS
	}
	if c.TTFTStddevMS != nil {
		p.TTFTStddevMS = *c.TTFTStddevMS
	}
	if c.TBTMeanMS != nil {
		p.TBTMeanMS = *c.TBTMeanMS
	}
	if c.TBTStddevMS != nil {
		p.TBTStddevMS = *c.TBTStddevMS
	}
	return p
}

// ResponseConfig contains response generation configuration.
type ResponseConfig struct {
	// Generator selects the content strategy: "lorem", "echo", "random",
	// "random_word", "sequence", or "fixed:<text>".
	// Default: "lorem"
	Generator string `yaml:"generator"`

	// TargetTokens is the approximate output length in tokens, used when a
	// request does not set max_tokens.
	// Default: 100
	TargetTokens int `yaml:"target_tokens"`
}

// ErrorsConfig contains probabilistic error injection configuration. All
// rates are probabilities in [0, 1] evaluated per request.
type ErrorsConfig struct {
	// RateLimitRate is the probability of a simulated 429.
	RateLimitRate float64 `yaml:"rate_limit_rate"`

	// ServerErrorRate is the probability of a simulated 500 or 503.
	ServerErrorRate float64 `yaml:"server_error_rate"`

	// TimeoutRate is the probability of a simulated 504 after a dwell.
	TimeoutRate float64 `yaml:"timeout_rate"`

	// TimeoutAfterMS is the dwell before a simulated timeout responds.
	// Default: 30000
	TimeoutAfterMS int `yaml:"timeout_after_ms"`

	// InvalidRequestRate is the probability of a simulated 400.
	InvalidRequestRate float64 `yaml:"invalid_request_rate"`

	// AuthErrorRate is the probability of a simulated 401.
	AuthErrorRate float64 `yaml:"auth_error_rate"`
}

// FaultConfig converts the section into an injector configuration.
func (c *ErrorsConfig) FaultConfig() faults.Config {
	return faults.Config{
		RateLimitRate:      c.RateLimitRate,
		ServerErrorRate:    c.ServerErrorRate,
		TimeoutRate:        c.TimeoutRate,
		TimeoutAfter:       time.Duration(c.TimeoutAfterMS) * time.Millisecond,
		InvalidRequestRate: c.InvalidRequestRate,
		AuthErrorRate:      c.AuthErrorRate,
	}
}

// ModelsConfig contains the model catalog configuration.
type ModelsConfig struct {
	// Available restricts the /v1/models listing to the named models.
	// Empty means the full built-in catalog.
	Available []string `yaml:"available"`
}

// StatsConfig contains statistics reporting configuration.
type StatsConfig struct {
	// SummarySchedule is a cron expression for periodic stats log lines.
	// Empty disables the reporter.
	SummarySchedule string `yaml:"summary_schedule"`
}

// TelemetryConfig contains observability configuration.
type TelemetryConfig struct {
	// Logging contains logging configuration.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics contains Prometheus metrics configuration.
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", or "error".
	// Default: "info"
	Level string `yaml:"level"`

	// Format is the log output format: "json" or "text".
	// Default: "json"
	Format string `yaml:"format"`
}

// MetricsConfig contains Prometheus metrics configuration.
type MetricsConfig struct {
	// Enabled controls whether the /metrics endpoint is served.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// Path is the metrics endpoint path.
	// Default: "/metrics"
	Path string `yaml:"path"`
}
