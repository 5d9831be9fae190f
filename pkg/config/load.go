package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Default returns a configuration with all defaults applied and no error
// injection. It is the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

// LoadConfig loads configuration from a YAML file at the specified path.
// It applies default values, validates the configuration, and returns any
// errors. Environment variables are not consulted; use
// LoadConfigWithEnvOverrides for that.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration from a YAML file and applies
// environment variable overrides. Environment variables follow the naming
// convention LLMSIM_SECTION_FIELD (e.g., LLMSIM_SERVER_PORT) and always take
// precedence over file-based configuration.
//
// The loading sequence is:
// 1. Load YAML from file (empty path starts from defaults)
// 2. Apply default values
// 3. Apply environment variable overrides
// 4. Validate final configuration
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	var cfg *Config
	if path == "" {
		cfg = Default()
	} else {
		loaded, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}

	warnHighErrorRates(cfg)

	return cfg, nil
}

// warnHighErrorRates flags configurations whose injection rates sum above 1.
// Such configurations load fine, but the injector's single draw means the
// later categories are partially or fully shadowed.
func warnHighErrorRates(cfg *Config) {
	total := cfg.Errors.RateLimitRate + cfg.Errors.ServerErrorRate +
		cfg.Errors.TimeoutRate + cfg.Errors.InvalidRequestRate +
		cfg.Errors.AuthErrorRate
	if total > 1 {
		slog.Warn("error injection rates sum above 1; earlier categories shadow later ones",
			"total", total,
		)
	}
}

// applyEnvOverrides applies environment variable overrides to the
// configuration. Environment variables use the format LLMSIM_SECTION_FIELD.
func applyEnvOverrides(cfg *Config) {
	// Server overrides
	if val := os.Getenv("LLMSIM_SERVER_HOST"); val != "" {
		cfg.Server.Host = val
	}
	if val := os.Getenv("LLMSIM_SERVER_PORT"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Server.Port = i
		}
	}
	if val := os.Getenv("LLMSIM_SERVER_READ_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Server.ReadTimeout = d
		}
	}
	if val := os.Getenv("LLMSIM_SERVER_WRITE_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Server.WriteTimeout = d
		}
	}
	if val := os.Getenv("LLMSIM_SERVER_SHUTDOWN_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Server.ShutdownTimeout = d
		}
	}

	// Latency overrides
	if val := os.Getenv("LLMSIM_LATENCY_PROFILE"); val != "" {
		cfg.Latency.Profile = &val
	}
	envFloat := func(name string, target **float64) {
		if val := os.Getenv(name); val != "" {
			if f, err := strconv.ParseFloat(val, 64); err == nil {
				*target = &f
			}
		}
	}
	envFloat("LLMSIM_LATENCY_TTFT_MEAN_MS", &cfg.Latency.TTFTMeanMS)
	envFloat("LLMSIM_LATENCY_TTFT_STDDEV_MS", &cfg.Latency.TTFTStddevMS)
	envFloat("LLMSIM_LATENCY_TBT_MEAN_MS", &cfg.Latency.TBTMeanMS)
	envFloat("LLMSIM_LATENCY_TBT_STDDEV_MS", &cfg.Latency.TBTStddevMS)

	// Response overrides
	if val := os.Getenv("LLMSIM_RESPONSE_GENERATOR"); val != "" {
		cfg.Response.Generator = val
	}
	if val := os.Getenv("LLMSIM_RESPONSE_TARGET_TOKENS"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Response.TargetTokens = i
		}
	}

	// Error injection overrides
	envRate := func(name string, target *float64) {
		if val := os.Getenv(name); val != "" {
			if f, err := strconv.ParseFloat(val, 64); err == nil {
				*target = f
			}
		}
	}
	envRate("LLMSIM_ERRORS_RATE_LIMIT_RATE", &cfg.Errors.RateLimitRate)
	envRate("LLMSIM_ERRORS_SERVER_ERROR_RATE", &cfg.Errors.ServerErrorRate)
	envRate("LLMSIM_ERRORS_TIMEOUT_RATE", &cfg.Errors.TimeoutRate)
	envRate("LLMSIM_ERRORS_INVALID_REQUEST_RATE", &cfg.Errors.InvalidRequestRate)
	envRate("LLMSIM_ERRORS_AUTH_ERROR_RATE", &cfg.Errors.AuthErrorRate)
	if val := os.Getenv("LLMSIM_ERRORS_TIMEOUT_AFTER_MS"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Errors.TimeoutAfterMS = i
		}
	}

	// Models overrides
	if val := os.Getenv("LLMSIM_MODELS_AVAILABLE"); val != "" {
		var models []string
		for _, m := range strings.Split(val, ",") {
			if m = strings.TrimSpace(m); m != "" {
				models = append(models, m)
			}
		}
		cfg.Models.Available = models
	}

	// Stats overrides
	if val := os.Getenv("LLMSIM_STATS_SUMMARY_SCHEDULE"); val != "" {
		cfg.Stats.SummarySchedule = val
	}

	// Telemetry overrides
	if val := os.Getenv("LLMSIM_TELEMETRY_LOGGING_LEVEL"); val != "" {
		cfg.Telemetry.Logging.Level = val
	}
	if val := os.Getenv("LLMSIM_TELEMETRY_LOGGING_FORMAT"); val != "" {
		cfg.Telemetry.Logging.Format = val
	}
	if val := os.Getenv("LLMSIM_TELEMETRY_METRICS_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Telemetry.Metrics.Enabled = b
		}
	}
	if val := os.Getenv("LLMSIM_TELEMETRY_METRICS_PATH"); val != "" {
		cfg.Telemetry.Metrics.Path = val
	}
}
