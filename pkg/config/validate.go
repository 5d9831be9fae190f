package config

import (
	"fmt"
	"strings"

	"github.com/robfig/cron/v3"

	"mercator-hq/llmsim/pkg/generator"
	"mercator-hq/llmsim/pkg/latency"
)

// FieldError represents a validation error for a specific configuration field.
type FieldError struct {
	// Field is the dotted path to the configuration field (e.g., "server.port").
	Field string

	// Message is a human-readable error message.
	Message string
}

// Error returns the error message for this field error.
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError represents one or more validation errors in a configuration.
// It implements the error interface and provides access to all field errors.
type ValidationError struct {
	// Errors contains all validation errors found in the configuration.
	Errors []FieldError
}

// Error returns a formatted string containing all validation errors.
func (e ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "configuration validation failed"
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("configuration validation failed: %s", e.Errors[0].Error())
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("configuration validation failed with %d errors:\n", len(e.Errors)))
	for _, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
	}
	return sb.String()
}

// Validate validates the entire configuration and returns a ValidationError
// if any validation rules fail. It returns nil if the configuration is valid.
// All validation errors are collected and returned together.
func Validate(cfg *Config) error {
	var errs []FieldError

	errs = append(errs, validateServer(&cfg.Server)...)
	errs = append(errs, validateLatency(&cfg.Latency)...)
	errs = append(errs, validateResponse(&cfg.Response)...)
	errs = append(errs, validateErrors(&cfg.Errors)...)
	errs = append(errs, validateStats(&cfg.Stats)...)
	errs = append(errs, validateTelemetry(&cfg.Telemetry)...)

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}

	return nil
}

// validateServer validates server configuration.
func validateServer(cfg *ServerConfig) []FieldError {
	var errs []FieldError

	if cfg.Port < 0 || cfg.Port > 65535 {
		errs = append(errs, FieldError{
			Field:   "server.port",
			Message: fmt.Sprintf("port must be between 0 and 65535, got %d", cfg.Port),
		})
	}
	if cfg.ReadTimeout < 0 {
		errs = append(errs, FieldError{
			Field:   "server.read_timeout",
			Message: "read timeout must not be negative",
		})
	}
	if cfg.WriteTimeout < 0 {
		errs = append(errs, FieldError{
			Field:   "server.write_timeout",
			Message: "write timeout must not be negative",
		})
	}
	if cfg.ShutdownTimeout < 0 {
		errs = append(errs, FieldError{
			Field:   "server.shutdown_timeout",
			Message: "shutdown timeout must not be negative",
		})
	}

	return errs
}

// validateLatency validates the latency model configuration.
func validateLatency(cfg *LatencyConfig) []FieldError {
	var errs []FieldError

	if cfg.Profile != nil {
		if _, ok := latency.FromName(*cfg.Profile); !ok {
			errs = append(errs, FieldError{
				Field:   "latency.profile",
				Message: fmt.Sprintf("unknown latency profile %q", *cfg.Profile),
			})
		}
	}

	check := func(field string, v *float64) {
		if v != nil && *v < 0 {
			errs = append(errs, FieldError{
				Field:   "latency." + field,
				Message: "must not be negative",
			})
		}
	}
	check("ttft_mean_ms", cfg.TTFTMeanMS)
	check("ttft_stddev_ms", cfg.TTFTStddevMS)
	check("tbt_mean_ms", cfg.TBTMeanMS)
	check("tbt_stddev_ms", cfg.TBTStddevMS)

	return errs
}

// validateResponse validates response generation configuration.
func validateResponse(cfg *ResponseConfig) []FieldError {
	var errs []FieldError

	if !generator.ValidName(cfg.Generator) {
		errs = append(errs, FieldError{
			Field:   "response.generator",
			Message: fmt.Sprintf("unknown generator %q", cfg.Generator),
		})
	}
	if cfg.TargetTokens < 1 {
		errs = append(errs, FieldError{
			Field:   "response.target_tokens",
			Message: fmt.Sprintf("target tokens must be at least 1, got %d", cfg.TargetTokens),
		})
	}

	return errs
}

// validateErrors validates error injection configuration.
func validateErrors(cfg *ErrorsConfig) []FieldError {
	var errs []FieldError

	rate := func(field string, v float64) {
		if v < 0 || v > 1 {
			errs = append(errs, FieldError{
				Field:   "errors." + field,
				Message: fmt.Sprintf("rate must be between 0 and 1, got %g", v),
			})
		}
	}
	rate("rate_limit_rate", cfg.RateLimitRate)
	rate("server_error_rate", cfg.ServerErrorRate)
	rate("timeout_rate", cfg.TimeoutRate)
	rate("invalid_request_rate", cfg.InvalidRequestRate)
	rate("auth_error_rate", cfg.AuthErrorRate)

	if cfg.TimeoutAfterMS < 0 {
		errs = append(errs, FieldError{
			Field:   "errors.timeout_after_ms",
			Message: "timeout dwell must not be negative",
		})
	}

	// Rates summing above 1 are legal: the injector's single draw lets
	// earlier categories dominate. Loading flags it as a warning instead.

	return errs
}

// validateStats validates statistics configuration.
func validateStats(cfg *StatsConfig) []FieldError {
	var errs []FieldError

	if cfg.SummarySchedule != "" {
		if _, err := cron.ParseStandard(cfg.SummarySchedule); err != nil {
			errs = append(errs, FieldError{
				Field:   "stats.summary_schedule",
				Message: fmt.Sprintf("invalid cron expression: %v", err),
			})
		}
	}

	return errs
}

// validateTelemetry validates telemetry configuration.
func validateTelemetry(cfg *TelemetryConfig) []FieldError {
	var errs []FieldError

	switch cfg.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.level",
			Message: fmt.Sprintf("level must be one of debug, info, warn, error; got %q", cfg.Logging.Level),
		})
	}

	switch cfg.Logging.Format {
	case "json", "text":
	default:
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.format",
			Message: fmt.Sprintf("format must be json or text, got %q", cfg.Logging.Format),
		})
	}

	if cfg.Metrics.Enabled && !strings.HasPrefix(cfg.Metrics.Path, "/") {
		errs = append(errs, FieldError{
			Field:   "telemetry.metrics.path",
			Message: fmt.Sprintf("path must start with /, got %q", cfg.Metrics.Path),
		})
	}

	return errs
}
