package config

import (
	"strings"
	"testing"
)

func validConfig() *Config {
	return Default()
}

func TestValidateDefaults(t *testing.T) {
	if err := Validate(validConfig()); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestValidateServer(t *testing.T) {
	cfg := validConfig()
	cfg.Server.Port = 70000
	assertFieldError(t, cfg, "server.port")

	cfg = validConfig()
	cfg.Server.ReadTimeout = -1
	assertFieldError(t, cfg, "server.read_timeout")
}

func TestValidateLatency(t *testing.T) {
	cfg := validConfig()
	bad := "warp"
	cfg.Latency.Profile = &bad
	assertFieldError(t, cfg, "latency.profile")

	cfg = validConfig()
	neg := -1.0
	cfg.Latency.TBTMeanMS = &neg
	assertFieldError(t, cfg, "latency.tbt_mean_ms")
}

func TestValidateResponse(t *testing.T) {
	cfg := validConfig()
	cfg.Response.Generator = "novel"
	assertFieldError(t, cfg, "response.generator")

	cfg = validConfig()
	cfg.Response.Generator = "fixed:anything goes"
	if err := Validate(cfg); err != nil {
		t.Errorf("fixed generator should validate: %v", err)
	}

	cfg = validConfig()
	cfg.Response.TargetTokens = -5
	assertFieldError(t, cfg, "response.target_tokens")
}

func TestValidateErrorRates(t *testing.T) {
	cfg := validConfig()
	cfg.Errors.RateLimitRate = 1.5
	assertFieldError(t, cfg, "errors.rate_limit_rate")

	cfg = validConfig()
	cfg.Errors.AuthErrorRate = -0.1
	assertFieldError(t, cfg, "errors.auth_error_rate")

	// Rates summing past 1 are legal; the injector's single draw lets
	// earlier categories shadow later ones.
	cfg = validConfig()
	cfg.Errors.RateLimitRate = 0.8
	cfg.Errors.ServerErrorRate = 0.5
	if err := Validate(cfg); err != nil {
		t.Errorf("rates summing above 1 should validate: %v", err)
	}
}

func TestValidateStats(t *testing.T) {
	cfg := validConfig()
	cfg.Stats.SummarySchedule = "not a schedule"
	assertFieldError(t, cfg, "stats.summary_schedule")

	cfg = validConfig()
	cfg.Stats.SummarySchedule = "@every 30s"
	if err := Validate(cfg); err != nil {
		t.Errorf("@every schedule should validate: %v", err)
	}
}

func TestValidateTelemetry(t *testing.T) {
	cfg := validConfig()
	cfg.Telemetry.Logging.Level = "verbose"
	assertFieldError(t, cfg, "telemetry.logging.level")

	cfg = validConfig()
	cfg.Telemetry.Logging.Format = "xml"
	assertFieldError(t, cfg, "telemetry.logging.format")

	cfg = validConfig()
	cfg.Telemetry.Metrics.Path = "metrics"
	assertFieldError(t, cfg, "telemetry.metrics.path")
}

func TestValidationErrorMessage(t *testing.T) {
	cfg := validConfig()
	cfg.Server.Port = -1
	cfg.Telemetry.Logging.Level = "loud"

	err := Validate(cfg)
	if err == nil {
		t.Fatal("expected validation errors")
	}
	msg := err.Error()
	if !strings.Contains(msg, "2 errors") {
		t.Errorf("message should count errors: %q", msg)
	}
}

func assertFieldError(t *testing.T, cfg *Config, field string) {
	t.Helper()
	err := Validate(cfg)
	if err == nil {
		t.Fatalf("expected validation error for %s", field)
	}
	verr, ok := err.(ValidationError)
	if !ok {
		t.Fatalf("error type = %T", err)
	}
	for _, fe := range verr.Errors {
		if fe.Field == field {
			return
		}
	}
	t.Errorf("no error for field %s in %v", field, verr.Errors)
}
