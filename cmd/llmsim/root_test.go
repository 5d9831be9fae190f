package main

import (
	"testing"

	"mercator-hq/llmsim/pkg/config"
)

func TestCommandsRegistered(t *testing.T) {
	want := map[string]bool{"run": false, "validate": false, "version": false}
	for _, cmd := range rootCmd.Commands() {
		if _, ok := want[cmd.Name()]; ok {
			want[cmd.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("command %q not registered", name)
		}
	}
}

func TestVersionCommand(t *testing.T) {
	if versionCmd.Use != "version" {
		t.Errorf("versionCmd.Use = %q", versionCmd.Use)
	}
	if versionCmd.Run == nil {
		t.Error("versionCmd.Run should not be nil")
	}
	if Version == "" {
		t.Error("Version should not be empty")
	}
}

func TestApplyRunFlags(t *testing.T) {
	orig := runFlags
	defer func() { runFlags = orig }()

	runFlags.host = "127.0.0.1"
	runFlags.port = 9000
	runFlags.generator = "echo"
	runFlags.targetTokens = 25
	runFlags.latencyProfile = "instant"
	runFlags.logLevel = "debug"

	cfg := config.Default()
	applyRunFlags(cfg)

	if cfg.Server.Host != "127.0.0.1" || cfg.Server.Port != 9000 {
		t.Errorf("server = %s:%d", cfg.Server.Host, cfg.Server.Port)
	}
	if cfg.Response.Generator != "echo" || cfg.Response.TargetTokens != 25 {
		t.Errorf("response = %+v", cfg.Response)
	}
	if cfg.Latency.Profile == nil || *cfg.Latency.Profile != "instant" {
		t.Errorf("latency profile = %v", cfg.Latency.Profile)
	}
	if cfg.Telemetry.Logging.Level != "debug" {
		t.Errorf("log level = %s", cfg.Telemetry.Logging.Level)
	}

	if err := config.Validate(cfg); err != nil {
		t.Errorf("overridden config invalid: %v", err)
	}
}

func TestApplyRunFlagsEnvFallbacks(t *testing.T) {
	orig := runFlags
	defer func() { runFlags = orig }()
	runFlags.host = ""
	runFlags.port = 0
	runFlags.generator = ""
	runFlags.targetTokens = 0
	runFlags.latencyProfile = ""
	runFlags.logLevel = ""

	t.Setenv("LLMSIM_HOST", "127.0.0.9")
	t.Setenv("LLMSIM_PORT", "9999")
	t.Setenv("LLMSIM_GENERATOR", "sequence")
	t.Setenv("LLMSIM_TARGET_TOKENS", "42")
	t.Setenv("LLMSIM_LATENCY_PROFILE", "fast")

	cfg := config.Default()
	applyRunFlags(cfg)

	if cfg.Server.Host != "127.0.0.9" || cfg.Server.Port != 9999 {
		t.Errorf("server = %s:%d", cfg.Server.Host, cfg.Server.Port)
	}
	if cfg.Response.Generator != "sequence" || cfg.Response.TargetTokens != 42 {
		t.Errorf("response = %+v", cfg.Response)
	}
	if cfg.Latency.Profile == nil || *cfg.Latency.Profile != "fast" {
		t.Errorf("latency profile = %v", cfg.Latency.Profile)
	}
}

func TestRunFlagBeatsShortEnv(t *testing.T) {
	orig := runFlags
	defer func() { runFlags = orig }()
	runFlags.port = 7000

	t.Setenv("LLMSIM_PORT", "9999")

	cfg := config.Default()
	applyRunFlags(cfg)

	if cfg.Server.Port != 7000 {
		t.Errorf("port = %d, want flag value 7000", cfg.Server.Port)
	}
}

func TestConfigPathEnvFallback(t *testing.T) {
	orig := cfgFile
	defer func() { cfgFile = orig }()

	cfgFile = ""
	t.Setenv("LLMSIM_CONFIG", "/etc/llmsim/config.yaml")
	if got := configPath(); got != "/etc/llmsim/config.yaml" {
		t.Errorf("configPath() = %q, want env value", got)
	}

	cfgFile = "local.yaml"
	if got := configPath(); got != "local.yaml" {
		t.Errorf("configPath() = %q, want flag value", got)
	}
}

func TestApplyRunFlagsNoOverrides(t *testing.T) {
	orig := runFlags
	defer func() { runFlags = orig }()
	runFlags.host = ""
	runFlags.port = 0
	runFlags.generator = ""
	runFlags.targetTokens = 0
	runFlags.latencyProfile = ""
	runFlags.logLevel = ""

	cfg := config.Default()
	applyRunFlags(cfg)

	def := config.Default()
	if cfg.Server.Port != def.Server.Port || cfg.Response.Generator != def.Response.Generator {
		t.Errorf("defaults changed: %+v", cfg)
	}
}
