package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"mercator-hq/llmsim/pkg/cli"
	"mercator-hq/llmsim/pkg/config"
)

var validateFlags struct {
	format string
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a configuration file",
	Long: `Load a configuration file, apply defaults and environment overrides,
and report the effective configuration.

Examples:
  # Validate a config file
  llmsim validate --config config.yaml

  # Print the effective configuration as JSON
  llmsim validate --config config.yaml --format json`,
	RunE: validateConfig,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVar(&validateFlags.format, "format", "text", "output format: text, json")
}

// configSummary is the effective configuration reported by validate.
type configSummary struct {
	Host            string    `json:"host"`
	Port            int       `json:"port"`
	Generator       string    `json:"generator"`
	TargetTokens    int       `json:"target_tokens"`
	LatencyProfile  string    `json:"latency_profile"`
	ErrorRates      []float64 `json:"error_rates"`
	AvailableModels []string  `json:"available_models,omitempty"`
	SummarySchedule string    `json:"summary_schedule,omitempty"`
	MetricsEnabled  bool      `json:"metrics_enabled"`
	MetricsPath     string    `json:"metrics_path"`
	LogLevel        string    `json:"log_level"`
	LogFormat       string    `json:"log_format"`
}

func validateConfig(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfigWithEnvOverrides(configPath())
	if err != nil {
		return cli.NewConfigError("", fmt.Sprintf("validation failed: %v", err))
	}

	profile := "per-model"
	if cfg.Latency.Profile != nil {
		profile = *cfg.Latency.Profile
	}
	summary := configSummary{
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		Generator:    cfg.Response.Generator,
		TargetTokens: cfg.Response.TargetTokens,
		LatencyProfile: profile,
		ErrorRates: []float64{
			cfg.Errors.RateLimitRate,
			cfg.Errors.ServerErrorRate,
			cfg.Errors.TimeoutRate,
			cfg.Errors.InvalidRequestRate,
			cfg.Errors.AuthErrorRate,
		},
		AvailableModels: cfg.Models.Available,
		SummarySchedule: cfg.Stats.SummarySchedule,
		MetricsEnabled:  cfg.Telemetry.Metrics.Enabled,
		MetricsPath:     cfg.Telemetry.Metrics.Path,
		LogLevel:        cfg.Telemetry.Logging.Level,
		LogFormat:       cfg.Telemetry.Logging.Format,
	}

	if validateFlags.format == string(cli.FormatJSON) {
		formatter := cli.NewFormatter(cli.FormatJSON)
		return formatter.FormatTo(os.Stdout, summary)
	}

	fmt.Println("✓ Configuration valid")
	fmt.Println()
	fmt.Printf("Listen:         %s:%d\n", summary.Host, summary.Port)
	fmt.Printf("Generator:      %s (target %d tokens)\n", summary.Generator, summary.TargetTokens)
	fmt.Printf("Latency:        %s\n", summary.LatencyProfile)
	total := 0.0
	for _, r := range summary.ErrorRates {
		total += r
	}
	fmt.Printf("Error rate:     %.1f%%\n", total*100)
	if len(summary.AvailableModels) > 0 {
		fmt.Printf("Models:         %d configured\n", len(summary.AvailableModels))
	} else {
		fmt.Println("Models:         full catalog")
	}
	if summary.SummarySchedule != "" {
		fmt.Printf("Stats summary:  %s\n", summary.SummarySchedule)
	}
	if summary.MetricsEnabled {
		fmt.Printf("Metrics:        %s\n", summary.MetricsPath)
	} else {
		fmt.Println("Metrics:        disabled")
	}
	fmt.Printf("Logging:        %s (%s)\n", summary.LogLevel, summary.LogFormat)

	return nil
}
