package main

import (
	"fmt"
	"log/slog"
	"net"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"mercator-hq/llmsim/pkg/cli"
	"mercator-hq/llmsim/pkg/config"
	"mercator-hq/llmsim/pkg/server"
	"mercator-hq/llmsim/pkg/sim"
	"mercator-hq/llmsim/pkg/stats"
	"mercator-hq/llmsim/pkg/telemetry/logging"
	"mercator-hq/llmsim/pkg/telemetry/metrics"
)

var runFlags struct {
	host           string
	port           int
	generator      string
	targetTokens   int
	latencyProfile string
	logLevel       string
	noReload       bool
}

var runCmd = &cobra.Command{
	Use:     "run",
	Aliases: []string{"serve"},
	Short:   "Start the simulator server",
	Long: `Start the simulator server with the specified configuration.

The server exposes the Chat Completions and Responses APIs and generates
synthetic completions with configurable latency and error injection.

Examples:
  # Start with defaults
  llmsim run

  # Start with a custom config
  llmsim run --config /etc/llmsim/config.yaml

  # Override the listen port and generator
  llmsim run --port 9000 --generator echo

  # Disable config hot reload
  llmsim run --config config.yaml --no-reload`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&runFlags.host, "host", "", "override listen host")
	runCmd.Flags().IntVarP(&runFlags.port, "port", "p", 0, "override listen port")
	runCmd.Flags().StringVar(&runFlags.generator, "generator", "", "override content generator (lorem, echo, random, random_word, sequence, fixed:<text>)")
	runCmd.Flags().IntVar(&runFlags.targetTokens, "target-tokens", 0, "override default completion length in tokens")
	runCmd.Flags().StringVar(&runFlags.latencyProfile, "latency-profile", "", "override latency profile (instant, fast, gpt4o, claude-sonnet, ...)")
	runCmd.Flags().StringVar(&runFlags.logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	runCmd.Flags().BoolVar(&runFlags.noReload, "no-reload", false, "disable configuration hot reload")
}

func runServer(cmd *cobra.Command, args []string) error {
	path := configPath()
	cfg, err := config.LoadConfigWithEnvOverrides(path)
	if err != nil {
		return cli.NewConfigError("", fmt.Sprintf("failed to load config: %v", err))
	}
	applyRunFlags(cfg)
	if err := config.Validate(cfg); err != nil {
		return cli.NewConfigError("", err.Error())
	}

	if _, err := logging.Setup(logging.Config{
		Level:  cfg.Telemetry.Logging.Level,
		Format: cfg.Telemetry.Logging.Format,
	}); err != nil {
		return cli.NewConfigError("telemetry.logging", err.Error())
	}

	printBanner(cfg, path)

	// Shutdown on SIGINT/SIGTERM; the context fans out to the watcher,
	// the reporter, and the server.
	ctx := cli.SetupSignalHandler()

	var collector *metrics.Collector
	if cfg.Telemetry.Metrics.Enabled {
		collector = metrics.NewCollector(nil)
	}

	st := stats.New()
	if schedule := cfg.Stats.SummarySchedule; schedule != "" {
		reporter := stats.NewReporter(st, schedule)
		if err := reporter.Start(ctx); err != nil {
			slog.Warn("failed to start stats reporter", "error", err)
		} else {
			defer reporter.Stop()
			slog.Debug("stats reporter started", "schedule", schedule)
		}
	}

	manager := config.NewManager(cfg, path)
	if path != "" && !runFlags.noReload {
		watcher, err := config.NewWatcher(manager)
		if err != nil {
			slog.Warn("config hot reload unavailable", "error", err)
		} else {
			go func() {
				if err := watcher.Watch(ctx); err != nil {
					slog.Error("config watcher stopped", "error", err)
				}
			}()
		}
	}

	simulator := sim.New(manager, st, collector)
	srv := server.NewServer(manager, simulator, collector)

	addr := net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port))
	fmt.Printf("✓ Simulator listening on %s\n", addr)
	fmt.Printf("✓ Chat Completions: http://%s/v1/chat/completions\n", addr)
	fmt.Printf("✓ Responses: http://%s/v1/responses\n", addr)
	if cfg.Telemetry.Metrics.Enabled {
		fmt.Printf("✓ Metrics: http://%s%s\n", addr, cfg.Telemetry.Metrics.Path)
	}
	fmt.Println("\nPress Ctrl+C to stop")

	if err := srv.Start(ctx); err != nil {
		return cli.NewCommandError("run", err)
	}
	return nil
}

// applyRunFlags applies flag overrides to the loaded configuration. Each
// flag falls back to a short environment variable of the same name
// (LLMSIM_HOST, LLMSIM_PORT, LLMSIM_GENERATOR, LLMSIM_TARGET_TOKENS,
// LLMSIM_LATENCY_PROFILE); the sectioned LLMSIM_SECTION_FIELD variables
// are applied earlier, during config loading, and rank below these.
func applyRunFlags(cfg *config.Config) {
	if host := stringOrEnv(runFlags.host, "LLMSIM_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if port := intOrEnv(runFlags.port, "LLMSIM_PORT"); port != 0 {
		cfg.Server.Port = port
	}
	if gen := stringOrEnv(runFlags.generator, "LLMSIM_GENERATOR"); gen != "" {
		cfg.Response.Generator = gen
	}
	if target := intOrEnv(runFlags.targetTokens, "LLMSIM_TARGET_TOKENS"); target != 0 {
		cfg.Response.TargetTokens = target
	}
	if profile := stringOrEnv(runFlags.latencyProfile, "LLMSIM_LATENCY_PROFILE"); profile != "" {
		cfg.Latency.Profile = &profile
	}
	if runFlags.logLevel != "" {
		cfg.Telemetry.Logging.Level = runFlags.logLevel
	}
	if verbose {
		cfg.Telemetry.Logging.Level = "debug"
	}
}

func stringOrEnv(flag, env string) string {
	if flag != "" {
		return flag
	}
	return os.Getenv(env)
}

func intOrEnv(flag int, env string) int {
	if flag != 0 {
		return flag
	}
	if v := os.Getenv(env); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return 0
}

func printBanner(cfg *config.Config, path string) {
	fmt.Printf("llmsim v%s\n", Version)
	if path != "" {
		fmt.Printf("Loading configuration from: %s\n", path)
	} else {
		fmt.Println("Using default configuration")
	}
	fmt.Println("✓ Configuration loaded")

	slog.Debug("response settings",
		"generator", cfg.Response.Generator,
		"target_tokens", cfg.Response.TargetTokens,
	)
	if cfg.Latency.Profile != nil {
		slog.Debug("latency profile override", "profile", *cfg.Latency.Profile)
	}
	if len(cfg.Models.Available) > 0 {
		slog.Debug("model catalog restricted", "models", len(cfg.Models.Available))
	}
}
