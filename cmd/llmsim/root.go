package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "llmsim",
	Short: "llmsim - OpenAI-compatible API simulator",
	Long: `Llmsim is an OpenAI-compatible API simulator for load testing and
client development.

It serves the Chat Completions and Responses APIs with:
  - Synthetic content generation (lorem, echo, random, sequence, fixed)
  - Normal-distribution latency model with per-model profiles
  - Token-paced SSE streaming
  - Probabilistic error injection (429, 500, 503, 504, 400, 401)
  - BPE token accounting and usage reporting`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (or LLMSIM_CONFIG; defaults are used when omitted)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// configPath resolves the configuration file path: the --config flag, then
// the LLMSIM_CONFIG environment variable, then empty for defaults.
func configPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	return os.Getenv("LLMSIM_CONFIG")
}
