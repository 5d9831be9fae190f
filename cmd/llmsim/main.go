// Llmsim is an OpenAI-compatible API simulator for load testing and
// client development.
//
// It serves the Chat Completions and Responses APIs with synthetic
// content, configurable latency distributions, token-paced streaming,
// and probabilistic error injection, so clients and gateways can be
// exercised without spending tokens against a real provider.
//
// Usage:
//
//	# Start the simulator with default configuration
//	llmsim run
//
//	# Start with a custom configuration file
//	llmsim run --config /path/to/config.yaml
//
//	# Override the generator and latency profile
//	llmsim run --generator echo --latency-profile instant
//
//	# Validate a configuration file without starting the server
//	llmsim validate --config config.yaml
//
//	# Show version information
//	llmsim version
package main

func main() {
	Execute()
}
