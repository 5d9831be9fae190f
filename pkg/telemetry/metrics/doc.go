// Package metrics exposes Prometheus metrics for the simulator: request
// counts, latency histograms, token throughput, injected errors, and
// in-flight gauges, all registered on a private registry served at
// /metrics.
package metrics
