package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Namespace is the metric name prefix for all simulator metrics.
const Namespace = "llmsim"

// Collector manages the Prometheus metrics for the simulator on a private
// registry. All metric updates go through typed record methods; nothing
// else touches the underlying vectors.
//
// Metrics:
//   - llmsim_requests_total: request count by endpoint, model, status
//   - llmsim_request_duration_seconds: request duration histogram
//   - llmsim_tokens_total: synthetic tokens by model and type
//   - llmsim_injected_errors_total: injected faults by kind
//   - llmsim_active_requests: in-flight request gauge
type Collector struct {
	registry *prometheus.Registry

	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	tokensTotal     *prometheus.CounterVec
	injectedErrors  *prometheus.CounterVec
	activeRequests  prometheus.Gauge
}

// NewCollector creates a metrics collector with all metrics registered on
// the given registry. If registry is nil, a fresh private registry is used.
func NewCollector(registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	c := &Collector{
		registry: registry,

		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "requests_total",
				Help:      "Total number of simulated requests processed",
			},
			[]string{"endpoint", "model", "status"},
		),

		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: Namespace,
				Name:      "request_duration_seconds",
				Help:      "Duration of simulated requests in seconds",
				// Optimized for simulated LLM latencies (10ms - 60s)
				Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0, 60.0},
			},
			[]string{"endpoint", "model"},
		),

		tokensTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "tokens_total",
				Help:      "Total number of synthetic tokens accounted",
			},
			[]string{"model", "type"},
		),

		injectedErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "injected_errors_total",
				Help:      "Total number of injected errors by kind",
			},
			[]string{"kind"},
		),

		activeRequests: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: Namespace,
				Name:      "active_requests",
				Help:      "Number of requests currently being simulated",
			},
		),
	}

	registry.MustRegister(
		c.requestsTotal,
		c.requestDuration,
		c.tokensTotal,
		c.injectedErrors,
		c.activeRequests,
	)

	return c
}

// Registry returns the underlying Prometheus registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// RecordRequest records a completed request.
func (c *Collector) RecordRequest(endpoint, model, status string, duration time.Duration) {
	c.requestsTotal.WithLabelValues(endpoint, model, status).Inc()
	c.requestDuration.WithLabelValues(endpoint, model).Observe(duration.Seconds())
}

// RecordTokens records token counts by type. Zero counts are skipped to keep
// series sparse.
func (c *Collector) RecordTokens(model string, prompt, completion, reasoning int) {
	if prompt > 0 {
		c.tokensTotal.WithLabelValues(model, "prompt").Add(float64(prompt))
	}
	if completion > 0 {
		c.tokensTotal.WithLabelValues(model, "completion").Add(float64(completion))
	}
	if reasoning > 0 {
		c.tokensTotal.WithLabelValues(model, "reasoning").Add(float64(reasoning))
	}
}

// RecordInjectedError records an injected fault by kind (e.g. "rate_limit",
// "timeout").
func (c *Collector) RecordInjectedError(kind string) {
	c.injectedErrors.WithLabelValues(kind).Inc()
}

// RequestStarted increments the in-flight gauge.
func (c *Collector) RequestStarted() {
	c.activeRequests.Inc()
}

// RequestFinished decrements the in-flight gauge.
func (c *Collector) RequestFinished() {
	c.activeRequests.Dec()
}
