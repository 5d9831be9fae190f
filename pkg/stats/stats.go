// Package stats collects in-memory aggregate metrics for the simulator.
//
// Counters are lock-free atomics; the per-model map and the rolling
// requests-per-second window take a small mutex on the request-start path.
// Nothing here is persisted; a restart resets all counters.
package stats

import (
	"math"
	"sync"
	"sync/atomic"
	"time"
)

// Endpoint identifies which API surface a request arrived on.
type Endpoint int

const (
	// EndpointChatCompletions is the chat completions API.
	EndpointChatCompletions Endpoint = iota

	// EndpointResponses is the responses API.
	EndpointResponses
)

// windowSpan is how far back the rolling RPS window reaches.
const windowSpan = 60 * time.Second

// windowCap bounds the number of timestamps retained in the rolling window.
const windowCap = 10000

// Stats is the process-wide statistics tracker. All methods are safe for
// concurrent use.
type Stats struct {
	start time.Time

	totalRequests        atomic.Int64
	activeRequests       atomic.Int64
	streamingRequests    atomic.Int64
	nonStreamingRequests atomic.Int64
	completionsRequests  atomic.Int64
	responsesRequests    atomic.Int64

	promptTokens     atomic.Int64
	completionTokens atomic.Int64

	totalErrors     atomic.Int64
	rateLimitErrors atomic.Int64
	serverErrors    atomic.Int64
	timeoutErrors   atomic.Int64

	completedRequests atomic.Int64
	totalLatencyUS    atomic.Int64
	minLatencyUS      atomic.Int64 // MaxInt64 until the first completion
	maxLatencyUS      atomic.Int64

	mu            sync.Mutex
	modelRequests map[string]int64
	requestTimes  []time.Time
}

// New creates a Stats tracker with the uptime clock starting now.
func New() *Stats {
	s := &Stats{
		start:         time.Now(),
		modelRequests: make(map[string]int64),
	}
	s.minLatencyUS.Store(math.MaxInt64)
	return s
}

// RecordRequestStart registers an incoming request. Every start must be
// paired with exactly one RecordRequestEnd or RecordError.
func (s *Stats) RecordRequestStart(model string, streaming bool, endpoint Endpoint) {
	s.totalRequests.Add(1)
	s.activeRequests.Add(1)

	if streaming {
		s.streamingRequests.Add(1)
	} else {
		s.nonStreamingRequests.Add(1)
	}

	switch endpoint {
	case EndpointChatCompletions:
		s.completionsRequests.Add(1)
	case EndpointResponses:
		s.responsesRequests.Add(1)
	}

	now := time.Now()
	s.mu.Lock()
	s.modelRequests[model]++

	s.requestTimes = append(s.requestTimes, now)
	cutoff := now.Add(-windowSpan)
	trimmed := s.requestTimes[:0]
	for _, t := range s.requestTimes {
		if t.After(cutoff) {
			trimmed = append(trimmed, t)
		}
	}
	if len(trimmed) > windowCap {
		trimmed = trimmed[len(trimmed)-windowCap:]
	}
	s.requestTimes = trimmed
	s.mu.Unlock()
}

// RecordRequestEnd registers a successfully completed request with its
// wall-clock latency and token usage.
func (s *Stats) RecordRequestEnd(latency time.Duration, promptTokens, completionTokens int) {
	s.activeRequests.Add(-1)
	s.completedRequests.Add(1)

	s.promptTokens.Add(int64(promptTokens))
	s.completionTokens.Add(int64(completionTokens))

	us := latency.Microseconds()
	s.totalLatencyUS.Add(us)

	for {
		cur := s.minLatencyUS.Load()
		if us >= cur || s.minLatencyUS.CompareAndSwap(cur, us) {
			break
		}
	}
	for {
		cur := s.maxLatencyUS.Load()
		if us <= cur || s.maxLatencyUS.CompareAndSwap(cur, us) {
			break
		}
	}
}

// RecordError registers a request that ended with an injected error.
func (s *Stats) RecordError(statusCode int) {
	s.totalErrors.Add(1)
	s.activeRequests.Add(-1)

	switch statusCode {
	case 429:
		s.rateLimitErrors.Add(1)
	case 500, 503:
		s.serverErrors.Add(1)
	case 504:
		s.timeoutErrors.Add(1)
	}
}

// Uptime returns how long the tracker has been alive.
func (s *Stats) Uptime() time.Duration {
	return time.Since(s.start)
}

// RequestsPerSecond computes the request rate over the rolling window. The
// denominator is the span from the oldest retained request to now, not a
// fixed 60 seconds, so a fresh burst reports its true rate.
func (s *Stats) RequestsPerSecond() float64 {
	now := time.Now()
	cutoff := now.Add(-windowSpan)

	s.mu.Lock()
	defer s.mu.Unlock()

	var count int
	var oldest time.Time
	for _, t := range s.requestTimes {
		if !t.After(cutoff) {
			continue
		}
		if count == 0 || t.Before(oldest) {
			oldest = t
		}
		count++
	}
	if count == 0 {
		return 0
	}

	span := now.Sub(oldest).Seconds()
	if span <= 0 {
		return 0
	}
	return float64(count) / span
}

// AvgLatencyMS returns the mean completion latency in milliseconds, or 0
// when nothing has completed.
func (s *Stats) AvgLatencyMS() float64 {
	completed := s.completedRequests.Load()
	if completed == 0 {
		return 0
	}
	return float64(s.totalLatencyUS.Load()) / float64(completed) / 1000.0
}

// MinLatencyMS returns the minimum completion latency in milliseconds, or
// nil when nothing has completed.
func (s *Stats) MinLatencyMS() *float64 {
	min := s.minLatencyUS.Load()
	if min == math.MaxInt64 {
		return nil
	}
	v := float64(min) / 1000.0
	return &v
}

// MaxLatencyMS returns the maximum completion latency in milliseconds, or
// nil when nothing has completed.
func (s *Stats) MaxLatencyMS() *float64 {
	max := s.maxLatencyUS.Load()
	if max == 0 {
		return nil
	}
	v := float64(max) / 1000.0
	return &v
}

// ModelRequests returns a copy of the per-model request counts.
func (s *Stats) ModelRequests() map[string]int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]int64, len(s.modelRequests))
	for k, v := range s.modelRequests {
		out[k] = v
	}
	return out
}

// Snapshot captures every counter at a single point in time for
// serialization on the stats endpoint.
type Snapshot struct {
	UptimeSecs           int64            `json:"uptime_secs"`
	TotalRequests        int64            `json:"total_requests"`
	CompletedRequests    int64            `json:"completed_requests"`
	ActiveRequests       int64            `json:"active_requests"`
	StreamingRequests    int64            `json:"streaming_requests"`
	NonStreamingRequests int64            `json:"non_streaming_requests"`
	CompletionsRequests  int64            `json:"completions_requests"`
	ResponsesRequests    int64            `json:"responses_requests"`
	PromptTokens         int64            `json:"prompt_tokens"`
	CompletionTokens     int64            `json:"completion_tokens"`
	TotalTokens          int64            `json:"total_tokens"`
	TotalErrors          int64            `json:"total_errors"`
	RateLimitErrors      int64            `json:"rate_limit_errors"`
	ServerErrors         int64            `json:"server_errors"`
	TimeoutErrors        int64            `json:"timeout_errors"`
	RequestsPerSecond    float64          `json:"requests_per_second"`
	AvgLatencyMS         float64          `json:"avg_latency_ms"`
	MinLatencyMS         *float64         `json:"min_latency_ms"`
	MaxLatencyMS         *float64         `json:"max_latency_ms"`
	ModelRequests        map[string]int64 `json:"model_requests"`
}

// Snapshot returns a point-in-time copy of all statistics.
func (s *Stats) Snapshot() Snapshot {
	prompt := s.promptTokens.Load()
	completion := s.completionTokens.Load()

	return Snapshot{
		UptimeSecs:           int64(s.Uptime().Seconds()),
		TotalRequests:        s.totalRequests.Load(),
		CompletedRequests:    s.completedRequests.Load(),
		ActiveRequests:       s.activeRequests.Load(),
		StreamingRequests:    s.streamingRequests.Load(),
		NonStreamingRequests: s.nonStreamingRequests.Load(),
		CompletionsRequests:  s.completionsRequests.Load(),
		ResponsesRequests:    s.responsesRequests.Load(),
		PromptTokens:         prompt,
		CompletionTokens:     completion,
		TotalTokens:          prompt + completion,
		TotalErrors:          s.totalErrors.Load(),
		RateLimitErrors:      s.rateLimitErrors.Load(),
		ServerErrors:         s.serverErrors.Load(),
		TimeoutErrors:        s.timeoutErrors.Load(),
		RequestsPerSecond:    s.RequestsPerSecond(),
		AvgLatencyMS:         s.AvgLatencyMS(),
		MinLatencyMS:         s.MinLatencyMS(),
		MaxLatencyMS:         s.MaxLatencyMS(),
		ModelRequests:        s.ModelRequests(),
	}
}
