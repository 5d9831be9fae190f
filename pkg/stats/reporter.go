package stats

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/robfig/cron/v3"
)

// Reporter periodically logs a stats summary on a cron schedule. It is
// optional; an empty schedule disables it.
type Reporter struct {
	stats    *Stats
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger

	mu      sync.Mutex
	running bool
}

// NewReporter creates a reporter for the given stats tracker.
//
// Common schedules:
//   - "* * * * *"    - every minute
//   - "*/5 * * * *"  - every 5 minutes
func NewReporter(s *Stats, schedule string) *Reporter {
	return &Reporter{
		stats:    s,
		schedule: schedule,
		cron:     cron.New(),
		logger:   slog.Default().With("component", "stats.reporter"),
	}
}

// Start begins scheduled reporting. A reporter with no schedule is a no-op.
func (r *Reporter) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.schedule == "" {
		r.logger.Info("stats summary schedule not configured, skipping reporter")
		return nil
	}

	if _, err := cron.ParseStandard(r.schedule); err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", r.schedule, err)
	}

	if _, err := r.cron.AddFunc(r.schedule, r.report); err != nil {
		return fmt.Errorf("failed to schedule stats summary: %w", err)
	}

	r.cron.Start()
	r.running = true

	r.logger.Info("stats reporter started", "schedule", r.schedule)

	go func() {
		<-ctx.Done()
		r.Stop()
	}()

	return nil
}

// report logs one summary line from the current snapshot.
func (r *Reporter) report() {
	snap := r.stats.Snapshot()
	r.logger.Info("stats summary",
		"uptime_secs", snap.UptimeSecs,
		"total_requests", snap.TotalRequests,
		"active_requests", snap.ActiveRequests,
		"requests_per_second", snap.RequestsPerSecond,
		"total_tokens", snap.TotalTokens,
		"total_errors", snap.TotalErrors,
		"avg_latency_ms", snap.AvgLatencyMS,
	)
}

// Stop stops the reporter and waits for a running report to finish.
func (r *Reporter) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cron != nil && r.running {
		ctx := r.cron.Stop()
		<-ctx.Done()
		r.running = false
		r.logger.Info("stats reporter stopped")
	}
}
