package stats

import (
	"context"
	"testing"
)

func TestReporterEmptyScheduleIsNoop(t *testing.T) {
	r := NewReporter(New(), "")
	if err := r.Start(context.Background()); err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	r.Stop()
}

func TestReporterInvalidSchedule(t *testing.T) {
	r := NewReporter(New(), "not a cron expr")
	if err := r.Start(context.Background()); err == nil {
		t.Fatal("Start() with invalid schedule should fail")
	}
}

func TestReporterStartStop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	r := NewReporter(New(), "* * * * *")
	if err := r.Start(ctx); err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	r.Stop()
}
