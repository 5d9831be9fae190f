package faults

import (
	"math"
	"testing"
	"time"
)

func TestNoneNeverInjects(t *testing.T) {
	inj := NewInjector(None())
	for i := 0; i < 10000; i++ {
		if f := inj.MaybeInject(); f != nil {
			t.Fatalf("None() config injected %v", f.Kind)
		}
	}
}

func TestAlwaysInjects(t *testing.T) {
	inj := NewInjector(Config{RateLimitRate: 1.0})
	for i := 0; i < 100; i++ {
		f := inj.MaybeInject()
		if f == nil {
			t.Fatal("rate 1.0 did not inject")
		}
		if f.Status != 429 {
			t.Fatalf("status = %d, want 429", f.Status)
		}
		if f.RetryAfterSeconds < 1 || f.RetryAfterSeconds > 59 {
			t.Fatalf("Retry-After = %d, want 1..59", f.RetryAfterSeconds)
		}
	}
}

func TestInjectionRate(t *testing.T) {
	const (
		rate = 0.2
		n    = 10000
	)
	inj := NewInjector(Config{RateLimitRate: rate})

	hits := 0
	for i := 0; i < n; i++ {
		if inj.MaybeInject() != nil {
			hits++
		}
	}

	// Binomial: 3 sigma around the expected count.
	expected := rate * n
	sigma := math.Sqrt(n * rate * (1 - rate))
	if math.Abs(float64(hits)-expected) > 3*sigma {
		t.Errorf("hits = %d, expected %.0f +/- %.0f", hits, expected, 3*sigma)
	}
}

func TestServerErrorSplit(t *testing.T) {
	inj := NewInjector(Config{ServerErrorRate: 1.0})

	var n500, n503 int
	for i := 0; i < 10000; i++ {
		f := inj.MaybeInject()
		if f == nil {
			t.Fatal("rate 1.0 did not inject")
		}
		switch f.Status {
		case 500:
			n500++
			if f.RetryAfterSeconds != 0 {
				t.Fatal("500 should not carry Retry-After")
			}
		case 503:
			n503++
			if f.RetryAfterSeconds != 60 {
				t.Fatalf("503 Retry-After = %d, want 60", f.RetryAfterSeconds)
			}
		default:
			t.Fatalf("unexpected status %d", f.Status)
		}
	}

	frac := float64(n500) / float64(n500+n503)
	if frac < 0.65 || frac > 0.75 {
		t.Errorf("500 fraction = %.3f, want about 0.7", frac)
	}
}

func TestTimeoutCarriesDwell(t *testing.T) {
	inj := NewInjector(Config{TimeoutRate: 1.0, TimeoutAfter: 5 * time.Second})
	f := inj.MaybeInject()
	if f == nil || f.Kind != Timeout {
		t.Fatalf("got %+v, want timeout fault", f)
	}
	if f.Status != 504 || f.Dwell != 5*time.Second {
		t.Errorf("status=%d dwell=%v, want 504 and 5s", f.Status, f.Dwell)
	}
}

func TestCategoryPrecedence(t *testing.T) {
	// Rates sum above 1: the draw always lands in the first category.
	inj := NewInjector(Config{RateLimitRate: 1.0, AuthErrorRate: 1.0})
	for i := 0; i < 100; i++ {
		f := inj.MaybeInject()
		if f == nil || f.Kind != RateLimit {
			t.Fatalf("got %+v, want rate limit", f)
		}
	}
}

func TestEnvelopeFields(t *testing.T) {
	tests := []struct {
		kind    Kind
		errType string
		code    string
	}{
		{RateLimit, "rate_limit_error", "rate_limit_exceeded"},
		{ServerError, "server_error", ""},
		{ServiceUnavailable, "service_unavailable", ""},
		{Timeout, "timeout_error", ""},
		{InvalidRequest, "invalid_request_error", ""},
		{AuthError, "authentication_error", "invalid_api_key"},
	}

	for _, tt := range tests {
		f := &Fault{Kind: tt.kind}
		if got := f.ErrorType(); got != tt.errType {
			t.Errorf("ErrorType(%v) = %q, want %q", tt.kind, got, tt.errType)
		}
		if got := f.Code(); got != tt.code {
			t.Errorf("Code(%v) = %q, want %q", tt.kind, got, tt.code)
		}
		if f.Message() == "" {
			t.Errorf("Message(%v) is empty", tt.kind)
		}
	}
}
