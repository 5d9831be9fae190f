// Package faults implements probabilistic error injection for simulated
// API responses.
//
// Each request makes a single uniform draw which is compared against
// cumulative rate thresholds in a fixed order, so configured rates are
// independent slices of the probability space and earlier categories win
// when the rates sum above 1.
package faults

import (
	"math/rand"
	"time"
)

// Kind identifies an injected fault category.
type Kind int

const (
	// RateLimit produces a 429 with a randomized Retry-After.
	RateLimit Kind = iota

	// ServerError produces a 500.
	ServerError

	// ServiceUnavailable produces a 503 with Retry-After: 60.
	ServiceUnavailable

	// Timeout dwells for the configured duration, then produces a 504.
	Timeout

	// InvalidRequest produces a 400.
	InvalidRequest

	// AuthError produces a 401.
	AuthError
)

// String returns the config-facing name of the fault kind.
func (k Kind) String() string {
	switch k {
	case RateLimit:
		return "rate_limit"
	case ServerError:
		return "server_error"
	case ServiceUnavailable:
		return "service_unavailable"
	case Timeout:
		return "timeout"
	case InvalidRequest:
		return "invalid_request"
	case AuthError:
		return "auth_error"
	default:
		return "unknown"
	}
}

// Config holds the per-category injection rates. Rates are probabilities in
// [0, 1]; a zero-valued Config injects nothing.
type Config struct {
	// RateLimitRate is the probability of a 429 response.
	RateLimitRate float64 `yaml:"rate_limit_rate"`

	// ServerErrorRate is the probability of a server error. Within this
	// slice 70% of hits return 500 and 30% return 503.
	ServerErrorRate float64 `yaml:"server_error_rate"`

	// TimeoutRate is the probability of a simulated timeout (504).
	TimeoutRate float64 `yaml:"timeout_rate"`

	// TimeoutAfter is how long a timed-out request dwells before the 504
	// is written.
	TimeoutAfter time.Duration `yaml:"-"`

	// InvalidRequestRate is the probability of a 400 response.
	InvalidRequestRate float64 `yaml:"invalid_request_rate"`

	// AuthErrorRate is the probability of a 401 response.
	AuthErrorRate float64 `yaml:"auth_error_rate"`
}

// None returns a configuration that never injects errors.
func None() Config {
	return Config{TimeoutAfter: 30 * time.Second}
}

// Chaos returns a configuration with a moderate mix of every fault kind,
// useful for resilience testing of clients.
func Chaos() Config {
	return Config{
		RateLimitRate:      0.1,
		ServerErrorRate:    0.05,
		TimeoutRate:        0.05,
		TimeoutAfter:       5 * time.Second,
		InvalidRequestRate: 0.02,
		AuthErrorRate:      0.01,
	}
}

// RateLimited returns a configuration where half of all requests are
// rate limited.
func RateLimited() Config {
	return Config{
		RateLimitRate: 0.5,
		TimeoutAfter:  30 * time.Second,
	}
}

// Fault describes a single injected error, ready to be rendered as an HTTP
// response.
type Fault struct {
	Kind Kind

	// Status is the HTTP status code to return.
	Status int

	// RetryAfterSeconds is the Retry-After header value; zero means the
	// header is omitted.
	RetryAfterSeconds int

	// Dwell is how long to wait before writing the response. Nonzero only
	// for timeouts.
	Dwell time.Duration
}

// Injector decides per request whether to inject a fault.
type Injector struct {
	cfg Config
}

// NewInjector creates an injector with the given configuration.
func NewInjector(cfg Config) *Injector {
	return &Injector{cfg: cfg}
}

// MaybeInject returns a fault for this request, or nil to proceed normally.
func (inj *Injector) MaybeInject() *Fault {
	c := inj.cfg
	r := rand.Float64()

	cum := c.RateLimitRate
	if r < cum {
		return &Fault{
			Kind:              RateLimit,
			Status:            429,
			RetryAfterSeconds: 1 + rand.Intn(59),
		}
	}

	cum += c.ServerErrorRate
	if r < cum {
		if rand.Float64() < 0.7 {
			return &Fault{Kind: ServerError, Status: 500}
		}
		return &Fault{
			Kind:              ServiceUnavailable,
			Status:            503,
			RetryAfterSeconds: 60,
		}
	}

	cum += c.TimeoutRate
	if r < cum {
		return &Fault{Kind: Timeout, Status: 504, Dwell: c.TimeoutAfter}
	}

	cum += c.InvalidRequestRate
	if r < cum {
		return &Fault{Kind: InvalidRequest, Status: 400}
	}

	cum += c.AuthErrorRate
	if r < cum {
		return &Fault{Kind: AuthError, Status: 401}
	}

	return nil
}

// ErrorType returns the OpenAI error envelope "type" field for the fault.
func (f *Fault) ErrorType() string {
	switch f.Kind {
	case RateLimit:
		return "rate_limit_error"
	case ServerError:
		return "server_error"
	case ServiceUnavailable:
		return "service_unavailable"
	case Timeout:
		return "timeout_error"
	case InvalidRequest:
		return "invalid_request_error"
	case AuthError:
		return "authentication_error"
	default:
		return "server_error"
	}
}

// Code returns the error envelope "code" field, or empty when the kind
// carries no code.
func (f *Fault) Code() string {
	switch f.Kind {
	case RateLimit:
		return "rate_limit_exceeded"
	case AuthError:
		return "invalid_api_key"
	default:
		return ""
	}
}

// Message returns a human-readable error message for the fault.
func (f *Fault) Message() string {
	switch f.Kind {
	case RateLimit:
		return "Rate limit reached for requests. Please try again later."
	case ServerError:
		return "The server had an error while processing your request."
	case ServiceUnavailable:
		return "The engine is currently overloaded. Please try again later."
	case Timeout:
		return "Request timed out."
	case InvalidRequest:
		return "Invalid request: simulated validation failure."
	case AuthError:
		return "Incorrect API key provided."
	default:
		return "The server had an error while processing your request."
	}
}
