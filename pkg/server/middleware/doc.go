// Package middleware provides the HTTP middleware chain for the simulator:
// request ID propagation, structured request logging, panic recovery with
// OpenAI-style error envelopes, and permissive CORS for browser clients.
package middleware
