// Package server provides the HTTP server for the simulator, wiring the
// API handlers, middleware chain, and graceful shutdown.
package server
