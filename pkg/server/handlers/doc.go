// Package handlers implements the HTTP endpoints of the simulator: the
// OpenAI-compatible chat completions and responses APIs, the model catalog,
// health, and runtime statistics.
package handlers
