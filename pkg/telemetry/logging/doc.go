// Package logging configures structured logging for the simulator on top of
// log/slog. Components obtain scoped loggers via slog.Default().With after
// Setup has installed the process-wide handler.
package logging
