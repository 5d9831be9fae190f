package config

import (
	"fmt"
	"log/slog"
	"sync/atomic"
)

// Manager holds the active configuration behind an atomic pointer. Request
// handlers read the current configuration without locking while reloads
// swap in validated replacements.
type Manager struct {
	current atomic.Pointer[Config]
	path    string
	logger  *slog.Logger
}

// NewManager creates a manager seeded with the given configuration. The path
// is remembered for reloads and may be empty when configuration came from
// defaults and environment only.
func NewManager(cfg *Config, path string) *Manager {
	m := &Manager{
		path:   path,
		logger: slog.Default().With("component", "config.manager"),
	}
	m.current.Store(cfg)
	return m
}

// Current returns the active configuration. The returned value must be
// treated as read-only.
func (m *Manager) Current() *Config {
	return m.current.Load()
}

// Path returns the configuration file path, or empty when none was given.
func (m *Manager) Path() string {
	return m.path
}

// Set replaces the active configuration. Intended for tests and programmatic
// overrides; file-based updates should go through Reload.
func (m *Manager) Set(cfg *Config) {
	m.current.Store(cfg)
}

// Reload re-reads the configuration file and swaps in the result. The active
// configuration is unchanged when loading or validation fails.
func (m *Manager) Reload() error {
	if m.path == "" {
		return fmt.Errorf("no configuration file to reload")
	}

	cfg, err := LoadConfigWithEnvOverrides(m.path)
	if err != nil {
		return fmt.Errorf("failed to reload configuration: %w", err)
	}

	m.current.Store(cfg)
	m.logger.Info("Configuration reloaded", "path", m.path)
	return nil
}
