// Package config provides configuration loading, validation, and hot
// reloading for the simulator.
//
// Configuration is loaded from a YAML file, merged with defaults, overridden
// by LLMSIM_* environment variables, and validated before use. The Manager
// type holds the active configuration behind an atomic pointer so handlers
// can read it without locking while a file watcher swaps in new versions.
package config
