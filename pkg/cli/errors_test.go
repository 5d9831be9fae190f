package cli

import (
	"errors"
	"testing"
)

func TestConfigError(t *testing.T) {
	err := &ConfigError{
		Field:   "server.port",
		Message: "must be between 0 and 65535",
	}

	expected := "config error in server.port: must be between 0 and 65535"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
}

func TestConfigErrorWithoutField(t *testing.T) {
	err := NewConfigError("", "failed to load config: no such file")
	expected := "config error: failed to load config: no such file"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
}

func TestNewConfigError(t *testing.T) {
	err := NewConfigError("field", "message")
	if err.Field != "field" {
		t.Errorf("Field = %q, want %q", err.Field, "field")
	}
	if err.Message != "message" {
		t.Errorf("Message = %q, want %q", err.Message, "message")
	}
}

func TestCommandError(t *testing.T) {
	underlying := errors.New("bind: address already in use")
	err := &CommandError{
		Command: "run",
		Err:     underlying,
	}

	expected := "command run failed: bind: address already in use"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
	if !errors.Is(err, underlying) {
		t.Error("errors.Is() should reach the wrapped error")
	}
}

func TestNewCommandError(t *testing.T) {
	underlying := errors.New("test")
	err := NewCommandError("validate", underlying)

	if err.Command != "validate" {
		t.Errorf("Command = %q, want %q", err.Command, "validate")
	}
	if err.Unwrap() != underlying {
		t.Errorf("Unwrap() = %v, want %v", err.Unwrap(), underlying)
	}
}
