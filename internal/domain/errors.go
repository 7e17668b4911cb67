package domain

import "fmt"

// ConfigError reports a malformed or missing startup table (regulatory
// limits or background baseline). Fatal: the process must not serve
// requests after one of these.
type ConfigError struct {
	Source string // which table or file failed
	Err    error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("configuration %s: %v", e.Source, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// NewConfigError wraps a startup-time configuration failure.
func NewConfigError(source string, err error) *ConfigError {
	return &ConfigError{Source: source, Err: err}
}

// ValidationError reports a structurally invalid simulation request.
// Recoverable: the caller rejects the request and may retry with a
// corrected payload.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid request: %s: %s", e.Field, e.Reason)
}

func validationErr(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}
