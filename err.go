package gdata

import "fmt"

// ConfigurationError reports a service configuration that cannot produce a client.
type ConfigurationError struct {
	Field string
	Err   error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("gdata: invalid %s: %v", e.Field, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// ExecutionError wraps a failure of the feed connection while running a query.
// The wrapped error is the connection's, unchanged.
type ExecutionError struct {
	Err error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("gdata: query failed: %v", e.Err)
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}
