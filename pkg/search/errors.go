package search

import "fmt"

// ValidationError reports a recognized parameter whose value could not be
// bound to the query. No query is produced.
type ValidationError struct {
	Param string
	Value string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("search: invalid %s %q: %v", e.Param, e.Value, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
