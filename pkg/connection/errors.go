package connection

import (
	"fmt"
	"net/http"
)

// HTTPError is a non-2xx answer from the feed backend.
type HTTPError struct {
	StatusCode int
	// Code is the backend error code, when the body carried one.
	Code    string
	Message string
}

func (e *HTTPError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	if e.Code != "" {
		return fmt.Sprintf("feed request failed: %d %s: %s", e.StatusCode, e.Code, msg)
	}
	return fmt.Sprintf("feed request failed: %d: %s", e.StatusCode, msg)
}
