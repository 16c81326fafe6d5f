package fetch

import (
	"errors"
	"fmt"
)

// ErrBodyTooLarge is returned when a response exceeds MaxBodySize.
var ErrBodyTooLarge = errors.New("response body too large")

// StatusError represents a non-2xx response.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status fetching %s: HTTP %d", e.URL, e.StatusCode)
}

// Retryable reports whether the request may succeed when tried again.
func (e *StatusError) Retryable() bool {
	return e.StatusCode == 429 || e.StatusCode >= 500
}
