package apiclient

import (
	"errors"
	"fmt"
)

// ErrInvalidEnvelope is returned when a backend response decodes but lacks
// the expected {success, data} envelope shape.
var ErrInvalidEnvelope = errors.New("invalid response structure")

// HTTPError represents a non-2xx HTTP response from the backend.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// IsStatus returns true if err (or any wrapped error) is an HTTPError with
// the given status code.
func IsStatus(err error, code int) bool {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode == code
	}
	return false
}
