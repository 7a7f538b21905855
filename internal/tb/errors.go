package tb

import (
	"errors"
	"fmt"
)

// ConnectionError means the server could not be reached at all — the dial
// failed or the request timed out.
type ConnectionError struct {
	BaseURL string
	Err     error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("unable to connect to TensorBoard at %s: %v", e.BaseURL, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// APIError means the server was reachable but answered with a non-2xx status.
type APIError struct {
	Endpoint   string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("TensorBoard API error: %s returned %d: %s", e.Endpoint, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("TensorBoard API error: %s returned %d", e.Endpoint, e.StatusCode)
}

// IsConnectionError reports whether err is (or wraps) a ConnectionError.
func IsConnectionError(err error) bool {
	var ce *ConnectionError
	return errors.As(err, &ce)
}

// IsAPIError reports whether err is (or wraps) an APIError.
func IsAPIError(err error) bool {
	var ae *APIError
	return errors.As(err, &ae)
}
