package api

import (
	"errors"
	"fmt"
)

// ErrUnavailable means no usable response was received from the server.
var ErrUnavailable = errors.New("server unavailable")

// APIError is a non-2xx response with the server-provided human-readable
// message from its "detail" field.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("server error (HTTP %d)", e.StatusCode)
}

// ErrorDetail extracts the user-facing message from err: the server detail
// for an *APIError, otherwise the given fallback.
func ErrorDetail(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	return fallback
}
