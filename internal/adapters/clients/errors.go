// Package clients provides the instrumented HTTP client used to fetch pages.
package clients

import "errors"

// Client errors represent failures in the HTTP client layer.
// These are distinct from domain errors - they represent infrastructure failures
// that should be translated to domain errors by the calling code.
var (
	// ErrRequestFailed is returned when no response was received at all:
	// DNS, connect, TLS, timeout or cancellation. The cause is wrapped.
	ErrRequestFailed = errors.New("request failed")

	// ErrInvalidURL is returned when the target cannot form a request URL.
	ErrInvalidURL = errors.New("invalid request URL")
)
