package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is(). They describe why a crawl
// failed, independent of the HTTP client or parser that detected it.
var (
	// ErrNetwork indicates a page could not be fetched: transport failure,
	// timeout, cancellation or a non-success HTTP status.
	ErrNetwork = errors.New("network error")

	// ErrParse indicates a page body is not parseable markup.
	ErrParse = errors.New("parse error")

	// ErrMissingField indicates a record element lacks a required field.
	ErrMissingField = errors.New("missing field")

	// ErrValidation indicates an input failed validation before any work began.
	ErrValidation = errors.New("validation failed")
)

// NetworkError provides context for page fetch failures.
type NetworkError struct {
	URL        string
	StatusCode int // zero when no response was received
	Cause      error
}

// Error implements the error interface.
func (e *NetworkError) Error() string {
	switch {
	case e.StatusCode != 0:
		return fmt.Sprintf("fetching %s: unexpected HTTP status %d", e.URL, e.StatusCode)
	case e.Cause != nil:
		return fmt.Sprintf("fetching %s: %v", e.URL, e.Cause)
	default:
		return "fetching " + e.URL + ": request failed"
	}
}

// Unwrap returns the sentinel and the underlying cause.
func (e *NetworkError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrNetwork}
	}

	return []error{ErrNetwork, e.Cause}
}

// NewNetworkError creates a network error for a transport failure.
func NewNetworkError(url string, cause error) error {
	return &NetworkError{URL: url, Cause: cause}
}

// NewStatusError creates a network error for a non-success HTTP status.
func NewStatusError(url string, status int) error {
	return &NetworkError{URL: url, StatusCode: status}
}

// ParseError provides context for markup that could not be parsed.
type ParseError struct {
	URL    string
	Reason string
	Cause  error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("parsing %s: %s: %v", e.URL, e.Reason, e.Cause)
	}

	return fmt.Sprintf("parsing %s: %s", e.URL, e.Reason)
}

// Unwrap returns the sentinel and the underlying cause.
func (e *ParseError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrParse}
	}

	return []error{ErrParse, e.Cause}
}

// NewParseError creates a parse error with context.
func NewParseError(url, reason string, cause error) error {
	return &ParseError{URL: url, Reason: reason, Cause: cause}
}

// MissingFieldError reports a record element without a required descendant.
type MissingFieldError struct {
	// Field is the record attribute being extracted (text, author).
	Field string

	// Selector is the pattern that matched nothing.
	Selector string

	// Index is the zero-based position of the record element on its page.
	Index int

	// URL is the page the record was found on.
	URL string
}

// Error implements the error interface.
func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("record %d on %s: missing %s (selector %q)", e.Index, e.URL, e.Field, e.Selector)
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *MissingFieldError) Unwrap() error {
	return ErrMissingField
}

// NewMissingFieldError creates a missing field error with context.
func NewMissingFieldError(url, field, selector string, index int) error {
	return &MissingFieldError{URL: url, Field: field, Selector: selector, Index: index}
}

// ValidationError provides context for validation errors.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
	}

	return "validation failed: " + e.Message
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NewValidationError creates a validation error with context.
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// IsNetwork checks if an error is a network error.
func IsNetwork(err error) bool {
	return errors.Is(err, ErrNetwork)
}

// IsParse checks if an error is a parse error.
func IsParse(err error) bool {
	return errors.Is(err, ErrParse)
}

// IsMissingField checks if an error is a missing field error.
func IsMissingField(err error) bool {
	return errors.Is(err, ErrMissingField)
}

// IsValidation checks if an error is a validation error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}
