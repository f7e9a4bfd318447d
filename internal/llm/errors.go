package llm

import (
	"errors"
	"fmt"
)

// Every failure below is terminal for the current call. Nothing here is
// retried, and the caller must not mutate any persisted state on error.
var (
	// ErrMissingCredential means the provider has no API key configured.
	// Checked before any request goes out.
	ErrMissingCredential = errors.New("no API credential configured")

	// ErrEmptyResult means the service replied 200 with zero choices.
	ErrEmptyResult = errors.New("completion service returned no choices")
)

// TransportError wraps a network-level failure (connection refused, DNS,
// timeout) before any HTTP status was received.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string { return "completion request failed: " + e.Err.Error() }
func (e *TransportError) Unwrap() error { return e.Err }

// HTTPError is a non-200 response from the completion service.
type HTTPError struct {
	Status  int
	Excerpt string // error message pulled from the body, if any
}

func (e *HTTPError) Error() string {
	if e.Excerpt != "" {
		return fmt.Sprintf("completion service returned %d: %s", e.Status, e.Excerpt)
	}
	return fmt.Sprintf("completion service returned %d", e.Status)
}

// DecodeError means the response body did not match the expected schema.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string { return "unreadable completion response: " + e.Err.Error() }
func (e *DecodeError) Unwrap() error { return e.Err }
