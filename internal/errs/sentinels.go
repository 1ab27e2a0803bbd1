// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import (
	"errors"
	"fmt"
)

// Common sentinels across the session/registry/chat layers.
var (
	// ErrValidation indicates bad local input, rejected before any network call.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidFileType indicates an upload payload that is not a PDF.
	ErrInvalidFileType = fmt.Errorf("%w: only PDF files are accepted", ErrValidation)

	// ErrSessionExpired indicates a 401 from an authenticated call. The caller
	// must clear stored credentials and move to the login screen; there is no
	// refresh-and-retry path.
	ErrSessionExpired = errors.New("session expired")

	// ErrRequestFailed indicates a non-2xx response. The server message, when
	// present, travels in a RequestError wrapping this sentinel.
	ErrRequestFailed = errors.New("request failed")

	// ErrTransport indicates a network or response-decode failure. Never
	// retried automatically; the user resubmits manually.
	ErrTransport = errors.New("transport error")
)

// RequestError carries the server-supplied detail of a failed request.
type RequestError struct {
	Status int
	Detail string
}

func (e *RequestError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("request failed (%d): %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("request failed (%d)", e.Status)
}

// Unwrap maps every RequestError onto ErrRequestFailed for errors.Is checks.
func (e *RequestError) Unwrap() error { return ErrRequestFailed }
