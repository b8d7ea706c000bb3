package api

import (
	"errors"
	"fmt"
)

// Kind classifies an API failure. Callers use it only to decide how to
// present the failure (e.g. whether a retry hint makes sense); the
// client never retries on its own.
type Kind int

const (
	// KindTransport means the request never completed: dial failure,
	// connection reset, context cancellation. There is no HTTP status.
	KindTransport Kind = iota
	// KindUnauthorized is a 401 from any operation. Reporting it is
	// secondary; the global session teardown has already fired.
	KindUnauthorized
	// KindRequest is any other non-2xx response. Message carries the
	// server's own wording when the body had one.
	KindRequest
)

// Error is the single failure type returned by every client operation.
type Error struct {
	Kind    Kind
	Status  int    // HTTP status, 0 for transport failures
	Message string // human-readable, server-supplied when available
	Err     error  // underlying cause, transport failures only
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("api: %s (status %d)", e.Message, e.Status)
	}
	return fmt.Sprintf("api: %s", e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// IsUnauthorized reports whether err is a 401 failure.
func IsUnauthorized(err error) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Kind == KindUnauthorized
}

// IsTransport reports whether the request never reached the server.
// These are the failures worth a retry suggestion.
func IsTransport(err error) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Kind == KindTransport
}

// Message extracts the displayable message from an API error, falling
// back to err.Error() for non-API failures.
func Message(err error) string {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Message
	}
	return err.Error()
}
