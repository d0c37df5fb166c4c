package sessionstore

import "errors"

var (
	// ErrSessionNotFound is returned when the session does not exist or has
	// expired. Expiry and absence are indistinguishable on purpose: an
	// abandoned wizard leaves no trace.
	ErrSessionNotFound = errors.New("sessionstore: session not found or expired")

	// ErrInternal is returned for store-level failures.
	ErrInternal = errors.New("sessionstore: internal error")
)
