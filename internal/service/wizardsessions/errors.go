package wizardsessions

import "errors"

var (
	// ErrSessionNotFound is returned when the session does not exist or has
	// expired.
	ErrSessionNotFound = errors.New("wizardsessions: session not found or expired")

	// ErrUnknownEvent is returned for an unrecognized event action.
	ErrUnknownEvent = errors.New("wizardsessions: unknown event action")

	// ErrInvalidEvent is returned when an event's payload cannot be applied.
	ErrInvalidEvent = errors.New("wizardsessions: invalid event payload")

	// ErrInternal is returned for unexpected failures.
	ErrInternal = errors.New("wizardsessions: internal error")
)
