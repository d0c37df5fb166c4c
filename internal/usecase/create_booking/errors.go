package create_booking

import (
	"errors"
	"fmt"

	"github.com/focus-space/FS-BookingService/internal/validation"
)

var (
	// ErrInvalidInput is returned for structurally broken requests.
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrCourseNotFound is returned when the selected course does not exist
	// or is no longer active.
	ErrCourseNotFound = errors.New("create_booking: course not found")

	// ErrCourseNotOfferable is returned when the course's term state no
	// longer allows enrollment. A conflict kind, not a field error: the
	// client validated against stale data.
	ErrCourseNotOfferable = errors.New("create_booking: course is no longer offerable")

	// ErrSlotNotAvailable is returned when another booking took the personal
	// slot between client validation and submission. Also a conflict kind.
	ErrSlotNotAvailable = errors.New("create_booking: slot is no longer available")

	// ErrInternal is returned for unexpected failures.
	ErrInternal = errors.New("create_booking: internal error")
)

// ValidationError carries the field->message map produced by the
// authoritative server-side validation. Structurally identical to the
// client-side map so the UI renders both through one path.
type ValidationError struct {
	Fields validation.FieldErrors
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("create_booking: validation failed for %d fields", len(e.Fields))
}
