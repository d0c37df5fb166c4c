package get_available_slots

import "errors"

var (
	// ErrInvalidInput is returned for structurally broken requests.
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrCourseNotFound is returned when the course does not exist or is
	// inactive.
	ErrCourseNotFound = errors.New("get_available_slots: course not found")

	// ErrPerDateNotApplicable is returned for group/special courses: their
	// whole recurrence is the "slot", selected when the course is chosen, so
	// per-date slot resolution does not apply.
	ErrPerDateNotApplicable = errors.New("get_available_slots: per-date slots not applicable for this course category")

	// ErrInternal is returned for unexpected failures.
	ErrInternal = errors.New("get_available_slots: internal error")
)
