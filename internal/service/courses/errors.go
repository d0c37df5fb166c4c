package courses

import "errors"

var (
	// ErrCourseNotFound is returned when the course does not exist, is
	// inactive, or is no longer offerable.
	ErrCourseNotFound = errors.New("courses: course not found")

	// ErrInvalidCategory is returned for an unknown category filter.
	ErrInvalidCategory = errors.New("courses: invalid category")

	// ErrInternal is returned for unexpected failures.
	ErrInternal = errors.New("courses: internal error")
)
