package course

import "errors"

var (
	// ErrCourseNotFound is returned when no course matches the query.
	ErrCourseNotFound = errors.New("course.repository: course not found")

	// ErrBuildQuery is returned when SQL construction fails.
	ErrBuildQuery = errors.New("course.repository: failed to build query")

	// ErrExecQuery is returned when query execution fails.
	ErrExecQuery = errors.New("course.repository: failed to execute query")

	// ErrScanRow is returned when scanning a result row fails.
	ErrScanRow = errors.New("course.repository: failed to scan row")
)
