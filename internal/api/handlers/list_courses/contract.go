package list_courses

import (
	"context"

	"github.com/focus-space/FS-BookingService/internal/service/courses"
)

type CourseService interface {
	List(ctx context.Context, category *string) (*courses.CourseListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
