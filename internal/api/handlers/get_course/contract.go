package get_course

import (
	"context"

	"github.com/focus-space/FS-BookingService/internal/service/courses"
)

type CourseService interface {
	GetByID(ctx context.Context, id int64) (*courses.CourseResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
