package courses

import (
	"context"
	"time"

	"github.com/focus-space/FS-BookingService/internal/domain"
	"github.com/focus-space/FS-BookingService/internal/infra/storage/course"
)

// CourseRepository is the storage surface this service needs.
type CourseRepository interface {
	List(ctx context.Context, filter course.Filter) ([]*domain.Course, error)
	GetByID(ctx context.Context, id int64) (*domain.Course, error)
}

// TimeProvider supplies the current time (injectable for tests).
type TimeProvider interface {
	Now() time.Time
}

// Logger is the logging interface used by the service.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider is the production clock.
type RealTimeProvider struct{}

func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
