package get_available_slots

import (
	"context"
	"time"

	"github.com/focus-space/FS-BookingService/internal/domain"
)

// BookingRepository supplies the committed bookings that make slots
// unavailable. In-progress wizard sessions never appear here.
type BookingRepository interface {
	ListCourseBookingsOnDate(ctx context.Context, courseID int64, date time.Time) ([]*domain.Booking, error)
	ListTrialBookingsOnDate(ctx context.Context, date time.Time) ([]*domain.Booking, error)
}

// CourseRepository loads the course whose slots are being resolved.
type CourseRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Course, error)
}

// TimeProvider supplies the current time (injectable for tests).
type TimeProvider interface {
	Now() time.Time
}

// Logger is the logging interface used by the usecase.
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
