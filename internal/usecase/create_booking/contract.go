package create_booking

import (
	"context"
	"time"

	"github.com/focus-space/FS-BookingService/internal/domain"
)

// BookingRepository is the persistence surface this usecase needs.
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	CountSlotOccupancy(ctx context.Context, courseID int64, date time.Time, slot domain.TimeSlot) (int, error)
}

// CourseRepository loads the authoritative course data.
type CourseRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Course, error)
}

// TransactionManager runs the conflict check and insert atomically.
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Notifier dispatches best-effort booking notifications.
type Notifier interface {
	BookingConfirmed(ctx context.Context, booking *domain.Booking)
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
