package wizardsessions

import (
	"context"

	"github.com/focus-space/FS-BookingService/internal/domain"
	createBooking "github.com/focus-space/FS-BookingService/internal/usecase/create_booking"
	"github.com/focus-space/FS-BookingService/internal/wizard"
)

// Store parks wizard state between user events. Implementations are
// TTL-bounded; an expired session is simply gone.
type Store interface {
	Get(ctx context.Context, id string) (*wizard.Wizard, error)
	Save(ctx context.Context, id string, w *wizard.Wizard) error
	Delete(ctx context.Context, id string) error
}

// CourseRepository loads courses for the select_course event.
type CourseRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Course, error)
}

// CreateBookingUseCase is the submission service invoked on confirm.
type CreateBookingUseCase interface {
	Execute(ctx context.Context, req *createBooking.Request) (*createBooking.Response, error)
}

// Logger is the logging interface used by the service.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
