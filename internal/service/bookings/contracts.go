package bookings

import (
	"context"

	"github.com/focus-space/FS-BookingService/internal/domain"
)

type BookingRepository interface {
	GetByNumber(ctx context.Context, number string) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
