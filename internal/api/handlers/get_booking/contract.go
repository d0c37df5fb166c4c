package get_booking

import (
	"context"

	"github.com/focus-space/FS-BookingService/internal/service/bookings"
)

type BookingService interface {
	GetByNumber(ctx context.Context, number string) (*bookings.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
