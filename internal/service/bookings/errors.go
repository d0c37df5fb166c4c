package bookings

import "errors"

var (
	// ErrBookingNotFound is returned when no booking matches the number.
	ErrBookingNotFound = errors.New("service bookings: booking not found")

	// ErrAlreadyCancelled is returned when cancelling a cancelled booking.
	ErrAlreadyCancelled = errors.New("service bookings: booking already cancelled")

	// ErrInternal is returned for unexpected failures.
	ErrInternal = errors.New("service bookings: internal error")
)
