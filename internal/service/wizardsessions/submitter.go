package wizardsessions

import (
	"context"
	"errors"
	"fmt"

	"github.com/focus-space/FS-BookingService/internal/domain"
	createBooking "github.com/focus-space/FS-BookingService/internal/usecase/create_booking"
	"github.com/focus-space/FS-BookingService/internal/wizard"
)

// bookingSubmitter adapts the create-booking usecase to the wizard's
// Submitter port, translating usecase errors into the wizard's error kinds:
// field problems become ServerValidationError, stale-data races become
// ErrConflict.
type bookingSubmitter struct {
	uc CreateBookingUseCase
}

func newBookingSubmitter(uc CreateBookingUseCase) *bookingSubmitter {
	return &bookingSubmitter{uc: uc}
}

func (s *bookingSubmitter) Submit(ctx context.Context, draft *domain.BookingDraft) (*wizard.SubmissionResult, error) {
	resp, err := s.uc.Execute(ctx, &createBooking.Request{Draft: draft})
	if err != nil {
		var ve *createBooking.ValidationError
		switch {
		case errors.As(err, &ve):
			return nil, &wizard.ServerValidationError{Fields: ve.Fields}
		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			return nil, fmt.Errorf("%w: slot no longer available", wizard.ErrConflict)
		case errors.Is(err, createBooking.ErrCourseNotOfferable):
			return nil, fmt.Errorf("%w: course no longer offerable", wizard.ErrConflict)
		case errors.Is(err, createBooking.ErrCourseNotFound):
			return nil, fmt.Errorf("%w: course no longer exists", wizard.ErrConflict)
		default:
			return nil, err
		}
	}

	return &wizard.SubmissionResult{
		BookingID:     resp.BookingID,
		BookingNumber: resp.BookingNumber,
	}, nil
}
