// Package bookings serves read and lifecycle operations on persisted
// bookings, looked up by their public booking number.
package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/focus-space/FS-BookingService/internal/domain"
	bookingRepo "github.com/focus-space/FS-BookingService/internal/infra/storage/booking"
)

type Service struct {
	repo   BookingRepository
	logger Logger
}

func NewService(repo BookingRepository, logger Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// GetByNumber returns the booking with the given public number.
func (s *Service) GetByNumber(ctx context.Context, number string) (*BookingResponse, error) {
	booking, err := s.load(ctx, number)
	if err != nil {
		return nil, err
	}
	return toResponse(booking), nil
}

// Cancel marks the booking cancelled, releasing any slot it occupied.
// Cancelling twice is reported, not silently accepted.
func (s *Service) Cancel(ctx context.Context, number string) (*BookingResponse, error) {
	booking, err := s.load(ctx, number)
	if err != nil {
		return nil, err
	}

	if !booking.IsActive() {
		s.logger.Warn("Cancel: booking %s already cancelled", number)
		return nil, ErrAlreadyCancelled
	}

	if err := s.repo.UpdateStatus(ctx, booking.ID, domain.StatusCancelled); err != nil {
		s.logger.Error("Cancel: failed to update status for booking %s: %v", number, err)
		return nil, fmt.Errorf("%w: failed to update status: %v", ErrInternal, err)
	}

	booking.Status = domain.StatusCancelled
	s.logger.Info("Cancel: booking %s cancelled", number)
	return toResponse(booking), nil
}

func (s *Service) load(ctx context.Context, number string) (*domain.Booking, error) {
	booking, err := s.repo.GetByNumber(ctx, number)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("load: booking %s not found", number)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("load: failed to get booking %s: %v", number, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}
	return booking, nil
}
