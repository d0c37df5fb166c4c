package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/focus-space/FS-BookingService/internal/domain"
	courseRepo "github.com/focus-space/FS-BookingService/internal/infra/storage/course"
)

// UseCase resolves bookable time slots for a date. Only committed bookings
// count against availability: no reservation exists until a booking is
// confirmed, so two members can both see the same slot as free right up to
// the submission conflict check.
type UseCase struct {
	bookingRepo  BookingRepository
	courseRepo   CourseRepository
	palette      TrialPalette
	timeProvider TimeProvider
	logger       Logger
}

func NewUseCase(
	bookingRepo BookingRepository,
	courseRepo CourseRepository,
	palette TrialPalette,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		courseRepo:   courseRepo,
		palette:      palette,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute returns the slot list for the request.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req == nil || req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	now := uc.timeProvider.Now()

	// Past dates have no bookable slots; an empty list, not an error.
	if isDateInPast(req.Date, now) {
		return &Response{Date: req.Date, CourseID: req.CourseID, Slots: []Slot{}}, nil
	}

	if req.CourseID == nil {
		return uc.trialSlots(ctx, req)
	}
	return uc.personalCourseSlots(ctx, req)
}

// trialSlots marks the generic palette against committed trial bookings.
func (uc *UseCase) trialSlots(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: trial palette for date=%s", req.Date.Format(domain.DateFormat))

	palette, err := generatePalette(uc.palette)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to generate trial palette: %v", err)
		return nil, fmt.Errorf("%w: failed to generate trial palette: %v", ErrInternal, err)
	}

	bookings, err := uc.bookingRepo.ListTrialBookingsOnDate(ctx, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to list trial bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to list trial bookings: %v", ErrInternal, err)
	}

	slots := make([]Slot, len(palette))
	for i, slot := range palette {
		slots[i] = Slot{
			StartTime: slot.StartTime,
			EndTime:   slot.EndTime,
			Available: !trialSlotTaken(slot, bookings),
		}
	}

	return &Response{Date: req.Date, Slots: slots}, nil
}

// personalCourseSlots marks a personal course's configured slots against
// committed bookings on that date. Group and special courses are rejected:
// their availability is the course-level offerability check only.
func (uc *UseCase) personalCourseSlots(ctx context.Context, req *Request) (*Response, error) {
	course, err := uc.courseRepo.GetByID(ctx, *req.CourseID)
	if err != nil {
		if errors.Is(err, courseRepo.ErrCourseNotFound) {
			uc.logger.Warn("GetAvailableSlots: course id=%d not found", *req.CourseID)
			return nil, ErrCourseNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get course id=%d: %v", *req.CourseID, err)
		return nil, fmt.Errorf("%w: failed to get course: %v", ErrInternal, err)
	}

	if !course.IsActive {
		uc.logger.Warn("GetAvailableSlots: course id=%d is inactive", course.ID)
		return nil, ErrCourseNotFound
	}

	if course.Category != domain.CategoryPersonal {
		uc.logger.Warn("GetAvailableSlots: per-date slots requested for %s course id=%d",
			course.Category, course.ID)
		return nil, ErrPerDateNotApplicable
	}

	bookings, err := uc.bookingRepo.ListCourseBookingsOnDate(ctx, course.ID, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to list bookings for course id=%d: %v", course.ID, err)
		return nil, fmt.Errorf("%w: failed to list bookings: %v", ErrInternal, err)
	}

	slots := make([]Slot, len(course.TimeSlots))
	for i, slot := range course.TimeSlots {
		slots[i] = Slot{
			StartTime: slot.StartTime,
			EndTime:   slot.EndTime,
			Available: !slotTaken(course.ID, req, slot, bookings),
		}
	}

	uc.logger.Info("GetAvailableSlots: resolved %d slots for course=%d date=%s",
		len(slots), course.ID, req.Date.Format(domain.DateFormat))

	return &Response{Date: req.Date, CourseID: req.CourseID, Slots: slots}, nil
}
