package create_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/focus-space/FS-BookingService/internal/domain"
	courseRepo "github.com/focus-space/FS-BookingService/internal/infra/storage/course"
	"github.com/focus-space/FS-BookingService/internal/validation"
)

// UseCase persists a finalized booking draft. It is the trust boundary: every
// client-side rule is re-checked here, offerability and slot conflicts are
// re-confirmed at write time inside a serializable transaction, and only then
// is the booking created and the notification dispatched.
type UseCase struct {
	bookingRepo  BookingRepository
	courseRepo   CourseRepository
	txManager    TransactionManager
	notifier     Notifier
	timeProvider TimeProvider
	logger       Logger
}

func NewUseCase(
	bookingRepo BookingRepository,
	courseRepo CourseRepository,
	txManager TransactionManager,
	notifier Notifier,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		courseRepo:   courseRepo,
		txManager:    txManager,
		notifier:     notifier,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute validates and persists the draft, returning the booking number.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req == nil || req.Draft == nil {
		return nil, fmt.Errorf("%w: draft is required", ErrInvalidInput)
	}
	draft := req.Draft

	uc.logger.Info("CreateBooking: type=%s, customer=%s", draft.Type, draft.CustomerName)

	// 1. Authoritative re-run of the full rule set. Client validation is an
	// optimization, not something the server trusts.
	if errs := validation.ValidateDraft(draft); !errs.Empty() {
		uc.logger.Warn("CreateBooking: validation failed on %d fields", len(errs))
		return nil, &ValidationError{Fields: errs}
	}

	now := uc.timeProvider.Now()

	booking := &domain.Booking{
		BookingNumber: newBookingNumber(now),
		Type:          draft.Type,
		Status:        domain.StatusConfirmed,

		CustomerName:  strings.TrimSpace(draft.CustomerName),
		CustomerEmail: draft.CustomerEmail,
		CustomerPhone: draft.CustomerPhone,
		CustomerNote:  draft.CustomerNote,

		ParticipantCount: draft.ParticipantCount,
	}

	var personalSlot *domain.TimeSlot

	switch draft.Type {
	case domain.TypeTrial:
		// Trial visits are always free regardless of what the client sent.
		booking.TotalPrice = 0
		booking.ParticipantCount = 1
		if draft.Trial != nil {
			booking.CustomerGender = draft.Trial.CustomerGender
			booking.CustomerAge = draft.Trial.CustomerAge
			booking.HasExperience = draft.Trial.HasExperience
			booking.FitnessGoals = draft.Trial.FitnessGoals
			booking.PreferredDate = draft.Trial.PreferredDate
			booking.PreferredTime = draft.Trial.PreferredTime
		}

	case domain.TypeCourse:
		course, err := uc.loadOfferableCourse(ctx, draft.Course.CourseID, now)
		if err != nil {
			return nil, err
		}

		booking.CourseID = &course.ID
		booking.CourseName = &course.Title
		booking.CourseCategory = &course.Category
		// Price is derived from the authoritative course record, not from the
		// aggregate the client carried.
		booking.TotalPrice = course.Price * float64(booking.ParticipantCount)

		if course.Category == domain.CategoryPersonal {
			slot, err := resolvePersonalSlot(course, draft)
			if err != nil {
				return nil, err
			}
			personalSlot = slot
			booking.BookingDate = draft.Course.BookingDate
			booking.StartTime = slot.StartTime
			booking.EndTime = slot.EndTime
			booking.ParticipantCount = domain.PersonalCourseCapacity
			booking.TotalPrice = course.Price * float64(booking.ParticipantCount)
		}
	}

	// 2. Conflict check and insert run atomically. Nothing was reserved while
	// the member walked through the wizard, so this re-check is the only
	// guard between two sessions racing for the same personal slot.
	var created *domain.Booking
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if personalSlot != nil {
			occupied, err := uc.bookingRepo.CountSlotOccupancy(txCtx, *booking.CourseID, *booking.BookingDate, *personalSlot)
			if err != nil {
				uc.logger.Error("CreateBooking: failed to count slot occupancy: %v", err)
				return fmt.Errorf("%w: failed to count slot occupancy: %v", ErrInternal, err)
			}
			if occupied >= domain.PersonalCourseCapacity {
				uc.logger.Warn("CreateBooking: slot %s on %s already taken for course=%d",
					personalSlot, booking.BookingDate.Format(domain.DateFormat), *booking.CourseID)
				return ErrSlotNotAvailable
			}
		}

		result, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}
		created = result
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: created booking id=%d number=%s", created.ID, created.BookingNumber)

	// 3. Notification is decoupled from persistence: best-effort, detached
	// from the request context so client disconnects don't cancel it.
	go func(b domain.Booking) {
		notifyCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		uc.notifier.BookingConfirmed(notifyCtx, &b)
	}(*created)

	return &Response{
		BookingID:     created.ID,
		BookingNumber: created.BookingNumber,
		Status:        string(created.Status),
		TotalPrice:    created.TotalPrice,
		CreatedAt:     created.CreatedAt,
	}, nil
}

// loadOfferableCourse fetches the course and re-checks that it may still be
// booked. Inactive courses are reported as not found.
func (uc *UseCase) loadOfferableCourse(ctx context.Context, courseID int64, now time.Time) (*domain.Course, error) {
	course, err := uc.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, courseRepo.ErrCourseNotFound) {
			uc.logger.Warn("CreateBooking: course id=%d not found", courseID)
			return nil, ErrCourseNotFound
		}
		uc.logger.Error("CreateBooking: failed to get course id=%d: %v", courseID, err)
		return nil, fmt.Errorf("%w: failed to get course: %v", ErrInternal, err)
	}

	if !course.IsActive {
		uc.logger.Warn("CreateBooking: course id=%d is inactive", courseID)
		return nil, ErrCourseNotFound
	}

	if !course.IsOfferable(now) {
		uc.logger.Warn("CreateBooking: course id=%d no longer offerable (status=%s, lateEnrollment=%t)",
			courseID, course.Status(now), course.AllowLateEnrollment)
		return nil, ErrCourseNotOfferable
	}

	return course, nil
}

// resolvePersonalSlot matches the draft's chosen start time against the
// course's configured slots. A start time outside the palette is a field
// error, same shape as the client-side map.
func resolvePersonalSlot(course *domain.Course, draft *domain.BookingDraft) (*domain.TimeSlot, error) {
	if draft.Course.BookingDate == nil {
		return nil, &ValidationError{Fields: validation.FieldErrors{
			"bookingDate": validation.MsgDateRequired,
		}}
	}
	for _, slot := range course.TimeSlots {
		if slot.StartTime == draft.Course.StartTime {
			return &slot, nil
		}
	}
	return nil, &ValidationError{Fields: validation.FieldErrors{
		"startTime": validation.MsgTimeRequired,
	}}
}

// newBookingNumber builds a human-readable identifier: FS-YYYYMMDD-XXXXXX.
func newBookingNumber(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))[:6]
	return fmt.Sprintf("%s-%s-%s", domain.BookingNumberPrefix, now.Format("20060102"), suffix)
}
