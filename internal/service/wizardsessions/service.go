// Package wizardsessions drives server-held booking wizard sessions. Each
// session is one wizard value parked in a TTL store between user events;
// events load it, apply exactly one transition, and save it back. Nothing is
// ever reserved on behalf of a session; abandonment just lets the TTL reap it.
package wizardsessions

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/focus-space/FS-BookingService/internal/domain"
	courseRepo "github.com/focus-space/FS-BookingService/internal/infra/storage/course"
	"github.com/focus-space/FS-BookingService/internal/infra/sessionstore"
	"github.com/focus-space/FS-BookingService/internal/wizard"
	"github.com/focus-space/FS-BookingService/pkg/types"
)

// Service owns wizard sessions and the submission on confirm. Mutating
// operations on one session id are applied one at a time.
type Service struct {
	store      Store
	courseRepo CourseRepository
	submitter  wizard.Submitter
	locks      *sessionLocks
	logger     Logger
}

func NewService(store Store, courses CourseRepository, uc CreateBookingUseCase, logger Logger) *Service {
	return &Service{
		store:      store,
		courseRepo: courses,
		submitter:  newBookingSubmitter(uc),
		locks:      newSessionLocks(),
		logger:     logger,
	}
}

// Start creates a fresh session at step 1.
func (s *Service) Start(ctx context.Context) (*State, error) {
	id := uuid.New().String()
	w := wizard.New()

	if err := s.store.Save(ctx, id, w); err != nil {
		s.logger.Error("Start: failed to save session: %v", err)
		return nil, fmt.Errorf("%w: Start - save session: %v", ErrInternal, err)
	}

	s.logger.Info("Start: session %s created", id)
	return toState(id, w), nil
}

// Get returns the current renderer-facing state of a session.
func (s *Service) Get(ctx context.Context, id string) (*State, error) {
	w, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return toState(id, w), nil
}

// Apply loads the session, applies one event, and saves the result. When a
// step's validation blocks the transition the returned state carries the
// field errors and the error is wizard.ErrValidationFailed; the state is
// still saved so a reload shows the same errors.
func (s *Service) Apply(ctx context.Context, id string, event *Event) (*State, error) {
	release := s.locks.acquire(id)
	defer release()

	w, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	applyErr := s.applyEvent(ctx, w, event)
	if applyErr != nil &&
		!errors.Is(applyErr, wizard.ErrValidationFailed) &&
		!errors.Is(applyErr, wizard.ErrSessionCompleted) {
		return nil, applyErr
	}

	if err := s.store.Save(ctx, id, w); err != nil {
		s.logger.Error("Apply: failed to save session %s: %v", id, err)
		return nil, fmt.Errorf("%w: Apply - save session: %v", ErrInternal, err)
	}

	return toState(id, w), applyErr
}

// Confirm runs the final submission for the session. Conflict and validation
// failures leave the session intact on the confirmation step for retry.
// A second Confirm racing the first waits and then sees the completed
// session instead of submitting again.
func (s *Service) Confirm(ctx context.Context, id string) (*State, error) {
	release := s.locks.acquire(id)
	defer release()

	w, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	confirmErr := w.Confirm(ctx, s.submitter)

	// Persist the outcome either way: success marks the session terminal,
	// failure keeps the draft (and any server field errors) for retry.
	if err := s.store.Save(ctx, id, w); err != nil {
		s.logger.Error("Confirm: failed to save session %s: %v", id, err)
		return nil, fmt.Errorf("%w: Confirm - save session: %v", ErrInternal, err)
	}

	if confirmErr != nil {
		s.logger.Warn("Confirm: session %s failed: %v", id, confirmErr)
		return toState(id, w), confirmErr
	}

	s.logger.Info("Confirm: session %s completed, booking=%s", id, w.Draft.BookingNumber)
	return toState(id, w), nil
}

func (s *Service) load(ctx context.Context, id string) (*wizard.Wizard, error) {
	w, err := s.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sessionstore.ErrSessionNotFound) {
			return nil, ErrSessionNotFound
		}
		s.logger.Error("load: failed to get session %s: %v", id, err)
		return nil, fmt.Errorf("%w: load session: %v", ErrInternal, err)
	}
	return w, nil
}

func (s *Service) applyEvent(ctx context.Context, w *wizard.Wizard, event *Event) error {
	if event == nil {
		return fmt.Errorf("%w: event is required", ErrInvalidEvent)
	}

	switch event.Action {
	case ActionNext:
		return w.Next()

	case ActionPrevious:
		return w.Previous()

	case ActionSelectType:
		if event.BookingType == nil {
			return fmt.Errorf("%w: bookingType is required", ErrInvalidEvent)
		}
		t := domain.BookingType(*event.BookingType)
		if !t.IsValid() {
			return fmt.Errorf("%w: unknown booking type %q", ErrInvalidEvent, *event.BookingType)
		}
		return w.SelectType(t)

	case ActionSelectCourse:
		if event.CourseID == nil {
			return fmt.Errorf("%w: courseId is required", ErrInvalidEvent)
		}
		course, err := s.courseRepo.GetByID(ctx, *event.CourseID)
		if err != nil {
			if errors.Is(err, courseRepo.ErrCourseNotFound) {
				return fmt.Errorf("%w: course %d not found", ErrInvalidEvent, *event.CourseID)
			}
			return fmt.Errorf("%w: load course: %v", ErrInternal, err)
		}
		return w.SelectCourse(course)

	case ActionSelectSlot:
		date, slot, err := parseSlot(w, event)
		if err != nil {
			return err
		}
		return w.SelectSlot(date, slot)

	case ActionSetParticipants:
		if event.ParticipantCount == nil {
			return fmt.Errorf("%w: participantCount is required", ErrInvalidEvent)
		}
		return w.SetParticipantCount(*event.ParticipantCount)

	case ActionUpdateField:
		if event.Field == nil || event.Value == nil {
			return fmt.Errorf("%w: field and value are required", ErrInvalidEvent)
		}
		return updateField(w, *event.Field, *event.Value)

	case ActionSubmitForConfirmation:
		return w.SubmitForConfirmation()

	default:
		return fmt.Errorf("%w: %q", ErrUnknownEvent, event.Action)
	}
}

func parseSlot(w *wizard.Wizard, event *Event) (time.Time, domain.TimeSlot, error) {
	if event.Date == nil || event.StartTime == nil {
		return time.Time{}, domain.TimeSlot{}, fmt.Errorf("%w: date and startTime are required", ErrInvalidEvent)
	}

	date, err := time.Parse(domain.DateFormat, *event.Date)
	if err != nil {
		return time.Time{}, domain.TimeSlot{}, fmt.Errorf("%w: invalid date %q", ErrInvalidEvent, *event.Date)
	}

	start, err := types.NewTimeStringFromString(*event.StartTime)
	if err != nil {
		return time.Time{}, domain.TimeSlot{}, fmt.Errorf("%w: invalid startTime %q", ErrInvalidEvent, *event.StartTime)
	}

	slot := domain.TimeSlot{StartTime: start}
	if event.EndTime != nil {
		end, err := types.NewTimeStringFromString(*event.EndTime)
		if err != nil {
			return time.Time{}, domain.TimeSlot{}, fmt.Errorf("%w: invalid endTime %q", ErrInvalidEvent, *event.EndTime)
		}
		slot.EndTime = end
	} else if w.Draft.Course != nil {
		// Resolve the end from the snapshot so clients only send a start.
		for _, cs := range w.Draft.Course.CourseTimeSlots {
			if cs.StartTime == start {
				slot.EndTime = cs.EndTime
				break
			}
		}
	}

	return date, slot, nil
}

// updateField routes renderer field edits into the draft. Unknown fields are
// rejected rather than ignored.
func updateField(w *wizard.Wizard, field, value string) error {
	d := w.Draft

	switch field {
	case "customerName":
		d.CustomerName = value
	case "customerEmail":
		d.CustomerEmail = value
	case "customerPhone":
		d.CustomerPhone = value
	case "customerNote":
		note := value
		d.CustomerNote = &note

	case "customerGender", "fitnessGoals", "customerAge", "hasExperience", "preferredDate", "preferredTime":
		if d.Trial == nil {
			return fmt.Errorf("%w: %s only applies to trial bookings", ErrInvalidEvent, field)
		}
		return updateTrialField(d.Trial, field, value)

	default:
		return fmt.Errorf("%w: unknown field %q", ErrInvalidEvent, field)
	}
	return nil
}

func updateTrialField(t *domain.TrialDetails, field, value string) error {
	switch field {
	case "customerGender":
		t.CustomerGender = &value
	case "fitnessGoals":
		t.FitnessGoals = &value
	case "customerAge":
		age, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: customerAge must be a number", ErrInvalidEvent)
		}
		t.CustomerAge = &age
	case "hasExperience":
		has := strings.EqualFold(value, "true")
		t.HasExperience = &has
	case "preferredDate":
		date, err := time.Parse(domain.DateFormat, value)
		if err != nil {
			return fmt.Errorf("%w: invalid preferredDate %q", ErrInvalidEvent, value)
		}
		t.PreferredDate = &date
	case "preferredTime":
		ts, err := types.NewTimeStringFromString(value)
		if err != nil {
			return fmt.Errorf("%w: invalid preferredTime %q", ErrInvalidEvent, value)
		}
		t.PreferredTime = ts
	}
	return nil
}
