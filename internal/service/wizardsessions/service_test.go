package wizardsessions

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/focus-space/FS-BookingService/internal/domain"
	courseRepo "github.com/focus-space/FS-BookingService/internal/infra/storage/course"
	"github.com/focus-space/FS-BookingService/internal/infra/sessionstore"
	createBooking "github.com/focus-space/FS-BookingService/internal/usecase/create_booking"
	"github.com/focus-space/FS-BookingService/internal/validation"
	"github.com/focus-space/FS-BookingService/internal/wizard"
	"github.com/focus-space/FS-BookingService/pkg/ptr"
)

type fakeCourseRepo struct {
	courses map[int64]*domain.Course
}

func (r *fakeCourseRepo) GetByID(_ context.Context, id int64) (*domain.Course, error) {
	course, ok := r.courses[id]
	if !ok {
		return nil, fmt.Errorf("%w: id = %d", courseRepo.ErrCourseNotFound, id)
	}
	return course, nil
}

type fakeCreateBooking struct {
	resp  *createBooking.Response
	err   error
	calls int
}

func (f *fakeCreateBooking) Execute(_ context.Context, _ *createBooking.Request) (*createBooking.Response, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func personalCourse() *domain.Course {
	return &domain.Course{
		ID:       7,
		Title:    "一對一教練",
		Category: domain.CategoryPersonal,
		Price:    1500,
		TimeSlots: []domain.TimeSlot{
			{StartTime: "10:00", EndTime: "11:00"},
		},
		IsActive: true,
	}
}

func newTestService(uc CreateBookingUseCase, courses ...*domain.Course) *Service {
	repo := &fakeCourseRepo{courses: map[int64]*domain.Course{}}
	for _, c := range courses {
		repo.courses[c.ID] = c
	}
	return NewService(sessionstore.NewMemoryStore(time.Minute), repo, uc, nopLogger{})
}

func TestService_StartAndGet(t *testing.T) {
	svc := newTestService(&fakeCreateBooking{})
	ctx := context.Background()

	state, err := svc.Start(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, state.SessionID)
	assert.Equal(t, 1, state.CurrentStep)
	assert.Equal(t, 1, state.TotalSteps, "only the type step before a type is chosen")

	got, err := svc.Get(ctx, state.SessionID)
	require.NoError(t, err)
	assert.Equal(t, state.SessionID, got.SessionID)

	_, err = svc.Get(ctx, "bogus")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestService_Apply_FullCoursePath(t *testing.T) {
	course := personalCourse()
	svc := newTestService(&fakeCreateBooking{}, course)
	ctx := context.Background()

	start, err := svc.Start(ctx)
	require.NoError(t, err)
	id := start.SessionID

	state, err := svc.Apply(ctx, id, &Event{Action: ActionSelectType, BookingType: ptr.Ptr("course")})
	require.NoError(t, err)
	assert.Equal(t, 5, state.TotalSteps)

	state, err = svc.Apply(ctx, id, &Event{Action: ActionNext})
	require.NoError(t, err)
	assert.Equal(t, validation.StepSelectCourse, state.StepID)

	state, err = svc.Apply(ctx, id, &Event{Action: ActionSelectCourse, CourseID: ptr.Ptr(course.ID)})
	require.NoError(t, err)
	assert.Equal(t, 1500.0, state.Draft.TotalPrice)

	state, err = svc.Apply(ctx, id, &Event{Action: ActionNext})
	require.NoError(t, err)
	assert.Equal(t, validation.StepSchedule, state.StepID)

	// End time resolves from the course snapshot when the client omits it.
	state, err = svc.Apply(ctx, id, &Event{
		Action:    ActionSelectSlot,
		Date:      ptr.Ptr("2026-09-14"),
		StartTime: ptr.Ptr("10:00"),
	})
	require.NoError(t, err)
	assert.Equal(t, "11:00", state.Draft.Course.EndTime.String())

	state, err = svc.Apply(ctx, id, &Event{Action: ActionNext})
	require.NoError(t, err)
	assert.Equal(t, validation.StepCustomerData, state.StepID)

	for field, value := range map[string]string{
		"customerName":  "王小明",
		"customerEmail": "ming@example.com",
		"customerPhone": "0912345678",
	} {
		_, err = svc.Apply(ctx, id, &Event{Action: ActionUpdateField, Field: ptr.Ptr(field), Value: ptr.Ptr(value)})
		require.NoError(t, err)
	}

	state, err = svc.Apply(ctx, id, &Event{Action: ActionSubmitForConfirmation})
	require.NoError(t, err)
	assert.Equal(t, validation.StepConfirm, state.StepID)
}

func TestService_Apply_ValidationFailureIsPersisted(t *testing.T) {
	svc := newTestService(&fakeCreateBooking{})
	ctx := context.Background()

	start, err := svc.Start(ctx)
	require.NoError(t, err)

	state, err := svc.Apply(ctx, start.SessionID, &Event{Action: ActionNext})
	assert.ErrorIs(t, err, wizard.ErrValidationFailed)
	assert.Equal(t, validation.MsgTypeRequired, state.Errors["bookingType"])

	// A reload shows the same errors: the failed state was saved.
	reloaded, err := svc.Get(ctx, start.SessionID)
	require.NoError(t, err)
	assert.Equal(t, validation.MsgTypeRequired, reloaded.Errors["bookingType"])
}

func TestService_Apply_InvalidEvents(t *testing.T) {
	svc := newTestService(&fakeCreateBooking{})
	ctx := context.Background()

	start, err := svc.Start(ctx)
	require.NoError(t, err)
	id := start.SessionID

	_, err = svc.Apply(ctx, id, &Event{Action: "dance"})
	assert.ErrorIs(t, err, ErrUnknownEvent)

	_, err = svc.Apply(ctx, id, &Event{Action: ActionSelectType})
	assert.ErrorIs(t, err, ErrInvalidEvent)

	_, err = svc.Apply(ctx, id, &Event{Action: ActionSelectType, BookingType: ptr.Ptr("banana")})
	assert.ErrorIs(t, err, ErrInvalidEvent)

	_, err = svc.Apply(ctx, id, &Event{Action: ActionSelectCourse, CourseID: ptr.Ptr(int64(404))})
	assert.ErrorIs(t, err, ErrInvalidEvent)

	_, err = svc.Apply(ctx, id, nil)
	assert.ErrorIs(t, err, ErrInvalidEvent)
}

func TestService_Apply_TrialFields(t *testing.T) {
	svc := newTestService(&fakeCreateBooking{})
	ctx := context.Background()

	start, err := svc.Start(ctx)
	require.NoError(t, err)
	id := start.SessionID

	_, err = svc.Apply(ctx, id, &Event{Action: ActionSelectType, BookingType: ptr.Ptr("trial")})
	require.NoError(t, err)

	_, err = svc.Apply(ctx, id, &Event{Action: ActionUpdateField, Field: ptr.Ptr("customerAge"), Value: ptr.Ptr("28")})
	require.NoError(t, err)

	_, err = svc.Apply(ctx, id, &Event{Action: ActionUpdateField, Field: ptr.Ptr("hasExperience"), Value: ptr.Ptr("true")})
	require.NoError(t, err)

	state, err := svc.Apply(ctx, id, &Event{Action: ActionUpdateField, Field: ptr.Ptr("preferredTime"), Value: ptr.Ptr("10:00")})
	require.NoError(t, err)

	require.NotNil(t, state.Draft.Trial)
	require.NotNil(t, state.Draft.Trial.CustomerAge)
	assert.Equal(t, 28, *state.Draft.Trial.CustomerAge)
	require.NotNil(t, state.Draft.Trial.HasExperience)
	assert.True(t, *state.Draft.Trial.HasExperience)
	assert.Equal(t, "10:00", state.Draft.Trial.PreferredTime.String())

	t.Run("trial fields rejected on course path", func(t *testing.T) {
		_, err = svc.Apply(ctx, id, &Event{Action: ActionSelectType, BookingType: ptr.Ptr("course")})
		require.NoError(t, err)

		_, err = svc.Apply(ctx, id, &Event{Action: ActionUpdateField, Field: ptr.Ptr("customerAge"), Value: ptr.Ptr("28")})
		assert.ErrorIs(t, err, ErrInvalidEvent)
	})
}

// reachConfirm drives a fresh trial session to the confirmation step.
func reachConfirm(t *testing.T, svc *Service) string {
	t.Helper()
	ctx := context.Background()
	start, err := svc.Start(ctx)
	require.NoError(t, err)
	id := start.SessionID

	_, err = svc.Apply(ctx, id, &Event{Action: ActionSelectType, BookingType: ptr.Ptr("trial")})
	require.NoError(t, err)
	_, err = svc.Apply(ctx, id, &Event{Action: ActionNext})
	require.NoError(t, err)
	for field, value := range map[string]string{
		"customerName":  "王小明",
		"customerEmail": "ming@example.com",
		"customerPhone": "0912345678",
	} {
		_, err = svc.Apply(ctx, id, &Event{Action: ActionUpdateField, Field: ptr.Ptr(field), Value: ptr.Ptr(value)})
		require.NoError(t, err)
	}
	_, err = svc.Apply(ctx, id, &Event{Action: ActionSubmitForConfirmation})
	require.NoError(t, err)
	return id
}

func TestService_Confirm(t *testing.T) {
	t.Run("success completes the session", func(t *testing.T) {
		uc := &fakeCreateBooking{resp: &createBooking.Response{
			BookingID:     42,
			BookingNumber: "FS-20260901-A1B2C3",
			Status:        "confirmed",
		}}
		svc := newTestService(uc)
		id := reachConfirm(t, svc)

		state, err := svc.Confirm(context.Background(), id)
		require.NoError(t, err)
		assert.True(t, state.Completed)
		assert.Equal(t, "FS-20260901-A1B2C3", state.Draft.BookingNumber)

		// The completed session is persisted and visible on reload.
		reloaded, err := svc.Get(context.Background(), id)
		require.NoError(t, err)
		assert.True(t, reloaded.Completed)

		_, err = svc.Confirm(context.Background(), id)
		assert.ErrorIs(t, err, wizard.ErrSessionCompleted)
		assert.Equal(t, 1, uc.calls)
	})

	t.Run("slot conflict surfaces as wizard conflict", func(t *testing.T) {
		svc := newTestService(&fakeCreateBooking{err: createBooking.ErrSlotNotAvailable})
		id := reachConfirm(t, svc)

		state, err := svc.Confirm(context.Background(), id)
		assert.ErrorIs(t, err, wizard.ErrConflict)
		assert.False(t, state.Completed, "session stays retryable")
	})

	t.Run("server field errors land in state", func(t *testing.T) {
		svc := newTestService(&fakeCreateBooking{err: &createBooking.ValidationError{
			Fields: validation.FieldErrors{"customerPhone": validation.MsgPhoneInvalid},
		}})
		id := reachConfirm(t, svc)

		state, err := svc.Confirm(context.Background(), id)
		require.Error(t, err)

		var sve *wizard.ServerValidationError
		require.ErrorAs(t, err, &sve)
		assert.Equal(t, validation.MsgPhoneInvalid, state.Errors["customerPhone"])
	})

	t.Run("unknown session", func(t *testing.T) {
		svc := newTestService(&fakeCreateBooking{})
		_, err := svc.Confirm(context.Background(), "missing")
		assert.ErrorIs(t, err, ErrSessionNotFound)
	})
}

func TestService_Apply_ConcurrentEventsAllLand(t *testing.T) {
	svc := newTestService(&fakeCreateBooking{})
	ctx := context.Background()

	start, err := svc.Start(ctx)
	require.NoError(t, err)
	id := start.SessionID

	_, err = svc.Apply(ctx, id, &Event{Action: ActionSelectType, BookingType: ptr.Ptr("trial")})
	require.NoError(t, err)

	fields := map[string]string{
		"customerName":  "王小明",
		"customerEmail": "ming@example.com",
		"customerPhone": "0912345678",
		"customerNote":  "想了解重訓課程",
	}

	var wg sync.WaitGroup
	for field, value := range fields {
		wg.Add(1)
		go func(field, value string) {
			defer wg.Done()
			_, applyErr := svc.Apply(ctx, id, &Event{Action: ActionUpdateField, Field: ptr.Ptr(field), Value: ptr.Ptr(value)})
			assert.NoError(t, applyErr)
		}(field, value)
	}
	wg.Wait()

	// Every concurrent edit survives; no save overwrites another.
	state, err := svc.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "王小明", state.Draft.CustomerName)
	assert.Equal(t, "ming@example.com", state.Draft.CustomerEmail)
	assert.Equal(t, "0912345678", state.Draft.CustomerPhone)
	require.NotNil(t, state.Draft.CustomerNote)
	assert.Equal(t, "想了解重訓課程", *state.Draft.CustomerNote)
}

func TestService_Confirm_ConcurrentCallsSubmitOnce(t *testing.T) {
	uc := &fakeCreateBooking{resp: &createBooking.Response{
		BookingID:     42,
		BookingNumber: "FS-20260901-A1B2C3",
		Status:        "confirmed",
	}}
	svc := newTestService(uc)
	id := reachConfirm(t, svc)

	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Confirm(context.Background(), id)
		}(i)
	}
	wg.Wait()

	var succeeded, rejected int
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, wizard.ErrSessionCompleted)
			rejected++
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, rejected)
	assert.Equal(t, 1, uc.calls, "the booking is submitted exactly once")
}
