package create_booking

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
	"github.com/focus-space/FS-BookingService/internal/validation"
)

type fakeBookingRepo struct {
	mu      sync.Mutex
	nextID  int64
	created []*domain.Booking
}

func (r *fakeBookingRepo) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	b := *booking
	b.ID = r.nextID
	b.CreatedAt = time.Now()
	r.created = append(r.created, &b)
	return &b, nil
}

func (r *fakeBookingRepo) CountSlotOccupancy(_ context.Context, courseID int64, date time.Time, slot domain.TimeSlot) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, b := range r.created {
		if b.OccupiesSlot(courseID, date, slot) {
			count++
		}
	}
	return count, nil
}

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

// fakeTxManager serializes the whole transaction with one mutex, matching
// what serializable isolation guarantees for the conflict check.
type fakeTxManager struct {
	mu sync.Mutex
}

func (m *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx)
}

type fakeNotifier struct {
	mu       sync.Mutex
	notified []*domain.Booking
}

func (n *fakeNotifier) BookingConfirmed(_ context.Context, booking *domain.Booking) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notified = append(n.notified, booking)
}

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time { return c.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestUseCase(bookingRepo *fakeBookingRepo, courses map[int64]*domain.Course, now time.Time) (*UseCase, *fakeNotifier) {
	notifier := &fakeNotifier{}
	uc := NewUseCase(bookingRepo, &fakeCourseRepo{courses: courses}, &fakeTxManager{}, notifier, nopLogger{})
	uc.timeProvider = &fakeClock{now: now}
	return uc, notifier
}

func personalCourse() *domain.Course {
	return &domain.Course{
		ID:        7,
		Title:     "一對一教練",
		Category:  domain.CategoryPersonal,
		Price:     1500,
		StartDate: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
		Weekdays:  []domain.Weekday{domain.Monday, domain.Wednesday},
		TimeSlots: []domain.TimeSlot{
			{StartTime: "10:00", EndTime: "11:00"},
			{StartTime: "11:00", EndTime: "12:00"},
		},
		MaxParticipants: 1,
		IsActive:        true,
	}
}

func trialDraft() *domain.BookingDraft {
	d := domain.NewBookingDraft()
	d.SelectType(domain.TypeTrial)
	d.CustomerName = "王小明"
	d.CustomerEmail = "ming@example.com"
	d.CustomerPhone = "0912345678"
	return d
}

func personalDraft(course *domain.Course, date time.Time) *domain.BookingDraft {
	d := domain.NewBookingDraft()
	d.SelectType(domain.TypeCourse)
	d.SelectCourse(course)
	d.SelectSlot(date, course.TimeSlots[0])
	d.CustomerName = "李小華"
	d.CustomerEmail = "hua@example.com"
	d.CustomerPhone = "0987654321"
	return d
}

func TestExecute_Trial(t *testing.T) {
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	repo := &fakeBookingRepo{}
	uc, _ := newTestUseCase(repo, nil, now)

	draft := trialDraft()
	draft.TotalPrice = 9999 // client-sent price is ignored

	resp, err := uc.Execute(context.Background(), &Request{Draft: draft})
	require.NoError(t, err)

	assert.Zero(t, resp.TotalPrice, "trial visits are always free")
	assert.Equal(t, "confirmed", resp.Status)
	assert.Regexp(t, `^FS-20260901-[0-9A-F]{6}$`, resp.BookingNumber)

	require.Len(t, repo.created, 1)
	assert.Equal(t, 1, repo.created[0].ParticipantCount, "trial bookings are single-person")
}

func TestExecute_ValidationRejected(t *testing.T) {
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	repo := &fakeBookingRepo{}
	uc, _ := newTestUseCase(repo, nil, now)

	draft := trialDraft()
	draft.CustomerPhone = "12345678"

	_, err := uc.Execute(context.Background(), &Request{Draft: draft})

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, validation.MsgPhoneInvalid, ve.Fields["customerPhone"])
	assert.Empty(t, repo.created, "nothing persisted on validation failure")
}

func TestExecute_PersonalCourse(t *testing.T) {
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	course := personalCourse()
	repo := &fakeBookingRepo{}
	uc, _ := newTestUseCase(repo, map[int64]*domain.Course{course.ID: course}, now)

	date := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)
	resp, err := uc.Execute(context.Background(), &Request{Draft: personalDraft(course, date)})
	require.NoError(t, err)

	assert.Equal(t, 1500.0, resp.TotalPrice, "price comes from the course record")

	require.Len(t, repo.created, 1)
	created := repo.created[0]
	assert.Equal(t, domain.PersonalCourseCapacity, created.ParticipantCount)
	require.NotNil(t, created.BookingDate)
	assert.True(t, created.BookingDate.Equal(date))
}

func TestExecute_SlotRace(t *testing.T) {
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	course := personalCourse()
	repo := &fakeBookingRepo{}
	uc, _ := newTestUseCase(repo, map[int64]*domain.Course{course.ID: course}, now)

	date := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)

	_, firstErr := uc.Execute(context.Background(), &Request{Draft: personalDraft(course, date)})
	_, secondErr := uc.Execute(context.Background(), &Request{Draft: personalDraft(course, date)})

	require.NoError(t, firstErr)
	assert.ErrorIs(t, secondErr, ErrSlotNotAvailable,
		"the write-time re-check catches the second session")
	assert.Len(t, repo.created, 1, "exactly one booking holds the slot")
}

func TestExecute_OtherSlotStillFree(t *testing.T) {
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	course := personalCourse()
	repo := &fakeBookingRepo{}
	uc, _ := newTestUseCase(repo, map[int64]*domain.Course{course.ID: course}, now)

	date := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)

	_, err := uc.Execute(context.Background(), &Request{Draft: personalDraft(course, date)})
	require.NoError(t, err)

	second := personalDraft(course, date)
	second.SelectSlot(date, course.TimeSlots[1])
	_, err = uc.Execute(context.Background(), &Request{Draft: second})
	require.NoError(t, err)

	assert.Len(t, repo.created, 2)
}

func TestExecute_UnknownStartTime(t *testing.T) {
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	course := personalCourse()
	uc, _ := newTestUseCase(&fakeBookingRepo{}, map[int64]*domain.Course{course.ID: course}, now)

	date := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)
	draft := personalDraft(course, date)
	draft.SelectSlot(date, domain.TimeSlot{StartTime: "06:00", EndTime: "07:00"})

	_, err := uc.Execute(context.Background(), &Request{Draft: draft})

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "startTime")
}

func TestExecute_CourseNotOfferable(t *testing.T) {
	course := &domain.Course{
		ID:        3,
		Title:     "團體有氧",
		Category:  domain.CategoryGroup,
		Price:     3600,
		StartDate: time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 10, 30, 0, 0, 0, 0, time.UTC),
		Weekdays:  []domain.Weekday{domain.Monday},
		TimeSlots: []domain.TimeSlot{{StartTime: "19:00", EndTime: "20:00"}},
		IsActive:  true,
	}

	draft := func() *domain.BookingDraft {
		d := domain.NewBookingDraft()
		d.SelectType(domain.TypeCourse)
		d.SelectCourse(course)
		d.CustomerName = "王小明"
		d.CustomerEmail = "ming@example.com"
		d.CustomerPhone = "0912345678"
		return d
	}

	t.Run("active term without late enrollment", func(t *testing.T) {
		midTerm := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
		uc, _ := newTestUseCase(&fakeBookingRepo{}, map[int64]*domain.Course{course.ID: course}, midTerm)

		_, err := uc.Execute(context.Background(), &Request{Draft: draft()})
		assert.ErrorIs(t, err, ErrCourseNotOfferable)
	})

	t.Run("upcoming term is bookable", func(t *testing.T) {
		beforeTerm := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
		uc, _ := newTestUseCase(&fakeBookingRepo{}, map[int64]*domain.Course{course.ID: course}, beforeTerm)

		resp, err := uc.Execute(context.Background(), &Request{Draft: draft()})
		require.NoError(t, err)
		assert.Equal(t, 3600.0, resp.TotalPrice)
	})

	t.Run("inactive course reported as not found", func(t *testing.T) {
		inactive := *course
		inactive.IsActive = false
		beforeTerm := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
		uc, _ := newTestUseCase(&fakeBookingRepo{}, map[int64]*domain.Course{course.ID: &inactive}, beforeTerm)

		_, err := uc.Execute(context.Background(), &Request{Draft: draft()})
		assert.ErrorIs(t, err, ErrCourseNotFound)
	})
}

func TestExecute_MissingBookingDate(t *testing.T) {
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	course := personalCourse()
	uc, _ := newTestUseCase(&fakeBookingRepo{}, map[int64]*domain.Course{course.ID: course}, now)

	d := domain.NewBookingDraft()
	d.SelectType(domain.TypeCourse)
	d.SelectCourse(course)
	d.Course.StartTime = course.TimeSlots[0].StartTime // time without a date
	d.CustomerName = "王小明"
	d.CustomerEmail = "ming@example.com"
	d.CustomerPhone = "0912345678"

	_, err := uc.Execute(context.Background(), &Request{Draft: d})

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "bookingDate")
}

func TestExecute_NilDraft(t *testing.T) {
	uc, _ := newTestUseCase(&fakeBookingRepo{}, nil, time.Now())

	_, err := uc.Execute(context.Background(), nil)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
