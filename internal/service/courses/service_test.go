package courses

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/focus-space/FS-BookingService/internal/domain"
	courseRepo "github.com/focus-space/FS-BookingService/internal/infra/storage/course"
)

type fakeCourseRepo struct {
	courses    []*domain.Course
	lastFilter courseRepo.Filter
}

func (r *fakeCourseRepo) List(_ context.Context, filter courseRepo.Filter) ([]*domain.Course, error) {
	r.lastFilter = filter
	var out []*domain.Course
	for _, c := range r.courses {
		if filter.OnlyActive && !c.IsActive {
			continue
		}
		if filter.Category != nil && c.Category != *filter.Category {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (r *fakeCourseRepo) GetByID(_ context.Context, id int64) (*domain.Course, error) {
	for _, c := range r.courses {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, fmt.Errorf("%w: id = %d", courseRepo.ErrCourseNotFound, id)
}

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time { return c.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestService(now time.Time, courses ...*domain.Course) (*Service, *fakeCourseRepo) {
	repo := &fakeCourseRepo{courses: courses}
	svc := NewService(repo, nopLogger{})
	svc.timeProvider = &fakeClock{now: now}
	return svc, repo
}

func testCourses() []*domain.Course {
	return []*domain.Course{
		{
			ID: 1, Title: "一對一教練", Category: domain.CategoryPersonal,
			Price: 1500, IsActive: true, MaxParticipants: 5,
			StartDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
			Weekdays:  []domain.Weekday{domain.Monday},
			TimeSlots: []domain.TimeSlot{{StartTime: "10:00", EndTime: "11:00"}},
		},
		{
			ID: 2, Title: "團體有氧", Category: domain.CategoryGroup,
			Price: 3600, IsActive: true,
			StartDate: time.Date(2026, 10, 5, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2026, 11, 27, 0, 0, 0, 0, time.UTC),
			Weekdays:  []domain.Weekday{domain.Wednesday, domain.Monday},
			TimeSlots: []domain.TimeSlot{{StartTime: "19:00", EndTime: "20:00"}},
		},
		{
			ID: 3, Title: "已結束的課程", Category: domain.CategoryGroup,
			Price: 2000, IsActive: true,
			StartDate: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2026, 4, 24, 0, 0, 0, 0, time.UTC),
			Weekdays:  []domain.Weekday{domain.Friday},
			TimeSlots: []domain.TimeSlot{{StartTime: "18:00", EndTime: "19:00"}},
		},
	}
}

func TestList(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	svc, repo := newTestService(now, testCourses()...)

	t.Run("ended courses filtered out", func(t *testing.T) {
		resp, err := svc.List(context.Background(), nil)
		require.NoError(t, err)
		require.Len(t, resp.Courses, 2)
		assert.Equal(t, int64(1), resp.Courses[0].ID)
		assert.Equal(t, int64(2), resp.Courses[1].ID)
		assert.True(t, repo.lastFilter.OnlyActive)
	})

	t.Run("category filter", func(t *testing.T) {
		cat := "group"
		resp, err := svc.List(context.Background(), &cat)
		require.NoError(t, err)
		require.Len(t, resp.Courses, 1)
		assert.Equal(t, int64(2), resp.Courses[0].ID)
	})

	t.Run("invalid category", func(t *testing.T) {
		cat := "banana"
		_, err := svc.List(context.Background(), &cat)
		assert.ErrorIs(t, err, ErrInvalidCategory)
	})

	t.Run("weekdays in display order", func(t *testing.T) {
		cat := "group"
		resp, err := svc.List(context.Background(), &cat)
		require.NoError(t, err)
		assert.Equal(t, []string{"週一", "週三"}, resp.Courses[0].Weekdays)
	})

	t.Run("personal capacity capped at one", func(t *testing.T) {
		cat := "personal"
		resp, err := svc.List(context.Background(), &cat)
		require.NoError(t, err)
		assert.Equal(t, 1, resp.Courses[0].MaxParticipants)
	})
}

func TestGetByID(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	svc, _ := newTestService(now, testCourses()...)

	t.Run("offerable course", func(t *testing.T) {
		resp, err := svc.GetByID(context.Background(), 2)
		require.NoError(t, err)
		assert.Equal(t, "團體有氧", resp.Title)
		assert.Equal(t, domain.CourseUpcoming, resp.Status)
	})

	t.Run("ended course hidden", func(t *testing.T) {
		_, err := svc.GetByID(context.Background(), 3)
		assert.ErrorIs(t, err, ErrCourseNotFound)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := svc.GetByID(context.Background(), 404)
		assert.ErrorIs(t, err, ErrCourseNotFound)
	})
}
