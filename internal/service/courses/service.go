package courses

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/focus-space/FS-BookingService/internal/domain"
	courseRepo "github.com/focus-space/FS-BookingService/internal/infra/storage/course"
	"github.com/focus-space/FS-BookingService/pkg/ptr"
)

// Service lists the courses currently worth showing members: active in the
// admin sense and offerable per the term/late-enrollment rules.
type Service struct {
	courseRepo   CourseRepository
	timeProvider TimeProvider
	logger       Logger
}

func NewService(courseRepo CourseRepository, logger Logger) *Service {
	return &Service{
		courseRepo:   courseRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// List returns offerable courses, optionally filtered by category.
func (s *Service) List(ctx context.Context, category *string) (*CourseListResponse, error) {
	filter := courseRepo.Filter{OnlyActive: true}

	if category != nil {
		cat := domain.CourseCategory(*category)
		if !cat.IsValid() {
			s.logger.Warn("List: invalid category=%q", *category)
			return nil, fmt.Errorf("%w: %q", ErrInvalidCategory, *category)
		}
		filter.Category = ptr.Ptr(cat)
	}

	all, err := s.courseRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	now := s.timeProvider.Now()

	resp := &CourseListResponse{Courses: make([]CourseResponse, 0, len(all))}
	for _, course := range all {
		if !course.IsOfferable(now) {
			continue
		}
		resp.Courses = append(resp.Courses, toResponse(course, now))
	}

	s.logger.Info("List: %d of %d courses offerable", len(resp.Courses), len(all))
	return resp, nil
}

// GetByID returns a single offerable course.
func (s *Service) GetByID(ctx context.Context, id int64) (*CourseResponse, error) {
	course, err := s.courseRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, courseRepo.ErrCourseNotFound) {
			s.logger.Warn("GetByID: course id=%d not found", id)
			return nil, ErrCourseNotFound
		}
		s.logger.Error("GetByID: repository error for course id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	now := s.timeProvider.Now()
	if !course.IsActive || !course.IsOfferable(now) {
		s.logger.Warn("GetByID: course id=%d not offerable", id)
		return nil, ErrCourseNotFound
	}

	resp := toResponse(course, now)
	return &resp, nil
}

func toResponse(c *domain.Course, now time.Time) CourseResponse {
	return CourseResponse{
		ID:                  c.ID,
		Title:               c.Title,
		Description:         c.Description,
		Category:            c.Category,
		Instructor:          c.Instructor,
		StartDate:           c.StartDate.Format(domain.DateFormat),
		EndDate:             c.EndDate.Format(domain.DateFormat),
		Weekdays:            domain.FormatWeekdays(c.Weekdays),
		TimeSlots:           append([]domain.TimeSlot(nil), c.TimeSlots...),
		MaxParticipants:     c.EffectiveCapacity(),
		AllowLateEnrollment: c.AllowLateEnrollment,
		Price:               c.Price,
		Status:              c.Status(now),
	}
}
