package courses

import (
	"github.com/focus-space/FS-BookingService/internal/domain"
)

// CourseResponse is the service-level view of an offerable course.
type CourseResponse struct {
	ID          int64
	Title       string
	Description string
	Category    domain.CourseCategory
	Instructor  *string

	StartDate string
	EndDate   string
	// Weekdays in display order: Monday first, Sunday last.
	Weekdays  []string
	TimeSlots []domain.TimeSlot

	MaxParticipants     int
	AllowLateEnrollment bool
	Price               float64
	Status              domain.CourseStatus
}

// CourseListResponse wraps a course listing.
type CourseListResponse struct {
	Courses []CourseResponse
}
