package list_courses

import (
	"github.com/focus-space/FS-BookingService/internal/service/courses"
)

// CourseResponse HTTP response model.
type CourseResponse struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Instructor  *string `json:"instructor,omitempty"`

	StartDate string         `json:"startDate"`
	EndDate   string         `json:"endDate"`
	Weekdays  []string       `json:"weekdays"`
	TimeSlots []TimeSlotView `json:"timeSlots"`

	MaxParticipants     int     `json:"maxParticipants"`
	AllowLateEnrollment bool    `json:"allowLateEnrollment"`
	Price               float64 `json:"price"`
	Status              string  `json:"status"`
}

type TimeSlotView struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

type CourseListResponse struct {
	Courses []CourseResponse `json:"courses"`
}

// FromServiceResponse converts the service listing into the HTTP response.
func FromServiceResponse(resp *courses.CourseListResponse) *CourseListResponse {
	out := &CourseListResponse{Courses: make([]CourseResponse, 0, len(resp.Courses))}
	for i := range resp.Courses {
		out.Courses = append(out.Courses, FromServiceCourse(&resp.Courses[i]))
	}
	return out
}

// FromServiceCourse converts one service course view.
func FromServiceCourse(c *courses.CourseResponse) CourseResponse {
	slots := make([]TimeSlotView, 0, len(c.TimeSlots))
	for _, s := range c.TimeSlots {
		slots = append(slots, TimeSlotView{
			StartTime: s.StartTime.String(),
			EndTime:   s.EndTime.String(),
		})
	}

	return CourseResponse{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		Category:    string(c.Category),
		Instructor:  c.Instructor,

		StartDate: c.StartDate,
		EndDate:   c.EndDate,
		Weekdays:  c.Weekdays,
		TimeSlots: slots,

		MaxParticipants:     c.MaxParticipants,
		AllowLateEnrollment: c.AllowLateEnrollment,
		Price:               c.Price,
		Status:              string(c.Status),
	}
}
