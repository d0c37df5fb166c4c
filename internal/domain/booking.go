package domain

import (
	"time"

	"github.com/focus-space/FS-BookingService/pkg/types"
)

// BookingType selects which of the two booking paths a draft or booking follows.
type BookingType string

const (
	TypeTrial  BookingType = "trial"
	TypeCourse BookingType = "course"
)

// IsValid reports whether the value is a known booking type.
func (t BookingType) IsValid() bool {
	return t == TypeTrial || t == TypeCourse
}

// BookingStatus represents the lifecycle status of a persisted booking.
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
)

// Booking represents a persisted booking in the system.
type Booking struct {
	ID            int64
	BookingNumber string
	Type          BookingType
	Status        BookingStatus

	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	CustomerNote  *string

	ParticipantCount int
	TotalPrice       float64

	// Course-path fields. CourseID is nil for trial bookings. The course data
	// is denormalized for history: editing a course later must not rewrite
	// existing bookings.
	CourseID       *int64
	CourseName     *string
	CourseCategory *CourseCategory
	BookingDate    *time.Time       // personal courses only: the chosen date
	StartTime      types.TimeString // personal courses only
	EndTime        types.TimeString // personal courses only

	// Trial-path fields.
	CustomerGender *string
	CustomerAge    *int
	HasExperience  *bool
	FitnessGoals   *string
	PreferredDate  *time.Time
	PreferredTime  types.TimeString

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive reports whether the booking occupies its slot.
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled
}

// OccupiesSlot reports whether the booking holds the exact
// (date, startTime, endTime, courseID) tuple.
func (b *Booking) OccupiesSlot(courseID int64, date time.Time, slot TimeSlot) bool {
	if !b.IsActive() || b.CourseID == nil || *b.CourseID != courseID {
		return false
	}
	if b.BookingDate == nil || !sameDay(*b.BookingDate, date) {
		return false
	}
	return b.StartTime == slot.StartTime && b.EndTime == slot.EndTime
}

func sameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
