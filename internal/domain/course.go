package domain

import (
	"errors"
	"fmt"
	"time"
)

// CourseCategory classifies how a course is scheduled and booked.
type CourseCategory string

const (
	// CategoryPersonal is one-on-one training booked ad hoc against open slots.
	CategoryPersonal CourseCategory = "personal"
	// CategoryGroup is a recurring group class enrolled as a whole term.
	CategoryGroup CourseCategory = "group"
	// CategorySpecial is a special event/workshop, scheduled like a group course.
	CategorySpecial CourseCategory = "special"
)

// IsValid reports whether the category is one of the known values.
func (c CourseCategory) IsValid() bool {
	return c == CategoryPersonal || c == CategoryGroup || c == CategorySpecial
}

// CourseStatus describes where a course term sits relative to a reference date.
type CourseStatus string

const (
	CourseUpcoming CourseStatus = "upcoming"
	CourseActive   CourseStatus = "active"
	CourseEnded    CourseStatus = "ended"
)

var (
	ErrInvalidCourseDates = errors.New("domain: course start date must be before end date")
	ErrNoWeekdays         = errors.New("domain: course must recur on at least one weekday")
	ErrNoTimeSlots        = errors.New("domain: course must have at least one time slot")
	ErrInvalidCategory    = errors.New("domain: invalid course category")
)

// Course is a schedulable offering: a recurrence rule (weekdays x time slots
// over a date range) plus capacity, pricing and enrollment policy.
type Course struct {
	ID          int64
	Title       string
	Description string
	Category    CourseCategory
	Instructor  *string

	StartDate time.Time
	EndDate   time.Time
	Weekdays  []Weekday
	TimeSlots []TimeSlot

	MaxParticipants     int
	AllowLateEnrollment bool

	// Price per participant. For group/special courses this covers the whole
	// term; for personal courses it is per session.
	Price float64

	// IsActive suppresses offering without deleting booking history.
	IsActive bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks the course invariants.
func (c *Course) Validate() error {
	if !c.Category.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidCategory, c.Category)
	}
	if !c.StartDate.Before(c.EndDate) {
		return ErrInvalidCourseDates
	}
	if len(c.Weekdays) == 0 {
		return ErrNoWeekdays
	}
	if len(c.TimeSlots) == 0 {
		return ErrNoTimeSlots
	}
	for _, d := range c.Weekdays {
		if !d.IsValid() {
			return fmt.Errorf("domain: invalid weekday %d", d)
		}
	}
	for _, s := range c.TimeSlots {
		if err := s.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// EffectiveCapacity returns the bookable capacity per slot. Personal courses
// cap at one participant regardless of the configured maximum.
func (c *Course) EffectiveCapacity() int {
	if c.Category == CategoryPersonal {
		return PersonalCourseCapacity
	}
	return c.MaxParticipants
}

// endOfTerm is the last instant of the course's final calendar day. EndDate is
// stored at midnight; comparing against it directly would make a course
// disappear on its last day.
func (c *Course) endOfTerm() time.Time {
	y, m, d := c.EndDate.Date()
	return time.Date(y, m, d, 23, 59, 59, 999_000_000, c.EndDate.Location())
}

// Status returns upcoming/active/ended for the given reference time,
// end-of-day inclusive for the end date.
func (c *Course) Status(now time.Time) CourseStatus {
	switch {
	case now.Before(c.StartDate):
		return CourseUpcoming
	case now.After(c.endOfTerm()):
		return CourseEnded
	default:
		return CourseActive
	}
}

// IsOfferable reports whether the course may currently be presented as
// bookable:
//   - personal courses are always offerable (booked ad hoc against open slots)
//   - upcoming courses are offerable
//   - active courses are offerable only when late enrollment is allowed
//   - ended courses are never offerable
func (c *Course) IsOfferable(now time.Time) bool {
	if c.Category == CategoryPersonal {
		return true
	}
	switch c.Status(now) {
	case CourseUpcoming:
		return true
	case CourseActive:
		return c.AllowLateEnrollment
	default:
		return false
	}
}

// HasTimeSlot reports whether the given slot is one of the course's
// configured slots.
func (c *Course) HasTimeSlot(slot TimeSlot) bool {
	for _, s := range c.TimeSlots {
		if s.Equal(slot) {
			return true
		}
	}
	return false
}

// RecursOn reports whether the course recurs on the weekday of the given date.
func (c *Course) RecursOn(date time.Time) bool {
	day := Weekday(int(date.Weekday()))
	for _, d := range c.Weekdays {
		if d == day {
			return true
		}
	}
	return false
}
