package domain

import (
	"time"

	"github.com/focus-space/FS-BookingService/pkg/types"
)

// BookingDraft is the wizard's working state: a tagged union over the two
// booking paths. Exactly one of Course/Trial is non-nil once a type has been
// selected; the other path's fields do not exist rather than being ignored.
//
// The draft is JSON-serializable so wizard sessions can be parked in a store
// between steps.
type BookingDraft struct {
	Type BookingType `json:"bookingType,omitempty"`

	CustomerName  string  `json:"customerName"`
	CustomerEmail string  `json:"customerEmail"`
	CustomerPhone string  `json:"customerPhone"`
	CustomerNote  *string `json:"customerNote,omitempty"`

	ParticipantCount int     `json:"participantCount"`
	TotalPrice       float64 `json:"totalPrice"`

	Course *CourseSelection `json:"course,omitempty"`
	Trial  *TrialDetails    `json:"trial,omitempty"`

	// Populated only after successful submission.
	BookingNumber string `json:"bookingNumber,omitempty"`
	BookingID     int64  `json:"bookingId,omitempty"`
}

// CourseSelection carries the chosen course plus a denormalized snapshot of
// its recurrence, captured at selection time for display and confirmation.
type CourseSelection struct {
	CourseID       int64          `json:"courseId"`
	CourseName     string         `json:"courseName"`
	CourseCategory CourseCategory `json:"courseCategory"`

	// UnitPrice is the carried-forward invariant: TotalPrice is always
	// UnitPrice * ParticipantCount, never derived back from an aggregate.
	UnitPrice float64 `json:"unitPrice"`

	// Personal courses only: the concrete slot picked for the session.
	BookingDate *time.Time       `json:"bookingDate,omitempty"`
	StartTime   types.TimeString `json:"startTime,omitempty"`
	EndTime     types.TimeString `json:"endTime,omitempty"`

	// Recurrence snapshot.
	CourseStartDate     time.Time  `json:"courseStartDate"`
	CourseEndDate       time.Time  `json:"courseEndDate"`
	CourseWeekdays      []Weekday  `json:"courseWeekdays"`
	CourseTimeSlots     []TimeSlot `json:"courseTimeSlots"`
	AllowLateEnrollment bool       `json:"allowLateEnrollment"`
}

// TrialDetails holds the trial-path fields.
type TrialDetails struct {
	CustomerGender *string          `json:"customerGender,omitempty"`
	CustomerAge    *int             `json:"customerAge,omitempty"`
	HasExperience  *bool            `json:"hasExperience,omitempty"`
	FitnessGoals   *string          `json:"fitnessGoals,omitempty"`
	PreferredDate  *time.Time       `json:"preferredDate,omitempty"`
	PreferredTime  types.TimeString `json:"preferredTime,omitempty"`
}

// NewBookingDraft returns an empty draft: no type chosen, one participant.
func NewBookingDraft() *BookingDraft {
	return &BookingDraft{ParticipantCount: 1}
}

// SelectType switches the draft onto a path, initializing that path's field
// group and dropping the other. Trial bookings are always free.
func (d *BookingDraft) SelectType(t BookingType) {
	d.Type = t
	switch t {
	case TypeTrial:
		d.Course = nil
		if d.Trial == nil {
			d.Trial = &TrialDetails{}
		}
		d.TotalPrice = 0
	case TypeCourse:
		d.Trial = nil
		// The course selection itself is made on a later step.
	}
}

// SelectCourse snapshots the given course into the draft and recomputes the
// price from the course's per-participant price.
func (d *BookingDraft) SelectCourse(course *Course) {
	d.Course = &CourseSelection{
		CourseID:            course.ID,
		CourseName:          course.Title,
		CourseCategory:      course.Category,
		UnitPrice:           course.Price,
		CourseStartDate:     course.StartDate,
		CourseEndDate:       course.EndDate,
		CourseWeekdays:      SortWeekdays(course.Weekdays),
		CourseTimeSlots:     append([]TimeSlot(nil), course.TimeSlots...),
		AllowLateEnrollment: course.AllowLateEnrollment,
	}
	if course.Category == CategoryPersonal {
		d.ParticipantCount = PersonalCourseCapacity
	}
	d.recomputePrice()
}

// SetParticipantCount updates the participant count and recomputes the total
// from the unit price. The per-participant price is the invariant; the
// aggregate is always derived.
func (d *BookingDraft) SetParticipantCount(n int) {
	d.ParticipantCount = n
	d.recomputePrice()
}

func (d *BookingDraft) recomputePrice() {
	if d.Type != TypeCourse || d.Course == nil {
		d.TotalPrice = 0
		return
	}
	d.TotalPrice = d.Course.UnitPrice * float64(d.ParticipantCount)
}

// SelectSlot records the concrete slot for a personal-course session.
func (d *BookingDraft) SelectSlot(date time.Time, slot TimeSlot) {
	if d.Course == nil {
		return
	}
	d.Course.BookingDate = &date
	d.Course.StartTime = slot.StartTime
	d.Course.EndTime = slot.EndTime
}

// Completed reports whether the draft has been successfully submitted.
func (d *BookingDraft) Completed() bool {
	return d.BookingNumber != ""
}
