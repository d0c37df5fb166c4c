package get_available_slots

import (
	"time"

	"github.com/focus-space/FS-BookingService/pkg/types"
)

// Request asks for the bookable slots on a date. A nil CourseID means a trial
// booking: the generic palette applies instead of any course schedule.
type Request struct {
	CourseID *int64
	Date     time.Time
}

// Response lists the slots with their availability. An empty list is a valid
// answer (nothing configured, or the date already passed), not an error.
type Response struct {
	Date     time.Time
	CourseID *int64
	Slots    []Slot
}

// Slot is one bookable interval on the requested date.
type Slot struct {
	StartTime types.TimeString
	EndTime   types.TimeString
	Available bool
}

// TrialPalette describes the generic hourly slot grid offered for trial
// visits. Comes from configuration, not from any course.
type TrialPalette struct {
	OpenTime    types.TimeString
	CloseTime   types.TimeString
	SlotMinutes int
}
