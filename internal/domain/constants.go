package domain

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Trial booking slot palette defaults. Trial visits are offered as generic
// hourly slots independent of any course schedule.
const (
	DefaultTrialOpenTime    = "07:00"
	DefaultTrialCloseTime   = "23:00"
	DefaultTrialSlotMinutes = 60
)

// Business limits
const (
	MinParticipants       = 1
	MaxParticipants       = 50
	MaxCustomerNoteLength = 500

	// Personal courses are always one-on-one regardless of the configured capacity.
	PersonalCourseCapacity = 1

	BookingNumberPrefix = "FS"
)

// ActiveStatuses lists booking statuses that occupy a slot. Used when
// counting conflicts for availability.
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}
