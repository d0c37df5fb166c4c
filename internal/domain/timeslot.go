package domain

import (
	"errors"
	"fmt"

	"github.com/focus-space/FS-BookingService/pkg/types"
)

// ErrInvalidTimeSlot is returned for malformed or inverted slots.
var ErrInvalidTimeSlot = errors.New("domain: time slot start must be before end")

// TimeSlot is a start/end pair within a single day, e.g. 09:00-10:00.
type TimeSlot struct {
	StartTime types.TimeString `json:"startTime"`
	EndTime   types.TimeString `json:"endTime"`
}

// Validate checks that both times are well-formed and start < end.
func (s TimeSlot) Validate() error {
	if err := s.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTimeSlot, err)
	}
	if err := s.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTimeSlot, err)
	}
	if !s.StartTime.IsBefore(s.EndTime) {
		return fmt.Errorf("%w: %s-%s", ErrInvalidTimeSlot, s.StartTime, s.EndTime)
	}
	return nil
}

// Equal reports whether two slots cover exactly the same interval.
func (s TimeSlot) Equal(other TimeSlot) bool {
	return s.StartTime == other.StartTime && s.EndTime == other.EndTime
}

// String formats the slot as "HH:MM-HH:MM".
func (s TimeSlot) String() string {
	return fmt.Sprintf("%s-%s", s.StartTime, s.EndTime)
}

// SlotAvailability is a slot together with its bookability on a concrete date.
type SlotAvailability struct {
	Slot      TimeSlot
	Available bool
}
