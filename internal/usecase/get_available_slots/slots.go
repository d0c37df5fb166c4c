package get_available_slots

import (
	"time"

	"github.com/focus-space/FS-BookingService/internal/domain"
)

// generatePalette expands the trial configuration into concrete slots:
// fixed-step intervals from opening to closing time. A slot that would end
// past closing time is dropped.
func generatePalette(p TrialPalette) ([]domain.TimeSlot, error) {
	var slots []domain.TimeSlot

	current := p.OpenTime
	for current.IsBefore(p.CloseTime) {
		end, err := current.AddMinutes(p.SlotMinutes)
		if err != nil {
			return nil, err
		}
		if end.IsAfter(p.CloseTime) {
			break
		}
		slots = append(slots, domain.TimeSlot{StartTime: current, EndTime: end})
		current = end
	}

	return slots, nil
}

// trialSlotTaken reports whether an active trial booking already prefers the
// slot's start time.
func trialSlotTaken(slot domain.TimeSlot, bookings []*domain.Booking) bool {
	for _, b := range bookings {
		if !b.IsActive() {
			continue
		}
		if b.PreferredTime == slot.StartTime {
			return true
		}
	}
	return false
}

// slotTaken reports whether an active booking holds the exact
// (date, startTime, endTime, courseID) tuple.
func slotTaken(courseID int64, req *Request, slot domain.TimeSlot, bookings []*domain.Booking) bool {
	for _, b := range bookings {
		if b.OccupiesSlot(courseID, req.Date, slot) {
			return true
		}
	}
	return false
}

// isDateInPast compares calendar days, ignoring time of day.
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
