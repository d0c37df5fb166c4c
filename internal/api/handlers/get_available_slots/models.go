package get_available_slots

import (
	"github.com/focus-space/FS-BookingService/internal/domain"
	getAvailableSlots "github.com/focus-space/FS-BookingService/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model.
type AvailableSlotsResponse struct {
	Date     string     `json:"date"`
	CourseID *int64     `json:"courseId,omitempty"`
	Slots    []SlotView `json:"slots"`
}

type SlotView struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Available bool   `json:"available"`
}

// FromUseCaseResponse converts the use case response into the HTTP response.
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]SlotView, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, SlotView{
			StartTime: s.StartTime.String(),
			EndTime:   s.EndTime.String(),
			Available: s.Available,
		})
	}

	return &AvailableSlotsResponse{
		Date:     resp.Date.Format(domain.DateFormat),
		CourseID: resp.CourseID,
		Slots:    slots,
	}
}
