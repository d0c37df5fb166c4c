package cancel_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/focus-space/FS-BookingService/internal/api/handlers"
	"github.com/focus-space/FS-BookingService/internal/service/bookings"
)

const (
	msgNotFound         = "找不到預約紀錄"
	msgAlreadyCancelled = "此預約已取消"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/bookings/{bookingNumber}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	number := mux.Vars(r)["bookingNumber"]

	booking, err := h.service.Cancel(r.Context(), number)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("DELETE /bookings/{number} - Not found: number=%s", number)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrAlreadyCancelled):
			h.logger.Warn("DELETE /bookings/{number} - Already cancelled: number=%s", number)
			handlers.RespondConflict(w, msgAlreadyCancelled)

		default:
			h.logger.Error("DELETE /bookings/{number} - Failed: number=%s, error=%v", number, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /bookings/{number} - Booking cancelled: number=%s", number)
	handlers.RespondJSON(w, http.StatusOK, booking)
}
