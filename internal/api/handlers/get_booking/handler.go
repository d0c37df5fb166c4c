package get_booking

import (
	"errors"
	"net/http"
	"regexp"

	"github.com/gorilla/mux"

	"github.com/focus-space/FS-BookingService/internal/api/handlers"
	"github.com/focus-space/FS-BookingService/internal/service/bookings"
)

const (
	msgInvalidNumber = "預約編號格式不正確"
	msgNotFound      = "找不到預約紀錄"
)

// FS-YYYYMMDD-XXXXXX
var bookingNumberPattern = regexp.MustCompile(`^FS-\d{8}-[0-9A-F]{6}$`)

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

// Handle GET /api/v1/bookings/{bookingNumber}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	number := mux.Vars(r)["bookingNumber"]
	if !bookingNumberPattern.MatchString(number) {
		h.logger.Warn("GET /bookings/{number} - Invalid booking number: %q", number)
		handlers.RespondBadRequest(w, msgInvalidNumber)
		return
	}

	booking, err := h.service.GetByNumber(r.Context(), number)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("GET /bookings/{number} - Not found: number=%s", number)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /bookings/{number} - Failed: number=%s, error=%v", number, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings/{number} - Booking retrieved: number=%s", number)
	handlers.RespondJSON(w, http.StatusOK, booking)
}
