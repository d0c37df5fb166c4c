package create_booking

import (
	"errors"
	"net/http"

	"github.com/focus-space/FS-BookingService/internal/api/handlers"
	createBooking "github.com/focus-space/FS-BookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "請求格式不正確"
	msgInvalidDateTime    = "日期或時間格式不正確，日期格式為 YYYY-MM-DD，時間格式為 HH:MM"
	msgValidationFailed   = "預約資料未通過驗證"
	msgCourseNotFound     = "找不到課程"
	msgCourseNotOfferable = "課程目前無法報名"
	msgSlotNotAvailable   = "此時段已被預約，請選擇其他時段"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		var ve *createBooking.ValidationError
		switch {
		case errors.As(err, &ve):
			h.logger.Warn("POST /bookings - Validation failed: %d fields", len(ve.Fields))
			handlers.RespondUnprocessable(w, msgValidationFailed, ve.Fields)

		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings - Slot not available: type=%s", req.BookingType)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createBooking.ErrCourseNotOfferable):
			h.logger.Warn("POST /bookings - Course not offerable")
			handlers.RespondConflict(w, msgCourseNotOfferable)

		case errors.Is(err, createBooking.ErrCourseNotFound):
			h.logger.Warn("POST /bookings - Course not found")
			handlers.RespondNotFound(w, msgCourseNotFound)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /bookings - Booking created: number=%s, type=%s",
		result.BookingNumber, req.BookingType)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
