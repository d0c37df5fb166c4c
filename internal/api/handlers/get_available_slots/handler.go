package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/focus-space/FS-BookingService/internal/api/handlers"
	"github.com/focus-space/FS-BookingService/internal/domain"
	getAvailableSlots "github.com/focus-space/FS-BookingService/internal/usecase/get_available_slots"
)

const (
	msgMissingDate         = "請提供查詢日期，格式為 YYYY-MM-DD"
	msgInvalidDate         = "日期格式不正確，格式為 YYYY-MM-DD"
	msgInvalidCourseID     = "課程 ID 格式不正確"
	msgCourseNotFound      = "找不到課程"
	msgPerDateNotAvailable = "此課程類別不提供單日時段查詢"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability?date=YYYY-MM-DD&courseId=N
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	dateStr := query.Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /availability - Missing date parameter")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		h.logger.Warn("GET /availability - Invalid date: %q", dateStr)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	req := &getAvailableSlots.Request{Date: date}
	if courseIDStr := query.Get("courseId"); courseIDStr != "" {
		courseID, err := strconv.ParseInt(courseIDStr, 10, 64)
		if err != nil {
			h.logger.Warn("GET /availability - Invalid course ID: %q", courseIDStr)
			handlers.RespondBadRequest(w, msgInvalidCourseID)
			return
		}
		req.CourseID = &courseID
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrCourseNotFound):
			h.logger.Warn("GET /availability - Course not found: course_id=%v", req.CourseID)
			handlers.RespondNotFound(w, msgCourseNotFound)

		case errors.Is(err, getAvailableSlots.ErrPerDateNotApplicable):
			h.logger.Warn("GET /availability - Per-date slots not applicable: course_id=%v", req.CourseID)
			handlers.RespondBadRequest(w, msgPerDateNotAvailable)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /availability - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /availability - Failed: date=%s, error=%v", dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /availability - %d slots for date=%s", len(result.Slots), dateStr)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
