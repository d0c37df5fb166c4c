package list_courses

import (
	"errors"
	"net/http"

	"github.com/focus-space/FS-BookingService/internal/api/handlers"
	"github.com/focus-space/FS-BookingService/internal/service/courses"
)

const msgInvalidCategory = "課程類別不正確，可用值為 personal、group、special"

type Handler struct {
	service CourseService
	logger  Logger
}

func NewHandler(service CourseService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/courses?category=personal|group|special
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var category *string
	if raw := r.URL.Query().Get("category"); raw != "" {
		category = &raw
	}

	result, err := h.service.List(r.Context(), category)
	if err != nil {
		switch {
		case errors.Is(err, courses.ErrInvalidCategory):
			h.logger.Warn("GET /courses - Invalid category: %q", r.URL.Query().Get("category"))
			handlers.RespondBadRequest(w, msgInvalidCategory)

		default:
			h.logger.Error("GET /courses - Failed to list courses: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /courses - Listed %d courses", len(result.Courses))
	handlers.RespondJSON(w, http.StatusOK, FromServiceResponse(result))
}
