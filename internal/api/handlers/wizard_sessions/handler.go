package wizard_sessions

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/focus-space/FS-BookingService/internal/api/handlers"
	"github.com/focus-space/FS-BookingService/internal/service/wizardsessions"
	"github.com/focus-space/FS-BookingService/internal/wizard"
)

const (
	msgInvalidRequestBody = "請求格式不正確"
	msgSessionNotFound    = "找不到預約流程，可能已逾時，請重新開始"
	msgInvalidEvent       = "無效的操作"
	msgSessionCompleted   = "此預約流程已完成"
	msgNotOnConfirmStep   = "請先完成所有步驟再送出預約"
	msgConflict           = "預約內容已失效，請返回上一步重新選擇"
)

// Handler serves the wizard session endpoints. All four operate on the same
// resource, so they share one package and one DTO set.
type Handler struct {
	service WizardSessionService
	logger  Logger
}

func NewHandler(service WizardSessionService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleStart POST /api/v1/wizard/sessions
func (h *Handler) HandleStart(w http.ResponseWriter, r *http.Request) {
	state, err := h.service.Start(r.Context())
	if err != nil {
		h.logger.Error("POST /wizard/sessions - Failed to start session: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /wizard/sessions - Session started: id=%s", state.SessionID)
	handlers.RespondJSON(w, http.StatusCreated, state)
}

// HandleGet GET /api/v1/wizard/sessions/{sessionId}
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["sessionId"]

	state, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.respondError(w, "GET /wizard/sessions/{id}", id, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, state)
}

// HandleEvent POST /api/v1/wizard/sessions/{sessionId}/events
func (h *Handler) HandleEvent(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["sessionId"]

	var event wizardsessions.Event
	if err := handlers.DecodeJSON(r, &event); err != nil {
		h.logger.Warn("POST /wizard/sessions/{id}/events - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	state, err := h.service.Apply(r.Context(), id, &event)
	if err != nil {
		// Validation failures still return the state: the field errors the
		// client must render travel inside it.
		if errors.Is(err, wizard.ErrValidationFailed) {
			h.logger.Warn("POST /wizard/sessions/{id}/events - Validation failed: id=%s, action=%s", id, event.Action)
			handlers.RespondJSON(w, http.StatusUnprocessableEntity, state)
			return
		}
		h.respondError(w, "POST /wizard/sessions/{id}/events", id, err)
		return
	}

	h.logger.Info("POST /wizard/sessions/{id}/events - Applied: id=%s, action=%s, step=%d",
		id, event.Action, state.CurrentStep)
	handlers.RespondJSON(w, http.StatusOK, state)
}

// HandleConfirm POST /api/v1/wizard/sessions/{sessionId}/confirm
func (h *Handler) HandleConfirm(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["sessionId"]

	state, err := h.service.Confirm(r.Context(), id)
	if err != nil {
		var sve *wizard.ServerValidationError
		switch {
		case errors.As(err, &sve):
			h.logger.Warn("POST /wizard/sessions/{id}/confirm - Server validation failed: id=%s", id)
			handlers.RespondJSON(w, http.StatusUnprocessableEntity, state)

		case errors.Is(err, wizard.ErrConflict):
			h.logger.Warn("POST /wizard/sessions/{id}/confirm - Conflict: id=%s, error=%v", id, err)
			handlers.RespondConflict(w, msgConflict)

		case errors.Is(err, wizard.ErrNotOnConfirmStep):
			h.logger.Warn("POST /wizard/sessions/{id}/confirm - Not on confirm step: id=%s", id)
			handlers.RespondError(w, http.StatusConflict, msgNotOnConfirmStep)

		default:
			h.respondError(w, "POST /wizard/sessions/{id}/confirm", id, err)
		}
		return
	}

	h.logger.Info("POST /wizard/sessions/{id}/confirm - Completed: id=%s, booking=%s",
		id, state.Draft.BookingNumber)
	handlers.RespondJSON(w, http.StatusOK, state)
}

// respondError maps the session service's shared error kinds.
func (h *Handler) respondError(w http.ResponseWriter, route, id string, err error) {
	switch {
	case errors.Is(err, wizardsessions.ErrSessionNotFound):
		h.logger.Warn("%s - Session not found: id=%s", route, id)
		handlers.RespondNotFound(w, msgSessionNotFound)

	case errors.Is(err, wizardsessions.ErrInvalidEvent),
		errors.Is(err, wizardsessions.ErrUnknownEvent):
		h.logger.Warn("%s - Invalid event: id=%s, error=%v", route, id, err)
		handlers.RespondBadRequest(w, msgInvalidEvent)

	case errors.Is(err, wizard.ErrSessionCompleted):
		h.logger.Warn("%s - Session already completed: id=%s", route, id)
		handlers.RespondError(w, http.StatusConflict, msgSessionCompleted)

	default:
		h.logger.Error("%s - Failed: id=%s, error=%v", route, id, err)
		handlers.RespondInternalError(w)
	}
}
