package wizardsessions

import (
	"github.com/focus-space/FS-BookingService/internal/domain"
	"github.com/focus-space/FS-BookingService/internal/validation"
	"github.com/focus-space/FS-BookingService/internal/wizard"
)

// Event action names.
const (
	ActionNext                  = "next"
	ActionPrevious              = "previous"
	ActionSelectType            = "select_type"
	ActionSelectCourse          = "select_course"
	ActionSelectSlot            = "select_slot"
	ActionSetParticipants       = "set_participants"
	ActionUpdateField           = "update_field"
	ActionSubmitForConfirmation = "submit_for_confirmation"
)

// Event is one user interaction applied to a wizard session. Only the
// payload fields relevant to the action are set.
type Event struct {
	Action string `json:"action"`

	BookingType      *string `json:"bookingType,omitempty"`
	CourseID         *int64  `json:"courseId,omitempty"`
	Date             *string `json:"date,omitempty"`             // YYYY-MM-DD
	StartTime        *string `json:"startTime,omitempty"`        // HH:MM
	EndTime          *string `json:"endTime,omitempty"`          // HH:MM
	ParticipantCount *int    `json:"participantCount,omitempty"`
	Field            *string `json:"field,omitempty"`
	Value            *string `json:"value,omitempty"`
}

// State is the renderer-facing view of a session: everything the
// presentation layer needs to draw the current step.
type State struct {
	SessionID   string                 `json:"sessionId"`
	CurrentStep int                    `json:"currentStep"`
	StepID      validation.StepID      `json:"stepId"`
	TotalSteps  int                    `json:"totalSteps"`
	BookingType domain.BookingType     `json:"bookingType,omitempty"`
	Draft       *domain.BookingDraft   `json:"draft"`
	Errors      validation.FieldErrors `json:"errors"`
	Completed   bool                   `json:"completed"`
}

func toState(id string, w *wizard.Wizard) *State {
	return &State{
		SessionID:   id,
		CurrentStep: w.CurrentStep,
		StepID:      w.CurrentStepID(),
		TotalSteps:  len(w.Steps()),
		BookingType: w.Draft.Type,
		Draft:       w.Draft,
		Errors:      w.Errors,
		Completed:   w.Done,
	}
}
