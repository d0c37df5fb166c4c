// Package wizard implements the multi-step booking state machine. A Wizard
// owns one draft, validates per step, and only talks to the network through
// the Submitter on the final confirm. It is a plain value: JSON-serializable
// so sessions can be parked in a store between user events, and safe to drive
// from tests without any transport.
package wizard

import (
	"context"
	"errors"
	"time"

	"github.com/focus-space/FS-BookingService/internal/domain"
	"github.com/focus-space/FS-BookingService/internal/validation"
)

// Wizard is the state of one booking session.
type Wizard struct {
	// CurrentStep is 1-based; the legal range depends on the draft's type.
	CurrentStep int                    `json:"currentStep"`
	Draft       *domain.BookingDraft   `json:"draft"`
	Errors      validation.FieldErrors `json:"errors"`
	Done        bool                   `json:"completed"`
}

// New returns a wizard at step 1 with an empty draft and no type chosen.
func New() *Wizard {
	return &Wizard{
		CurrentStep: 1,
		Draft:       domain.NewBookingDraft(),
		Errors:      validation.FieldErrors{},
	}
}

// Steps returns the ordered step list for the draft's current type.
func (w *Wizard) Steps() []validation.StepID {
	return validation.StepsFor(w.Draft.Type)
}

// CurrentStepID resolves the current position to its step identifier.
func (w *Wizard) CurrentStepID() validation.StepID {
	steps := w.Steps()
	idx := w.CurrentStep - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= len(steps) {
		idx = len(steps) - 1
	}
	return steps[idx]
}

// finalStep is the 1-based position of the confirmation step.
func (w *Wizard) finalStep() int {
	return len(w.Steps())
}

// Next validates the current step and advances on success. On failure the
// position is unchanged and Errors holds the failing fields.
func (w *Wizard) Next() error {
	if w.Done {
		return ErrSessionCompleted
	}

	errs := validation.Validate(w.CurrentStepID(), w.Draft)
	if !errs.Empty() {
		w.Errors = errs
		return ErrValidationFailed
	}

	w.Errors = validation.FieldErrors{}
	if w.CurrentStep < w.finalStep() {
		w.CurrentStep++
	}
	return nil
}

// Previous steps back one position. It never validates and never clears
// draft data.
func (w *Wizard) Previous() error {
	if w.Done {
		return ErrSessionCompleted
	}
	if w.CurrentStep > 1 {
		w.CurrentStep--
	}
	w.Errors = validation.FieldErrors{}
	return nil
}

// SelectType chooses the booking path. Switching to a shorter path clamps
// the position to that path's final step.
func (w *Wizard) SelectType(t domain.BookingType) error {
	if w.Done {
		return ErrSessionCompleted
	}
	w.Draft.SelectType(t)
	if final := w.finalStep(); w.CurrentStep > final {
		w.CurrentStep = final
	}
	w.Errors = validation.FieldErrors{}
	return nil
}

// SelectCourse snapshots a course into the draft.
func (w *Wizard) SelectCourse(course *domain.Course) error {
	if w.Done {
		return ErrSessionCompleted
	}
	w.Draft.SelectCourse(course)
	return nil
}

// SelectSlot records the concrete personal-course slot.
func (w *Wizard) SelectSlot(date time.Time, slot domain.TimeSlot) error {
	if w.Done {
		return ErrSessionCompleted
	}
	w.Draft.SelectSlot(date, slot)
	return nil
}

// SetParticipantCount updates the headcount; the draft recomputes the total
// from the unit price.
func (w *Wizard) SetParticipantCount(n int) error {
	if w.Done {
		return ErrSessionCompleted
	}
	w.Draft.SetParticipantCount(n)
	return nil
}

// SubmitForConfirmation validates the current step and, on success, jumps
// directly to the confirmation step. Purely local: nothing is persisted until
// Confirm.
func (w *Wizard) SubmitForConfirmation() error {
	if w.Done {
		return ErrSessionCompleted
	}

	errs := validation.Validate(w.CurrentStepID(), w.Draft)
	if !errs.Empty() {
		w.Errors = errs
		return ErrValidationFailed
	}

	w.Errors = validation.FieldErrors{}
	w.CurrentStep = w.finalStep()
	return nil
}

// Confirm submits the draft through the given Submitter. Only callable from
// the confirmation step. On success the booking number and id are merged into
// the draft and the session becomes terminal. Every failure leaves the wizard
// on the confirmation step with the draft intact, so the user can retry or go
// back and amend data.
func (w *Wizard) Confirm(ctx context.Context, submitter Submitter) error {
	if w.Done {
		return ErrSessionCompleted
	}
	if w.CurrentStep != w.finalStep() || w.CurrentStepID() != validation.StepConfirm {
		return ErrNotOnConfirmStep
	}

	result, err := submitter.Submit(ctx, w.Draft)
	if err != nil {
		var sve *ServerValidationError
		if errors.As(err, &sve) {
			w.Errors = sve.Fields
		}
		return err
	}

	w.Draft.BookingID = result.BookingID
	w.Draft.BookingNumber = result.BookingNumber
	w.Errors = validation.FieldErrors{}
	w.Done = true
	return nil
}
