package wizard

import (
	"errors"
	"fmt"

	"github.com/focus-space/FS-BookingService/internal/validation"
)

var (
	// ErrValidationFailed is returned when the current step's rules block a
	// forward transition. The failing fields are on Wizard.Errors.
	ErrValidationFailed = errors.New("wizard: current step has validation errors")

	// ErrNotOnConfirmStep is returned when Confirm is invoked before the
	// confirmation step has been reached.
	ErrNotOnConfirmStep = errors.New("wizard: confirm is only available on the confirmation step")

	// ErrSessionCompleted is returned for any transition after a successful
	// confirm. The completed state is terminal.
	ErrSessionCompleted = errors.New("wizard: session already completed")

	// ErrConflict is returned when the chosen slot or course was taken between
	// local validation and submission. Recovery is returning to selection.
	ErrConflict = errors.New("wizard: selection is no longer available")
)

// ServerValidationError carries field-scoped errors returned by the
// submission service, structurally identical to the local validator's map so
// the UI renders both the same way.
type ServerValidationError struct {
	Fields validation.FieldErrors
}

func (e *ServerValidationError) Error() string {
	return fmt.Sprintf("wizard: submission rejected with %d field errors", len(e.Fields))
}
