package wizard

import (
	"context"

	"github.com/focus-space/FS-BookingService/internal/domain"
)

// SubmissionResult is what a successful submission hands back to the wizard.
type SubmissionResult struct {
	BookingID     int64
	BookingNumber string
}

// Submitter performs the authoritative server-side submission of a finalized
// draft. Implementations re-validate everything; the wizard's own checks are
// an optimization, not a trust boundary.
type Submitter interface {
	Submit(ctx context.Context, draft *domain.BookingDraft) (*SubmissionResult, error)
}
