package create_booking

import (
	"time"

	"github.com/focus-space/FS-BookingService/internal/domain"
)

// Request wraps the finalized draft submitted for persistence.
type Request struct {
	Draft *domain.BookingDraft
}

// Response describes the persisted booking.
type Response struct {
	BookingID     int64
	BookingNumber string
	Status        string
	TotalPrice    float64
	CreatedAt     time.Time
}
