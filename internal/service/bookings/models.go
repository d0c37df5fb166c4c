package bookings

import (
	"time"

	"github.com/focus-space/FS-BookingService/internal/domain"
)

// BookingResponse is the read model for a persisted booking. Times and dates
// are pre-formatted strings; path-specific fields are omitted when empty.
type BookingResponse struct {
	BookingID     int64  `json:"bookingId"`
	BookingNumber string `json:"bookingNumber"`
	BookingType   string `json:"bookingType"`
	Status        string `json:"status"`

	CustomerName  string  `json:"customerName"`
	CustomerEmail string  `json:"customerEmail"`
	CustomerPhone string  `json:"customerPhone"`
	CustomerNote  *string `json:"customerNote,omitempty"`

	ParticipantCount int     `json:"participantCount"`
	TotalPrice       float64 `json:"totalPrice"`

	CourseID       *int64  `json:"courseId,omitempty"`
	CourseName     *string `json:"courseName,omitempty"`
	CourseCategory *string `json:"courseCategory,omitempty"`
	BookingDate    *string `json:"bookingDate,omitempty"`
	StartTime      string  `json:"startTime,omitempty"`
	EndTime        string  `json:"endTime,omitempty"`

	PreferredDate *string `json:"preferredDate,omitempty"`
	PreferredTime string  `json:"preferredTime,omitempty"`

	CreatedAt string `json:"createdAt"`
}

func toResponse(b *domain.Booking) *BookingResponse {
	resp := &BookingResponse{
		BookingID:     b.ID,
		BookingNumber: b.BookingNumber,
		BookingType:   string(b.Type),
		Status:        string(b.Status),

		CustomerName:  b.CustomerName,
		CustomerEmail: b.CustomerEmail,
		CustomerPhone: b.CustomerPhone,
		CustomerNote:  b.CustomerNote,

		ParticipantCount: b.ParticipantCount,
		TotalPrice:       b.TotalPrice,

		CourseID:   b.CourseID,
		CourseName: b.CourseName,

		CreatedAt: b.CreatedAt.Format(time.RFC3339),
	}

	if b.CourseCategory != nil {
		category := string(*b.CourseCategory)
		resp.CourseCategory = &category
	}
	if b.BookingDate != nil {
		date := b.BookingDate.Format(domain.DateFormat)
		resp.BookingDate = &date
	}
	if !b.StartTime.IsZero() {
		resp.StartTime = b.StartTime.String()
		resp.EndTime = b.EndTime.String()
	}
	if b.PreferredDate != nil {
		date := b.PreferredDate.Format(domain.DateFormat)
		resp.PreferredDate = &date
	}
	if !b.PreferredTime.IsZero() {
		resp.PreferredTime = b.PreferredTime.String()
	}

	return resp
}
