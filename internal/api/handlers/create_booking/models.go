package create_booking

import (
	"time"

	"github.com/focus-space/FS-BookingService/internal/domain"
	createBooking "github.com/focus-space/FS-BookingService/internal/usecase/create_booking"
	"github.com/focus-space/FS-BookingService/pkg/types"
)

// CreateBookingRequest HTTP request model. One endpoint for both booking
// paths: exactly one of Course/Trial is expected, matching the draft union.
type CreateBookingRequest struct {
	BookingType   string  `json:"bookingType"`
	CustomerName  string  `json:"customerName"`
	CustomerEmail string  `json:"customerEmail"`
	CustomerPhone string  `json:"customerPhone"`
	CustomerNote  *string `json:"customerNote,omitempty"`

	ParticipantCount int `json:"participantCount"`

	Course *CourseSelectionRequest `json:"course,omitempty"`
	Trial  *TrialDetailsRequest    `json:"trial,omitempty"`
}

// CourseSelectionRequest carries the chosen course. Date and times are only
// needed for personal courses; the server resolves price and recurrence from
// the course record, never from the client.
type CourseSelectionRequest struct {
	CourseID    int64   `json:"courseId"`
	BookingDate *string `json:"bookingDate,omitempty"` // "2026-09-15"
	StartTime   *string `json:"startTime,omitempty"`   // "10:00"
}

// TrialDetailsRequest carries the trial questionnaire.
type TrialDetailsRequest struct {
	CustomerGender *string `json:"customerGender,omitempty"`
	CustomerAge    *int    `json:"customerAge,omitempty"`
	HasExperience  *bool   `json:"hasExperience,omitempty"`
	FitnessGoals   *string `json:"fitnessGoals,omitempty"`
	PreferredDate  *string `json:"preferredDate,omitempty"` // "2026-09-15"
	PreferredTime  *string `json:"preferredTime,omitempty"` // "10:00"
}

// BookingResponse HTTP response model.
type BookingResponse struct {
	BookingID     int64   `json:"bookingId"`
	BookingNumber string  `json:"bookingNumber"`
	Status        string  `json:"status"`
	TotalPrice    float64 `json:"totalPrice"`
	CreatedAt     string  `json:"createdAt"`
}

// ToUseCaseRequest converts the HTTP request into a booking draft, parsing
// dates and times on the way.
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	draft := domain.NewBookingDraft()
	draft.Type = domain.BookingType(r.BookingType)
	draft.CustomerName = r.CustomerName
	draft.CustomerEmail = r.CustomerEmail
	draft.CustomerPhone = r.CustomerPhone
	draft.CustomerNote = r.CustomerNote
	if r.ParticipantCount > 0 {
		draft.ParticipantCount = r.ParticipantCount
	}

	if r.Course != nil {
		sel := &domain.CourseSelection{CourseID: r.Course.CourseID}
		if r.Course.BookingDate != nil {
			date, err := time.Parse(domain.DateFormat, *r.Course.BookingDate)
			if err != nil {
				return nil, err
			}
			sel.BookingDate = &date
		}
		if r.Course.StartTime != nil {
			start, err := types.NewTimeStringFromString(*r.Course.StartTime)
			if err != nil {
				return nil, err
			}
			sel.StartTime = start
		}
		draft.Course = sel
	}

	if r.Trial != nil {
		trial := &domain.TrialDetails{
			CustomerGender: r.Trial.CustomerGender,
			CustomerAge:    r.Trial.CustomerAge,
			HasExperience:  r.Trial.HasExperience,
			FitnessGoals:   r.Trial.FitnessGoals,
		}
		if r.Trial.PreferredDate != nil {
			date, err := time.Parse(domain.DateFormat, *r.Trial.PreferredDate)
			if err != nil {
				return nil, err
			}
			trial.PreferredDate = &date
		}
		if r.Trial.PreferredTime != nil {
			pt, err := types.NewTimeStringFromString(*r.Trial.PreferredTime)
			if err != nil {
				return nil, err
			}
			trial.PreferredTime = pt
		}
		draft.Trial = trial
	}

	return &createBooking.Request{Draft: draft}, nil
}

// FromUseCaseResponse converts the use case response into the HTTP response.
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		BookingID:     resp.BookingID,
		BookingNumber: resp.BookingNumber,
		Status:        resp.Status,
		TotalPrice:    resp.TotalPrice,
		CreatedAt:     resp.CreatedAt.Format(time.RFC3339),
	}
}
