// Package validation holds the single rule set for booking drafts. The wizard
// runs it per step for immediate feedback; the submission usecase runs every
// step of the active path again as the authoritative check. One rule table,
// two call sites, no drift.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/focus-space/FS-BookingService/internal/domain"
)

// StepID identifies one wizard step.
type StepID string

const (
	StepSelectType   StepID = "select_type"
	StepSelectCourse StepID = "select_course"
	StepSchedule     StepID = "schedule"
	StepCustomerData StepID = "customer_data"
	StepConfirm      StepID = "confirm"
)

// Field error messages shown to members (zh-TW).
const (
	MsgTypeRequired    = "請選擇預約類型"
	MsgCourseRequired  = "請選擇課程"
	MsgDateRequired    = "請選擇預約日期"
	MsgTimeRequired    = "請選擇時段"
	MsgParticipantsMin = "參加人數至少 1 人"
	MsgNameRequired    = "請輸入姓名"
	MsgEmailInvalid    = "請輸入有效的電子郵件"
	MsgPhoneInvalid    = "手機號碼格式不正確，請輸入 09 開頭的 10 碼號碼"
)

var (
	MsgParticipantsMax = fmt.Sprintf("參加人數最多 %d 人", domain.MaxParticipants)
	MsgNoteTooLong     = fmt.Sprintf("備註長度不可超過 %d 字", domain.MaxCustomerNoteLength)
)

var (
	emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)
	// Taiwan mobile format: 09 followed by eight digits.
	phonePattern = regexp.MustCompile(`^09\d{8}$`)
)

// FieldErrors maps field name to a user-facing message. An empty map means
// the step is valid.
type FieldErrors map[string]string

// Empty reports whether no field failed.
func (e FieldErrors) Empty() bool {
	return len(e) == 0
}

// trialSteps and courseSteps are the explicit per-path step descriptors.
// The step count of a path is len(StepsFor(t)), never a hand-kept constant.
var (
	initialSteps = []StepID{StepSelectType}
	trialSteps   = []StepID{StepSelectType, StepCustomerData, StepConfirm}
	courseSteps  = []StepID{StepSelectType, StepSelectCourse, StepSchedule, StepCustomerData, StepConfirm}
)

// StepsFor returns the ordered step list for the given booking type. Before a
// type is chosen only the type-selection step exists.
func StepsFor(t domain.BookingType) []StepID {
	switch t {
	case domain.TypeTrial:
		return trialSteps
	case domain.TypeCourse:
		return courseSteps
	default:
		return initialSteps
	}
}

// Validate runs the rules of a single step against the draft and returns the
// field->message map. It never mutates the draft and is idempotent: the same
// draft and step always yield the same map.
func Validate(step StepID, d *domain.BookingDraft) FieldErrors {
	errs := FieldErrors{}

	switch step {
	case StepSelectType:
		if !d.Type.IsValid() {
			errs["bookingType"] = MsgTypeRequired
		}

	case StepSelectCourse:
		if d.Course == nil || d.Course.CourseID == 0 {
			errs["courseId"] = MsgCourseRequired
		}

	case StepSchedule:
		if d.Course != nil && d.Course.CourseCategory == domain.CategoryPersonal {
			if d.Course.BookingDate == nil {
				errs["bookingDate"] = MsgDateRequired
			}
			if d.Course.StartTime.IsZero() {
				errs["startTime"] = MsgTimeRequired
			}
		}
		if d.ParticipantCount < domain.MinParticipants {
			errs["participantCount"] = MsgParticipantsMin
		} else if d.ParticipantCount > domain.MaxParticipants {
			errs["participantCount"] = MsgParticipantsMax
		}

	case StepCustomerData:
		if strings.TrimSpace(d.CustomerName) == "" {
			errs["customerName"] = MsgNameRequired
		}
		if !emailPattern.MatchString(d.CustomerEmail) {
			errs["customerEmail"] = MsgEmailInvalid
		}
		if !phonePattern.MatchString(d.CustomerPhone) {
			errs["customerPhone"] = MsgPhoneInvalid
		}
		if d.CustomerNote != nil && utf8.RuneCountInString(*d.CustomerNote) > domain.MaxCustomerNoteLength {
			errs["customerNote"] = MsgNoteTooLong
		}

	case StepConfirm:
		// The confirmation step is submit-only; nothing to validate.
	}

	return errs
}

// ValidateDraft runs every step of the draft's active path and merges the
// results. This is the server-side authoritative check.
func ValidateDraft(d *domain.BookingDraft) FieldErrors {
	errs := FieldErrors{}
	for _, step := range StepsFor(d.Type) {
		for field, msg := range Validate(step, d) {
			if _, ok := errs[field]; !ok {
				errs[field] = msg
			}
		}
	}
	return errs
}
