package wizard

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/focus-space/FS-BookingService/internal/domain"
	"github.com/focus-space/FS-BookingService/internal/validation"
)

type fakeSubmitter struct {
	result *SubmissionResult
	err    error
	calls  int
}

func (f *fakeSubmitter) Submit(_ context.Context, _ *domain.BookingDraft) (*SubmissionResult, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func groupCourse() *domain.Course {
	return &domain.Course{
		ID:        3,
		Title:     "團體有氧",
		Category:  domain.CategoryGroup,
		Price:     3600,
		StartDate: time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 10, 30, 0, 0, 0, 0, time.UTC),
		Weekdays:  []domain.Weekday{domain.Monday},
		TimeSlots: []domain.TimeSlot{{StartTime: "19:00", EndTime: "20:00"}},
	}
}

func fillCustomerData(w *Wizard) {
	w.Draft.CustomerName = "王小明"
	w.Draft.CustomerEmail = "ming@example.com"
	w.Draft.CustomerPhone = "0912345678"
}

func TestWizard_StepCountFollowsPath(t *testing.T) {
	w := New()
	assert.Len(t, w.Steps(), 1, "no type chosen yet")

	require.NoError(t, w.SelectType(domain.TypeTrial))
	assert.Len(t, w.Steps(), 3)

	require.NoError(t, w.SelectType(domain.TypeCourse))
	assert.Len(t, w.Steps(), 5)
}

func TestWizard_TrialPath(t *testing.T) {
	w := New()
	require.NoError(t, w.SelectType(domain.TypeTrial))

	require.NoError(t, w.Next())
	assert.Equal(t, validation.StepCustomerData, w.CurrentStepID())

	// Customer data is incomplete: blocked with field errors, position held.
	err := w.Next()
	assert.ErrorIs(t, err, ErrValidationFailed)
	assert.Equal(t, 2, w.CurrentStep)
	assert.Equal(t, validation.MsgNameRequired, w.Errors["customerName"])

	fillCustomerData(w)
	require.NoError(t, w.Next())
	assert.Equal(t, validation.StepConfirm, w.CurrentStepID())
	assert.True(t, w.Errors.Empty(), "advancing clears previous errors")
}

func TestWizard_CoursePath(t *testing.T) {
	w := New()
	require.NoError(t, w.SelectType(domain.TypeCourse))
	require.NoError(t, w.Next())

	assert.Equal(t, validation.StepSelectCourse, w.CurrentStepID())

	err := w.Next()
	assert.ErrorIs(t, err, ErrValidationFailed, "no course selected")

	require.NoError(t, w.SelectCourse(groupCourse()))
	require.NoError(t, w.Next())
	assert.Equal(t, validation.StepSchedule, w.CurrentStepID())

	require.NoError(t, w.SetParticipantCount(2))
	assert.Equal(t, 7200.0, w.Draft.TotalPrice)

	require.NoError(t, w.Next())
	fillCustomerData(w)
	require.NoError(t, w.Next())
	assert.Equal(t, validation.StepConfirm, w.CurrentStepID())
}

func TestWizard_Previous(t *testing.T) {
	w := New()
	require.NoError(t, w.SelectType(domain.TypeCourse))
	require.NoError(t, w.Next())
	require.NoError(t, w.SelectCourse(groupCourse()))
	require.NoError(t, w.Next())

	require.NoError(t, w.Previous())
	assert.Equal(t, validation.StepSelectCourse, w.CurrentStepID())
	assert.NotNil(t, w.Draft.Course, "going back never clears entered data")

	// Never steps below 1 and never validates.
	require.NoError(t, w.Previous())
	require.NoError(t, w.Previous())
	assert.Equal(t, 1, w.CurrentStep)
}

func TestWizard_SelectType_ClampsToShorterPath(t *testing.T) {
	w := New()
	require.NoError(t, w.SelectType(domain.TypeCourse))
	require.NoError(t, w.Next())
	require.NoError(t, w.SelectCourse(groupCourse()))
	require.NoError(t, w.Next())
	require.NoError(t, w.SetParticipantCount(2))
	require.NoError(t, w.Next())
	assert.Equal(t, 4, w.CurrentStep)

	// Switching to the three-step trial path lands on its final step, so
	// the position always stays within the active path.
	require.NoError(t, w.SelectType(domain.TypeTrial))
	assert.Equal(t, 3, w.CurrentStep)
	assert.Equal(t, validation.StepConfirm, w.CurrentStepID())
}

func TestWizard_NextClampsAtFinalStep(t *testing.T) {
	w := New()
	require.NoError(t, w.SelectType(domain.TypeTrial))
	require.NoError(t, w.Next())
	fillCustomerData(w)
	require.NoError(t, w.Next())

	final := w.CurrentStep
	require.NoError(t, w.Next())
	assert.Equal(t, final, w.CurrentStep)
}

func TestWizard_SubmitForConfirmation(t *testing.T) {
	w := New()
	require.NoError(t, w.SelectType(domain.TypeTrial))
	require.NoError(t, w.Next())

	err := w.SubmitForConfirmation()
	assert.ErrorIs(t, err, ErrValidationFailed)
	assert.Equal(t, 2, w.CurrentStep)

	fillCustomerData(w)
	require.NoError(t, w.SubmitForConfirmation())
	assert.Equal(t, validation.StepConfirm, w.CurrentStepID())
}

func TestWizard_Confirm(t *testing.T) {
	reachConfirm := func() *Wizard {
		w := New()
		_ = w.SelectType(domain.TypeTrial)
		_ = w.Next()
		fillCustomerData(w)
		_ = w.Next()
		return w
	}

	t.Run("success merges booking identity and terminates the session", func(t *testing.T) {
		w := reachConfirm()
		submitter := &fakeSubmitter{result: &SubmissionResult{
			BookingID:     42,
			BookingNumber: "FS-20260901-A1B2C3",
		}}

		require.NoError(t, w.Confirm(context.Background(), submitter))
		assert.True(t, w.Done)
		assert.Equal(t, int64(42), w.Draft.BookingID)
		assert.Equal(t, "FS-20260901-A1B2C3", w.Draft.BookingNumber)

		err := w.Confirm(context.Background(), submitter)
		assert.ErrorIs(t, err, ErrSessionCompleted)
		assert.Equal(t, 1, submitter.calls, "a completed session never submits again")
	})

	t.Run("not on confirm step", func(t *testing.T) {
		w := New()
		_ = w.SelectType(domain.TypeTrial)
		submitter := &fakeSubmitter{}

		err := w.Confirm(context.Background(), submitter)
		assert.ErrorIs(t, err, ErrNotOnConfirmStep)
		assert.Zero(t, submitter.calls)
	})

	t.Run("server validation errors land in Errors", func(t *testing.T) {
		w := reachConfirm()
		submitter := &fakeSubmitter{err: &ServerValidationError{
			Fields: validation.FieldErrors{"customerPhone": validation.MsgPhoneInvalid},
		}}

		err := w.Confirm(context.Background(), submitter)
		require.Error(t, err)
		assert.Equal(t, validation.MsgPhoneInvalid, w.Errors["customerPhone"])
		assert.False(t, w.Done)
		assert.Equal(t, validation.StepConfirm, w.CurrentStepID(), "failure keeps the session retryable")
	})

	t.Run("conflicts pass through untouched", func(t *testing.T) {
		w := reachConfirm()
		submitter := &fakeSubmitter{err: ErrConflict}

		err := w.Confirm(context.Background(), submitter)
		assert.ErrorIs(t, err, ErrConflict)
		assert.False(t, w.Done)
	})
}

func TestWizard_CompletedSessionRejectsTransitions(t *testing.T) {
	w := New()
	_ = w.SelectType(domain.TypeTrial)
	_ = w.Next()
	fillCustomerData(w)
	_ = w.Next()
	require.NoError(t, w.Confirm(context.Background(), &fakeSubmitter{result: &SubmissionResult{BookingID: 1, BookingNumber: "FS-20260901-000001"}}))

	assert.ErrorIs(t, w.Next(), ErrSessionCompleted)
	assert.ErrorIs(t, w.Previous(), ErrSessionCompleted)
	assert.ErrorIs(t, w.SelectType(domain.TypeCourse), ErrSessionCompleted)
	assert.ErrorIs(t, w.SubmitForConfirmation(), ErrSessionCompleted)
}

func TestWizard_JSONRoundTrip(t *testing.T) {
	w := New()
	require.NoError(t, w.SelectType(domain.TypeCourse))
	require.NoError(t, w.Next())
	require.NoError(t, w.SelectCourse(groupCourse()))

	var restored Wizard
	data, err := json.Marshal(w)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &restored))

	assert.Equal(t, w.CurrentStep, restored.CurrentStep)
	assert.Equal(t, w.Draft.Course.CourseID, restored.Draft.Course.CourseID)
	assert.Equal(t, w.Draft.TotalPrice, restored.Draft.TotalPrice)
}
