package booking

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/focus-space/FS-BookingService/internal/domain"
	"github.com/focus-space/FS-BookingService/pkg/psqlbuilder"
	"github.com/focus-space/FS-BookingService/pkg/txmanager"
)

var bookingColumns = []string{
	"id",
	"booking_number",
	"booking_type",
	"status",
	"customer_name",
	"customer_email",
	"customer_phone",
	"customer_note",
	"participant_count",
	"total_price",
	"course_id",
	"course_name",
	"course_category",
	"booking_date",
	"start_time",
	"end_time",
	"customer_gender",
	"customer_age",
	"has_experience",
	"fitness_goals",
	"preferred_date",
	"preferred_time",
	"created_at",
	"updated_at",
}

// Repository persists bookings.
type Repository struct {
	db txmanager.DBExecutor
}

func NewRepository(db txmanager.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create inserts a booking and returns it with id and timestamps filled in.
// Run inside a serializable transaction together with the slot occupancy
// check; two concurrent submissions for the same personal slot must not both
// commit.
func (r *Repository) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"booking_number",
			"booking_type",
			"status",
			"customer_name",
			"customer_email",
			"customer_phone",
			"customer_note",
			"participant_count",
			"total_price",
			"course_id",
			"course_name",
			"course_category",
			"booking_date",
			"start_time",
			"end_time",
			"customer_gender",
			"customer_age",
			"has_experience",
			"fitness_goals",
			"preferred_date",
			"preferred_time",
		).
		Values(
			b.BookingNumber,
			b.Type,
			b.Status,
			b.CustomerName,
			b.CustomerEmail,
			b.CustomerPhone,
			b.CustomerNote,
			b.ParticipantCount,
			b.TotalPrice,
			b.CourseID,
			b.CourseName,
			b.CourseCategory,
			b.BookingDate,
			b.StartTime,
			b.EndTime,
			b.CustomerGender,
			b.CustomerAge,
			b.HasExperience,
			b.FitnessGoals,
			b.PreferredDate,
			b.PreferredTime,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&b.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return b, nil
}

// GetByNumber fetches a booking by its human-readable number.
func (r *Repository) GetByNumber(ctx context.Context, number string) (*domain.Booking, error) {
	return r.getOne(ctx, squirrel.Eq{"booking_number": number})
}

// GetByID fetches a booking by its id.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

func (r *Repository) getOne(ctx context.Context, pred squirrel.Eq) (*domain.Booking, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(pred).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: getOne - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	booking, err := scanBooking(row)
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: getOne - scan booking: %v", ErrScanRow, err)
	}
	return booking, nil
}

// CountSlotOccupancy counts active bookings holding the exact
// (course, date, startTime, endTime) tuple.
func (r *Repository) CountSlotOccupancy(ctx context.Context, courseID int64, date time.Time, slot domain.TimeSlot) (int, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("bookings").
		Where(squirrel.Eq{
			"course_id":    courseID,
			"booking_date": date,
			"start_time":   slot.StartTime,
			"end_time":     slot.EndTime,
			"status":       domain.ActiveStatuses,
		}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountSlotOccupancy - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountSlotOccupancy - scan count: %v", ErrScanRow, err)
	}
	return count, nil
}

// ListCourseBookingsOnDate returns active bookings for a course on a date.
func (r *Repository) ListCourseBookingsOnDate(ctx context.Context, courseID int64, date time.Time) ([]*domain.Booking, error) {
	return r.list(ctx, squirrel.Eq{
		"course_id":    courseID,
		"booking_date": date,
		"status":       domain.ActiveStatuses,
	})
}

// ListTrialBookingsOnDate returns active trial bookings preferring a date.
func (r *Repository) ListTrialBookingsOnDate(ctx context.Context, date time.Time) ([]*domain.Booking, error) {
	return r.list(ctx, squirrel.Eq{
		"booking_type":   domain.TypeTrial,
		"preferred_date": date,
		"status":         domain.ActiveStatuses,
	})
}

func (r *Repository) list(ctx context.Context, pred squirrel.Eq) ([]*domain.Booking, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(pred).
		OrderBy("start_time ASC, id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: list - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: list - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	var bookings []*domain.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: list - scan booking: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list - rows error: %v", ErrExecQuery, err)
	}

	return bookings, nil
}

// UpdateStatus transitions a booking's lifecycle status.
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrBookingNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var (
		b         domain.Booking
		createdAt sql.NullTime
		updatedAt sql.NullTime
	)

	err := row.Scan(
		&b.ID,
		&b.BookingNumber,
		&b.Type,
		&b.Status,
		&b.CustomerName,
		&b.CustomerEmail,
		&b.CustomerPhone,
		&b.CustomerNote,
		&b.ParticipantCount,
		&b.TotalPrice,
		&b.CourseID,
		&b.CourseName,
		&b.CourseCategory,
		&b.BookingDate,
		&b.StartTime,
		&b.EndTime,
		&b.CustomerGender,
		&b.CustomerAge,
		&b.HasExperience,
		&b.FitnessGoals,
		&b.PreferredDate,
		&b.PreferredTime,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return &b, nil
}
