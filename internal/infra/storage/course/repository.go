package course

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/focus-space/FS-BookingService/internal/domain"
	"github.com/focus-space/FS-BookingService/pkg/psqlbuilder"
	"github.com/focus-space/FS-BookingService/pkg/txmanager"
)

var courseColumns = []string{
	"id",
	"title",
	"description",
	"category",
	"instructor",
	"start_date",
	"end_date",
	"weekdays",
	"time_slots",
	"max_participants",
	"allow_late_enrollment",
	"price",
	"is_active",
	"created_at",
	"updated_at",
}

// Filter narrows course listings.
type Filter struct {
	Category   *domain.CourseCategory
	OnlyActive bool
}

// Repository persists courses. Time slots are stored as JSONB, weekdays as an
// integer array.
type Repository struct {
	db txmanager.DBExecutor
}

func NewRepository(db txmanager.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create inserts a course and returns it with id and timestamps filled in.
func (r *Repository) Create(ctx context.Context, course *domain.Course) (*domain.Course, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	slotsJSON, err := json.Marshal(course.TimeSlots)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - marshal time slots: %v", ErrBuildQuery, err)
	}

	query, args, err := psqlbuilder.Insert("courses").
		Columns(
			"title",
			"description",
			"category",
			"instructor",
			"start_date",
			"end_date",
			"weekdays",
			"time_slots",
			"max_participants",
			"allow_late_enrollment",
			"price",
			"is_active",
		).
		Values(
			course.Title,
			course.Description,
			course.Category,
			course.Instructor,
			course.StartDate,
			course.EndDate,
			pq.Array(weekdaysToInts(course.Weekdays)),
			slotsJSON,
			course.MaxParticipants,
			course.AllowLateEnrollment,
			course.Price,
			course.IsActive,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&course.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	course.CreatedAt = createdAt.Time
	course.UpdatedAt = updatedAt.Time

	return course, nil
}

// GetByID fetches a single course.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Course, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(courseColumns...).
		From("courses").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	course, err := scanCourse(row)
	if err == sql.ErrNoRows {
		return nil, ErrCourseNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan course: %v", ErrScanRow, err)
	}
	return course, nil
}

// List returns courses matching the filter, upcoming terms first.
func (r *Repository) List(ctx context.Context, filter Filter) ([]*domain.Course, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(courseColumns...).
		From("courses").
		OrderBy("start_date ASC, id ASC")

	if filter.OnlyActive {
		builder = builder.Where(squirrel.Eq{"is_active": true})
	}
	if filter.Category != nil {
		builder = builder.Where(squirrel.Eq{"category": *filter.Category})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	var courses []*domain.Course
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan course: %v", ErrScanRow, err)
		}
		courses = append(courses, course)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrExecQuery, err)
	}

	return courses, nil
}

// SetActive flips the offering flag without touching history.
func (r *Repository) SetActive(ctx context.Context, id int64, active bool) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("courses").
		Set("is_active", active).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: SetActive - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetActive - execute update: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetActive - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrCourseNotFound
	}
	return nil
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCourse(row rowScanner) (*domain.Course, error) {
	var (
		course    domain.Course
		weekdays  []int64
		slotsJSON []byte
		createdAt sql.NullTime
		updatedAt sql.NullTime
	)

	err := row.Scan(
		&course.ID,
		&course.Title,
		&course.Description,
		&course.Category,
		&course.Instructor,
		&course.StartDate,
		&course.EndDate,
		pq.Array(&weekdays),
		&slotsJSON,
		&course.MaxParticipants,
		&course.AllowLateEnrollment,
		&course.Price,
		&course.IsActive,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	course.Weekdays = intsToWeekdays(weekdays)
	if len(slotsJSON) > 0 {
		if err := json.Unmarshal(slotsJSON, &course.TimeSlots); err != nil {
			return nil, err
		}
	}
	course.CreatedAt = createdAt.Time
	course.UpdatedAt = updatedAt.Time

	return &course, nil
}

func weekdaysToInts(days []domain.Weekday) []int64 {
	out := make([]int64, len(days))
	for i, d := range days {
		out[i] = int64(d)
	}
	return out
}

func intsToWeekdays(ints []int64) []domain.Weekday {
	out := make([]domain.Weekday, len(ints))
	for i, v := range ints {
		out[i] = domain.Weekday(v)
	}
	return out
}
