// Command seed loads the course catalogue into the database. Courses are
// operator-managed data with no public write endpoint, so catalogue changes
// go through this tool (or plain SQL).
//
// Usage:
//
//	seed -config config.toml -courses courses.json
//	seed -config config.toml -deactivate 3
package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	_ "github.com/lib/pq"

	"github.com/focus-space/FS-BookingService/internal/config"
	"github.com/focus-space/FS-BookingService/internal/domain"
	courseRepo "github.com/focus-space/FS-BookingService/internal/infra/storage/course"
	"github.com/focus-space/FS-BookingService/pkg/types"
)

// courseSpec is the JSON shape of one catalogue entry.
type courseSpec struct {
	Title               string     `json:"title"`
	Description         string     `json:"description"`
	Category            string     `json:"category"`
	Instructor          *string    `json:"instructor,omitempty"`
	StartDate           string     `json:"startDate"` // "2026-09-07"
	EndDate             string     `json:"endDate"`
	Weekdays            []int      `json:"weekdays"` // 0 = Sunday
	TimeSlots           []slotSpec `json:"timeSlots"`
	MaxParticipants     int        `json:"maxParticipants"`
	AllowLateEnrollment bool       `json:"allowLateEnrollment"`
	Price               float64    `json:"price"`
}

type slotSpec struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

func main() {
	configPath := flag.String("config", "config.toml", "path to the config file")
	coursesPath := flag.String("courses", "", "path to a JSON course catalogue to insert")
	deactivate := flag.Int64("deactivate", 0, "course id to deactivate instead of seeding")
	flag.Parse()

	if err := run(*configPath, *coursesPath, *deactivate); err != nil {
		fmt.Fprintf(os.Stderr, "seed: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, coursesPath string, deactivate int64) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}

	repo := courseRepo.NewRepository(db)
	ctx := context.Background()

	if deactivate != 0 {
		if err := repo.SetActive(ctx, deactivate, false); err != nil {
			return fmt.Errorf("deactivate course %d: %w", deactivate, err)
		}
		fmt.Printf("course %d deactivated\n", deactivate)
		return nil
	}

	if coursesPath == "" {
		return fmt.Errorf("either -courses or -deactivate is required")
	}

	specs, err := loadCatalogue(coursesPath)
	if err != nil {
		return err
	}

	for _, spec := range specs {
		course, err := toCourse(spec)
		if err != nil {
			return fmt.Errorf("course %q: %w", spec.Title, err)
		}
		created, err := repo.Create(ctx, course)
		if err != nil {
			return fmt.Errorf("insert course %q: %w", spec.Title, err)
		}
		fmt.Printf("course %d: %s (%s)\n", created.ID, created.Title, created.Category)
	}

	fmt.Printf("%d courses inserted\n", len(specs))
	return nil
}

func loadCatalogue(path string) ([]courseSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalogue: %w", err)
	}
	var specs []courseSpec
	if err := json.Unmarshal(data, &specs); err != nil {
		return nil, fmt.Errorf("parse catalogue: %w", err)
	}
	return specs, nil
}

func toCourse(spec courseSpec) (*domain.Course, error) {
	startDate, err := time.Parse(domain.DateFormat, spec.StartDate)
	if err != nil {
		return nil, fmt.Errorf("invalid startDate %q", spec.StartDate)
	}
	endDate, err := time.Parse(domain.DateFormat, spec.EndDate)
	if err != nil {
		return nil, fmt.Errorf("invalid endDate %q", spec.EndDate)
	}

	weekdays := make([]domain.Weekday, len(spec.Weekdays))
	for i, d := range spec.Weekdays {
		weekdays[i] = domain.Weekday(d)
	}

	slots := make([]domain.TimeSlot, len(spec.TimeSlots))
	for i, s := range spec.TimeSlots {
		start, err := types.NewTimeStringFromString(s.StartTime)
		if err != nil {
			return nil, err
		}
		end, err := types.NewTimeStringFromString(s.EndTime)
		if err != nil {
			return nil, err
		}
		slots[i] = domain.TimeSlot{StartTime: start, EndTime: end}
	}

	course := &domain.Course{
		Title:               spec.Title,
		Description:         spec.Description,
		Category:            domain.CourseCategory(spec.Category),
		Instructor:          spec.Instructor,
		StartDate:           startDate,
		EndDate:             endDate,
		Weekdays:            weekdays,
		TimeSlots:           slots,
		MaxParticipants:     spec.MaxParticipants,
		AllowLateEnrollment: spec.AllowLateEnrollment,
		Price:               spec.Price,
		IsActive:            true,
	}
	if err := course.Validate(); err != nil {
		return nil, err
	}
	return course, nil
}
