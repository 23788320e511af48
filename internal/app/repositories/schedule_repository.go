package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/altan/schoolhub/internal/app/models"
	"github.com/altan/schoolhub/internal/db"
	"github.com/altan/schoolhub/internal/pkg/apperrors"
	"github.com/altan/schoolhub/internal/pkg/dberrors"
)

// ScheduleRepository handles database operations for timetable slots. The
// conflict check and the insert run in one transaction, and the schema's
// unique constraints on the class-slot and teacher-slot tuples backstop any
// race two concurrent writers could still win.
type ScheduleRepository struct {
	db *pgxpool.Pool
}

// NewScheduleRepository creates a new schedule repository
func NewScheduleRepository(db *pgxpool.Pool) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

const scheduleColumns = `id, class_id, subject_id, teacher_id, day_of_week, period, room, semester, academic_year, school_id, created_at, updated_at`

func scanSchedule(row pgx.Row) (*models.Schedule, error) {
	var s models.Schedule
	err := row.Scan(
		&s.ID,
		&s.ClassID,
		&s.SubjectID,
		&s.TeacherID,
		&s.DayOfWeek,
		&s.Period,
		&s.Room,
		&s.Semester,
		&s.AcademicYear,
		&s.SchoolID,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// checkSlotConflicts fails when another schedule row occupies the same
// class-slot or teacher-slot. excludeID skips the row being updated.
func checkSlotConflicts(ctx context.Context, tx pgx.Tx, s *models.Schedule, excludeID int64) error {
	var classTaken bool
	err := tx.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM schedules
			WHERE class_id = $1 AND day_of_week = $2 AND period = $3
			  AND semester = $4 AND academic_year = $5 AND id != $6)`,
		s.ClassID, s.DayOfWeek, s.Period, s.Semester, s.AcademicYear, excludeID).Scan(&classTaken)
	if err != nil {
		return fmt.Errorf("error checking class slot: %w", err)
	}
	if classTaken {
		return apperrors.ErrClassSlotTaken
	}

	var teacherTaken bool
	err = tx.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM schedules
			WHERE teacher_id = $1 AND day_of_week = $2 AND period = $3
			  AND semester = $4 AND academic_year = $5 AND id != $6)`,
		s.TeacherID, s.DayOfWeek, s.Period, s.Semester, s.AcademicYear, excludeID).Scan(&teacherTaken)
	if err != nil {
		return fmt.Errorf("error checking teacher slot: %w", err)
	}
	if teacherTaken {
		return apperrors.ErrTeacherSlotTaken
	}

	return nil
}

func mapScheduleConstraint(err error) error {
	if dberrors.IsDuplicateConstraintError(err, "schedules_class_slot_key") {
		return apperrors.ErrClassSlotTaken
	}
	if dberrors.IsDuplicateConstraintError(err, "schedules_teacher_slot_key") {
		return apperrors.ErrTeacherSlotTaken
	}
	return err
}

// Create inserts a new schedule after conflict checks
func (r *ScheduleRepository) Create(ctx context.Context, schedule *models.Schedule) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		if err := checkSlotConflicts(ctx, tx, schedule, 0); err != nil {
			return err
		}

		query := `
			INSERT INTO schedules (class_id, subject_id, teacher_id, day_of_week, period, room, semester, academic_year, school_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING id, created_at, updated_at
		`

		err := tx.QueryRow(ctx, query,
			schedule.ClassID, schedule.SubjectID, schedule.TeacherID,
			schedule.DayOfWeek, schedule.Period, schedule.Room,
			schedule.Semester, schedule.AcademicYear, schedule.SchoolID,
		).Scan(&schedule.ID, &schedule.CreatedAt, &schedule.UpdatedAt)
		if err != nil {
			if mapped := mapScheduleConstraint(err); mapped != err {
				return mapped
			}
			return fmt.Errorf("error creating schedule: %w", err)
		}

		return nil
	})
}

// GetByID retrieves a schedule by ID
func (r *ScheduleRepository) GetByID(ctx context.Context, id int64) (*models.Schedule, error) {
	query := `SELECT ` + scheduleColumns + ` FROM schedules WHERE id = $1`

	schedule, err := scanSchedule(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrScheduleNotFound
		}
		return nil, fmt.Errorf("error retrieving schedule: %w", err)
	}

	return schedule, nil
}

// ScheduleFilter narrows schedule list queries
type ScheduleFilter struct {
	ClassID      *int64
	TeacherID    *int64
	Semester     string
	AcademicYear string
}

// List retrieves schedules scoped to one school
func (r *ScheduleRepository) List(ctx context.Context, schoolID int64, filter ScheduleFilter) ([]*models.Schedule, error) {
	where := `WHERE school_id = $1`
	args := []interface{}{schoolID}

	if filter.ClassID != nil {
		args = append(args, *filter.ClassID)
		where += fmt.Sprintf(` AND class_id = $%d`, len(args))
	}
	if filter.TeacherID != nil {
		args = append(args, *filter.TeacherID)
		where += fmt.Sprintf(` AND teacher_id = $%d`, len(args))
	}
	if filter.Semester != "" {
		args = append(args, filter.Semester)
		where += fmt.Sprintf(` AND semester = $%d`, len(args))
	}
	if filter.AcademicYear != "" {
		args = append(args, filter.AcademicYear)
		where += fmt.Sprintf(` AND academic_year = $%d`, len(args))
	}

	query := fmt.Sprintf(`SELECT %s FROM schedules %s ORDER BY day_of_week, period`, scheduleColumns, where)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing schedules: %w", err)
	}
	defer rows.Close()

	var schedules []*models.Schedule
	for rows.Next() {
		schedule, err := scanSchedule(rows)
		if err != nil {
			return nil, err
		}
		schedules = append(schedules, schedule)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return schedules, nil
}

// Update overwrites a schedule after re-running conflict checks against the
// merged row
func (r *ScheduleRepository) Update(ctx context.Context, schedule *models.Schedule) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		if err := checkSlotConflicts(ctx, tx, schedule, schedule.ID); err != nil {
			return err
		}

		query := `
			UPDATE schedules
			SET subject_id = $1, teacher_id = $2, day_of_week = $3, period = $4, room = $5, updated_at = now()
			WHERE id = $6
		`

		tag, err := tx.Exec(ctx, query,
			schedule.SubjectID, schedule.TeacherID, schedule.DayOfWeek,
			schedule.Period, schedule.Room, schedule.ID)
		if err != nil {
			if mapped := mapScheduleConstraint(err); mapped != err {
				return mapped
			}
			return fmt.Errorf("error updating schedule: %w", err)
		}

		if tag.RowsAffected() == 0 {
			return apperrors.ErrScheduleNotFound
		}

		return nil
	})
}

// Delete removes a schedule by ID
func (r *ScheduleRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM schedules WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting schedule: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return apperrors.ErrScheduleNotFound
	}

	return nil
}
