package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/altan/schoolhub/internal/app/models"
	"github.com/altan/schoolhub/internal/pkg/apperrors"
)

// AttendanceRepository handles database operations for attendance records
type AttendanceRepository struct {
	db *pgxpool.Pool
}

// NewAttendanceRepository creates a new attendance repository
func NewAttendanceRepository(db *pgxpool.Pool) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

const attendanceColumns = `id, student_id, class_id, date, status, note, recorded_by, school_id, created_at, updated_at`

func scanAttendance(row pgx.Row) (*models.Attendance, error) {
	var a models.Attendance
	err := row.Scan(
		&a.ID,
		&a.StudentID,
		&a.ClassID,
		&a.Date,
		&a.Status,
		&a.Note,
		&a.RecordedBy,
		&a.SchoolID,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Record upserts one attendance row keyed by (student_id, date)
func (r *AttendanceRepository) Record(ctx context.Context, attendance *models.Attendance) error {
	query := `
		INSERT INTO attendance (student_id, class_id, date, status, note, recorded_by, school_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (student_id, date)
		DO UPDATE SET class_id = EXCLUDED.class_id, status = EXCLUDED.status,
		              note = EXCLUDED.note, recorded_by = EXCLUDED.recorded_by, updated_at = now()
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		attendance.StudentID, attendance.ClassID, attendance.Date,
		attendance.Status, attendance.Note, attendance.RecordedBy, attendance.SchoolID,
	).Scan(&attendance.ID, &attendance.CreatedAt, &attendance.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error recording attendance: %w", err)
	}

	return nil
}

// GetByID retrieves an attendance record by ID
func (r *AttendanceRepository) GetByID(ctx context.Context, id int64) (*models.Attendance, error) {
	query := `SELECT ` + attendanceColumns + ` FROM attendance WHERE id = $1`

	attendance, err := scanAttendance(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAttendanceNotFound
		}
		return nil, fmt.Errorf("error retrieving attendance: %w", err)
	}

	return attendance, nil
}

// ListByClassDate retrieves all attendance rows of a class for one day
func (r *AttendanceRepository) ListByClassDate(ctx context.Context, classID int64, date time.Time) ([]*models.Attendance, error) {
	query := `SELECT ` + attendanceColumns + ` FROM attendance WHERE class_id = $1 AND date = $2 ORDER BY student_id`

	rows, err := r.db.Query(ctx, query, classID, date)
	if err != nil {
		return nil, fmt.Errorf("error listing attendance by class: %w", err)
	}
	defer rows.Close()

	var records []*models.Attendance
	for rows.Next() {
		record, err := scanAttendance(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

// ListByStudent retrieves a student's attendance history in a date range
func (r *AttendanceRepository) ListByStudent(ctx context.Context, studentID int64, from, to time.Time) ([]*models.Attendance, error) {
	query := `SELECT ` + attendanceColumns + ` FROM attendance
		WHERE student_id = $1 AND date >= $2 AND date <= $3 ORDER BY date DESC`

	rows, err := r.db.Query(ctx, query, studentID, from, to)
	if err != nil {
		return nil, fmt.Errorf("error listing attendance by student: %w", err)
	}
	defer rows.Close()

	var records []*models.Attendance
	for rows.Next() {
		record, err := scanAttendance(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

// Summary aggregates per-status counts for one student
func (r *AttendanceRepository) Summary(ctx context.Context, studentID int64) (*models.AttendanceSummary, error) {
	query := `
		SELECT
			COUNT(*) FILTER (WHERE status = 'PRESENT'),
			COUNT(*) FILTER (WHERE status = 'ABSENT'),
			COUNT(*) FILTER (WHERE status = 'LATE'),
			COUNT(*) FILTER (WHERE status = 'EXCUSED'),
			COUNT(*)
		FROM attendance
		WHERE student_id = $1
	`

	summary := &models.AttendanceSummary{StudentID: studentID}
	err := r.db.QueryRow(ctx, query, studentID).Scan(
		&summary.Present,
		&summary.Absent,
		&summary.Late,
		&summary.Excused,
		&summary.Total,
	)
	if err != nil {
		return nil, fmt.Errorf("error summarizing attendance: %w", err)
	}

	return summary, nil
}
