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
)

// GradeRepository handles database operations for grade rows. One row holds
// all of a student's component scores for one subject in one semester; the
// schema enforces that key with a unique constraint.
type GradeRepository struct {
	db *pgxpool.Pool
}

// NewGradeRepository creates a new grade repository
func NewGradeRepository(db *pgxpool.Pool) *GradeRepository {
	return &GradeRepository{db: db}
}

const gradeColumns = `id, student_id, subject_id, class_id, oral, quiz1, quiz2, one_hour, midterm, final, average, percentage, letter_grade, semester, academic_year, graded_by, school_id, created_at, updated_at`

func scanGrade(row pgx.Row) (*models.Grade, error) {
	var g models.Grade
	err := row.Scan(
		&g.ID,
		&g.StudentID,
		&g.SubjectID,
		&g.ClassID,
		&g.Oral,
		&g.Quiz1,
		&g.Quiz2,
		&g.OneHour,
		&g.Midterm,
		&g.Final,
		&g.Average,
		&g.Percentage,
		&g.LetterGrade,
		&g.Semester,
		&g.AcademicYear,
		&g.GradedBy,
		&g.SchoolID,
		&g.CreatedAt,
		&g.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

// SubmitComponent writes one component score, creating the grade row when
// none exists for the key. The row is locked for the duration of the
// transaction so concurrent submissions serialize instead of losing updates.
func (r *GradeRepository) SubmitComponent(ctx context.Context, grade *models.Grade, gradeType models.GradeType, value float64) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		existing, err := scanGrade(tx.QueryRow(ctx, `
			SELECT `+gradeColumns+` FROM grades
			WHERE student_id = $1 AND subject_id = $2 AND class_id = $3
			  AND semester = $4 AND academic_year = $5
			FOR UPDATE`,
			grade.StudentID, grade.SubjectID, grade.ClassID, grade.Semester, grade.AcademicYear))

		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("error loading grade row: %w", err)
		}

		if errors.Is(err, pgx.ErrNoRows) {
			if !grade.SetComponent(gradeType, value) {
				return apperrors.ErrInvalidGradeType
			}

			query := `
				INSERT INTO grades (student_id, subject_id, class_id, oral, quiz1, quiz2, one_hour, midterm, final,
				                    average, percentage, letter_grade, semester, academic_year, graded_by, school_id)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
				RETURNING id, created_at, updated_at
			`

			return tx.QueryRow(ctx, query,
				grade.StudentID, grade.SubjectID, grade.ClassID,
				grade.Oral, grade.Quiz1, grade.Quiz2, grade.OneHour, grade.Midterm, grade.Final,
				grade.Average, grade.Percentage, grade.LetterGrade,
				grade.Semester, grade.AcademicYear, grade.GradedBy, grade.SchoolID,
			).Scan(&grade.ID, &grade.CreatedAt, &grade.UpdatedAt)
		}

		// Overwrite the single named component on the existing row, then
		// recompute the derived fields over all present components.
		if !existing.SetComponent(gradeType, value) {
			return apperrors.ErrInvalidGradeType
		}
		existing.GradedBy = grade.GradedBy

		query := `
			UPDATE grades
			SET oral = $1, quiz1 = $2, quiz2 = $3, one_hour = $4, midterm = $5, final = $6,
			    average = $7, percentage = $8, letter_grade = $9, graded_by = $10, updated_at = now()
			WHERE id = $11
			RETURNING updated_at
		`

		err = tx.QueryRow(ctx, query,
			existing.Oral, existing.Quiz1, existing.Quiz2, existing.OneHour, existing.Midterm, existing.Final,
			existing.Average, existing.Percentage, existing.LetterGrade, existing.GradedBy, existing.ID,
		).Scan(&existing.UpdatedAt)
		if err != nil {
			return fmt.Errorf("error updating grade row: %w", err)
		}

		*grade = *existing
		return nil
	})
}

// GetByID retrieves a grade row by ID
func (r *GradeRepository) GetByID(ctx context.Context, id int64) (*models.Grade, error) {
	query := `SELECT ` + gradeColumns + ` FROM grades WHERE id = $1`

	grade, err := scanGrade(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrGradeNotFound
		}
		return nil, fmt.Errorf("error retrieving grade: %w", err)
	}

	return grade, nil
}

// GradeFilter narrows grade list queries
type GradeFilter struct {
	StudentID    *int64
	SubjectID    *int64
	ClassID      *int64
	Semester     string
	AcademicYear string
}

// List retrieves grade rows scoped to one school
func (r *GradeRepository) List(ctx context.Context, schoolID int64, filter GradeFilter) ([]*models.Grade, error) {
	where := `WHERE school_id = $1`
	args := []interface{}{schoolID}

	if filter.StudentID != nil {
		args = append(args, *filter.StudentID)
		where += fmt.Sprintf(` AND student_id = $%d`, len(args))
	}
	if filter.SubjectID != nil {
		args = append(args, *filter.SubjectID)
		where += fmt.Sprintf(` AND subject_id = $%d`, len(args))
	}
	if filter.ClassID != nil {
		args = append(args, *filter.ClassID)
		where += fmt.Sprintf(` AND class_id = $%d`, len(args))
	}
	if filter.Semester != "" {
		args = append(args, filter.Semester)
		where += fmt.Sprintf(` AND semester = $%d`, len(args))
	}
	if filter.AcademicYear != "" {
		args = append(args, filter.AcademicYear)
		where += fmt.Sprintf(` AND academic_year = $%d`, len(args))
	}

	query := fmt.Sprintf(`SELECT %s FROM grades %s ORDER BY student_id, subject_id`, gradeColumns, where)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing grades: %w", err)
	}
	defer rows.Close()

	var grades []*models.Grade
	for rows.Next() {
		grade, err := scanGrade(rows)
		if err != nil {
			return nil, err
		}
		grades = append(grades, grade)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return grades, nil
}

// Delete removes a grade row by ID
func (r *GradeRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM grades WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting grade: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return apperrors.ErrGradeNotFound
	}

	return nil
}
