package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/altan/schoolhub/internal/app/models"
	"github.com/altan/schoolhub/internal/pkg/apperrors"
	"github.com/altan/schoolhub/internal/pkg/dberrors"
)

// ClassRepository handles database operations for classes
type ClassRepository struct {
	db *pgxpool.Pool
}

// NewClassRepository creates a new class repository
func NewClassRepository(db *pgxpool.Pool) *ClassRepository {
	return &ClassRepository{db: db}
}

const classColumns = `id, code, name, grade_level, academic_year, homeroom_teacher_id, max_students, current_students, school_id, created_at, updated_at`

func scanClass(row pgx.Row) (*models.Class, error) {
	var c models.Class
	err := row.Scan(
		&c.ID,
		&c.Code,
		&c.Name,
		&c.GradeLevel,
		&c.AcademicYear,
		&c.HomeroomTeacherID,
		&c.MaxStudents,
		&c.CurrentStudents,
		&c.SchoolID,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create creates a new class
func (r *ClassRepository) Create(ctx context.Context, class *models.Class) error {
	query := `
		INSERT INTO classes (code, name, grade_level, academic_year, homeroom_teacher_id, max_students, school_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, current_students, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		class.Code, class.Name, class.GradeLevel, class.AcademicYear,
		class.HomeroomTeacherID, class.MaxStudents, class.SchoolID,
	).Scan(&class.ID, &class.CurrentStudents, &class.CreatedAt, &class.UpdatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "classes_school_id_code_key") {
			return apperrors.ErrClassCodeExists
		}
		return fmt.Errorf("error creating class: %w", err)
	}

	return nil
}

// GetByID retrieves a class by ID
func (r *ClassRepository) GetByID(ctx context.Context, id int64) (*models.Class, error) {
	query := `SELECT ` + classColumns + ` FROM classes WHERE id = $1`

	class, err := scanClass(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrClassNotFound
		}
		return nil, fmt.Errorf("error retrieving class: %w", err)
	}

	return class, nil
}

// List retrieves a page of classes scoped to one school
func (r *ClassRepository) List(ctx context.Context, schoolID int64, academicYear string, offset uint64, limit int) ([]*models.Class, int64, error) {
	where := `WHERE school_id = $1`
	args := []interface{}{schoolID}

	if academicYear != "" {
		args = append(args, academicYear)
		where += fmt.Sprintf(` AND academic_year = $%d`, len(args))
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM classes `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting classes: %w", err)
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf(`SELECT %s FROM classes %s ORDER BY grade_level, code LIMIT $%d OFFSET $%d`,
		classColumns, where, len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing classes: %w", err)
	}
	defer rows.Close()

	var classes []*models.Class
	for rows.Next() {
		class, err := scanClass(rows)
		if err != nil {
			return nil, 0, err
		}
		classes = append(classes, class)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return classes, total, nil
}

// Update overwrites a class's mutable fields
func (r *ClassRepository) Update(ctx context.Context, class *models.Class) error {
	query := `
		UPDATE classes
		SET name = $1, grade_level = $2, academic_year = $3, homeroom_teacher_id = $4, max_students = $5, updated_at = now()
		WHERE id = $6
	`

	tag, err := r.db.Exec(ctx, query,
		class.Name, class.GradeLevel, class.AcademicYear,
		class.HomeroomTeacherID, class.MaxStudents, class.ID)
	if err != nil {
		return fmt.Errorf("error updating class: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return apperrors.ErrClassNotFound
	}

	return nil
}

// HasStudents reports whether any students are enrolled in the class
func (r *ClassRepository) HasStudents(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM students WHERE class_id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking class students: %w", err)
	}
	return exists, nil
}

// Delete removes a class. Deletion is blocked while students remain enrolled.
func (r *ClassRepository) Delete(ctx context.Context, id int64) error {
	hasStudents, err := r.HasStudents(ctx, id)
	if err != nil {
		return err
	}
	if hasStudents {
		return apperrors.ErrClassHasStudents
	}

	tag, err := r.db.Exec(ctx, `DELETE FROM classes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting class: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return apperrors.ErrClassNotFound
	}

	return nil
}
