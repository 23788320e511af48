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

// StudentRepository handles database operations for students. Enrollment
// writes and the classes.current_students counter always move in the same
// transaction so the counter cannot drift on partial failure.
type StudentRepository struct {
	db *pgxpool.Pool
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{db: db}
}

const studentColumns = `id, code, full_name, date_of_birth, gender, class_id, parent_id, school_id, status, email, created_at, updated_at`

func scanStudent(row pgx.Row) (*models.Student, error) {
	var s models.Student
	err := row.Scan(
		&s.ID,
		&s.Code,
		&s.FullName,
		&s.DateOfBirth,
		&s.Gender,
		&s.ClassID,
		&s.ParentID,
		&s.SchoolID,
		&s.Status,
		&s.Email,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// reserveClassSeat increments a class's student counter, failing when the
// class is missing or already full. Runs inside the caller's transaction.
func reserveClassSeat(ctx context.Context, tx pgx.Tx, classID, schoolID int64) error {
	tag, err := tx.Exec(ctx, `
		UPDATE classes
		SET current_students = current_students + 1, updated_at = now()
		WHERE id = $1 AND school_id = $2 AND current_students < max_students`,
		classID, schoolID)
	if err != nil {
		return fmt.Errorf("error reserving class seat: %w", err)
	}

	if tag.RowsAffected() == 0 {
		var exists bool
		if err := tx.QueryRow(ctx,
			`SELECT EXISTS(SELECT 1 FROM classes WHERE id = $1 AND school_id = $2)`,
			classID, schoolID).Scan(&exists); err != nil {
			return fmt.Errorf("error checking class existence: %w", err)
		}
		if !exists {
			return apperrors.ErrClassNotFound
		}
		return apperrors.ErrClassFull
	}

	return nil
}

// releaseClassSeat decrements a class's student counter, never below zero.
func releaseClassSeat(ctx context.Context, tx pgx.Tx, classID int64) error {
	_, err := tx.Exec(ctx, `
		UPDATE classes
		SET current_students = GREATEST(current_students - 1, 0), updated_at = now()
		WHERE id = $1`,
		classID)
	if err != nil {
		return fmt.Errorf("error releasing class seat: %w", err)
	}
	return nil
}

// Create inserts a student and, when enrolled, reserves a seat in the class
// within the same transaction.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		if student.ClassID != nil {
			if err := reserveClassSeat(ctx, tx, *student.ClassID, student.SchoolID); err != nil {
				return err
			}
		}

		query := `
			INSERT INTO students (code, full_name, date_of_birth, gender, class_id, parent_id, school_id, status, email)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING id, created_at, updated_at
		`

		err := tx.QueryRow(ctx, query,
			student.Code, student.FullName, student.DateOfBirth, student.Gender,
			student.ClassID, student.ParentID, student.SchoolID, student.Status, student.Email,
		).Scan(&student.ID, &student.CreatedAt, &student.UpdatedAt)
		if err != nil {
			if dberrors.IsDuplicateConstraintError(err, "students_school_id_code_key") {
				return apperrors.ErrStudentCodeExists
			}
			return fmt.Errorf("error creating student: %w", err)
		}

		return nil
	})
}

// GetByID retrieves a student by ID
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE id = $1`

	student, err := scanStudent(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	return student, nil
}

// StudentFilter narrows student list queries
type StudentFilter struct {
	ClassID *int64
	Status  string
	Search  string
}

// List retrieves a page of students scoped to one school
func (r *StudentRepository) List(ctx context.Context, schoolID int64, filter StudentFilter, offset uint64, limit int) ([]*models.Student, int64, error) {
	where := `WHERE school_id = $1`
	args := []interface{}{schoolID}

	if filter.ClassID != nil {
		args = append(args, *filter.ClassID)
		where += fmt.Sprintf(` AND class_id = $%d`, len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		where += fmt.Sprintf(` AND status = $%d`, len(args))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		where += fmt.Sprintf(` AND (full_name ILIKE $%d OR code ILIKE $%d)`, len(args), len(args))
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM students `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting students: %w", err)
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf(`SELECT %s FROM students %s ORDER BY full_name LIMIT $%d OFFSET $%d`,
		studentColumns, where, len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing students: %w", err)
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			return nil, 0, err
		}
		students = append(students, student)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return students, total, nil
}

// GetByParent retrieves all students linked to a parent user
func (r *StudentRepository) GetByParent(ctx context.Context, parentID int64) ([]*models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE parent_id = $1 ORDER BY full_name`

	rows, err := r.db.Query(ctx, query, parentID)
	if err != nil {
		return nil, fmt.Errorf("error listing students by parent: %w", err)
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			return nil, err
		}
		students = append(students, student)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return students, nil
}

// GetByEmail retrieves the student record linked to a STUDENT user account
func (r *StudentRepository) GetByEmail(ctx context.Context, email string) (*models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE email = $1`

	student, err := scanStudent(r.db.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student by email: %w", err)
	}

	return student, nil
}

// Update overwrites a student's mutable fields. Class membership changes go
// through Transfer instead.
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	query := `
		UPDATE students
		SET full_name = $1, date_of_birth = $2, gender = $3, parent_id = $4, status = $5, email = $6, updated_at = now()
		WHERE id = $7
	`

	tag, err := r.db.Exec(ctx, query,
		student.FullName, student.DateOfBirth, student.Gender,
		student.ParentID, student.Status, student.Email, student.ID)
	if err != nil {
		return fmt.Errorf("error updating student: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}

// Transfer moves a student between classes, adjusting both counters in one
// transaction. A nil newClassID unenrolls the student.
func (r *StudentRepository) Transfer(ctx context.Context, studentID int64, newClassID *int64) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		var currentClassID *int64
		var schoolID int64
		err := tx.QueryRow(ctx,
			`SELECT class_id, school_id FROM students WHERE id = $1 FOR UPDATE`,
			studentID).Scan(&currentClassID, &schoolID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrStudentNotFound
			}
			return fmt.Errorf("error locking student row: %w", err)
		}

		if currentClassID != nil && newClassID != nil && *currentClassID == *newClassID {
			return nil
		}

		if newClassID != nil {
			if err := reserveClassSeat(ctx, tx, *newClassID, schoolID); err != nil {
				return err
			}
		}
		if currentClassID != nil {
			if err := releaseClassSeat(ctx, tx, *currentClassID); err != nil {
				return err
			}
		}

		_, err = tx.Exec(ctx,
			`UPDATE students SET class_id = $1, updated_at = now() WHERE id = $2`,
			newClassID, studentID)
		if err != nil {
			return fmt.Errorf("error updating student class: %w", err)
		}

		return nil
	})
}

// Delete removes a student, releasing their class seat in the same transaction
func (r *StudentRepository) Delete(ctx context.Context, id int64) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		var classID *int64
		err := tx.QueryRow(ctx,
			`SELECT class_id FROM students WHERE id = $1 FOR UPDATE`, id).Scan(&classID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrStudentNotFound
			}
			return fmt.Errorf("error locking student row: %w", err)
		}

		if _, err := tx.Exec(ctx, `DELETE FROM students WHERE id = $1`, id); err != nil {
			return fmt.Errorf("error deleting student: %w", err)
		}

		if classID != nil {
			if err := releaseClassSeat(ctx, tx, *classID); err != nil {
				return err
			}
		}

		return nil
	})
}
