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

// SubjectRepository handles database operations for subjects
type SubjectRepository struct {
	db *pgxpool.Pool
}

// NewSubjectRepository creates a new subject repository
func NewSubjectRepository(db *pgxpool.Pool) *SubjectRepository {
	return &SubjectRepository{db: db}
}

const subjectColumns = `id, code, name, credits, color, school_id, created_at, updated_at`

func scanSubject(row pgx.Row) (*models.Subject, error) {
	var s models.Subject
	err := row.Scan(
		&s.ID,
		&s.Code,
		&s.Name,
		&s.Credits,
		&s.Color,
		&s.SchoolID,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Create creates a new subject
func (r *SubjectRepository) Create(ctx context.Context, subject *models.Subject) error {
	query := `
		INSERT INTO subjects (code, name, credits, color, school_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		subject.Code, subject.Name, subject.Credits, subject.Color, subject.SchoolID,
	).Scan(&subject.ID, &subject.CreatedAt, &subject.UpdatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "subjects_school_id_code_key") {
			return apperrors.ErrSubjectCodeExists
		}
		return fmt.Errorf("error creating subject: %w", err)
	}

	return nil
}

// GetByID retrieves a subject by ID
func (r *SubjectRepository) GetByID(ctx context.Context, id int64) (*models.Subject, error) {
	query := `SELECT ` + subjectColumns + ` FROM subjects WHERE id = $1`

	subject, err := scanSubject(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSubjectNotFound
		}
		return nil, fmt.Errorf("error retrieving subject: %w", err)
	}

	return subject, nil
}

// List retrieves all subjects of a school
func (r *SubjectRepository) List(ctx context.Context, schoolID int64) ([]*models.Subject, error) {
	query := `SELECT ` + subjectColumns + ` FROM subjects WHERE school_id = $1 ORDER BY code`

	rows, err := r.db.Query(ctx, query, schoolID)
	if err != nil {
		return nil, fmt.Errorf("error listing subjects: %w", err)
	}
	defer rows.Close()

	var subjects []*models.Subject
	for rows.Next() {
		subject, err := scanSubject(rows)
		if err != nil {
			return nil, err
		}
		subjects = append(subjects, subject)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return subjects, nil
}

// Update overwrites a subject's mutable fields
func (r *SubjectRepository) Update(ctx context.Context, subject *models.Subject) error {
	query := `
		UPDATE subjects
		SET name = $1, credits = $2, color = $3, updated_at = now()
		WHERE id = $4
	`

	tag, err := r.db.Exec(ctx, query, subject.Name, subject.Credits, subject.Color, subject.ID)
	if err != nil {
		return fmt.Errorf("error updating subject: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return apperrors.ErrSubjectNotFound
	}

	return nil
}

// IsInUse reports whether any schedules or grades reference the subject
func (r *SubjectRepository) IsInUse(ctx context.Context, id int64) (bool, error) {
	var inUse bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM schedules WHERE subject_id = $1)
		    OR EXISTS(SELECT 1 FROM grades WHERE subject_id = $1)`,
		id).Scan(&inUse)
	if err != nil {
		return false, fmt.Errorf("error checking subject usage: %w", err)
	}
	return inUse, nil
}

// Delete removes a subject. Deletion is blocked while schedules or grades
// reference it.
func (r *SubjectRepository) Delete(ctx context.Context, id int64) error {
	inUse, err := r.IsInUse(ctx, id)
	if err != nil {
		return err
	}
	if inUse {
		return apperrors.ErrSubjectInUse
	}

	tag, err := r.db.Exec(ctx, `DELETE FROM subjects WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting subject: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return apperrors.ErrSubjectNotFound
	}

	return nil
}
