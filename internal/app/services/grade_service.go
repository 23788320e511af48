package services

import (
	"context"

	appauth "github.com/altan/schoolhub/internal/app/auth"
	"github.com/altan/schoolhub/internal/app/models"
	"github.com/altan/schoolhub/internal/app/models/dto"
	"github.com/altan/schoolhub/internal/app/repositories"
	"github.com/altan/schoolhub/internal/pkg/apperrors"
	"github.com/altan/schoolhub/internal/pkg/logger"
)

// GradeStore is the persistence surface GradeService depends on.
type GradeStore interface {
	SubmitComponent(ctx context.Context, grade *models.Grade, gradeType models.GradeType, value float64) error
	GetByID(ctx context.Context, id int64) (*models.Grade, error)
	List(ctx context.Context, schoolID int64, filter repositories.GradeFilter) ([]*models.Grade, error)
	Delete(ctx context.Context, id int64) error
}

// GradeLookup resolves the student a grade belongs to.
type GradeLookup interface {
	GetByID(ctx context.Context, id int64) (*models.Student, error)
}

// SubjectLookup resolves the subject a grade is submitted for.
type SubjectLookup interface {
	GetByID(ctx context.Context, id int64) (*models.Subject, error)
}

// GradeService implements component score submission and grade queries.
type GradeService struct {
	grades   GradeStore
	students GradeLookup
	subjects SubjectLookup
	policy   *appauth.PolicyService
}

// NewGradeService creates a new GradeService
func NewGradeService(grades GradeStore, students GradeLookup, subjects SubjectLookup, policy *appauth.PolicyService) *GradeService {
	return &GradeService{grades: grades, students: students, subjects: subjects, policy: policy}
}

// Submit writes one component score for a (student, subject, class, semester,
// year) tuple, creating the aggregate row on first write. The derived
// average, percentage and letter grade are recomputed on every write.
func (s *GradeService) Submit(ctx context.Context, actor appauth.Actor, req *dto.SubmitGradeRequest) (*models.Grade, error) {
	if !models.ValidGradeType(req.GradeType) {
		return nil, apperrors.ErrInvalidGradeType
	}
	if req.Value < 0 || req.Value > 10 {
		return nil, apperrors.ErrGradeOutOfRange
	}

	student, err := s.students.GetByID(ctx, req.StudentID)
	if err != nil {
		return nil, err
	}
	if err := s.policy.CanModifyStudent(ctx, actor, student); err != nil {
		return nil, err
	}

	subject, err := s.subjects.GetByID(ctx, req.SubjectID)
	if err != nil {
		return nil, err
	}
	if subject.SchoolID != student.SchoolID {
		return nil, apperrors.ErrGradeWrongSubject
	}

	grade := &models.Grade{
		StudentID:    req.StudentID,
		SubjectID:    req.SubjectID,
		ClassID:      req.ClassID,
		Semester:     req.Semester,
		AcademicYear: req.AcademicYear,
		GradedBy:     actor.UserID,
		SchoolID:     actor.SchoolID,
	}

	if err := s.grades.SubmitComponent(ctx, grade, models.GradeType(req.GradeType), req.Value); err != nil {
		return nil, err
	}

	logger.Info().
		Int64("studentId", req.StudentID).
		Str("gradeType", req.GradeType).
		Float64("value", req.Value).
		Msg("Grade component submitted")

	return grade, nil
}

// GetByID returns one grade row after a policy check against its student.
func (s *GradeService) GetByID(ctx context.Context, actor appauth.Actor, id int64) (*models.Grade, error) {
	grade, err := s.grades.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	student, err := s.students.GetByID(ctx, grade.StudentID)
	if err != nil {
		return nil, err
	}
	if err := s.policy.CanViewStudent(ctx, actor, student); err != nil {
		return nil, err
	}

	return grade, nil
}

// List returns grade rows the actor may see. Non-staff queries are restricted
// to their own linked students regardless of the requested filter.
func (s *GradeService) List(ctx context.Context, actor appauth.Actor, filter repositories.GradeFilter) ([]*models.Grade, error) {
	visible, err := s.policy.VisibleStudentIDs(ctx, actor)
	if err != nil {
		return nil, err
	}

	if visible == nil {
		return s.grades.List(ctx, actor.SchoolID, filter)
	}

	grades := make([]*models.Grade, 0)
	for _, id := range visible {
		studentID := id
		if filter.StudentID != nil && *filter.StudentID != studentID {
			continue
		}
		scoped := filter
		scoped.StudentID = &studentID
		rows, err := s.grades.List(ctx, actor.SchoolID, scoped)
		if err != nil {
			return nil, err
		}
		grades = append(grades, rows...)
	}

	return grades, nil
}

// Delete removes a grade row. Staff only.
func (s *GradeService) Delete(ctx context.Context, actor appauth.Actor, id int64) error {
	grade, err := s.grades.GetByID(ctx, id)
	if err != nil {
		return err
	}

	student, err := s.students.GetByID(ctx, grade.StudentID)
	if err != nil {
		return err
	}
	if err := s.policy.CanModifyStudent(ctx, actor, student); err != nil {
		return err
	}

	return s.grades.Delete(ctx, id)
}
