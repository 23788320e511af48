// Package auth centralizes row-level authorization. Every handler used to
// repeat its own school/identity scoping; here the decision is a single
// (actor, resource) check, independent of the HTTP layer and testable on its
// own.
package auth

import (
	"context"

	"github.com/altan/schoolhub/internal/app/models"
	"github.com/altan/schoolhub/internal/pkg/apperrors"
)

// Actor is the authenticated caller as decoded from the bearer token.
type Actor struct {
	UserID   int64
	Email    string
	Role     models.RoleType
	SchoolID int64
}

// IsStaff reports whether the actor may create or modify school resources.
func (a Actor) IsStaff() bool {
	return a.Role == models.RoleAdmin || a.Role == models.RoleTeacher
}

// CheckSchool denies access to resources outside the actor's school. The
// caller gets the same error whether the resource exists elsewhere or not, so
// nothing leaks across schools.
func CheckSchool(actor Actor, resourceSchoolID int64) error {
	if actor.SchoolID != resourceSchoolID {
		return apperrors.ErrAccessDenied
	}
	return nil
}

// StudentDirectory resolves the student records an actor may be linked to.
type StudentDirectory interface {
	GetByEmail(ctx context.Context, email string) (*models.Student, error)
	GetByParent(ctx context.Context, parentID int64) ([]*models.Student, error)
}

// PolicyService answers (actor, resource) -> allow/deny questions that need
// linkage lookups.
type PolicyService struct {
	students StudentDirectory
}

// NewPolicyService creates a new PolicyService
func NewPolicyService(students StudentDirectory) *PolicyService {
	return &PolicyService{students: students}
}

// CanViewStudent decides whether the actor may read the given student record.
// Staff see every student of their own school; students see themselves;
// parents see their linked children.
func (s *PolicyService) CanViewStudent(ctx context.Context, actor Actor, student *models.Student) error {
	if err := CheckSchool(actor, student.SchoolID); err != nil {
		return err
	}

	switch actor.Role {
	case models.RoleAdmin, models.RoleTeacher:
		return nil

	case models.RoleStudent:
		if student.Email != nil && *student.Email == actor.Email {
			return nil
		}
		return apperrors.ErrAccessDenied

	case models.RoleParent:
		if student.ParentID != nil && *student.ParentID == actor.UserID {
			return nil
		}
		return apperrors.ErrAccessDenied
	}

	return apperrors.ErrAccessDenied
}

// CanModifyStudent decides whether the actor may write the given student
// record. Only staff of the same school may write.
func (s *PolicyService) CanModifyStudent(ctx context.Context, actor Actor, student *models.Student) error {
	if err := CheckSchool(actor, student.SchoolID); err != nil {
		return err
	}
	if !actor.IsStaff() {
		return apperrors.ErrPermissionDenied
	}
	return nil
}

// VisibleStudentIDs returns the set of student IDs a non-staff actor may see,
// or nil for staff (meaning: no per-row restriction inside their school).
func (s *PolicyService) VisibleStudentIDs(ctx context.Context, actor Actor) ([]int64, error) {
	switch actor.Role {
	case models.RoleAdmin, models.RoleTeacher:
		return nil, nil

	case models.RoleStudent:
		student, err := s.students.GetByEmail(ctx, actor.Email)
		if err != nil {
			return []int64{}, nil
		}
		return []int64{student.ID}, nil

	case models.RoleParent:
		children, err := s.students.GetByParent(ctx, actor.UserID)
		if err != nil {
			return nil, err
		}
		ids := make([]int64, 0, len(children))
		for _, child := range children {
			ids = append(ids, child.ID)
		}
		return ids, nil
	}

	return []int64{}, nil
}
