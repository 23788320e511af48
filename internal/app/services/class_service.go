package services

import (
	"context"
	"errors"

	appauth "github.com/altan/schoolhub/internal/app/auth"
	"github.com/altan/schoolhub/internal/app/models"
	"github.com/altan/schoolhub/internal/app/models/dto"
	"github.com/altan/schoolhub/internal/pkg/apperrors"
	"github.com/altan/schoolhub/internal/pkg/helpers"
)

// ClassStore is the persistence surface ClassService depends on.
type ClassStore interface {
	Create(ctx context.Context, class *models.Class) error
	GetByID(ctx context.Context, id int64) (*models.Class, error)
	List(ctx context.Context, schoolID int64, academicYear string, offset uint64, limit int) ([]*models.Class, int64, error)
	Update(ctx context.Context, class *models.Class) error
	HasStudents(ctx context.Context, id int64) (bool, error)
	Delete(ctx context.Context, id int64) error
}

// TeacherDirectory resolves users for role checks.
type TeacherDirectory interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

// ClassService implements class CRUD.
type ClassService struct {
	classes ClassStore
	users   TeacherDirectory
}

// NewClassService creates a new ClassService
func NewClassService(classes ClassStore, users TeacherDirectory) *ClassService {
	return &ClassService{classes: classes, users: users}
}

// checkHomeroomTeacher validates that the referenced user exists in the
// actor's school and carries the TEACHER role.
func (s *ClassService) checkHomeroomTeacher(ctx context.Context, actor appauth.Actor, teacherID int64) error {
	teacher, err := s.users.GetByID(ctx, teacherID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return apperrors.NewBadRequestError("homeroom teacher not found")
		}
		return err
	}
	if err := appauth.CheckSchool(actor, teacher.SchoolID); err != nil {
		return err
	}
	if teacher.Role != models.RoleTeacher {
		return apperrors.NewBadRequestError("homeroom teacher must have the TEACHER role")
	}
	return nil
}

// Create adds a new class to the actor's school.
func (s *ClassService) Create(ctx context.Context, actor appauth.Actor, req *dto.CreateClassRequest) (*models.Class, error) {
	if req.HomeroomTeacherID != nil {
		if err := s.checkHomeroomTeacher(ctx, actor, *req.HomeroomTeacherID); err != nil {
			return nil, err
		}
	}

	class := &models.Class{
		Code:              req.Code,
		Name:              req.Name,
		GradeLevel:        req.GradeLevel,
		AcademicYear:      req.AcademicYear,
		HomeroomTeacherID: req.HomeroomTeacherID,
		MaxStudents:       req.MaxStudents,
		SchoolID:          actor.SchoolID,
	}

	if err := s.classes.Create(ctx, class); err != nil {
		return nil, err
	}

	return class, nil
}

// GetByID returns one class scoped to the actor's school.
func (s *ClassService) GetByID(ctx context.Context, actor appauth.Actor, id int64) (*models.Class, error) {
	class, err := s.classes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := appauth.CheckSchool(actor, class.SchoolID); err != nil {
		return nil, err
	}

	return class, nil
}

// List returns a page of the school's classes, optionally filtered by
// academic year.
func (s *ClassService) List(ctx context.Context, actor appauth.Actor, academicYear string, page, limit int) ([]*models.Class, int64, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, limit)
	return s.classes.List(ctx, actor.SchoolID, academicYear, offset, limit)
}

// Update applies a partial update. Shrinking MaxStudents below the current
// enrollment is rejected.
func (s *ClassService) Update(ctx context.Context, actor appauth.Actor, id int64, req *dto.UpdateClassRequest) (*models.Class, error) {
	class, err := s.GetByID(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		class.Name = *req.Name
	}
	if req.GradeLevel != nil {
		class.GradeLevel = *req.GradeLevel
	}
	if req.AcademicYear != nil {
		class.AcademicYear = *req.AcademicYear
	}
	if req.HomeroomTeacherID != nil {
		if err := s.checkHomeroomTeacher(ctx, actor, *req.HomeroomTeacherID); err != nil {
			return nil, err
		}
		class.HomeroomTeacherID = req.HomeroomTeacherID
	}
	if req.MaxStudents != nil {
		if *req.MaxStudents < class.CurrentStudents {
			return nil, apperrors.NewBadRequestError("maxStudents cannot be lower than current enrollment")
		}
		class.MaxStudents = *req.MaxStudents
	}

	if err := s.classes.Update(ctx, class); err != nil {
		return nil, err
	}

	return class, nil
}

// Delete removes a class. Deletion is blocked while students remain enrolled;
// the store repeats the check against the live data.
func (s *ClassService) Delete(ctx context.Context, actor appauth.Actor, id int64) error {
	if _, err := s.GetByID(ctx, actor, id); err != nil {
		return err
	}

	hasStudents, err := s.classes.HasStudents(ctx, id)
	if err != nil {
		return err
	}
	if hasStudents {
		return apperrors.ErrClassHasStudents
	}

	return s.classes.Delete(ctx, id)
}
