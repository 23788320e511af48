package services

import (
	"context"
	"time"

	appauth "github.com/altan/schoolhub/internal/app/auth"
	"github.com/altan/schoolhub/internal/app/models"
	"github.com/altan/schoolhub/internal/app/models/dto"
	"github.com/altan/schoolhub/internal/app/repositories"
	"github.com/altan/schoolhub/internal/pkg/apperrors"
	"github.com/altan/schoolhub/internal/pkg/helpers"
	"github.com/altan/schoolhub/internal/pkg/logger"
)

const dateLayout = "2006-01-02"

// StudentStore is the persistence surface StudentService depends on.
type StudentStore interface {
	Create(ctx context.Context, student *models.Student) error
	GetByID(ctx context.Context, id int64) (*models.Student, error)
	List(ctx context.Context, schoolID int64, filter repositories.StudentFilter, offset uint64, limit int) ([]*models.Student, int64, error)
	Update(ctx context.Context, student *models.Student) error
	Transfer(ctx context.Context, studentID int64, newClassID *int64) error
	Delete(ctx context.Context, id int64) error
}

// StudentService implements student CRUD, enrollment and transfer.
type StudentService struct {
	students StudentStore
	policy   *appauth.PolicyService
}

// NewStudentService creates a new StudentService
func NewStudentService(students StudentStore, policy *appauth.PolicyService) *StudentService {
	return &StudentService{students: students, policy: policy}
}

// Create registers a new student in the actor's school. When a class is given
// the enrollment and the capacity counter move together.
func (s *StudentService) Create(ctx context.Context, actor appauth.Actor, req *dto.CreateStudentRequest) (*models.Student, error) {
	dob, err := time.Parse(dateLayout, req.DateOfBirth)
	if err != nil {
		return nil, apperrors.NewBadRequestError("dateOfBirth must be YYYY-MM-DD")
	}

	student := &models.Student{
		Code:        req.Code,
		FullName:    req.FullName,
		DateOfBirth: dob,
		Gender:      req.Gender,
		ClassID:     req.ClassID,
		ParentID:    req.ParentID,
		SchoolID:    actor.SchoolID,
		Status:      models.StudentActive,
	}
	if req.Email != "" {
		student.Email = &req.Email
	}

	if err := s.students.Create(ctx, student); err != nil {
		return nil, err
	}

	logger.Info().Int64("studentId", student.ID).Str("code", student.Code).Msg("Student created")
	return student, nil
}

// GetByID returns one student after a row-level policy check.
func (s *StudentService) GetByID(ctx context.Context, actor appauth.Actor, id int64) (*models.Student, error) {
	student, err := s.students.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.policy.CanViewStudent(ctx, actor, student); err != nil {
		return nil, err
	}

	return student, nil
}

// List returns a page of students the actor may see. Staff get the whole
// school (optionally filtered); students and parents only their own records.
func (s *StudentService) List(ctx context.Context, actor appauth.Actor, filter repositories.StudentFilter, page, limit int) ([]*models.Student, int64, error) {
	visible, err := s.policy.VisibleStudentIDs(ctx, actor)
	if err != nil {
		return nil, 0, err
	}

	if visible != nil {
		// Non-staff: resolve the small fixed set directly, ignoring filters.
		students := make([]*models.Student, 0, len(visible))
		for _, id := range visible {
			student, err := s.students.GetByID(ctx, id)
			if err != nil {
				continue
			}
			students = append(students, student)
		}
		return students, int64(len(students)), nil
	}

	offset, limit := helpers.CalculateOffsetLimit(page, limit)
	return s.students.List(ctx, actor.SchoolID, filter, offset, limit)
}

// Update applies a partial update to a student. Class membership is not
// touched here; use Transfer for that.
func (s *StudentService) Update(ctx context.Context, actor appauth.Actor, id int64, req *dto.UpdateStudentRequest) (*models.Student, error) {
	student, err := s.students.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.policy.CanModifyStudent(ctx, actor, student); err != nil {
		return nil, err
	}

	if req.FullName != nil {
		student.FullName = *req.FullName
	}
	if req.DateOfBirth != nil {
		dob, err := time.Parse(dateLayout, *req.DateOfBirth)
		if err != nil {
			return nil, apperrors.NewBadRequestError("dateOfBirth must be YYYY-MM-DD")
		}
		student.DateOfBirth = dob
	}
	if req.Gender != nil {
		student.Gender = *req.Gender
	}
	if req.ParentID != nil {
		student.ParentID = req.ParentID
	}
	if req.Status != nil {
		if !models.ValidStudentStatus(*req.Status) {
			return nil, apperrors.NewBadRequestError("unknown student status: " + *req.Status)
		}
		student.Status = models.StudentStatus(*req.Status)
	}
	if req.Email != nil {
		student.Email = req.Email
	}

	if err := s.students.Update(ctx, student); err != nil {
		return nil, err
	}

	return student, nil
}

// Transfer moves a student to another class, or out of any class when the
// target is nil. Seat counters on both sides move in the same transaction.
func (s *StudentService) Transfer(ctx context.Context, actor appauth.Actor, id int64, newClassID *int64) (*models.Student, error) {
	student, err := s.students.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.policy.CanModifyStudent(ctx, actor, student); err != nil {
		return nil, err
	}

	if err := s.students.Transfer(ctx, id, newClassID); err != nil {
		return nil, err
	}

	logger.Info().Int64("studentId", id).Msg("Student transferred")
	return s.students.GetByID(ctx, id)
}

// Delete removes a student and releases their class seat.
func (s *StudentService) Delete(ctx context.Context, actor appauth.Actor, id int64) error {
	student, err := s.students.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.policy.CanModifyStudent(ctx, actor, student); err != nil {
		return err
	}

	return s.students.Delete(ctx, id)
}
