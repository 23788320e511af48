package services

import (
	"context"

	appauth "github.com/altan/schoolhub/internal/app/auth"
	"github.com/altan/schoolhub/internal/app/models"
	"github.com/altan/schoolhub/internal/app/models/dto"
	"github.com/altan/schoolhub/internal/pkg/apperrors"
)

// SubjectStore is the persistence surface SubjectService depends on.
type SubjectStore interface {
	Create(ctx context.Context, subject *models.Subject) error
	GetByID(ctx context.Context, id int64) (*models.Subject, error)
	List(ctx context.Context, schoolID int64) ([]*models.Subject, error)
	Update(ctx context.Context, subject *models.Subject) error
	IsInUse(ctx context.Context, id int64) (bool, error)
	Delete(ctx context.Context, id int64) error
}

// SubjectService implements subject CRUD.
type SubjectService struct {
	subjects SubjectStore
}

// NewSubjectService creates a new SubjectService
func NewSubjectService(subjects SubjectStore) *SubjectService {
	return &SubjectService{subjects: subjects}
}

// Create adds a new subject to the actor's school.
func (s *SubjectService) Create(ctx context.Context, actor appauth.Actor, req *dto.CreateSubjectRequest) (*models.Subject, error) {
	subject := &models.Subject{
		Code:     req.Code,
		Name:     req.Name,
		Credits:  req.Credits,
		Color:    req.Color,
		SchoolID: actor.SchoolID,
	}

	if err := s.subjects.Create(ctx, subject); err != nil {
		return nil, err
	}

	return subject, nil
}

// GetByID returns one subject scoped to the actor's school.
func (s *SubjectService) GetByID(ctx context.Context, actor appauth.Actor, id int64) (*models.Subject, error) {
	subject, err := s.subjects.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := appauth.CheckSchool(actor, subject.SchoolID); err != nil {
		return nil, err
	}

	return subject, nil
}

// List returns all subjects of the actor's school.
func (s *SubjectService) List(ctx context.Context, actor appauth.Actor) ([]*models.Subject, error) {
	return s.subjects.List(ctx, actor.SchoolID)
}

// Update applies a partial update to a subject.
func (s *SubjectService) Update(ctx context.Context, actor appauth.Actor, id int64, req *dto.UpdateSubjectRequest) (*models.Subject, error) {
	subject, err := s.GetByID(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		subject.Name = *req.Name
	}
	if req.Credits != nil {
		subject.Credits = *req.Credits
	}
	if req.Color != nil {
		subject.Color = *req.Color
	}

	if err := s.subjects.Update(ctx, subject); err != nil {
		return nil, err
	}

	return subject, nil
}

// Delete removes a subject. Deletion is blocked while schedules or grades
// still reference it; the store repeats the check against the live data.
func (s *SubjectService) Delete(ctx context.Context, actor appauth.Actor, id int64) error {
	if _, err := s.GetByID(ctx, actor, id); err != nil {
		return err
	}

	inUse, err := s.subjects.IsInUse(ctx, id)
	if err != nil {
		return err
	}
	if inUse {
		return apperrors.ErrSubjectInUse
	}

	return s.subjects.Delete(ctx, id)
}
