package services

import (
	"context"
	"errors"

	appauth "github.com/altan/schoolhub/internal/app/auth"
	"github.com/altan/schoolhub/internal/app/models"
	"github.com/altan/schoolhub/internal/app/models/dto"
	"github.com/altan/schoolhub/internal/app/repositories"
	"github.com/altan/schoolhub/internal/pkg/apperrors"
)

// ScheduleStore is the persistence surface ScheduleService depends on.
type ScheduleStore interface {
	Create(ctx context.Context, schedule *models.Schedule) error
	GetByID(ctx context.Context, id int64) (*models.Schedule, error)
	List(ctx context.Context, schoolID int64, filter repositories.ScheduleFilter) ([]*models.Schedule, error)
	Update(ctx context.Context, schedule *models.Schedule) error
	Delete(ctx context.Context, id int64) error
}

// ScheduleService implements timetable CRUD with conflict checking.
type ScheduleService struct {
	schedules ScheduleStore
	users     TeacherDirectory
	classes   ClassStore
	subjects  SubjectStore
}

// NewScheduleService creates a new ScheduleService
func NewScheduleService(schedules ScheduleStore, users TeacherDirectory, classes ClassStore, subjects SubjectStore) *ScheduleService {
	return &ScheduleService{schedules: schedules, users: users, classes: classes, subjects: subjects}
}

// checkReferences validates that class, subject and teacher all exist in the
// actor's school and that the teacher role matches.
func (s *ScheduleService) checkReferences(ctx context.Context, actor appauth.Actor, classID, subjectID, teacherID int64) error {
	class, err := s.classes.GetByID(ctx, classID)
	if err != nil {
		return err
	}
	if err := appauth.CheckSchool(actor, class.SchoolID); err != nil {
		return apperrors.ErrClassNotFound
	}

	subject, err := s.subjects.GetByID(ctx, subjectID)
	if err != nil {
		return err
	}
	if err := appauth.CheckSchool(actor, subject.SchoolID); err != nil {
		return apperrors.ErrSubjectNotFound
	}

	teacher, err := s.users.GetByID(ctx, teacherID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return apperrors.NewBadRequestError("teacher not found")
		}
		return err
	}
	if err := appauth.CheckSchool(actor, teacher.SchoolID); err != nil {
		return apperrors.NewBadRequestError("teacher not found")
	}
	if teacher.Role != models.RoleTeacher {
		return apperrors.ErrScheduleTeacherWrong
	}

	return nil
}

// Create adds a new timetable slot. Class-slot and teacher-slot collisions
// surface as conflicts whether they are caught by the pre-check or by the
// schema constraint under concurrency.
func (s *ScheduleService) Create(ctx context.Context, actor appauth.Actor, req *dto.CreateScheduleRequest) (*models.Schedule, error) {
	if err := s.checkReferences(ctx, actor, req.ClassID, req.SubjectID, req.TeacherID); err != nil {
		return nil, err
	}

	schedule := &models.Schedule{
		ClassID:      req.ClassID,
		SubjectID:    req.SubjectID,
		TeacherID:    req.TeacherID,
		DayOfWeek:    req.DayOfWeek,
		Period:       req.Period,
		Room:         req.Room,
		Semester:     req.Semester,
		AcademicYear: req.AcademicYear,
		SchoolID:     actor.SchoolID,
	}

	if err := s.schedules.Create(ctx, schedule); err != nil {
		return nil, err
	}

	return schedule, nil
}

// GetByID returns one slot scoped to the actor's school.
func (s *ScheduleService) GetByID(ctx context.Context, actor appauth.Actor, id int64) (*models.Schedule, error) {
	schedule, err := s.schedules.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := appauth.CheckSchool(actor, schedule.SchoolID); err != nil {
		return nil, err
	}

	return schedule, nil
}

// List returns the school's timetable, optionally filtered by class, teacher,
// semester or academic year.
func (s *ScheduleService) List(ctx context.Context, actor appauth.Actor, filter repositories.ScheduleFilter) ([]*models.Schedule, error) {
	return s.schedules.List(ctx, actor.SchoolID, filter)
}

// Update applies a partial update; conflict checks re-run against the merged
// slot.
func (s *ScheduleService) Update(ctx context.Context, actor appauth.Actor, id int64, req *dto.UpdateScheduleRequest) (*models.Schedule, error) {
	schedule, err := s.GetByID(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if req.SubjectID != nil {
		schedule.SubjectID = *req.SubjectID
	}
	if req.TeacherID != nil {
		schedule.TeacherID = *req.TeacherID
	}
	if req.DayOfWeek != nil {
		schedule.DayOfWeek = *req.DayOfWeek
	}
	if req.Period != nil {
		schedule.Period = *req.Period
	}
	if req.Room != nil {
		schedule.Room = *req.Room
	}

	if req.SubjectID != nil || req.TeacherID != nil {
		if err := s.checkReferences(ctx, actor, schedule.ClassID, schedule.SubjectID, schedule.TeacherID); err != nil {
			return nil, err
		}
	}

	if err := s.schedules.Update(ctx, schedule); err != nil {
		return nil, err
	}

	return schedule, nil
}

// Delete removes a timetable slot.
func (s *ScheduleService) Delete(ctx context.Context, actor appauth.Actor, id int64) error {
	if _, err := s.GetByID(ctx, actor, id); err != nil {
		return err
	}
	return s.schedules.Delete(ctx, id)
}
