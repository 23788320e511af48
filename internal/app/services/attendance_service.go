package services

import (
	"context"
	"time"

	appauth "github.com/altan/schoolhub/internal/app/auth"
	"github.com/altan/schoolhub/internal/app/models"
	"github.com/altan/schoolhub/internal/app/models/dto"
	"github.com/altan/schoolhub/internal/pkg/apperrors"
)

// AttendanceStore is the persistence surface AttendanceService depends on.
type AttendanceStore interface {
	Record(ctx context.Context, attendance *models.Attendance) error
	ListByClassDate(ctx context.Context, classID int64, date time.Time) ([]*models.Attendance, error)
	ListByStudent(ctx context.Context, studentID int64, from, to time.Time) ([]*models.Attendance, error)
	Summary(ctx context.Context, studentID int64) (*models.AttendanceSummary, error)
}

// AttendanceService implements daily attendance recording and queries.
type AttendanceService struct {
	attendance AttendanceStore
	students   GradeLookup
	classes    ClassStore
	policy     *appauth.PolicyService
}

// NewAttendanceService creates a new AttendanceService
func NewAttendanceService(attendance AttendanceStore, students GradeLookup, classes ClassStore, policy *appauth.PolicyService) *AttendanceService {
	return &AttendanceService{attendance: attendance, students: students, classes: classes, policy: policy}
}

// checkClass resolves the class and scopes it to the actor's school.
func (s *AttendanceService) checkClass(ctx context.Context, actor appauth.Actor, classID int64) (*models.Class, error) {
	class, err := s.classes.GetByID(ctx, classID)
	if err != nil {
		return nil, err
	}
	if err := appauth.CheckSchool(actor, class.SchoolID); err != nil {
		return nil, err
	}
	return class, nil
}

// Record writes one student's attendance for one day. A second record for the
// same day replaces the first. The class must belong to the actor's school and
// the student must be enrolled in it.
func (s *AttendanceService) Record(ctx context.Context, actor appauth.Actor, req *dto.RecordAttendanceRequest) (*models.Attendance, error) {
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return nil, apperrors.NewBadRequestError("date must be YYYY-MM-DD")
	}
	if !models.ValidAttendanceStatus(req.Status) {
		return nil, apperrors.NewBadRequestError("unknown attendance status: " + req.Status)
	}

	student, err := s.students.GetByID(ctx, req.StudentID)
	if err != nil {
		return nil, err
	}
	if err := s.policy.CanModifyStudent(ctx, actor, student); err != nil {
		return nil, err
	}

	if _, err := s.checkClass(ctx, actor, req.ClassID); err != nil {
		return nil, err
	}
	if student.ClassID == nil || *student.ClassID != req.ClassID {
		return nil, apperrors.ErrStudentNotEnrolled
	}

	attendance := &models.Attendance{
		StudentID:  req.StudentID,
		ClassID:    req.ClassID,
		Date:       date,
		Status:     models.AttendanceStatus(req.Status),
		RecordedBy: actor.UserID,
		SchoolID:   actor.SchoolID,
	}
	if req.Note != "" {
		attendance.Note = &req.Note
	}

	if err := s.attendance.Record(ctx, attendance); err != nil {
		return nil, err
	}

	return attendance, nil
}

// ListByClassDate returns a class's attendance sheet for one day. Staff only;
// the route enforces the role, the class is scoped to the actor's school.
func (s *AttendanceService) ListByClassDate(ctx context.Context, actor appauth.Actor, classID int64, date string) ([]*models.Attendance, error) {
	day, err := time.Parse(dateLayout, date)
	if err != nil {
		return nil, apperrors.NewBadRequestError("date must be YYYY-MM-DD")
	}
	if _, err := s.checkClass(ctx, actor, classID); err != nil {
		return nil, err
	}
	return s.attendance.ListByClassDate(ctx, classID, day)
}

// ListByStudent returns one student's attendance in a date range, after a
// row-level policy check.
func (s *AttendanceService) ListByStudent(ctx context.Context, actor appauth.Actor, studentID int64, from, to string) ([]*models.Attendance, error) {
	student, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if err := s.policy.CanViewStudent(ctx, actor, student); err != nil {
		return nil, err
	}

	fromDay, err := time.Parse(dateLayout, from)
	if err != nil {
		return nil, apperrors.NewBadRequestError("from must be YYYY-MM-DD")
	}
	toDay, err := time.Parse(dateLayout, to)
	if err != nil {
		return nil, apperrors.NewBadRequestError("to must be YYYY-MM-DD")
	}

	return s.attendance.ListByStudent(ctx, studentID, fromDay, toDay)
}

// Summary returns one student's per-status attendance counts.
func (s *AttendanceService) Summary(ctx context.Context, actor appauth.Actor, studentID int64) (*models.AttendanceSummary, error) {
	student, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if err := s.policy.CanViewStudent(ctx, actor, student); err != nil {
		return nil, err
	}

	return s.attendance.Summary(ctx, studentID)
}
