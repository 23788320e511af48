package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appauth "github.com/altan/schoolhub/internal/app/auth"
	"github.com/altan/schoolhub/internal/app/models"
	"github.com/altan/schoolhub/internal/app/models/dto"
	"github.com/altan/schoolhub/internal/pkg/apperrors"
)

// fakeAttendanceStore keeps one row per (student, date), mirroring the upsert
// behavior of the SQL store.
type fakeAttendanceStore struct {
	rows   []*models.Attendance
	nextID int64
}

func (f *fakeAttendanceStore) Record(ctx context.Context, attendance *models.Attendance) error {
	for _, row := range f.rows {
		if row.StudentID == attendance.StudentID && row.Date.Equal(attendance.Date) {
			attendance.ID = row.ID
			*row = *attendance
			return nil
		}
	}
	f.nextID++
	attendance.ID = f.nextID
	stored := *attendance
	f.rows = append(f.rows, &stored)
	return nil
}

func (f *fakeAttendanceStore) ListByClassDate(ctx context.Context, classID int64, date time.Time) ([]*models.Attendance, error) {
	var out []*models.Attendance
	for _, row := range f.rows {
		if row.ClassID == classID && row.Date.Equal(date) {
			out = append(out, row)
		}
	}
	return out, nil
}

func (f *fakeAttendanceStore) ListByStudent(ctx context.Context, studentID int64, from, to time.Time) ([]*models.Attendance, error) {
	var out []*models.Attendance
	for _, row := range f.rows {
		if row.StudentID == studentID && !row.Date.Before(from) && !row.Date.After(to) {
			out = append(out, row)
		}
	}
	return out, nil
}

func (f *fakeAttendanceStore) Summary(ctx context.Context, studentID int64) (*models.AttendanceSummary, error) {
	summary := &models.AttendanceSummary{StudentID: studentID}
	for _, row := range f.rows {
		if row.StudentID != studentID {
			continue
		}
		summary.Total++
		switch row.Status {
		case models.AttendancePresent:
			summary.Present++
		case models.AttendanceAbsent:
			summary.Absent++
		case models.AttendanceLate:
			summary.Late++
		case models.AttendanceExcused:
			summary.Excused++
		}
	}
	return summary, nil
}

func classRef(id int64) *int64 { return &id }

func newAttendanceFixture() (*AttendanceService, *fakeAttendanceStore, *fakeClassStore) {
	students := &fakeStudentDirectory{students: map[int64]*models.Student{
		1: {ID: 1, SchoolID: 1, ClassID: classRef(5), Status: models.StudentActive},
	}}
	classes := &fakeClassStore{classes: map[int64]*models.Class{
		5: {ID: 5, SchoolID: 1},
		9: {ID: 9, SchoolID: 2},
	}}
	store := &fakeAttendanceStore{}
	policy := appauth.NewPolicyService(students)
	return NewAttendanceService(store, students, classes, policy), store, classes
}

func recordRequest(studentID, classID int64, status string) *dto.RecordAttendanceRequest {
	return &dto.RecordAttendanceRequest{
		StudentID: studentID,
		ClassID:   classID,
		Date:      "2024-03-11",
		Status:    status,
	}
}

func TestRecordAttendance(t *testing.T) {
	svc, store, _ := newAttendanceFixture()

	attendance, err := svc.Record(context.Background(), teacherActor(), recordRequest(1, 5, "PRESENT"))

	require.NoError(t, err)
	assert.Equal(t, models.AttendancePresent, attendance.Status)
	assert.Equal(t, int64(12), attendance.RecordedBy)
	assert.Len(t, store.rows, 1)
}

func TestRecordAttendanceSameDayReplaces(t *testing.T) {
	svc, store, _ := newAttendanceFixture()
	ctx := context.Background()

	_, err := svc.Record(ctx, teacherActor(), recordRequest(1, 5, "PRESENT"))
	require.NoError(t, err)
	attendance, err := svc.Record(ctx, teacherActor(), recordRequest(1, 5, "LATE"))
	require.NoError(t, err)

	assert.Len(t, store.rows, 1)
	assert.Equal(t, models.AttendanceLate, attendance.Status)
}

func TestRecordAttendanceRejectsBadDate(t *testing.T) {
	svc, _, _ := newAttendanceFixture()

	req := recordRequest(1, 5, "PRESENT")
	req.Date = "11-03-2024"
	_, err := svc.Record(context.Background(), teacherActor(), req)

	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestRecordAttendanceRejectsUnknownStatus(t *testing.T) {
	svc, _, _ := newAttendanceFixture()

	_, err := svc.Record(context.Background(), teacherActor(), recordRequest(1, 5, "SKIPPED"))

	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestRecordAttendanceForeignSchoolClassDenied(t *testing.T) {
	svc, store, _ := newAttendanceFixture()

	_, err := svc.Record(context.Background(), teacherActor(), recordRequest(1, 9, "PRESENT"))

	assert.ErrorIs(t, err, apperrors.ErrAccessDenied)
	assert.Empty(t, store.rows)
}

func TestRecordAttendanceWrongClassRejected(t *testing.T) {
	svc, store, classes := newAttendanceFixture()
	ctx := context.Background()

	// Unknown class.
	_, err := svc.Record(ctx, teacherActor(), recordRequest(1, 6, "PRESENT"))
	assert.ErrorIs(t, err, apperrors.ErrClassNotFound)

	// A real same-school class the student is not enrolled in is rejected too.
	classes.classes[6] = &models.Class{ID: 6, SchoolID: 1}
	_, err = svc.Record(ctx, teacherActor(), recordRequest(1, 6, "PRESENT"))
	assert.ErrorIs(t, err, apperrors.ErrStudentNotEnrolled)
	assert.Empty(t, store.rows)
}

func TestListByClassDate(t *testing.T) {
	svc, _, _ := newAttendanceFixture()
	ctx := context.Background()

	_, err := svc.Record(ctx, teacherActor(), recordRequest(1, 5, "ABSENT"))
	require.NoError(t, err)

	records, err := svc.ListByClassDate(ctx, teacherActor(), 5, "2024-03-11")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, models.AttendanceAbsent, records[0].Status)
}

func TestListByClassDateForeignSchoolDenied(t *testing.T) {
	svc, store, _ := newAttendanceFixture()
	ctx := context.Background()

	_, err := svc.Record(ctx, teacherActor(), recordRequest(1, 5, "PRESENT"))
	require.NoError(t, err)

	// A staff actor from another school cannot read this school's sheet.
	outsider := appauth.Actor{UserID: 40, Role: models.RoleTeacher, SchoolID: 2}
	records, err := svc.ListByClassDate(ctx, outsider, 5, "2024-03-11")

	assert.ErrorIs(t, err, apperrors.ErrAccessDenied)
	assert.Empty(t, records)
	assert.Len(t, store.rows, 1)
}

func TestListByClassDateUnknownClass(t *testing.T) {
	svc, _, _ := newAttendanceFixture()

	_, err := svc.ListByClassDate(context.Background(), teacherActor(), 404, "2024-03-11")

	assert.ErrorIs(t, err, apperrors.ErrClassNotFound)
}

func TestSummaryCountsPerStatus(t *testing.T) {
	svc, _, _ := newAttendanceFixture()
	ctx := context.Background()

	days := map[string]string{
		"2024-03-11": "PRESENT",
		"2024-03-12": "PRESENT",
		"2024-03-13": "ABSENT",
		"2024-03-14": "LATE",
	}
	for date, status := range days {
		req := recordRequest(1, 5, status)
		req.Date = date
		_, err := svc.Record(ctx, teacherActor(), req)
		require.NoError(t, err)
	}

	summary, err := svc.Summary(ctx, teacherActor(), 1)
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Present)
	assert.Equal(t, 1, summary.Absent)
	assert.Equal(t, 1, summary.Late)
	assert.Equal(t, 4, summary.Total)
}
