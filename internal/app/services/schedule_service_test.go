package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appauth "github.com/altan/schoolhub/internal/app/auth"
	"github.com/altan/schoolhub/internal/app/models"
	"github.com/altan/schoolhub/internal/app/models/dto"
	"github.com/altan/schoolhub/internal/app/repositories"
	"github.com/altan/schoolhub/internal/pkg/apperrors"
)

// fakeScheduleStore enforces the same slot-uniqueness rules as the schema
// constraints.
type fakeScheduleStore struct {
	rows   map[int64]*models.Schedule
	nextID int64
}

func newFakeScheduleStore() *fakeScheduleStore {
	return &fakeScheduleStore{rows: make(map[int64]*models.Schedule), nextID: 1}
}

func (f *fakeScheduleStore) checkConflicts(s *models.Schedule, excludeID int64) error {
	for _, row := range f.rows {
		if row.ID == excludeID {
			continue
		}
		if row.DayOfWeek != s.DayOfWeek || row.Period != s.Period ||
			row.Semester != s.Semester || row.AcademicYear != s.AcademicYear {
			continue
		}
		if row.ClassID == s.ClassID {
			return apperrors.ErrClassSlotTaken
		}
		if row.TeacherID == s.TeacherID {
			return apperrors.ErrTeacherSlotTaken
		}
	}
	return nil
}

func (f *fakeScheduleStore) Create(ctx context.Context, schedule *models.Schedule) error {
	if err := f.checkConflicts(schedule, 0); err != nil {
		return err
	}
	schedule.ID = f.nextID
	f.nextID++
	stored := *schedule
	f.rows[schedule.ID] = &stored
	return nil
}

func (f *fakeScheduleStore) GetByID(ctx context.Context, id int64) (*models.Schedule, error) {
	if row, ok := f.rows[id]; ok {
		return row, nil
	}
	return nil, apperrors.ErrScheduleNotFound
}

func (f *fakeScheduleStore) List(ctx context.Context, schoolID int64, filter repositories.ScheduleFilter) ([]*models.Schedule, error) {
	var out []*models.Schedule
	for _, row := range f.rows {
		if row.SchoolID == schoolID {
			out = append(out, row)
		}
	}
	return out, nil
}

func (f *fakeScheduleStore) Update(ctx context.Context, schedule *models.Schedule) error {
	if _, ok := f.rows[schedule.ID]; !ok {
		return apperrors.ErrScheduleNotFound
	}
	if err := f.checkConflicts(schedule, schedule.ID); err != nil {
		return err
	}
	stored := *schedule
	f.rows[schedule.ID] = &stored
	return nil
}

func (f *fakeScheduleStore) Delete(ctx context.Context, id int64) error {
	if _, ok := f.rows[id]; !ok {
		return apperrors.ErrScheduleNotFound
	}
	delete(f.rows, id)
	return nil
}

type fakeClassStore struct {
	classes  map[int64]*models.Class
	enrolled map[int64]bool
	nextID   int64
}

func (f *fakeClassStore) Create(ctx context.Context, class *models.Class) error {
	f.nextID++
	class.ID = f.nextID
	stored := *class
	f.classes[class.ID] = &stored
	return nil
}

func (f *fakeClassStore) GetByID(ctx context.Context, id int64) (*models.Class, error) {
	if c, ok := f.classes[id]; ok {
		return c, nil
	}
	return nil, apperrors.ErrClassNotFound
}

func (f *fakeClassStore) List(ctx context.Context, schoolID int64, academicYear string, offset uint64, limit int) ([]*models.Class, int64, error) {
	return nil, 0, nil
}

func (f *fakeClassStore) Update(ctx context.Context, class *models.Class) error {
	stored := *class
	f.classes[class.ID] = &stored
	return nil
}

func (f *fakeClassStore) HasStudents(ctx context.Context, id int64) (bool, error) {
	return f.enrolled[id], nil
}

func (f *fakeClassStore) Delete(ctx context.Context, id int64) error {
	if _, ok := f.classes[id]; !ok {
		return apperrors.ErrClassNotFound
	}
	delete(f.classes, id)
	return nil
}

type fakeSubjectStore struct {
	subjects map[int64]*models.Subject
	inUse    map[int64]bool
	nextID   int64
}

func (f *fakeSubjectStore) Create(ctx context.Context, subject *models.Subject) error {
	f.nextID++
	subject.ID = f.nextID
	stored := *subject
	f.subjects[subject.ID] = &stored
	return nil
}

func (f *fakeSubjectStore) GetByID(ctx context.Context, id int64) (*models.Subject, error) {
	if s, ok := f.subjects[id]; ok {
		return s, nil
	}
	return nil, apperrors.ErrSubjectNotFound
}

func (f *fakeSubjectStore) List(ctx context.Context, schoolID int64) ([]*models.Subject, error) {
	return nil, nil
}

func (f *fakeSubjectStore) Update(ctx context.Context, subject *models.Subject) error {
	stored := *subject
	f.subjects[subject.ID] = &stored
	return nil
}

func (f *fakeSubjectStore) IsInUse(ctx context.Context, id int64) (bool, error) {
	return f.inUse[id], nil
}

func (f *fakeSubjectStore) Delete(ctx context.Context, id int64) error {
	if _, ok := f.subjects[id]; !ok {
		return apperrors.ErrSubjectNotFound
	}
	delete(f.subjects, id)
	return nil
}

type fakeUserDirectory struct {
	users map[int64]*models.User
}

func (f *fakeUserDirectory) GetByID(ctx context.Context, id int64) (*models.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, apperrors.ErrUserNotFound
}

func newScheduleFixture() (*ScheduleService, *fakeScheduleStore) {
	store := newFakeScheduleStore()
	users := &fakeUserDirectory{users: map[int64]*models.User{
		12: {ID: 12, Role: models.RoleTeacher, SchoolID: 1},
		13: {ID: 13, Role: models.RoleTeacher, SchoolID: 1},
		99: {ID: 99, Role: models.RoleParent, SchoolID: 1},
	}}
	classes := &fakeClassStore{classes: map[int64]*models.Class{
		5: {ID: 5, SchoolID: 1},
		6: {ID: 6, SchoolID: 1},
	}}
	subjects := &fakeSubjectStore{subjects: map[int64]*models.Subject{
		2: {ID: 2, SchoolID: 1},
	}}
	return NewScheduleService(store, users, classes, subjects), store
}

func adminActor() appauth.Actor {
	return appauth.Actor{UserID: 1, Role: models.RoleAdmin, SchoolID: 1}
}

func slotRequest(classID, teacherID int64, day, period int) *dto.CreateScheduleRequest {
	return &dto.CreateScheduleRequest{
		ClassID:      classID,
		SubjectID:    2,
		TeacherID:    teacherID,
		DayOfWeek:    day,
		Period:       period,
		Semester:     "1",
		AcademicYear: "2023-2024",
	}
}

func TestCreateScheduleSuccess(t *testing.T) {
	svc, _ := newScheduleFixture()

	schedule, err := svc.Create(context.Background(), adminActor(), slotRequest(5, 12, 1, 3))

	require.NoError(t, err)
	assert.Equal(t, int64(1), schedule.SchoolID)
	assert.Equal(t, 1, schedule.DayOfWeek)
}

func TestCreateScheduleClassDoubleBooked(t *testing.T) {
	svc, _ := newScheduleFixture()
	ctx := context.Background()

	_, err := svc.Create(ctx, adminActor(), slotRequest(5, 12, 1, 3))
	require.NoError(t, err)

	// Same class, same slot, different teacher.
	_, err = svc.Create(ctx, adminActor(), slotRequest(5, 13, 1, 3))
	assert.ErrorIs(t, err, apperrors.ErrClassSlotTaken)
}

func TestCreateScheduleTeacherDoubleBooked(t *testing.T) {
	svc, _ := newScheduleFixture()
	ctx := context.Background()

	_, err := svc.Create(ctx, adminActor(), slotRequest(5, 12, 1, 3))
	require.NoError(t, err)

	// Same teacher, same slot, different class.
	_, err = svc.Create(ctx, adminActor(), slotRequest(6, 12, 1, 3))
	assert.ErrorIs(t, err, apperrors.ErrTeacherSlotTaken)
}

func TestCreateScheduleDifferentSlotNoConflict(t *testing.T) {
	svc, _ := newScheduleFixture()
	ctx := context.Background()

	_, err := svc.Create(ctx, adminActor(), slotRequest(5, 12, 1, 3))
	require.NoError(t, err)

	_, err = svc.Create(ctx, adminActor(), slotRequest(5, 12, 1, 4))
	assert.NoError(t, err)
}

func TestCreateScheduleRejectsNonTeacher(t *testing.T) {
	svc, _ := newScheduleFixture()

	_, err := svc.Create(context.Background(), adminActor(), slotRequest(5, 99, 1, 3))

	assert.ErrorIs(t, err, apperrors.ErrScheduleTeacherWrong)
}

func TestUpdateScheduleRechecksConflicts(t *testing.T) {
	svc, _ := newScheduleFixture()
	ctx := context.Background()

	first, err := svc.Create(ctx, adminActor(), slotRequest(5, 12, 1, 3))
	require.NoError(t, err)
	_, err = svc.Create(ctx, adminActor(), slotRequest(6, 13, 1, 3))
	require.NoError(t, err)

	// Moving the first slot's teacher onto an occupied slot conflicts.
	teacherID := int64(13)
	_, err = svc.Update(ctx, adminActor(), first.ID, &dto.UpdateScheduleRequest{TeacherID: &teacherID})
	assert.ErrorIs(t, err, apperrors.ErrTeacherSlotTaken)
}

func TestGetScheduleCrossSchoolDenied(t *testing.T) {
	svc, store := newScheduleFixture()
	ctx := context.Background()

	schedule, err := svc.Create(ctx, adminActor(), slotRequest(5, 12, 1, 3))
	require.NoError(t, err)
	store.rows[schedule.ID].SchoolID = 2

	_, err = svc.GetByID(ctx, adminActor(), schedule.ID)
	assert.ErrorIs(t, err, apperrors.ErrAccessDenied)
}
