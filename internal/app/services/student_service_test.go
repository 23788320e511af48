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

// fakeStudentStore enforces class capacity the way the SQL store does: the
// seat counter and the student row move together.
type fakeStudentStore struct {
	students map[int64]*models.Student
	classes  map[int64]*models.Class
	nextID   int64
}

func newFakeStudentStore() *fakeStudentStore {
	return &fakeStudentStore{
		students: make(map[int64]*models.Student),
		classes:  make(map[int64]*models.Class),
		nextID:   1,
	}
}

func (f *fakeStudentStore) reserveSeat(classID int64) error {
	class, ok := f.classes[classID]
	if !ok {
		return apperrors.ErrClassNotFound
	}
	if class.CurrentStudents >= class.MaxStudents {
		return apperrors.ErrClassFull
	}
	class.CurrentStudents++
	return nil
}

func (f *fakeStudentStore) releaseSeat(classID int64) {
	if class, ok := f.classes[classID]; ok && class.CurrentStudents > 0 {
		class.CurrentStudents--
	}
}

func (f *fakeStudentStore) Create(ctx context.Context, student *models.Student) error {
	for _, s := range f.students {
		if s.SchoolID == student.SchoolID && s.Code == student.Code {
			return apperrors.ErrStudentCodeExists
		}
	}
	if student.ClassID != nil {
		if err := f.reserveSeat(*student.ClassID); err != nil {
			return err
		}
	}
	student.ID = f.nextID
	f.nextID++
	stored := *student
	f.students[student.ID] = &stored
	return nil
}

func (f *fakeStudentStore) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	if s, ok := f.students[id]; ok {
		return s, nil
	}
	return nil, apperrors.ErrStudentNotFound
}

func (f *fakeStudentStore) List(ctx context.Context, schoolID int64, filter repositories.StudentFilter, offset uint64, limit int) ([]*models.Student, int64, error) {
	var out []*models.Student
	for _, s := range f.students {
		if s.SchoolID == schoolID {
			out = append(out, s)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeStudentStore) Update(ctx context.Context, student *models.Student) error {
	if _, ok := f.students[student.ID]; !ok {
		return apperrors.ErrStudentNotFound
	}
	stored := *student
	f.students[student.ID] = &stored
	return nil
}

func (f *fakeStudentStore) Transfer(ctx context.Context, studentID int64, newClassID *int64) error {
	student, ok := f.students[studentID]
	if !ok {
		return apperrors.ErrStudentNotFound
	}
	if newClassID != nil {
		if err := f.reserveSeat(*newClassID); err != nil {
			return err
		}
	}
	if student.ClassID != nil {
		f.releaseSeat(*student.ClassID)
	}
	student.ClassID = newClassID
	return nil
}

func (f *fakeStudentStore) Delete(ctx context.Context, id int64) error {
	student, ok := f.students[id]
	if !ok {
		return apperrors.ErrStudentNotFound
	}
	if student.ClassID != nil {
		f.releaseSeat(*student.ClassID)
	}
	delete(f.students, id)
	return nil
}

// policy lookups go through the same store
func (f *fakeStudentStore) GetByEmail(ctx context.Context, email string) (*models.Student, error) {
	for _, s := range f.students {
		if s.Email != nil && *s.Email == email {
			return s, nil
		}
	}
	return nil, apperrors.ErrStudentNotFound
}

func (f *fakeStudentStore) GetByParent(ctx context.Context, parentID int64) ([]*models.Student, error) {
	var out []*models.Student
	for _, s := range f.students {
		if s.ParentID != nil && *s.ParentID == parentID {
			out = append(out, s)
		}
	}
	return out, nil
}

func newStudentFixture() (*StudentService, *fakeStudentStore) {
	store := newFakeStudentStore()
	policy := appauth.NewPolicyService(store)
	return NewStudentService(store, policy), store
}

func createRequest(code string, classID *int64) *dto.CreateStudentRequest {
	return &dto.CreateStudentRequest{
		Code:        code,
		FullName:    "Alex Nguyen",
		DateOfBirth: "2010-09-15",
		Gender:      "FEMALE",
		ClassID:     classID,
	}
}

func TestCreateStudentEnrollsAndCountsSeat(t *testing.T) {
	svc, store := newStudentFixture()
	store.classes[5] = &models.Class{ID: 5, SchoolID: 1, MaxStudents: 30, CurrentStudents: 0}

	classID := int64(5)
	student, err := svc.Create(context.Background(), teacherActor(), createRequest("STU-1", &classID))

	require.NoError(t, err)
	assert.Equal(t, models.StudentActive, student.Status)
	assert.Equal(t, 1, store.classes[5].CurrentStudents)
}

func TestCreateStudentRejectsBadDate(t *testing.T) {
	svc, _ := newStudentFixture()

	req := createRequest("STU-1", nil)
	req.DateOfBirth = "15/09/2010"

	_, err := svc.Create(context.Background(), teacherActor(), req)
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestCreateStudentIntoFullClass(t *testing.T) {
	svc, store := newStudentFixture()
	store.classes[5] = &models.Class{ID: 5, SchoolID: 1, MaxStudents: 30, CurrentStudents: 29}

	classID := int64(5)

	// Seat 30 of 30 succeeds.
	_, err := svc.Create(context.Background(), teacherActor(), createRequest("STU-30", &classID))
	require.NoError(t, err)
	assert.Equal(t, 30, store.classes[5].CurrentStudents)

	// Seat 31 is rejected and the counter does not move.
	_, err = svc.Create(context.Background(), teacherActor(), createRequest("STU-31", &classID))
	assert.ErrorIs(t, err, apperrors.ErrClassFull)
	assert.Equal(t, 30, store.classes[5].CurrentStudents)
}

func TestTransferMovesSeatCounters(t *testing.T) {
	svc, store := newStudentFixture()
	store.classes[5] = &models.Class{ID: 5, SchoolID: 1, MaxStudents: 30}
	store.classes[6] = &models.Class{ID: 6, SchoolID: 1, MaxStudents: 30}

	classID := int64(5)
	student, err := svc.Create(context.Background(), teacherActor(), createRequest("STU-1", &classID))
	require.NoError(t, err)

	newClassID := int64(6)
	moved, err := svc.Transfer(context.Background(), teacherActor(), student.ID, &newClassID)
	require.NoError(t, err)

	assert.Equal(t, int64(6), *moved.ClassID)
	assert.Equal(t, 0, store.classes[5].CurrentStudents)
	assert.Equal(t, 1, store.classes[6].CurrentStudents)
}

func TestTransferToFullClassKeepsOriginalSeat(t *testing.T) {
	svc, store := newStudentFixture()
	store.classes[5] = &models.Class{ID: 5, SchoolID: 1, MaxStudents: 30}
	store.classes[6] = &models.Class{ID: 6, SchoolID: 1, MaxStudents: 1, CurrentStudents: 1}

	classID := int64(5)
	student, err := svc.Create(context.Background(), teacherActor(), createRequest("STU-1", &classID))
	require.NoError(t, err)

	newClassID := int64(6)
	_, err = svc.Transfer(context.Background(), teacherActor(), student.ID, &newClassID)

	assert.ErrorIs(t, err, apperrors.ErrClassFull)
	assert.Equal(t, 1, store.classes[5].CurrentStudents)
	assert.Equal(t, int64(5), *store.students[student.ID].ClassID)
}

func TestTransferOutOfAnyClass(t *testing.T) {
	svc, store := newStudentFixture()
	store.classes[5] = &models.Class{ID: 5, SchoolID: 1, MaxStudents: 30}

	classID := int64(5)
	student, err := svc.Create(context.Background(), teacherActor(), createRequest("STU-1", &classID))
	require.NoError(t, err)

	moved, err := svc.Transfer(context.Background(), teacherActor(), student.ID, nil)
	require.NoError(t, err)

	assert.Nil(t, moved.ClassID)
	assert.Equal(t, 0, store.classes[5].CurrentStudents)
}

func TestGetByIDDeniesUnlinkedParent(t *testing.T) {
	svc, store := newStudentFixture()
	student := &models.Student{ID: 1, SchoolID: 1, Status: models.StudentActive}
	store.students[1] = student

	parent := appauth.Actor{UserID: 30, Role: models.RoleParent, SchoolID: 1}
	_, err := svc.GetByID(context.Background(), parent, 1)

	assert.ErrorIs(t, err, apperrors.ErrAccessDenied)
}

func TestUpdateStudentStatus(t *testing.T) {
	svc, store := newStudentFixture()
	store.students[1] = &models.Student{ID: 1, SchoolID: 1, Status: models.StudentActive}

	status := "GRADUATED"
	updated, err := svc.Update(context.Background(), teacherActor(), 1, &dto.UpdateStudentRequest{Status: &status})

	require.NoError(t, err)
	assert.Equal(t, models.StudentGraduated, updated.Status)
}

func TestDeleteStudentReleasesSeat(t *testing.T) {
	svc, store := newStudentFixture()
	store.classes[5] = &models.Class{ID: 5, SchoolID: 1, MaxStudents: 30}

	classID := int64(5)
	student, err := svc.Create(context.Background(), teacherActor(), createRequest("STU-1", &classID))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), teacherActor(), student.ID))
	assert.Equal(t, 0, store.classes[5].CurrentStudents)
}
