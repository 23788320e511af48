package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/altan/schoolhub/internal/app/models"
	"github.com/altan/schoolhub/internal/app/models/dto"
	"github.com/altan/schoolhub/internal/pkg/apperrors"
)

func newClassFixture() (*ClassService, *fakeClassStore) {
	classes := &fakeClassStore{
		classes:  make(map[int64]*models.Class),
		enrolled: make(map[int64]bool),
	}
	users := &fakeUserDirectory{users: map[int64]*models.User{
		12: {ID: 12, Role: models.RoleTeacher, SchoolID: 1},
		99: {ID: 99, Role: models.RoleParent, SchoolID: 1},
		40: {ID: 40, Role: models.RoleTeacher, SchoolID: 2},
	}}
	return NewClassService(classes, users), classes
}

func classRequest(code string) *dto.CreateClassRequest {
	return &dto.CreateClassRequest{
		Code:         code,
		Name:         "Grade 5A",
		GradeLevel:   5,
		AcademicYear: "2023-2024",
		MaxStudents:  30,
	}
}

func TestCreateClassAssignsActorSchool(t *testing.T) {
	svc, _ := newClassFixture()

	class, err := svc.Create(context.Background(), adminActor(), classRequest("5A"))

	require.NoError(t, err)
	assert.Equal(t, int64(1), class.SchoolID)
	assert.Equal(t, 30, class.MaxStudents)
}

func TestCreateClassRejectsNonTeacherHomeroom(t *testing.T) {
	svc, _ := newClassFixture()

	req := classRequest("5A")
	homeroom := int64(99)
	req.HomeroomTeacherID = &homeroom
	_, err := svc.Create(context.Background(), adminActor(), req)

	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestCreateClassRejectsForeignSchoolHomeroom(t *testing.T) {
	svc, _ := newClassFixture()

	req := classRequest("5A")
	homeroom := int64(40)
	req.HomeroomTeacherID = &homeroom
	_, err := svc.Create(context.Background(), adminActor(), req)

	assert.ErrorIs(t, err, apperrors.ErrAccessDenied)
}

func TestUpdateClassRejectsShrinkBelowEnrollment(t *testing.T) {
	svc, store := newClassFixture()
	ctx := context.Background()

	class, err := svc.Create(ctx, adminActor(), classRequest("5A"))
	require.NoError(t, err)
	store.classes[class.ID].CurrentStudents = 25

	smaller := 20
	_, err = svc.Update(ctx, adminActor(), class.ID, &dto.UpdateClassRequest{MaxStudents: &smaller})
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)

	larger := 40
	updated, err := svc.Update(ctx, adminActor(), class.ID, &dto.UpdateClassRequest{MaxStudents: &larger})
	require.NoError(t, err)
	assert.Equal(t, 40, updated.MaxStudents)
}

func TestDeleteClassBlockedWhileStudentsEnrolled(t *testing.T) {
	svc, store := newClassFixture()
	ctx := context.Background()

	class, err := svc.Create(ctx, adminActor(), classRequest("5A"))
	require.NoError(t, err)
	store.enrolled[class.ID] = true

	err = svc.Delete(ctx, adminActor(), class.ID)

	assert.ErrorIs(t, err, apperrors.ErrClassHasStudents)
	assert.Contains(t, store.classes, class.ID)
}

func TestDeleteEmptyClass(t *testing.T) {
	svc, store := newClassFixture()
	ctx := context.Background()

	class, err := svc.Create(ctx, adminActor(), classRequest("5A"))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, adminActor(), class.ID))
	assert.NotContains(t, store.classes, class.ID)
}

func TestGetClassCrossSchoolDenied(t *testing.T) {
	svc, store := newClassFixture()
	ctx := context.Background()

	class, err := svc.Create(ctx, adminActor(), classRequest("5A"))
	require.NoError(t, err)
	store.classes[class.ID].SchoolID = 2

	_, err = svc.GetByID(ctx, adminActor(), class.ID)
	assert.ErrorIs(t, err, apperrors.ErrAccessDenied)
}