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

func newSubjectFixture() (*SubjectService, *fakeSubjectStore) {
	subjects := &fakeSubjectStore{
		subjects: make(map[int64]*models.Subject),
		inUse:    make(map[int64]bool),
	}
	return NewSubjectService(subjects), subjects
}

func TestCreateSubjectAssignsActorSchool(t *testing.T) {
	svc, _ := newSubjectFixture()

	subject, err := svc.Create(context.Background(), adminActor(), &dto.CreateSubjectRequest{
		Code:    "MATH10",
		Name:    "Mathematics",
		Credits: 3,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), subject.SchoolID)
	assert.Equal(t, "MATH10", subject.Code)
}

func TestDeleteSubjectBlockedWhileReferenced(t *testing.T) {
	svc, store := newSubjectFixture()
	ctx := context.Background()

	subject, err := svc.Create(ctx, adminActor(), &dto.CreateSubjectRequest{
		Code: "MATH10", Name: "Mathematics", Credits: 3,
	})
	require.NoError(t, err)
	store.inUse[subject.ID] = true

	err = svc.Delete(ctx, adminActor(), subject.ID)

	assert.ErrorIs(t, err, apperrors.ErrSubjectInUse)
	assert.Contains(t, store.subjects, subject.ID)
}

func TestDeleteUnreferencedSubject(t *testing.T) {
	svc, store := newSubjectFixture()
	ctx := context.Background()

	subject, err := svc.Create(ctx, adminActor(), &dto.CreateSubjectRequest{
		Code: "MATH10", Name: "Mathematics", Credits: 3,
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, adminActor(), subject.ID))
	assert.NotContains(t, store.subjects, subject.ID)
}

func TestGetSubjectCrossSchoolDenied(t *testing.T) {
	svc, store := newSubjectFixture()
	ctx := context.Background()

	subject, err := svc.Create(ctx, adminActor(), &dto.CreateSubjectRequest{
		Code: "MATH10", Name: "Mathematics", Credits: 3,
	})
	require.NoError(t, err)
	store.subjects[subject.ID].SchoolID = 2

	_, err = svc.GetByID(ctx, adminActor(), subject.ID)
	assert.ErrorIs(t, err, apperrors.ErrAccessDenied)
}