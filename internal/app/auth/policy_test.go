package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/altan/schoolhub/internal/app/models"
	"github.com/altan/schoolhub/internal/pkg/apperrors"
)

type fakeDirectory struct {
	byEmail  map[string]*models.Student
	byParent map[int64][]*models.Student
}

func (f *fakeDirectory) GetByEmail(ctx context.Context, email string) (*models.Student, error) {
	if s, ok := f.byEmail[email]; ok {
		return s, nil
	}
	return nil, apperrors.ErrStudentNotFound
}

func (f *fakeDirectory) GetByParent(ctx context.Context, parentID int64) ([]*models.Student, error) {
	return f.byParent[parentID], nil
}

func strPtr(s string) *string { return &s }
func intPtr(i int64) *int64   { return &i }

func TestCheckSchoolDeniesCrossSchool(t *testing.T) {
	actor := Actor{UserID: 1, Role: models.RoleTeacher, SchoolID: 1}

	assert.NoError(t, CheckSchool(actor, 1))
	assert.ErrorIs(t, CheckSchool(actor, 2), apperrors.ErrAccessDenied)
}

func TestCanViewStudentStaffSameSchool(t *testing.T) {
	svc := NewPolicyService(&fakeDirectory{})
	student := &models.Student{ID: 10, SchoolID: 1}

	teacher := Actor{UserID: 5, Role: models.RoleTeacher, SchoolID: 1}
	assert.NoError(t, svc.CanViewStudent(context.Background(), teacher, student))

	admin := Actor{UserID: 6, Role: models.RoleAdmin, SchoolID: 1}
	assert.NoError(t, svc.CanViewStudent(context.Background(), admin, student))
}

func TestCanViewStudentCrossSchoolDeniedWithoutLeak(t *testing.T) {
	svc := NewPolicyService(&fakeDirectory{})
	student := &models.Student{ID: 10, SchoolID: 2}

	teacher := Actor{UserID: 5, Role: models.RoleTeacher, SchoolID: 1}
	err := svc.CanViewStudent(context.Background(), teacher, student)

	// The caller cannot tell an out-of-school record from a missing one.
	assert.ErrorIs(t, err, apperrors.ErrAccessDenied)
}

func TestCanViewStudentSelf(t *testing.T) {
	svc := NewPolicyService(&fakeDirectory{})
	student := &models.Student{ID: 10, SchoolID: 1, Email: strPtr("alex@school.edu")}

	self := Actor{UserID: 20, Email: "alex@school.edu", Role: models.RoleStudent, SchoolID: 1}
	assert.NoError(t, svc.CanViewStudent(context.Background(), self, student))

	other := Actor{UserID: 21, Email: "sam@school.edu", Role: models.RoleStudent, SchoolID: 1}
	assert.ErrorIs(t, svc.CanViewStudent(context.Background(), other, student), apperrors.ErrAccessDenied)
}

func TestCanViewStudentParentLinkage(t *testing.T) {
	svc := NewPolicyService(&fakeDirectory{})
	student := &models.Student{ID: 10, SchoolID: 1, ParentID: intPtr(30)}

	parent := Actor{UserID: 30, Role: models.RoleParent, SchoolID: 1}
	assert.NoError(t, svc.CanViewStudent(context.Background(), parent, student))

	unrelated := Actor{UserID: 31, Role: models.RoleParent, SchoolID: 1}
	assert.ErrorIs(t, svc.CanViewStudent(context.Background(), unrelated, student), apperrors.ErrAccessDenied)
}

func TestCanModifyStudentRequiresStaff(t *testing.T) {
	svc := NewPolicyService(&fakeDirectory{})
	student := &models.Student{ID: 10, SchoolID: 1, Email: strPtr("alex@school.edu")}

	self := Actor{UserID: 20, Email: "alex@school.edu", Role: models.RoleStudent, SchoolID: 1}
	assert.ErrorIs(t, svc.CanModifyStudent(context.Background(), self, student), apperrors.ErrPermissionDenied)

	teacher := Actor{UserID: 5, Role: models.RoleTeacher, SchoolID: 1}
	assert.NoError(t, svc.CanModifyStudent(context.Background(), teacher, student))
}

func TestVisibleStudentIDs(t *testing.T) {
	dir := &fakeDirectory{
		byEmail: map[string]*models.Student{
			"alex@school.edu": {ID: 10, SchoolID: 1},
		},
		byParent: map[int64][]*models.Student{
			30: {{ID: 10}, {ID: 11}},
		},
	}
	svc := NewPolicyService(dir)

	staff := Actor{UserID: 5, Role: models.RoleAdmin, SchoolID: 1}
	ids, err := svc.VisibleStudentIDs(context.Background(), staff)
	require.NoError(t, err)
	assert.Nil(t, ids)

	student := Actor{UserID: 20, Email: "alex@school.edu", Role: models.RoleStudent, SchoolID: 1}
	ids, err = svc.VisibleStudentIDs(context.Background(), student)
	require.NoError(t, err)
	assert.Equal(t, []int64{10}, ids)

	parent := Actor{UserID: 30, Role: models.RoleParent, SchoolID: 1}
	ids, err = svc.VisibleStudentIDs(context.Background(), parent)
	require.NoError(t, err)
	assert.Equal(t, []int64{10, 11}, ids)

	// A student with no matching record sees nothing, not an error.
	orphan := Actor{UserID: 22, Email: "ghost@school.edu", Role: models.RoleStudent, SchoolID: 1}
	ids, err = svc.VisibleStudentIDs(context.Background(), orphan)
	require.NoError(t, err)
	assert.Empty(t, ids)
}
