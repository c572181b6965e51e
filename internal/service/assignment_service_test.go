package service

import (
	"testing"
	"time"
	"training_platform_backend/internal/model"
	"training_platform_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeAssignmentStore struct {
	rows   map[uint]*model.Assignment
	nextID uint
}

func newFakeAssignmentStore() *fakeAssignmentStore {
	return &fakeAssignmentStore{rows: make(map[uint]*model.Assignment), nextID: 1}
}

func (f *fakeAssignmentStore) Create(a *model.Assignment) error {
	a.ID = f.nextID
	f.nextID++
	copied := *a
	f.rows[a.ID] = &copied
	return nil
}

func (f *fakeAssignmentStore) FindByID(id uint) (*model.Assignment, error) {
	a, ok := f.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return a, nil
}

func (f *fakeAssignmentStore) Delete(id uint) error {
	delete(f.rows, id)
	return nil
}

func (f *fakeAssignmentStore) ListAll() ([]model.Assignment, error) {
	out := make([]model.Assignment, 0, len(f.rows))
	for _, a := range f.rows {
		out = append(out, *a)
	}
	return out, nil
}

func (f *fakeAssignmentStore) ListForUser(user *model.User) ([]model.Assignment, error) {
	var out []model.Assignment
	for _, a := range f.rows {
		switch a.Type {
		case model.AssignAll:
			out = append(out, *a)
		case model.AssignDepartment:
			if user.DepartmentID != nil && a.DepartmentID != nil && *user.DepartmentID == *a.DepartmentID {
				out = append(out, *a)
			}
		case model.AssignIndividual:
			if a.IndividualID != nil && *a.IndividualID == user.ID {
				out = append(out, *a)
			}
		}
	}
	return out, nil
}

type fakeUserFinder struct {
	users map[uint]*model.User
}

func (f *fakeUserFinder) FindByID(id uint) (*model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func assignmentFixture() (*AssignmentService, *fakeAssignmentStore) {
	_, modules, _, _, _ := newFixture()

	dept := uint(3)
	learner := &model.User{Role: model.Learner, DepartmentID: &dept}
	learner.ID = 7
	other := &model.User{Role: model.Learner}
	other.ID = 8

	store := newFakeAssignmentStore()
	users := &fakeUserFinder{users: map[uint]*model.User{7: learner, 8: other}}
	return NewAssignmentService(store, modules, users), store
}

func TestAssignmentCreateValidatesModule(t *testing.T) {
	svc, _ := assignmentFixture()

	err := svc.Create(&model.Assignment{ModuleID: 99, AssignedBy: 1, Type: model.AssignAll})
	assert.ErrorIs(t, err, util.ErrModuleNotFound)
}

func TestAssignmentCreateRejectsEmptyTarget(t *testing.T) {
	svc, _ := assignmentFixture()

	err := svc.Create(&model.Assignment{ModuleID: 1, AssignedBy: 1, Type: model.AssignDepartment})
	assert.ErrorIs(t, err, util.ErrValidation)

	err = svc.Create(&model.Assignment{ModuleID: 1, AssignedBy: 1, Type: "team"})
	assert.ErrorIs(t, err, util.ErrValidation)
}

func TestAssignmentCreateValidatesIndividual(t *testing.T) {
	svc, _ := assignmentFixture()

	missing := uint(99)
	err := svc.Create(&model.Assignment{ModuleID: 1, AssignedBy: 1, Type: model.AssignIndividual, IndividualID: &missing})
	assert.ErrorIs(t, err, util.ErrUserNotFound)
}

func TestAssignmentPayloadRoundTripsVerbatim(t *testing.T) {
	svc, store := assignmentFixture()

	due := time.Date(2026, 9, 15, 17, 0, 0, 0, time.UTC)
	dept := uint(3)
	in := &model.Assignment{
		ModuleID:     1,
		AssignedBy:   2,
		Type:         model.AssignDepartment,
		DepartmentID: &dept,
		DueDate:      &due,
		IsMandatory:  true,
		Notes:        "Finish before the audit.",
	}
	require.NoError(t, svc.Create(in))

	stored := store.rows[in.ID]
	require.NotNil(t, stored)
	assert.Equal(t, in.ModuleID, stored.ModuleID)
	assert.Equal(t, in.Type, stored.Type)
	assert.Equal(t, dept, *stored.DepartmentID)
	assert.True(t, stored.DueDate.Equal(due))
	assert.True(t, stored.IsMandatory)
	assert.Equal(t, "Finish before the audit.", stored.Notes)
}

func TestAssignmentListForUserTargeting(t *testing.T) {
	svc, _ := assignmentFixture()

	dept := uint(3)
	individual := uint(7)
	require.NoError(t, svc.Create(&model.Assignment{ModuleID: 1, AssignedBy: 2, Type: model.AssignAll}))
	require.NoError(t, svc.Create(&model.Assignment{ModuleID: 1, AssignedBy: 2, Type: model.AssignDepartment, DepartmentID: &dept}))
	require.NoError(t, svc.Create(&model.Assignment{ModuleID: 2, AssignedBy: 2, Type: model.AssignIndividual, IndividualID: &individual}))

	// User 7 is in department 3 and individually targeted: sees all three.
	mine, err := svc.ListForUser(7)
	require.NoError(t, err)
	assert.Len(t, mine, 3)

	// User 8 has no department: only the global assignment.
	theirs, err := svc.ListForUser(8)
	require.NoError(t, err)
	assert.Len(t, theirs, 1)

	_, err = svc.ListForUser(99)
	assert.ErrorIs(t, err, util.ErrUserNotFound)
}

func TestAssignmentDelete(t *testing.T) {
	svc, store := assignmentFixture()

	a := &model.Assignment{ModuleID: 1, AssignedBy: 2, Type: model.AssignAll}
	require.NoError(t, svc.Create(a))

	require.NoError(t, svc.Delete(a.ID))
	assert.Empty(t, store.rows)

	assert.ErrorIs(t, svc.Delete(a.ID), util.ErrValidation)
}
