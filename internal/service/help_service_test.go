package service

import (
	"testing"

	"calm_learning_hub/internal/model"
	"calm_learning_hub/internal/repository"
	"calm_learning_hub/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newHelpService(db *gorm.DB) *HelpService {
	return NewHelpService(repository.NewHelpRepository(db), repository.NewRosterRepository(db), nil)
}

func TestCreateHelpRequest(t *testing.T) {
	db := newTestDB(t)
	teacher := createUser(t, db, "teacher", model.Teacher)
	learner := createUser(t, db, "learner", model.Learner)
	linkTeacher(t, db, teacher.ID, learner.ID)

	svc := newHelpService(db)
	req, err := svc.Create(learner.ID, teacher.ID, "  I am stuck on step 2  ")
	require.NoError(t, err)
	assert.Equal(t, "I am stuck on step 2", req.Message)
	assert.False(t, req.Resolved)
}

func TestCreateHelpRequestEmptyMessage(t *testing.T) {
	db := newTestDB(t)
	teacher := createUser(t, db, "teacher", model.Teacher)
	learner := createUser(t, db, "learner", model.Learner)
	linkTeacher(t, db, teacher.ID, learner.ID)

	svc := newHelpService(db)
	_, err := svc.Create(learner.ID, teacher.ID, "   ")
	assert.ErrorIs(t, err, util.ErrEmptyMessage)
}

func TestCreateHelpRequestUnlinkedRecipient(t *testing.T) {
	db := newTestDB(t)
	teacher := createUser(t, db, "teacher", model.Teacher)
	learner := createUser(t, db, "learner", model.Learner)

	svc := newHelpService(db)
	_, err := svc.Create(learner.ID, teacher.ID, "hello")
	assert.ErrorIs(t, err, util.ErrNotLinked)
}

func TestListForRecipientNewestFirst(t *testing.T) {
	db := newTestDB(t)
	teacher := createUser(t, db, "teacher", model.Teacher)
	learner := createUser(t, db, "learner", model.Learner)
	linkTeacher(t, db, teacher.ID, learner.ID)

	svc := newHelpService(db)
	_, err := svc.Create(learner.ID, teacher.ID, "first")
	require.NoError(t, err)
	_, err = svc.Create(learner.ID, teacher.ID, "second")
	require.NoError(t, err)

	views, err := svc.ListForRecipient(teacher.ID)
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, "second", views[0].Message)
	assert.Equal(t, "learner", views[0].LearnerName)
}

func TestResolveOnlyRecipient(t *testing.T) {
	db := newTestDB(t)
	teacher := createUser(t, db, "teacher", model.Teacher)
	parent := createUser(t, db, "parent", model.Parent)
	learner := createUser(t, db, "learner", model.Learner)
	linkTeacher(t, db, teacher.ID, learner.ID)
	linkParent(t, db, parent.ID, learner.ID)

	svc := newHelpService(db)
	req, err := svc.Create(learner.ID, teacher.ID, "help me")
	require.NoError(t, err)

	err = svc.Resolve(parent.ID, req.ID)
	assert.ErrorIs(t, err, util.ErrPermissionDenied)

	require.NoError(t, svc.Resolve(teacher.ID, req.ID))

	views, err := svc.ListForRecipient(teacher.ID)
	require.NoError(t, err)
	assert.True(t, views[0].Resolved)
}

func TestResolveTwiceIsNoOp(t *testing.T) {
	db := newTestDB(t)
	teacher := createUser(t, db, "teacher", model.Teacher)
	learner := createUser(t, db, "learner", model.Learner)
	linkTeacher(t, db, teacher.ID, learner.ID)

	svc := newHelpService(db)
	req, err := svc.Create(learner.ID, teacher.ID, "help me")
	require.NoError(t, err)

	require.NoError(t, svc.Resolve(teacher.ID, req.ID))
	require.NoError(t, svc.Resolve(teacher.ID, req.ID))
}

func TestResolveUnknownRequest(t *testing.T) {
	db := newTestDB(t)
	teacher := createUser(t, db, "teacher", model.Teacher)

	svc := newHelpService(db)
	err := svc.Resolve(teacher.ID, 9999)
	assert.ErrorIs(t, err, util.ErrHelpNotFound)
}
