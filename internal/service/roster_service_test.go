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

func newRosterService(db *gorm.DB) *RosterService {
	return NewRosterService(repository.NewRosterRepository(db), repository.NewUserRepository(db))
}

func claimsFor(user *model.User) *util.Claims {
	return &util.Claims{UserID: user.ID, Role: user.Role, Email: user.Email}
}

func TestAddLearnerAsTeacher(t *testing.T) {
	db := newTestDB(t)
	teacher := createUser(t, db, "teacher", model.Teacher)
	learner := createUser(t, db, "learner", model.Learner)

	svc := newRosterService(db)
	require.NoError(t, svc.AddLearner(claimsFor(teacher), learner.ID))

	learners, err := svc.Learners(teacher.ID, model.Teacher)
	require.NoError(t, err)
	require.Len(t, learners, 1)
	assert.Equal(t, learner.ID, learners[0].ID)
}

func TestAddLearnerAsParent(t *testing.T) {
	db := newTestDB(t)
	parent := createUser(t, db, "parent", model.Parent)
	child := createUser(t, db, "child", model.Learner)

	svc := newRosterService(db)
	require.NoError(t, svc.AddLearner(claimsFor(parent), child.ID))

	children, err := svc.Learners(parent.ID, model.Parent)
	require.NoError(t, err)
	require.Len(t, children, 1)
	assert.Equal(t, child.ID, children[0].ID)

	// The parent link must not leak into the teacher roster.
	asTeacher, err := svc.Learners(parent.ID, model.Teacher)
	require.NoError(t, err)
	assert.Empty(t, asTeacher)
}

func TestAddLearnerRejectsDuplicates(t *testing.T) {
	db := newTestDB(t)
	teacher := createUser(t, db, "teacher", model.Teacher)
	learner := createUser(t, db, "learner", model.Learner)

	svc := newRosterService(db)
	require.NoError(t, svc.AddLearner(claimsFor(teacher), learner.ID))

	err := svc.AddLearner(claimsFor(teacher), learner.ID)
	assert.ErrorIs(t, err, util.ErrAlreadyLinked)
}

func TestAddLearnerRejectsNonLearner(t *testing.T) {
	db := newTestDB(t)
	teacher := createUser(t, db, "teacher", model.Teacher)
	other := createUser(t, db, "colleague", model.Teacher)

	svc := newRosterService(db)
	err := svc.AddLearner(claimsFor(teacher), other.ID)
	assert.ErrorIs(t, err, util.ErrNotALearner)
}

func TestAddLearnerUnknownUser(t *testing.T) {
	db := newTestDB(t)
	teacher := createUser(t, db, "teacher", model.Teacher)

	svc := newRosterService(db)
	err := svc.AddLearner(claimsFor(teacher), 9999)
	assert.ErrorIs(t, err, util.ErrUserNotFound)
}

func TestGrownUpsForLearner(t *testing.T) {
	db := newTestDB(t)
	teacher := createUser(t, db, "teacher", model.Teacher)
	parent := createUser(t, db, "parent", model.Parent)
	learner := createUser(t, db, "learner", model.Learner)
	linkTeacher(t, db, teacher.ID, learner.ID)
	linkParent(t, db, parent.ID, learner.ID)

	svc := newRosterService(db)
	grownUps, err := svc.GrownUpsForLearner(learner.ID)
	require.NoError(t, err)
	require.Len(t, grownUps, 2)

	ids := map[uint]bool{}
	for _, g := range grownUps {
		ids[g.ID] = true
	}
	assert.True(t, ids[teacher.ID])
	assert.True(t, ids[parent.ID])
}

func TestSearchLearnersMatchesNameAndEmail(t *testing.T) {
	db := newTestDB(t)
	createUser(t, db, "oliver", model.Learner)
	createUser(t, db, "amelia", model.Learner)
	createUser(t, db, "oliver-teacher", model.Teacher)

	svc := newRosterService(db)

	byName, err := svc.SearchLearners("oli")
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "oliver", byName[0].Name)

	byEmail, err := svc.SearchLearners("amelia@example")
	require.NoError(t, err)
	require.Len(t, byEmail, 1)

	none, err := svc.SearchLearners("")
	require.NoError(t, err)
	assert.Empty(t, none)
}
