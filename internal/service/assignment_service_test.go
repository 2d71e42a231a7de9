package service

import (
	"testing"

	"calm_learning_hub/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const threeStepText = "Step 1: Sit down.\nStep 2: Open the book.\nStep 3: Read slowly."

func TestListForLearnerDerivesSteps(t *testing.T) {
	db := newTestDB(t)
	teacher := createUser(t, db, "teacher", model.Teacher)
	learner := createUser(t, db, "learner", model.Learner)
	lesson := createLesson(t, db, teacher, threeStepText)
	createAssignment(t, db, lesson.ID, learner.ID)

	svc := newAssignmentService(db)
	lessons, err := svc.ListForLearner(learner.ID)
	require.NoError(t, err)
	require.Len(t, lessons, 1)

	got := lessons[0]
	assert.Equal(t, lesson.ID, got.LessonID)
	assert.Equal(t, "teacher", got.OwnerName)
	assert.Equal(t, 3, got.TotalSteps)
	assert.Equal(t, 0, got.CurrentStep)
	assert.Equal(t, "Step 2: Open the book.", got.Steps[1])
	assert.Equal(t, model.AssignmentAssigned, got.Status)
}

func TestListForLearnerClampsStoredStep(t *testing.T) {
	db := newTestDB(t)
	teacher := createUser(t, db, "teacher", model.Teacher)
	learner := createUser(t, db, "learner", model.Learner)
	lesson := createLesson(t, db, teacher, threeStepText)
	a := createAssignment(t, db, lesson.ID, learner.ID)

	// A stale step beyond the lesson's range must come back clamped.
	require.NoError(t, db.Model(a).Update("progress_step", 99).Error)

	svc := newAssignmentService(db)
	lessons, err := svc.ListForLearner(learner.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, lessons[0].CurrentStep)
}

func TestStepForwardAndBack(t *testing.T) {
	db := newTestDB(t)
	teacher := createUser(t, db, "teacher", model.Teacher)
	learner := createUser(t, db, "learner", model.Learner)
	lesson := createLesson(t, db, teacher, threeStepText)
	a := createAssignment(t, db, lesson.ID, learner.ID)

	svc := newAssignmentService(db)

	step, err := svc.Step(learner.ID, a.ID, true)
	require.NoError(t, err)
	assert.Equal(t, 1, step)

	step, err = svc.Step(learner.ID, a.ID, false)
	require.NoError(t, err)
	assert.Equal(t, 0, step)
}

func TestStepStopsAtEdges(t *testing.T) {
	db := newTestDB(t)
	teacher := createUser(t, db, "teacher", model.Teacher)
	learner := createUser(t, db, "learner", model.Learner)
	lesson := createLesson(t, db, teacher, threeStepText)
	a := createAssignment(t, db, lesson.ID, learner.ID)

	svc := newAssignmentService(db)

	step, err := svc.Step(learner.ID, a.ID, false)
	require.NoError(t, err)
	assert.Equal(t, 0, step)

	for i := 0; i < 5; i++ {
		step, err = svc.Step(learner.ID, a.ID, true)
		require.NoError(t, err)
	}
	assert.Equal(t, 2, step)
}

func TestStepRejectsOtherLearners(t *testing.T) {
	db := newTestDB(t)
	teacher := createUser(t, db, "teacher", model.Teacher)
	learner := createUser(t, db, "learner", model.Learner)
	stranger := createUser(t, db, "stranger", model.Learner)
	lesson := createLesson(t, db, teacher, threeStepText)
	a := createAssignment(t, db, lesson.ID, learner.ID)

	svc := newAssignmentService(db)
	_, err := svc.Step(stranger.ID, a.ID, true)
	assert.Error(t, err)
}

func TestCompleteIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	teacher := createUser(t, db, "teacher", model.Teacher)
	learner := createUser(t, db, "learner", model.Learner)
	lesson := createLesson(t, db, teacher, threeStepText)
	a := createAssignment(t, db, lesson.ID, learner.ID)

	svc := newAssignmentService(db)
	require.NoError(t, svc.Complete(learner.ID, a.ID))

	var saved model.LessonAssignment
	require.NoError(t, db.First(&saved, a.ID).Error)
	assert.Equal(t, model.AssignmentCompleted, saved.Status)
	assert.Equal(t, 2, saved.ProgressStep)
	require.NotNil(t, saved.CompletedAt)
	firstCompletion := *saved.CompletedAt

	// A second completion keeps the original timestamp.
	require.NoError(t, svc.Complete(learner.ID, a.ID))
	require.NoError(t, db.First(&saved, a.ID).Error)
	assert.Equal(t, firstCompletion.Unix(), saved.CompletedAt.Unix())
}

func TestProgressOverviewOnlyLinkedLearners(t *testing.T) {
	db := newTestDB(t)
	teacher := createUser(t, db, "teacher", model.Teacher)
	mine := createUser(t, db, "mine", model.Learner)
	other := createUser(t, db, "other", model.Learner)
	linkTeacher(t, db, teacher.ID, mine.ID)

	lesson := createLesson(t, db, teacher, threeStepText)
	createAssignment(t, db, lesson.ID, mine.ID)
	createAssignment(t, db, lesson.ID, other.ID)

	svc := newAssignmentService(db)
	rows, err := svc.ProgressOverview(teacher.ID, model.Teacher)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "mine", rows[0].LearnerName)
	assert.Equal(t, "The Quiet Garden", rows[0].LessonTitle)
}

func TestProgressOverviewNoLearners(t *testing.T) {
	db := newTestDB(t)
	teacher := createUser(t, db, "teacher", model.Teacher)

	svc := newAssignmentService(db)
	rows, err := svc.ProgressOverview(teacher.ID, model.Teacher)
	require.NoError(t, err)
	assert.Empty(t, rows)
}
