package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"calm_learning_hub/internal/config"
	"calm_learning_hub/internal/model"
	"calm_learning_hub/internal/repository"
	"calm_learning_hub/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newLessonService(db *gorm.DB) *LessonService {
	return NewLessonService(
		repository.NewLessonRepository(db),
		repository.NewAssignmentRepository(db),
		repository.NewRosterRepository(db),
		nil,
		nil,
		db,
	)
}

func TestPreviewWithoutAIUsesSplitter(t *testing.T) {
	db := newTestDB(t)
	svc := newLessonService(db)

	original := "The rain fell softly. The garden drank it in. A snail crossed the path. Nobody hurried."
	preview, err := svc.Preview(context.Background(), "Rain", model.LessonStory, original, false)
	require.NoError(t, err)

	assert.True(t, preview.UsedFallback)
	assert.Empty(t, preview.ImageURL)

	steps := util.LessonSteps(preview.FriendlyText)
	require.Len(t, steps, 2)
	assert.True(t, strings.HasPrefix(steps[0], "Step 1: "))
	assert.True(t, strings.HasPrefix(steps[1], "Step 2: "))
}

func TestPreviewAIFailureFallsBackToSplitter(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"model overloaded"}}`, http.StatusInternalServerError)
	}))
	defer server.Close()

	db := newTestDB(t)
	svc := NewLessonService(
		repository.NewLessonRepository(db),
		repository.NewAssignmentRepository(db),
		repository.NewRosterRepository(db),
		NewAIService(config.AIConfig{BaseURL: server.URL, Model: "m", ImageModel: "img"}),
		nil,
		db,
	)

	original := "The rain fell softly. The garden drank it in. A snail crossed the path. Nobody hurried."
	preview, err := svc.Preview(context.Background(), "Rain", model.LessonStory, original, true)
	require.NoError(t, err)

	assert.True(t, preview.UsedFallback)
	assert.Empty(t, preview.ImageURL)

	steps := util.LessonSteps(preview.FriendlyText)
	require.Len(t, steps, 2)
	assert.True(t, strings.HasPrefix(steps[0], "Step 1: "))
}

func TestPreviewEmptyText(t *testing.T) {
	db := newTestDB(t)
	svc := newLessonService(db)

	preview, err := svc.Preview(context.Background(), "Empty", model.LessonChapter, "", false)
	require.NoError(t, err)
	assert.Empty(t, preview.FriendlyText)
}

func TestCreateAndAssignFansOut(t *testing.T) {
	db := newTestDB(t)
	teacher := createUser(t, db, "teacher", model.Teacher)
	first := createUser(t, db, "first", model.Learner)
	second := createUser(t, db, "second", model.Learner)
	linkTeacher(t, db, teacher.ID, first.ID)
	linkTeacher(t, db, teacher.ID, second.ID)

	svc := newLessonService(db)
	lesson := &model.Lesson{
		Title:        "The Quiet Garden",
		Kind:         model.LessonStory,
		OriginalText: "original",
		FriendlyText: threeStepText,
	}
	require.NoError(t, svc.CreateAndAssign(teacher, lesson, []uint{first.ID, second.ID}))

	assert.Equal(t, teacher.ID, lesson.OwnerID)
	assert.Equal(t, model.Teacher, lesson.OwnerRole)

	var count int64
	require.NoError(t, db.Model(&model.LessonAssignment{}).Where("lesson_id = ?", lesson.ID).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestCreateAndAssignRejectsUnlinkedLearner(t *testing.T) {
	db := newTestDB(t)
	teacher := createUser(t, db, "teacher", model.Teacher)
	linked := createUser(t, db, "linked", model.Learner)
	unlinked := createUser(t, db, "unlinked", model.Learner)
	linkTeacher(t, db, teacher.ID, linked.ID)

	svc := newLessonService(db)
	lesson := &model.Lesson{
		Title:        "The Quiet Garden",
		Kind:         model.LessonChapter,
		OriginalText: "original",
		FriendlyText: threeStepText,
	}
	err := svc.CreateAndAssign(teacher, lesson, []uint{linked.ID, unlinked.ID})
	assert.ErrorIs(t, err, util.ErrNotLinked)

	// Nothing is persisted when any learner is rejected.
	var lessons int64
	require.NoError(t, db.Model(&model.Lesson{}).Count(&lessons).Error)
	assert.Zero(t, lessons)
}

func TestCreateAndAssignRequiresContent(t *testing.T) {
	db := newTestDB(t)
	teacher := createUser(t, db, "teacher", model.Teacher)

	svc := newLessonService(db)
	err := svc.CreateAndAssign(teacher, &model.Lesson{Title: "No text"}, nil)
	assert.Error(t, err)
}

func TestVideoMIME(t *testing.T) {
	cases := []struct {
		format string
		want   string
	}{
		{"mov", "video/quicktime"},
		{"matroska", "video/webm"},
		{"webm", "video/webm"},
		{"avi", "video/x-msvideo"},
		{"mpegts", "video/mp2t"},
		{"", "video/mp4"},
		{"unknown", "video/mp4"},
		{"flv", "video/flv"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, videoMIME(tc.format))
	}
}

func TestListByOwner(t *testing.T) {
	db := newTestDB(t)
	teacher := createUser(t, db, "teacher", model.Teacher)
	other := createUser(t, db, "other", model.Teacher)
	createLesson(t, db, teacher, threeStepText)
	createLesson(t, db, other, threeStepText)

	svc := newLessonService(db)
	lessons, err := svc.ListByOwner(teacher.ID)
	require.NoError(t, err)
	require.Len(t, lessons, 1)
	assert.Equal(t, teacher.ID, lessons[0].OwnerID)
}
