package service

import (
	"testing"
	"time"

	"calm_learning_hub/internal/model"
	"calm_learning_hub/internal/repository"
	"calm_learning_hub/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedPhrases(t *testing.T, db *gorm.DB, contents ...string) []*model.Encouragement {
	t.Helper()
	phrases := make([]*model.Encouragement, 0, len(contents))
	for i, content := range contents {
		p := &model.Encouragement{
			Content:         content,
			IsEnabled:       true,
			IsCurrentlyUsed: i == 0,
			LastUsedAt:      time.Now(),
		}
		require.NoError(t, db.Create(p).Error)
		phrases = append(phrases, p)
	}
	return phrases
}

func TestGetCurrentKeepsFreshPhrase(t *testing.T) {
	db := newTestDB(t)
	seedPhrases(t, db, "You are doing well.", "One step at a time.")

	svc := NewEncouragementService(repository.NewEncouragementRepository(db))
	phrase, err := svc.GetCurrent()
	require.NoError(t, err)
	assert.Equal(t, "You are doing well.", phrase)
}

func TestGetCurrentRotatesAfterTwelveHours(t *testing.T) {
	db := newTestDB(t)
	phrases := seedPhrases(t, db, "Old phrase.", "New phrase.")

	stale := time.Now().Add(-13 * time.Hour)
	require.NoError(t, db.Model(phrases[0]).Update("last_used_at", stale).Error)

	svc := NewEncouragementService(repository.NewEncouragementRepository(db))
	phrase, err := svc.GetCurrent()
	require.NoError(t, err)
	assert.Equal(t, "New phrase.", phrase)

	current, err := svc.EncouragementRepo.GetCurrent()
	require.NoError(t, err)
	assert.Equal(t, "New phrase.", current.Content)
}

func TestGetCurrentSinglePhraseNeverRotates(t *testing.T) {
	db := newTestDB(t)
	phrases := seedPhrases(t, db, "Only phrase.")

	stale := time.Now().Add(-48 * time.Hour)
	require.NoError(t, db.Model(phrases[0]).Update("last_used_at", stale).Error)

	svc := NewEncouragementService(repository.NewEncouragementRepository(db))
	phrase, err := svc.GetCurrent()
	require.NoError(t, err)
	assert.Equal(t, "Only phrase.", phrase)
}

func TestUpdateRefusesDisablingLastEnabled(t *testing.T) {
	db := newTestDB(t)
	phrases := seedPhrases(t, db, "Only phrase.")

	svc := NewEncouragementService(repository.NewEncouragementRepository(db))
	_, err := svc.Update(phrases[0].ID, "Only phrase.", false)
	assert.ErrorIs(t, err, util.ErrLastEnabledPhrase)

	saved, err := svc.EncouragementRepo.FindByID(phrases[0].ID)
	require.NoError(t, err)
	assert.True(t, saved.IsEnabled)
}

func TestUpdateDisablesWhenOthersEnabled(t *testing.T) {
	db := newTestDB(t)
	phrases := seedPhrases(t, db, "First.", "Second.")

	svc := NewEncouragementService(repository.NewEncouragementRepository(db))
	updated, err := svc.Update(phrases[0].ID, "First.", false)
	require.NoError(t, err)
	assert.False(t, updated.IsEnabled)
}

func TestDeleteRefusesLastEnabled(t *testing.T) {
	db := newTestDB(t)
	phrases := seedPhrases(t, db, "Only phrase.")

	// A disabled phrase in the pool does not satisfy the guard.
	require.NoError(t, db.Create(&model.Encouragement{Content: "Disabled.", IsEnabled: false}).Error)

	svc := NewEncouragementService(repository.NewEncouragementRepository(db))
	err := svc.Delete(phrases[0].ID)
	assert.ErrorIs(t, err, util.ErrLastEnabledPhrase)
}

func TestDeleteWithOtherEnabledSucceeds(t *testing.T) {
	db := newTestDB(t)
	phrases := seedPhrases(t, db, "First.", "Second.")

	svc := NewEncouragementService(repository.NewEncouragementRepository(db))
	require.NoError(t, svc.Delete(phrases[0].ID))

	_, err := svc.EncouragementRepo.FindByID(phrases[0].ID)
	assert.Error(t, err)
}

func TestDeleteUnknownPhrase(t *testing.T) {
	db := newTestDB(t)

	svc := NewEncouragementService(repository.NewEncouragementRepository(db))
	err := svc.Delete(9999)
	assert.ErrorIs(t, err, util.ErrPhraseNotFound)
}

func TestGetCurrentRecoversWhenNoneMarked(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Create(&model.Encouragement{Content: "Unmarked.", IsEnabled: true}).Error)

	svc := NewEncouragementService(repository.NewEncouragementRepository(db))
	phrase, err := svc.GetCurrent()
	require.NoError(t, err)
	assert.Equal(t, "Unmarked.", phrase)
}
