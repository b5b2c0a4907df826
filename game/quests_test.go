package game

import (
	"testing"

	"finquest/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateQuestProgressAccumulatesToTarget(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)
	quest := createTestQuest(t, db, models.QuestLevelsCompleted, 3, 20, 10)

	require.NoError(t, UpdateQuestProgress(db, user, models.QuestLevelsCompleted, 1))
	require.NoError(t, UpdateQuestProgress(db, user, models.QuestLevelsCompleted, 1))

	var row models.UserDailyProgress
	require.NoError(t, db.Where("user_id = ? AND quest_id = ?", user.ID, quest.ID).First(&row).Error)
	assert.Equal(t, 2, row.CurrentProgress)
	assert.Nil(t, row.CompletedAt)
	assert.Zero(t, reloadUser(t, db, user.ID).Coins)

	require.NoError(t, UpdateQuestProgress(db, user, models.QuestLevelsCompleted, 1))

	require.NoError(t, db.Where("user_id = ? AND quest_id = ?", user.ID, quest.ID).First(&row).Error)
	assert.NotNil(t, row.CompletedAt)

	fresh := reloadUser(t, db, user.ID)
	assert.Equal(t, 20, fresh.Coins)
	assert.Equal(t, 10, fresh.Points)

	texts := notificationTexts(t, db, user.ID)
	require.Len(t, texts, 1)
	assert.Contains(t, texts[0], "🎯")
	assert.Contains(t, texts[0], "+20 монет")
	assert.Contains(t, texts[0], "+10 очков")
}

func TestUpdateQuestProgressCompletesOnce(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)
	createTestQuest(t, db, models.QuestArticlesRead, 1, 15, 0)

	require.NoError(t, UpdateQuestProgress(db, user, models.QuestArticlesRead, 1))
	require.NoError(t, UpdateQuestProgress(db, user, models.QuestArticlesRead, 1))
	require.NoError(t, UpdateQuestProgress(db, user, models.QuestArticlesRead, 1))

	fresh := reloadUser(t, db, user.ID)
	assert.Equal(t, 15, fresh.Coins)
	assert.Len(t, notificationTexts(t, db, user.ID), 1)
}

func TestUpdateQuestProgressIgnoresOtherTypes(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)
	createTestQuest(t, db, models.QuestPointsEarned, 50, 10, 0)

	require.NoError(t, UpdateQuestProgress(db, user, models.QuestLevelsCompleted, 1))

	var count int64
	db.Model(&models.UserDailyProgress{}).Where("user_id = ?", user.ID).Count(&count)
	assert.Zero(t, count)
}

func TestUpdateQuestProgressSkipsInactiveQuests(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)
	quest := createTestQuest(t, db, models.QuestLevelsCompleted, 1, 10, 0)
	require.NoError(t, db.Model(quest).Update("is_active", false).Error)

	require.NoError(t, UpdateQuestProgress(db, user, models.QuestLevelsCompleted, 1))
	assert.Zero(t, reloadUser(t, db, user.ID).Coins)
}

func TestTodayQuestProgressBackfillsPlaceholders(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)
	touched := createTestQuest(t, db, models.QuestLevelsCompleted, 5, 10, 0)
	untouched := createTestQuest(t, db, models.QuestArticlesRead, 2, 10, 0)

	require.NoError(t, UpdateQuestProgress(db, user, models.QuestLevelsCompleted, 2))

	rows, err := TodayQuestProgress(db, user.ID)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	byQuest := map[uint]models.UserDailyProgress{}
	for _, row := range rows {
		byQuest[row.QuestID] = row
	}
	assert.Equal(t, 2, byQuest[touched.ID].CurrentProgress)
	assert.Equal(t, 0, byQuest[untouched.ID].CurrentProgress)

	// placeholders are not persisted
	var count int64
	db.Model(&models.UserDailyProgress{}).Where("user_id = ?", user.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}
