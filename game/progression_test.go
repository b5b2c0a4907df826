package game

import (
	"testing"

	"finquest/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordAttemptFirstPassCreditsOnce(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)
	topic := createTestTopic(t, db, "Бюджет")
	level := createTestLevel(t, db, topic.ID, models.LevelTypeQuiz, 1)

	progress, firstPass, err := RecordAttempt(db, user, level, Verdict{IsCorrect: true, Percentage: 100}, 42)
	require.NoError(t, err)
	assert.True(t, firstPass)
	assert.True(t, progress.Completed)
	assert.Equal(t, 1, progress.Attempts)
	assert.Equal(t, 42, progress.CompletionTime)
	assert.Equal(t, 42, progress.BestTime)

	fresh := reloadUser(t, db, user.ID)
	assert.Equal(t, 10, fresh.Points)
	assert.Equal(t, 5, fresh.Coins)

	// replay of the same pass must not credit again
	progress, firstPass, err = RecordAttempt(db, user, level, Verdict{IsCorrect: true, Percentage: 100}, 30)
	require.NoError(t, err)
	assert.False(t, firstPass)
	assert.Equal(t, 2, progress.Attempts)
	assert.Equal(t, 30, progress.BestTime)

	fresh = reloadUser(t, db, user.ID)
	assert.Equal(t, 10, fresh.Points)
	assert.Equal(t, 5, fresh.Coins)
}

func TestRecordAttemptFailDoesNotComplete(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)
	topic := createTestTopic(t, db, "Кредиты")
	level := createTestLevel(t, db, topic.ID, models.LevelTypeQuiz, 1)

	progress, firstPass, err := RecordAttempt(db, user, level, Verdict{Percentage: 66}, 0)
	require.NoError(t, err)
	assert.False(t, firstPass)
	assert.False(t, progress.Completed)
	assert.Equal(t, 66, progress.Score)

	fresh := reloadUser(t, db, user.ID)
	assert.Equal(t, 0, fresh.Points)
}

func TestRecordAttemptBestScoreMonotonic(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)
	topic := createTestTopic(t, db, "Вклады")
	level := createTestLevel(t, db, topic.ID, models.LevelTypeQuiz, 1)

	_, _, err := RecordAttempt(db, user, level, Verdict{IsCorrect: true, Percentage: 90}, 0)
	require.NoError(t, err)
	progress, _, err := RecordAttempt(db, user, level, Verdict{IsCorrect: true, Percentage: 85}, 0)
	require.NoError(t, err)

	// last score is overwritten, best score never decreases
	assert.Equal(t, 85, progress.Score)
	assert.Equal(t, 90, progress.BestScore)
}

func TestRecordAttemptLevelUpBannerIsOneShot(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)
	user.Points = 495
	user.LevelNumber = models.LevelNumberForPoints(495)
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", user.ID).
		Updates(map[string]interface{}{"points": 495, "level_number": user.LevelNumber}).Error)

	topic := createTestTopic(t, db, "Инвестиции")
	level := createTestLevel(t, db, topic.ID, models.LevelTypeQuiz, 1)

	_, firstPass, err := RecordAttempt(db, user, level, Verdict{IsCorrect: true, Percentage: 100}, 0)
	require.NoError(t, err)
	require.True(t, firstPass)

	fresh := reloadUser(t, db, user.ID)
	assert.Equal(t, 505, fresh.Points)
	assert.Equal(t, 5, fresh.LevelNumber)

	pending, err := TakePendingLevelUp(db, user.ID, level.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, pending)

	// consumed: the banner never shows twice
	pending, err = TakePendingLevelUp(db, user.ID, level.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, pending)
}

func TestRecordAttemptNotificationsRespectSetting(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", user.ID).
		Update("notifications_enabled", false).Error)
	user.NotificationsEnabled = false

	topic := createTestTopic(t, db, "Налоги")
	level := createTestLevel(t, db, topic.ID, models.LevelTypeQuiz, 1)

	_, _, err := RecordAttempt(db, user, level, Verdict{IsCorrect: true, Percentage: 100}, 0)
	require.NoError(t, err)

	assert.Empty(t, notificationTexts(t, db, user.ID))
}

func TestResetProgressWipesUserDataOnly(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)
	topic := createTestTopic(t, db, "Страхование")
	level := createTestLevel(t, db, topic.ID, models.LevelTypeQuiz, 1)

	_, _, err := RecordAttempt(db, user, level, Verdict{IsCorrect: true, Percentage: 100}, 0)
	require.NoError(t, err)
	require.NoError(t, CheckAchievements(db, user))

	require.NoError(t, ResetProgress(db, user))

	fresh := reloadUser(t, db, user.ID)
	assert.Equal(t, 0, fresh.Points)
	assert.Equal(t, 0, fresh.Coins)
	assert.Equal(t, 1, fresh.LevelNumber)

	var progressCount, grantCount, levelCount int64
	db.Model(&models.UserLevelProgress{}).Where("user_id = ?", user.ID).Count(&progressCount)
	db.Model(&models.UserAchievement{}).Where("user_id = ?", user.ID).Count(&grantCount)
	db.Model(&models.Level{}).Count(&levelCount)
	assert.Zero(t, progressCount)
	assert.Zero(t, grantCount)
	assert.Equal(t, int64(1), levelCount) // catalog survives
}

func TestEnsureProgressIsLazyAndStable(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)
	topic := createTestTopic(t, db, "Пенсия")
	level := createTestLevel(t, db, topic.ID, models.LevelTypeQuiz, 1)

	first, err := EnsureProgress(db, user.ID, level.ID)
	require.NoError(t, err)
	second, err := EnsureProgress(db, user.ID, level.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}
