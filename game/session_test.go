package game

import (
	"testing"

	"finquest/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordQuestionAnswerAccumulatesToMean(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)
	topic := createTestTopic(t, db, "Бюджет")
	level := createTestLevel(t, db, topic.ID, models.LevelTypeTest, 1)

	session, err := GetSession(db, user.ID, level.ID)
	require.NoError(t, err)

	_, done, err := RecordQuestionAnswer(db, session, 0, 100, 3)
	require.NoError(t, err)
	assert.False(t, done)

	_, done, err = RecordQuestionAnswer(db, session, 1, 0, 3)
	require.NoError(t, err)
	assert.False(t, done)

	mean, done, err := RecordQuestionAnswer(db, session, 2, 100, 3)
	require.NoError(t, err)
	assert.True(t, done)
	assert.Equal(t, 66, mean)

	// finished attempt leaves a clean slate for the next one
	reloaded, err := GetSession(db, user.ID, level.ID)
	require.NoError(t, err)
	assert.Empty(t, reloaded.AnswerMap())
}

func TestRecordQuestionAnswerOverwritesSameIndex(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)
	topic := createTestTopic(t, db, "Кредиты")
	level := createTestLevel(t, db, topic.ID, models.LevelTypeQuiz, 1)

	session, err := GetSession(db, user.ID, level.ID)
	require.NoError(t, err)

	_, done, err := RecordQuestionAnswer(db, session, 0, 0, 2)
	require.NoError(t, err)
	require.False(t, done)

	// re-answering question 0 replaces the stored score, not appends
	_, done, err = RecordQuestionAnswer(db, session, 0, 100, 2)
	require.NoError(t, err)
	require.False(t, done)

	mean, done, err := RecordQuestionAnswer(db, session, 1, 100, 2)
	require.NoError(t, err)
	assert.True(t, done)
	assert.Equal(t, 100, mean)
}

func TestQuestStepAdvanceAndReset(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)
	topic := createTestTopic(t, db, "Вклады")
	level := createTestLevel(t, db, topic.ID, models.LevelTypeQuest, 1)

	session, err := GetSession(db, user.ID, level.ID)
	require.NoError(t, err)
	assert.Zero(t, session.Step)

	require.NoError(t, AdvanceQuestStep(db, session))
	require.NoError(t, AdvanceQuestStep(db, session))

	reloaded, err := GetSession(db, user.ID, level.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, reloaded.Step)

	require.NoError(t, ResetQuestStep(db, reloaded))
	reloaded, err = GetSession(db, user.ID, level.ID)
	require.NoError(t, err)
	assert.Zero(t, reloaded.Step)
}

func TestTakePendingLevelUpWithoutSession(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)

	pending, err := TakePendingLevelUp(db, user.ID, 999)
	require.NoError(t, err)
	assert.Zero(t, pending)
}
