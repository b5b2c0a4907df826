package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var day0 = time.Date(2026, time.March, 2, 15, 30, 0, 0, time.UTC)

func TestUpdateStreakFirstActivity(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)

	streak, err := UpdateStreak(db, user, day0)
	require.NoError(t, err)
	assert.Equal(t, 1, streak.CurrentStreak)
	assert.Empty(t, notificationTexts(t, db, user.ID))
}

func TestUpdateStreakSameDayIsNoOp(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)

	_, err := UpdateStreak(db, user, day0)
	require.NoError(t, err)

	// later the same day, regardless of clock time
	streak, err := UpdateStreak(db, user, day0.Add(7*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, streak.CurrentStreak)
}

func TestUpdateStreakConsecutiveDaysWithMilestone(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)

	for i := 0; i < 3; i++ {
		streak, err := UpdateStreak(db, user, day0.AddDate(0, 0, i))
		require.NoError(t, err)
		assert.Equal(t, i+1, streak.CurrentStreak)
	}

	texts := notificationTexts(t, db, user.ID)
	require.Len(t, texts, 1)
	assert.Equal(t, "🔥 Серия 3 дней подряд!", texts[0])
}

func TestUpdateStreakGapResets(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)

	_, err := UpdateStreak(db, user, day0)
	require.NoError(t, err)
	_, err = UpdateStreak(db, user, day0.AddDate(0, 0, 1))
	require.NoError(t, err)

	// two missed days
	streak, err := UpdateStreak(db, user, day0.AddDate(0, 0, 4))
	require.NoError(t, err)
	assert.Equal(t, 1, streak.CurrentStreak)

	texts := notificationTexts(t, db, user.ID)
	require.Len(t, texts, 1)
	assert.Equal(t, "💔 Серия прервана. Начни заново!", texts[0])
}

func TestCurrentStreakWithoutRow(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)

	assert.Zero(t, CurrentStreak(db, user.ID))
}
