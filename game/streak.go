package game

import (
	"errors"
	"fmt"
	"time"

	"finquest/models"

	"gorm.io/gorm"
)

// streakMilestones get their own notification the day the streak reaches them
var streakMilestones = map[int]bool{3: true, 7: true, 14: true}

// UpdateStreak drives the daily streak state machine for the given wall-clock
// moment. Same-day re-entry is a no-op; exactly one day after the last
// activity increments; any larger gap resets to 1 with a break notification
// when there was prior activity.
func UpdateStreak(db *gorm.DB, user *models.User, now time.Time) (*models.Streak, error) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var streak models.Streak
	var notifications []string

	err := db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("user_id = ?", user.ID).First(&streak).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			streak = models.Streak{UserID: user.ID}
			if err := tx.Create(&streak).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		if streak.LastActivity != nil {
			last := time.Date(streak.LastActivity.Year(), streak.LastActivity.Month(), streak.LastActivity.Day(), 0, 0, 0, 0, now.Location())
			switch {
			case last.Equal(today):
				return nil // already counted today
			case last.AddDate(0, 0, 1).Equal(today):
				streak.CurrentStreak++
				if streakMilestones[streak.CurrentStreak] {
					notifications = append(notifications, fmt.Sprintf("🔥 Серия %d дней подряд!", streak.CurrentStreak))
				}
			default:
				notifications = append(notifications, "💔 Серия прервана. Начни заново!")
				streak.CurrentStreak = 1
			}
		} else {
			streak.CurrentStreak = 1
		}

		streak.LastActivity = &today
		return tx.Save(&streak).Error
	})
	if err != nil {
		return nil, err
	}

	for _, text := range notifications {
		if err := Notify(db, user.ID, text); err != nil {
			return nil, err
		}
	}

	return &streak, nil
}

// CurrentStreak returns the user's streak counter, zero when no row exists
func CurrentStreak(db *gorm.DB, userID uint) int {
	var streak models.Streak
	if err := db.Where("user_id = ?", userID).First(&streak).Error; err != nil {
		return 0
	}
	return streak.CurrentStreak
}
