package game

import (
	"errors"
	"fmt"

	"finquest/models"

	"gorm.io/gorm"
)

// RecordAttempt persists one scored attempt for (user, level) and, on the
// first-ever pass, credits the level rewards and fires the quest and
// notification side effects. The returned bool reports the first pass.
//
// The progress/currency update runs in one transaction; quest updates and
// notifications follow synchronously, each a unit of its own.
func RecordAttempt(db *gorm.DB, user *models.User, level *models.Level, verdict Verdict, completionTime int) (*models.UserLevelProgress, bool, error) {
	var progress models.UserLevelProgress
	firstPass := false

	err := db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("user_id = ? AND level_id = ?", user.ID, level.ID).First(&progress).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			progress = models.UserLevelProgress{UserID: user.ID, LevelID: level.ID}
			if err := tx.Create(&progress).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		progress.Attempts++
		progress.Score = verdict.Percentage
		if verdict.Percentage > progress.BestScore {
			progress.BestScore = verdict.Percentage
		}
		if completionTime > 0 {
			progress.CompletionTime = completionTime
			if progress.BestTime == 0 || completionTime < progress.BestTime {
				progress.BestTime = completionTime
			}
		}

		if verdict.Percentage >= PassThreshold && !progress.Completed {
			progress.Completed = true
			firstPass = true

			user.Points += level.RewardPoints
			user.Coins += level.RewardCoins
			if newLevel := models.LevelNumberForPoints(user.Points); newLevel > user.LevelNumber {
				user.LevelNumber = newLevel
				if err := setPendingLevelUp(tx, user.ID, level.ID, newLevel); err != nil {
					return err
				}
			}
			if err := tx.Model(&models.User{}).Where("id = ?", user.ID).Updates(map[string]interface{}{
				"points":       user.Points,
				"coins":        user.Coins,
				"level_number": user.LevelNumber,
			}).Error; err != nil {
				return err
			}
		}

		return tx.Save(&progress).Error
	})
	if err != nil {
		return nil, false, err
	}

	if firstPass {
		if err := UpdateQuestProgress(db, user, models.QuestLevelsCompleted, 1); err != nil {
			return nil, false, err
		}
		if level.RewardPoints > 0 {
			if err := UpdateQuestProgress(db, user, models.QuestPointsEarned, level.RewardPoints); err != nil {
				return nil, false, err
			}
		}
		if user.NotificationsEnabled {
			if level.RewardPoints > 0 {
				if err := Notify(db, user.ID, fmt.Sprintf("⭐ +%d очков за уровень «%s»", level.RewardPoints, level.Title)); err != nil {
					return nil, false, err
				}
			}
			if level.RewardCoins > 0 {
				if err := Notify(db, user.ID, fmt.Sprintf("🪙 +%d монет за уровень «%s»", level.RewardCoins, level.Title)); err != nil {
					return nil, false, err
				}
			}
		}
	}

	return &progress, firstPass, nil
}

// setPendingLevelUp writes the one-shot banner inside the attempt transaction
func setPendingLevelUp(tx *gorm.DB, userID, levelID uint, levelNumber int) error {
	session, err := GetSession(tx, userID, levelID)
	if err != nil {
		return err
	}
	session.PendingLevelUp = levelNumber
	return tx.Save(session).Error
}

// EnsureProgress lazily creates the (user, level) progress record on first
// view of a level
func EnsureProgress(db *gorm.DB, userID, levelID uint) (*models.UserLevelProgress, error) {
	var progress models.UserLevelProgress
	err := db.Where("user_id = ? AND level_id = ?", userID, levelID).First(&progress).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		progress = models.UserLevelProgress{UserID: userID, LevelID: levelID}
		if err := db.Create(&progress).Error; err != nil {
			return nil, err
		}
		return &progress, nil
	}
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

// ResetProgress deletes all of a user's progress, streak, session and
// achievement grants and zeroes the counters on the user row. Catalog
// entities are shared reference data and stay untouched.
func ResetProgress(db *gorm.DB, user *models.User) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.UserLevelProgress{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.LevelSession{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.UserAchievement{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.Streak{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.UserDailyProgress{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.Leaderboard{}).Error; err != nil {
			return err
		}

		user.Points = 0
		user.Coins = 0
		user.LevelNumber = 1
		return tx.Model(&models.User{}).Where("id = ?", user.ID).Updates(map[string]interface{}{
			"points":       0,
			"coins":        0,
			"level_number": 1,
		}).Error
	})
}
