package game

import (
	"errors"
	"fmt"
	"time"

	"finquest/models"

	"gorm.io/gorm"
)

// UpdateQuestProgress advances every active daily quest of questType for
// the user by delta. Each quest row is handled in its own transaction: a
// get-or-create for today's (user, quest, date) row, accumulation unless
// already completed, and a complete-once reward grant.
func UpdateQuestProgress(db *gorm.DB, user *models.User, questType string, delta int) error {
	var quests []models.DailyQuest
	if err := db.Where("quest_type = ? AND is_active = true", questType).Find(&quests).Error; err != nil {
		return err
	}

	today := time.Now().Format("2006-01-02")

	for i := range quests {
		quest := quests[i]
		completed := false

		err := db.Transaction(func(tx *gorm.DB) error {
			var progress models.UserDailyProgress
			err := tx.Where("user_id = ? AND quest_id = ? AND date = ?", user.ID, quest.ID, today).
				First(&progress).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				progress = models.UserDailyProgress{UserID: user.ID, QuestID: quest.ID, Date: today}
				if err := tx.Create(&progress).Error; err != nil {
					return err
				}
			} else if err != nil {
				return err
			}

			// Once completed, no further accumulation or reward for this day
			if progress.CompletedAt != nil {
				return nil
			}

			progress.CurrentProgress += delta

			if progress.CurrentProgress >= quest.TargetValue {
				now := time.Now()
				progress.CompletedAt = &now
				completed = true

				user.Coins += quest.RewardCoins
				user.Points += quest.RewardPoints
				user.LevelNumber = models.LevelNumberForPoints(user.Points)
				if err := tx.Model(&models.User{}).Where("id = ?", user.ID).Updates(map[string]interface{}{
					"coins":        user.Coins,
					"points":       user.Points,
					"level_number": user.LevelNumber,
				}).Error; err != nil {
					return err
				}
			}

			return tx.Save(&progress).Error
		})
		if err != nil {
			return err
		}

		if completed {
			text := fmt.Sprintf("🎯 Задание «%s» выполнено! +%d монет", quest.Title, quest.RewardCoins)
			if quest.RewardPoints > 0 {
				text += fmt.Sprintf(", +%d очков", quest.RewardPoints)
			}
			if err := Notify(db, user.ID, text); err != nil {
				return err
			}
		}
	}

	return nil
}

// TodayQuestProgress returns today's progress rows for all active quests,
// creating nothing: quests the user has not touched yet come back with a
// zero-progress placeholder.
func TodayQuestProgress(db *gorm.DB, userID uint) ([]models.UserDailyProgress, error) {
	var quests []models.DailyQuest
	if err := db.Where("is_active = true").Find(&quests).Error; err != nil {
		return nil, err
	}

	today := time.Now().Format("2006-01-02")

	var rows []models.UserDailyProgress
	if err := db.Where("user_id = ? AND date = ?", userID, today).Find(&rows).Error; err != nil {
		return nil, err
	}
	byQuest := make(map[uint]models.UserDailyProgress, len(rows))
	for _, row := range rows {
		byQuest[row.QuestID] = row
	}

	result := make([]models.UserDailyProgress, 0, len(quests))
	for _, quest := range quests {
		row, ok := byQuest[quest.ID]
		if !ok {
			row = models.UserDailyProgress{UserID: userID, QuestID: quest.ID, Date: today}
		}
		row.Quest = quest
		result = append(result, row)
	}
	return result, nil
}
