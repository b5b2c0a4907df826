package game

import (
	"errors"
	"fmt"

	"finquest/models"

	"gorm.io/gorm"
)

var levelMilestones = []int{10, 25, 50, 100}
var pointsMilestones = []int{500, 1000, 2500, 5000}
var streakAchievementMilestones = []int{7, 14, 30, 100}
var achievementCountMilestones = []int{5, 10, 20, 50}

// achievementSpec describes a catalog entry the engine get-or-creates by name
type achievementSpec struct {
	Name        string
	Description string
	Rarity      string
	Category    string
	Icon        string
}

// CheckAchievements re-evaluates every unlock condition from scratch and
// grants whatever is newly satisfied. Grants are idempotent: the
// (user, achievement) pair is unique and already-granted entries are
// skipped. Invoked once per level-result render; the tables involved are
// small, so the full rescan is acceptable.
func CheckAchievements(db *gorm.DB, user *models.User) error {
	if err := checkFirstAnswer(db, user); err != nil {
		return err
	}
	if err := checkTopicMastery(db, user); err != nil {
		return err
	}
	if err := checkLevelMilestones(db, user); err != nil {
		return err
	}
	if err := checkPointsMilestones(db, user); err != nil {
		return err
	}
	if err := checkStreakMilestones(db, user); err != nil {
		return err
	}
	if err := checkAchievementCount(db, user); err != nil {
		return err
	}
	return syncLevelNumber(db, user)
}

func checkFirstAnswer(db *gorm.DB, user *models.User) error {
	var count int64
	if err := db.Model(&models.UserLevelProgress{}).Where("user_id = ?", user.ID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return nil
	}
	_, err := grant(db, user, achievementSpec{
		Name:        "Первый шаг",
		Description: "Дать первый ответ на уровне",
		Rarity:      models.RarityCommon,
		Category:    models.AchievementCategoryProgress,
		Icon:        "fa-shoe-prints",
	}, false)
	return err
}

func checkTopicMastery(db *gorm.DB, user *models.User) error {
	var topics []models.Topic
	if err := db.Where("is_active = true").Find(&topics).Error; err != nil {
		return err
	}

	for _, topic := range topics {
		var total, completed int64
		if err := db.Model(&models.Level{}).Where("topic_id = ?", topic.ID).Count(&total).Error; err != nil {
			return err
		}
		if total == 0 {
			continue
		}
		if err := db.Model(&models.UserLevelProgress{}).
			Joins("JOIN levels ON levels.id = user_level_progresses.level_id").
			Where("user_level_progresses.user_id = ? AND user_level_progresses.completed = true AND levels.topic_id = ?", user.ID, topic.ID).
			Count(&completed).Error; err != nil {
			return err
		}
		if completed < total {
			continue
		}
		if _, err := grant(db, user, achievementSpec{
			Name:        fmt.Sprintf("Мастер %s", topic.Name),
			Description: fmt.Sprintf("Пройти все уровни темы «%s»", topic.Name),
			Rarity:      models.RarityRare,
			Category:    models.AchievementCategoryProgress,
			Icon:        "fa-crown",
		}, true); err != nil {
			return err
		}
	}
	return nil
}

func checkLevelMilestones(db *gorm.DB, user *models.User) error {
	var completed int64
	if err := db.Model(&models.UserLevelProgress{}).
		Where("user_id = ? AND completed = true", user.ID).Count(&completed).Error; err != nil {
		return err
	}
	for _, milestone := range levelMilestones {
		if completed < int64(milestone) {
			break
		}
		if _, err := grant(db, user, achievementSpec{
			Name:        fmt.Sprintf("Пройдено %d уровней", milestone),
			Description: fmt.Sprintf("Завершить %d уровней", milestone),
			Rarity:      rarityForPosition(milestone, levelMilestones),
			Category:    models.AchievementCategoryLevels,
			Icon:        "fa-layer-group",
		}, true); err != nil {
			return err
		}
	}
	return nil
}

func checkPointsMilestones(db *gorm.DB, user *models.User) error {
	for _, milestone := range pointsMilestones {
		if user.Points < milestone {
			break
		}
		if _, err := grant(db, user, achievementSpec{
			Name:        fmt.Sprintf("%d очков", milestone),
			Description: fmt.Sprintf("Набрать %d очков", milestone),
			Rarity:      rarityForPosition(milestone, pointsMilestones),
			Category:    models.AchievementCategoryPoints,
			Icon:        "fa-star",
		}, true); err != nil {
			return err
		}
	}
	return nil
}

func checkStreakMilestones(db *gorm.DB, user *models.User) error {
	streak := CurrentStreak(db, user.ID)
	for _, milestone := range streakAchievementMilestones {
		if streak < milestone {
			break
		}
		if _, err := grant(db, user, achievementSpec{
			Name:        fmt.Sprintf("Серия %d дней", milestone),
			Description: fmt.Sprintf("Заниматься %d дней подряд", milestone),
			Rarity:      rarityForPosition(milestone, streakAchievementMilestones),
			Category:    models.AchievementCategoryStreak,
			Icon:        "fa-fire",
		}, true); err != nil {
			return err
		}
	}
	return nil
}

func checkAchievementCount(db *gorm.DB, user *models.User) error {
	var count int64
	if err := db.Model(&models.UserAchievement{}).Where("user_id = ?", user.ID).Count(&count).Error; err != nil {
		return err
	}
	for _, milestone := range achievementCountMilestones {
		if count < int64(milestone) {
			break
		}
		if _, err := grant(db, user, achievementSpec{
			Name:        fmt.Sprintf("Коллекция из %d достижений", milestone),
			Description: fmt.Sprintf("Получить %d достижений", milestone),
			Rarity:      rarityForPosition(milestone, achievementCountMilestones),
			Category:    models.AchievementCategorySpecial,
			Icon:        "fa-trophy",
		}, true); err != nil {
			return err
		}
	}
	return nil
}

// syncLevelNumber re-derives the cached level number from points and emits
// its own level-up notification, separate from the one-shot result banner
func syncLevelNumber(db *gorm.DB, user *models.User) error {
	current := user.GetLevelNumber()
	if current <= user.LevelNumber {
		return nil
	}
	user.LevelNumber = current
	if err := db.Model(&models.User{}).Where("id = ?", user.ID).
		Update("level_number", current).Error; err != nil {
		return err
	}
	return Notify(db, user.ID, fmt.Sprintf("📈 Новый уровень: %d — %s!", current, user.GetLevelTitle()))
}

// grant creates the (user, achievement) record once, ever. The catalog
// entry is get-or-created by name. Bonus rewards on the entry are credited
// on grant; advanceQuest drives the achievements_earned daily quest.
func grant(db *gorm.DB, user *models.User, spec achievementSpec, advanceQuest bool) (bool, error) {
	var achievement models.Achievement
	err := db.Where("name = ?", spec.Name).First(&achievement).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		achievement = models.Achievement{
			Name:        spec.Name,
			Description: spec.Description,
			Rarity:      spec.Rarity,
			Category:    spec.Category,
			Icon:        spec.Icon,
		}
		if err := db.Create(&achievement).Error; err != nil {
			return false, err
		}
	} else if err != nil {
		return false, err
	}

	var existing models.UserAchievement
	err = db.Where("user_id = ? AND achievement_id = ?", user.ID, achievement.ID).First(&existing).Error
	if err == nil {
		return false, nil // already granted
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	if err := db.Create(&models.UserAchievement{UserID: user.ID, AchievementID: achievement.ID}).Error; err != nil {
		return false, err
	}

	if achievement.PointsReward > 0 || achievement.CoinsReward > 0 {
		user.Points += achievement.PointsReward
		user.Coins += achievement.CoinsReward
		user.LevelNumber = models.LevelNumberForPoints(user.Points)
		if err := db.Model(&models.User{}).Where("id = ?", user.ID).Updates(map[string]interface{}{
			"points":       user.Points,
			"coins":        user.Coins,
			"level_number": user.LevelNumber,
		}).Error; err != nil {
			return false, err
		}
	}

	if err := Notify(db, user.ID, fmt.Sprintf("🏆 Новое достижение: «%s»!", achievement.Name)); err != nil {
		return false, err
	}

	if advanceQuest {
		if err := UpdateQuestProgress(db, user, models.QuestAchievementsEarned, 1); err != nil {
			return false, err
		}
	}

	return true, nil
}

// rarityForPosition maps a milestone to a rarity by its position in the ladder
func rarityForPosition(milestone int, ladder []int) string {
	for i, m := range ladder {
		if m == milestone {
			switch i {
			case 0:
				return models.RarityCommon
			case 1:
				return models.RarityUncommon
			case 2:
				return models.RarityRare
			default:
				return models.RarityLegendary
			}
		}
	}
	return models.RarityCommon
}
