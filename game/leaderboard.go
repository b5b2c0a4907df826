package game

import (
	"errors"

	"finquest/models"

	"gorm.io/gorm"
)

// RefreshLeaderboard recomputes one user's denormalized snapshot from the
// authoritative progress, achievement and streak tables.
func RefreshLeaderboard(db *gorm.DB, user *models.User) (*models.Leaderboard, error) {
	var levelsCompleted, achievementsCount int64
	if err := db.Model(&models.UserLevelProgress{}).
		Where("user_id = ? AND completed = true", user.ID).Count(&levelsCompleted).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.UserAchievement{}).
		Where("user_id = ?", user.ID).Count(&achievementsCount).Error; err != nil {
		return nil, err
	}

	var entry models.Leaderboard
	err := db.Where("user_id = ?", user.ID).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		entry = models.Leaderboard{UserID: user.ID}
	} else if err != nil {
		return nil, err
	}

	entry.UserName = user.Name
	entry.TotalPoints = user.Points
	entry.TotalCoins = user.Coins
	entry.LevelsCompleted = int(levelsCompleted)
	entry.AchievementsCount = int(achievementsCount)
	entry.StreakDays = CurrentStreak(db, user.ID)

	if err := db.Save(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// Rank returns the 1-based leaderboard position for an entry
func Rank(db *gorm.DB, entry *models.Leaderboard) (int, error) {
	var ahead int64
	if err := db.Model(&models.Leaderboard{}).
		Where("total_points > ?", entry.TotalPoints).Count(&ahead).Error; err != nil {
		return 0, err
	}
	return int(ahead) + 1, nil
}

// TopEntries returns the leaderboard ordered the way the board displays it
func TopEntries(db *gorm.DB, limit int) ([]models.Leaderboard, error) {
	var entries []models.Leaderboard
	err := db.Order("total_points desc, levels_completed desc, achievements_count desc").
		Limit(limit).Find(&entries).Error
	return entries, err
}
