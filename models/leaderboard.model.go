package models

import "gorm.io/gorm"

// Leaderboard is a denormalized per-user snapshot recomputed on demand
// from the authoritative progress/achievement/streak tables
type Leaderboard struct {
	gorm.Model
	UserID            uint   `json:"user_id" gorm:"uniqueIndex;not null"`
	UserName          string `json:"user_name"`
	TotalPoints       int    `json:"total_points" gorm:"default:0"`
	TotalCoins        int    `json:"total_coins" gorm:"default:0"`
	LevelsCompleted   int    `json:"levels_completed" gorm:"default:0"`
	AchievementsCount int    `json:"achievements_count" gorm:"default:0"`
	StreakDays        int    `json:"streak_days" gorm:"default:0"`
}
