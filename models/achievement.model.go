package models

import (
	"time"

	"gorm.io/gorm"
)

// Achievement rarities
const (
	RarityCommon    = "common"
	RarityUncommon  = "uncommon"
	RarityRare      = "rare"
	RarityLegendary = "legendary"
)

// Achievement categories
const (
	AchievementCategoryProgress = "progress"
	AchievementCategoryStreak   = "streak"
	AchievementCategoryPoints   = "points"
	AchievementCategoryLevels   = "levels"
	AchievementCategorySpecial  = "special"
)

// Achievement is a catalog entry for a one-time-per-user unlockable badge
type Achievement struct {
	gorm.Model
	Name         string `json:"name" gorm:"unique;not null"`
	Description  string `json:"description" gorm:"type:text"`
	Rarity       string `json:"rarity" gorm:"default:'common'"`
	Category     string `json:"category" gorm:"default:'progress'"`
	Icon         string `json:"icon" gorm:"default:'fa-trophy'"`
	PointsReward int    `json:"points_reward" gorm:"default:0"`
	CoinsReward  int    `json:"coins_reward" gorm:"default:0"`
}

// UserAchievement records a grant; unique per (user, achievement), ever
type UserAchievement struct {
	gorm.Model
	UserID        uint        `json:"user_id" gorm:"uniqueIndex:idx_user_achievement;not null"`
	AchievementID uint        `json:"achievement_id" gorm:"uniqueIndex:idx_user_achievement;not null"`
	Achievement   Achievement `json:"achievement"`
	EarnedAt      time.Time   `json:"earned_at" gorm:"autoCreateTime"`
}
