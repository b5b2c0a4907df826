package models

import (
	"time"

	"gorm.io/gorm"
)

// Daily quest types
const (
	QuestLevelsCompleted    = "levels_completed"
	QuestArticlesRead       = "articles_read"
	QuestPointsEarned       = "points_earned"
	QuestStreakDays         = "streak_days"
	QuestAchievementsEarned = "achievements_earned"
)

// DailyQuest is a recurring date-scoped objective with a numeric target
type DailyQuest struct {
	gorm.Model
	Title        string `json:"title" gorm:"not null"`
	Description  string `json:"description" gorm:"type:text"`
	QuestType    string `json:"quest_type" gorm:"index;not null"`
	TargetValue  int    `json:"target_value" gorm:"not null"`
	RewardCoins  int    `json:"reward_coins" gorm:"not null"`
	RewardPoints int    `json:"reward_points" gorm:"default:0"`
	IsActive     bool   `json:"is_active" gorm:"default:true"`
}

// UserDailyProgress accumulates one user's progress toward one quest for
// one calendar day; unique per (user, quest, date)
type UserDailyProgress struct {
	gorm.Model
	UserID          uint       `json:"user_id" gorm:"uniqueIndex:idx_user_quest_date;not null"`
	QuestID         uint       `json:"quest_id" gorm:"uniqueIndex:idx_user_quest_date;not null"`
	Quest           DailyQuest `json:"quest"`
	Date            string     `json:"date" gorm:"uniqueIndex:idx_user_quest_date;not null"` // YYYY-MM-DD
	CurrentProgress int        `json:"current_progress" gorm:"default:0"`
	CompletedAt     *time.Time `json:"completed_at"`
}
