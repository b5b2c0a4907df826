package models

import (
	"time"

	"gorm.io/gorm"
)

// Streak is the consecutive-day activity counter, one row per user
type Streak struct {
	gorm.Model
	UserID        uint       `json:"user_id" gorm:"uniqueIndex;not null"`
	CurrentStreak int        `json:"current_streak" gorm:"default:0"`
	LastActivity  *time.Time `json:"last_activity"` // date precision
}
