package models

import "gorm.io/gorm"

// UserLevelProgress tracks one user's completion state for one level
type UserLevelProgress struct {
	gorm.Model
	UserID         uint  `json:"user_id" gorm:"uniqueIndex:idx_user_level;not null"`
	LevelID        uint  `json:"level_id" gorm:"uniqueIndex:idx_user_level;not null"`
	Level          Level `json:"-"`
	Completed      bool  `json:"completed" gorm:"default:false"`
	Score          int   `json:"score" gorm:"default:0"`      // last attempt, 0-100
	BestScore      int   `json:"best_score" gorm:"default:0"` // monotonically non-decreasing
	Attempts       int   `json:"attempts" gorm:"default:0"`
	CompletionTime int   `json:"completion_time" gorm:"default:0"` // seconds
	BestTime       int   `json:"best_time" gorm:"default:0"`       // seconds, only shrinks
}
