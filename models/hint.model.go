package models

import "gorm.io/gorm"

// Hint is a purchasable clue for a level
type Hint struct {
	gorm.Model
	LevelID   uint   `json:"level_id" gorm:"index;not null"`
	Text      string `json:"text" gorm:"type:text"`
	CostCoins int    `json:"cost_coins" gorm:"default:5"`
}

// UserHint records a hint purchase; a user pays for a hint at most once
type UserHint struct {
	gorm.Model
	UserID uint `json:"user_id" gorm:"uniqueIndex:idx_user_hint;not null"`
	HintID uint `json:"hint_id" gorm:"uniqueIndex:idx_user_hint;not null"`
}
