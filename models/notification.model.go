package models

import "gorm.io/gorm"

// Notification is a user-visible reward/achievement/streak message
type Notification struct {
	gorm.Model
	UserID uint   `json:"user_id" gorm:"index;not null"`
	Text   string `json:"text" gorm:"not null"`
	IsRead bool   `json:"is_read" gorm:"default:false"`
}
