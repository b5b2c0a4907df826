package game

import (
	"finquest/models"

	"gorm.io/gorm"
)

// Notify records a fire-and-forget user-visible message. Read state is
// managed by the notification endpoints.
func Notify(db *gorm.DB, userID uint, text string) error {
	return db.Create(&models.Notification{UserID: userID, Text: text}).Error
}
