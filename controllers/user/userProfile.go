package userController

import (
	"finquest/database"
	"finquest/game"
	"finquest/middleware"
	"finquest/models"

	"github.com/gofiber/fiber/v2"
)

// GetProfile returns the user's profile with derived level info
func GetProfile(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	var completed, achievements int64
	db.Model(&models.UserLevelProgress{}).Where("user_id = ? AND completed = true", userID).Count(&completed)
	db.Model(&models.UserAchievement{}).Where("user_id = ?", userID).Count(&achievements)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile fetched!", fiber.Map{
		"user": fiber.Map{
			"id":                    user.ID,
			"name":                  user.Name,
			"email":                 user.Email,
			"points":                user.Points,
			"coins":                 user.Coins,
			"level_number":          user.LevelNumber,
			"level_title":           user.GetLevelTitle(),
			"level_progress":        user.GetLevelProgress(),
			"avatar_border":         user.AvatarBorder,
			"notifications_enabled": user.NotificationsEnabled,
		},
		"levels_completed":   completed,
		"achievements_count": achievements,
		"streak":             game.CurrentStreak(db, userID),
	})
}

// UpdateSettings changes notification and avatar preferences
func UpdateSettings(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData := new(struct {
		NotificationsEnabled *bool   `json:"notifications_enabled"`
		AvatarBorder         *string `json:"avatar_border"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	updates := map[string]interface{}{}
	if reqData.NotificationsEnabled != nil {
		updates["notifications_enabled"] = *reqData.NotificationsEnabled
	}
	if reqData.AvatarBorder != nil {
		updates["avatar_border"] = *reqData.AvatarBorder
	}
	if len(updates) == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Nothing to update!", nil)
	}

	if err := db.Model(&user).Updates(updates).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update settings!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Settings updated!", nil)
}

// ResetProgress wipes the user's progress, achievements and streak.
// Catalog data (topics, levels, quests, achievements) stays.
func ResetProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	if err := game.ResetProgress(db, &user); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to reset progress!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress reset!", nil)
}

// GetNotifications lists the user's notifications, newest first
func GetNotifications(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var notifications []models.Notification
	db.Where("user_id = ?", userID).Order("created_at desc").Limit(100).Find(&notifications)

	var unread int64
	db.Model(&models.Notification{}).Where("user_id = ? AND is_read = false", userID).Count(&unread)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Notifications fetched!", fiber.Map{
		"notifications": notifications,
		"unread":        unread,
	})
}

// MarkNotificationsRead marks all of the user's notifications as read
func MarkNotificationsRead(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db
	if err := db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = false", userID).
		Update("is_read", true).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update notifications!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Notifications marked as read!", nil)
}
