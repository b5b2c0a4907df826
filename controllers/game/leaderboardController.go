package gameController

import (
	"finquest/database"
	"finquest/game"
	"finquest/middleware"
	"finquest/models"

	"github.com/gofiber/fiber/v2"
)

const leaderboardSize = 50

// GetLeaderboard refreshes the caller's snapshot and returns the board
// with the caller's rank
func GetLeaderboard(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	entry, err := game.RefreshLeaderboard(db, &user)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to refresh leaderboard!", nil)
	}

	rank, err := game.Rank(db, entry)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to compute rank!", nil)
	}

	entries, err := game.TopEntries(db, leaderboardSize)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to load leaderboard!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Leaderboard fetched!", fiber.Map{
		"entries": entries,
		"me":      entry,
		"rank":    rank,
	})
}

// GetAchievements lists the catalog with the user's earned entries marked
func GetAchievements(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var catalog []models.Achievement
	db.Order("category asc, id asc").Find(&catalog)

	var earned []models.UserAchievement
	db.Where("user_id = ?", userID).Find(&earned)

	earnedByID := make(map[uint]models.UserAchievement, len(earned))
	for _, ua := range earned {
		earnedByID[ua.AchievementID] = ua
	}

	type achievementView struct {
		models.Achievement
		Earned   bool   `json:"earned"`
		EarnedAt string `json:"earned_at,omitempty"`
	}

	views := make([]achievementView, len(catalog))
	for i, a := range catalog {
		view := achievementView{Achievement: a}
		if ua, ok := earnedByID[a.ID]; ok {
			view.Earned = true
			view.EarnedAt = ua.EarnedAt.Format("2006-01-02")
		}
		views[i] = view
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Achievements fetched!", fiber.Map{
		"achievements": views,
		"earned_count": len(earned),
	})
}

// GetDailyQuests returns today's quest progress for the user
func GetDailyQuests(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	quests, err := game.TodayQuestProgress(database.Database.Db, userID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to load quests!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quests fetched!", fiber.Map{
		"quests": quests,
	})
}
