package gameRoutes

import (
	controllers "finquest/controllers/game"
	"finquest/middleware"
	validators "finquest/validators/game"

	"github.com/gofiber/fiber/v2"
)

// SetupGameRoutes sets up all gameplay routes
func SetupGameRoutes(app *fiber.App) {
	gameGroup := app.Group("/game")

	gameGroup.Get("/dashboard", middleware.JWTMiddleware, controllers.Dashboard)
	gameGroup.Get("/topics/:id/levels", middleware.JWTMiddleware, controllers.GetTopicLevels)

	// Level play and answer submission
	gameGroup.Get("/levels/:id", middleware.JWTMiddleware, controllers.GetLevel)
	gameGroup.Post("/levels/:id/answer", middleware.JWTMiddleware, validators.SubmitAnswer(), controllers.SubmitAnswer)
	gameGroup.Post("/hints/:hintId/buy", middleware.JWTMiddleware, controllers.BuyHint)

	gameGroup.Get("/articles/:id", middleware.JWTMiddleware, controllers.GetArticle)
	gameGroup.Get("/leaderboard", middleware.JWTMiddleware, controllers.GetLeaderboard)
	gameGroup.Get("/achievements", middleware.JWTMiddleware, controllers.GetAchievements)
	gameGroup.Get("/quests", middleware.JWTMiddleware, controllers.GetDailyQuests)

	// Content administration
	adminGroup := app.Group("/admin", middleware.JWTMiddleware, middleware.AdminOnly)
	adminGroup.Post("/topics", controllers.CreateTopic)
	adminGroup.Patch("/topics/:id", controllers.UpdateTopic)
	adminGroup.Post("/levels", controllers.CreateLevel)
	adminGroup.Patch("/levels/:id", controllers.UpdateLevel)
	adminGroup.Post("/quests", controllers.CreateDailyQuest)
	adminGroup.Patch("/quests/:id", controllers.UpdateDailyQuest)
}
