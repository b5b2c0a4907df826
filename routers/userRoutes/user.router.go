package userRoutes

import (
	controllers "finquest/controllers/user"
	"finquest/middleware"

	"github.com/gofiber/fiber/v2"
)

// SetupUserRoutes sets up profile and notification routes
func SetupUserRoutes(app *fiber.App) {
	userGroup := app.Group("/user")

	userGroup.Get("/profile", middleware.JWTMiddleware, controllers.GetProfile)
	userGroup.Patch("/settings", middleware.JWTMiddleware, controllers.UpdateSettings)
	userGroup.Post("/progress/reset", middleware.JWTMiddleware, controllers.ResetProgress)
	userGroup.Get("/notifications", middleware.JWTMiddleware, controllers.GetNotifications)
	userGroup.Post("/notifications/read", middleware.JWTMiddleware, controllers.MarkNotificationsRead)
}
