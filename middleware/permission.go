package middleware

import (
	"github.com/gofiber/fiber/v2"
)

// AdminOnly allows only users with the ADMIN role to proceed
func AdminOnly(c *fiber.Ctx) error {
	role, ok := c.Locals("role").(string)
	if !ok || role != "ADMIN" {
		return JsonResponse(c, fiber.StatusForbidden, false, "Admin access required!", nil)
	}
	return c.Next()
}
