package middleware

import "github.com/gofiber/fiber/v2"

// RequireAdmin allows only users whose account carries the admin flag.
// It must run after Auth, which populates "isAdmin" in the request context.
//
//	admin := api.Group("", middleware.RequireAdmin())
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		isAdmin, ok := c.Locals("isAdmin").(bool)
		if !ok || !isAdmin {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "admin access required",
			})
		}
		return c.Next()
	}
}
