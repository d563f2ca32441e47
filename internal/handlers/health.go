// Package handlers contains the HTTP route handler functions for the
// scoreboard API. Each exported function follows the handler factory
// pattern: it takes its dependencies (database handle, scoring service,
// broadcast hub) and returns a fiber.Handler.
package handlers

import "github.com/gofiber/fiber/v2"

// HealthCheck handles GET /health: a lightweight liveness probe for load
// balancers and container orchestrators. No database, no auth.
func HealthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
