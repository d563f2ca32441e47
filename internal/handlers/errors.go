package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/rowdycup/scoreboard/internal/scoring"
)

// scoringError maps a scoring-core error onto the API's error taxonomy:
// validation failures are 400s, the locked-match guard is a 409 conflict,
// and a consistency fault is logged and surfaced as a 500 for manual
// reconciliation, never silently corrected.
func scoringError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, scoring.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	case errors.Is(err, scoring.ErrMatchLocked):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "match is locked"})
	case errors.Is(err, scoring.ErrHoleOutOfRange),
		errors.Is(err, scoring.ErrDuplicateHole),
		errors.Is(err, scoring.ErrInvalidStrokes),
		errors.Is(err, scoring.ErrInvalidResult):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, scoring.ErrInconsistentState):
		log.Printf("data integrity fault: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "data integrity fault, manual reconciliation required",
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	}
}
