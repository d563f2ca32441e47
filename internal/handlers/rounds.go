package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rowdycup/scoreboard/internal/models"
)

// ListRounds handles GET /api/v1/rounds?tournamentId=<uuid>.
func ListRounds(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tournamentID, err := uuid.Parse(c.Query("tournamentId"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "tournamentId query param is required"})
		}

		var rounds []models.Round
		if err := db.Preload("Course").
			Where("tournament_id = ?", tournamentID).
			Order("date").
			Find(&rounds).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to fetch rounds"})
		}
		return c.JSON(rounds)
	}
}

// CreateRoundRequest is the JSON body for POST /api/v1/rounds.
type CreateRoundRequest struct {
	TournamentID string `json:"tournament_id"`
	Name         string `json:"name"`
	MatchType    string `json:"match_type"`
	CourseID     string `json:"course_id"`
	Date         string `json:"date"` // "YYYY-MM-DD"
}

// CreateRound handles POST /api/v1/rounds (admin). The match type must be a
// known format, since it fixes the required player count per side for every
// match in the round.
func CreateRound(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req CreateRoundRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}

		tournamentID, err := uuid.Parse(req.TournamentID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid tournament_id"})
		}
		courseID, err := uuid.Parse(req.CourseID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid course_id"})
		}
		if req.Name == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name is required"})
		}
		matchType := models.MatchType(req.MatchType)
		if _, ok := matchType.PlayersPerSide(); !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unknown match_type"})
		}
		date, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "date must be in YYYY-MM-DD format"})
		}

		var tournament models.Tournament
		if err := db.First(&tournament, "id = ?", tournamentID).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "tournament not found"})
		}
		var course models.Course
		if err := db.First(&course, "id = ?", courseID).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "course not found"})
		}

		round := models.Round{
			TournamentID: tournamentID,
			Name:         req.Name,
			MatchType:    matchType,
			CourseID:     courseID,
			Date:         date,
		}
		if err := db.Create(&round).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to create round"})
		}
		return c.Status(fiber.StatusCreated).JSON(round)
	}
}

// UpdateRoundRequest is the JSON body for PUT /api/v1/rounds/:id. Only
// descriptive fields are editable; the score fields are derived and owned by
// the rollup.
type UpdateRoundRequest struct {
	Name     *string `json:"name,omitempty"`
	CourseID *string `json:"course_id,omitempty"`
	Date     *string `json:"date,omitempty"`
}

// UpdateRound handles PUT /api/v1/rounds/:id (admin).
func UpdateRound(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid round ID"})
		}

		var req UpdateRoundRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}

		var round models.Round
		if err := db.First(&round, "id = ?", id).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "round not found"})
		}

		updates := map[string]interface{}{}
		if req.Name != nil && *req.Name != "" {
			updates["name"] = *req.Name
		}
		if req.CourseID != nil {
			courseID, err := uuid.Parse(*req.CourseID)
			if err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid course_id"})
			}
			var course models.Course
			if err := db.First(&course, "id = ?", courseID).Error; err != nil {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "course not found"})
			}
			updates["course_id"] = courseID
		}
		if req.Date != nil {
			date, err := time.Parse("2006-01-02", *req.Date)
			if err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "date must be in YYYY-MM-DD format"})
			}
			updates["date"] = date
		}

		if len(updates) > 0 {
			if err := db.Model(&round).Updates(updates).Error; err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to update round"})
			}
		}
		return c.JSON(round)
	}
}

// DeleteRound handles DELETE /api/v1/rounds/:id (admin). A round that still
// owns matches cannot be deleted; there is no cascading delete.
func DeleteRound(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid round ID"})
		}

		var matchCount int64
		db.Model(&models.Match{}).Where("round_id = ?", id).Count(&matchCount)
		if matchCount > 0 {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "round still has matches"})
		}

		result := db.Delete(&models.Round{}, "id = ?", id)
		if result.Error != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to delete round"})
		}
		if result.RowsAffected == 0 {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "round not found"})
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
