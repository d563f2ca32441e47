package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rowdycup/scoreboard/internal/models"
	"github.com/rowdycup/scoreboard/internal/scoring"
)

// ListPlayers handles GET /api/v1/players, the full roster with team info.
func ListPlayers(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var players []models.Player
		if err := db.Preload("Team").Order("name").Find(&players).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to fetch players"})
		}
		return c.JSON(players)
	}
}

// CreatePlayerRequest is the JSON body for POST /api/v1/players.
type CreatePlayerRequest struct {
	Name string          `json:"name"`
	Team models.TeamSide `json:"team"`
}

// CreatePlayer handles POST /api/v1/players (admin).
func CreatePlayer(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req CreatePlayerRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}
		if req.Name == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name is required"})
		}

		var team models.Team
		if err := db.First(&team, "side = ?", req.Team).Error; err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "team must be aviators or producers"})
		}

		player := models.Player{Name: req.Name, TeamID: team.ID}
		if err := db.Create(&player).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to create player"})
		}
		return c.Status(fiber.StatusCreated).JSON(player)
	}
}

// UpdatePlayerRequest is the JSON body for PUT /api/v1/players/:id. The
// W/L/T fields exist for explicit admin corrections only; normal updates
// come from the statistics rollup.
type UpdatePlayerRequest struct {
	Name   *string `json:"name,omitempty"`
	Wins   *int    `json:"wins,omitempty"`
	Losses *int    `json:"losses,omitempty"`
	Ties   *int    `json:"ties,omitempty"`
}

// UpdatePlayer handles PUT /api/v1/players/:id (admin).
func UpdatePlayer(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid player ID"})
		}

		var req UpdatePlayerRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}

		var player models.Player
		if err := db.First(&player, "id = ?", id).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "player not found"})
		}

		updates := map[string]interface{}{}
		if req.Name != nil && *req.Name != "" {
			updates["name"] = *req.Name
		}
		if req.Wins != nil {
			if *req.Wins < 0 {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "wins cannot be negative"})
			}
			updates["wins"] = *req.Wins
		}
		if req.Losses != nil {
			if *req.Losses < 0 {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "losses cannot be negative"})
			}
			updates["losses"] = *req.Losses
		}
		if req.Ties != nil {
			if *req.Ties < 0 {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ties cannot be negative"})
			}
			updates["ties"] = *req.Ties
		}

		if len(updates) > 0 {
			if err := db.Model(&player).Updates(updates).Error; err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to update player"})
			}
		}
		return c.JSON(player)
	}
}

// GetCareerStats handles GET /api/v1/players/career-stats: every player's
// all-time record, best first.
func GetCareerStats(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var stats []models.PlayerCareerStat
		if err := db.Preload("Player").Preload("Player.Team").
			Order("points DESC, wins DESC").
			Find(&stats).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to fetch career stats"})
		}
		return c.JSON(stats)
	}
}

// Reconcile handles POST /api/v1/admin/reconcile (admin): rebuilds every
// stat row and derived total by replaying completed matches. This is the
// recovery path for a stats write that failed after the match completion
// had already committed.
func Reconcile(svc *scoring.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.Reconcile(c.Context()); err != nil {
			return scoringError(c, err)
		}
		return c.JSON(fiber.Map{"status": "reconciled"})
	}
}
