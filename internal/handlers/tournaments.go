package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rowdycup/scoreboard/internal/models"
	"github.com/rowdycup/scoreboard/internal/scoring"
)

// TournamentResponse is the live scoreboard view: the tournament row plus
// both teams' tallies. Pending points are re-derived from the rounds on
// every request and never stored on the tournament.
type TournamentResponse struct {
	Tournament models.Tournament   `json:"tournament"`
	Tallies    scoring.TeamTallies `json:"tallies"`
}

// GetActiveTournament handles GET /api/v1/tournaments/active: the single
// active tournament with its rounds and live tally totals.
func GetActiveTournament(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var t models.Tournament
		if err := db.Preload("Rounds").First(&t, "is_active = ?", true).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "no active tournament",
			})
		}
		return c.JSON(TournamentResponse{
			Tournament: t,
			Tallies:    scoring.RollupRounds(t.Rounds),
		})
	}
}

// StandingsResponse is the tournament standings page: round scores plus
// per-player records for the tournament.
type StandingsResponse struct {
	Tournament  models.Tournament             `json:"tournament"`
	Tallies     scoring.TeamTallies           `json:"tallies"`
	PlayerStats []models.TournamentPlayerStat `json:"player_stats"`
}

// GetStandings handles GET /api/v1/tournaments/:id/standings.
func GetStandings(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid tournament ID"})
		}

		var t models.Tournament
		if err := db.Preload("Rounds").First(&t, "id = ?", id).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "tournament not found"})
		}

		var stats []models.TournamentPlayerStat
		if err := db.Preload("Player").Preload("Player.Team").
			Where("tournament_id = ?", id).
			Order("points DESC, wins DESC").
			Find(&stats).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to fetch standings"})
		}

		return c.JSON(StandingsResponse{
			Tournament:  t,
			Tallies:     scoring.RollupRounds(t.Rounds),
			PlayerStats: stats,
		})
	}
}

// CreateTournamentRequest is the JSON body for POST /api/v1/tournaments.
type CreateTournamentRequest struct {
	Name string `json:"name"`
	Year int    `json:"year"`
}

// CreateTournament handles POST /api/v1/tournaments (admin). New tournaments
// start inactive; activation is a separate, explicit step.
func CreateTournament(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req CreateTournamentRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}
		if req.Name == "" || req.Year == 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name and year are required"})
		}

		t := models.Tournament{Name: req.Name, Year: req.Year}
		if err := db.Create(&t).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to create tournament"})
		}
		return c.Status(fiber.StatusCreated).JSON(t)
	}
}

// SetActiveTournament handles PUT /api/v1/tournaments/:id/activate (admin).
// Exactly one tournament is active at a time, so activation deactivates all
// others inside the same transaction.
func SetActiveTournament(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid tournament ID"})
		}

		var t models.Tournament
		txErr := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.First(&t, "id = ?", id).Error; err != nil {
				return err
			}
			if err := tx.Model(&models.Tournament{}).
				Where("is_active = ?", true).
				Update("is_active", false).Error; err != nil {
				return err
			}
			return tx.Model(&t).Update("is_active", true).Error
		})
		if txErr != nil {
			if txErr == gorm.ErrRecordNotFound {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "tournament not found"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to activate tournament"})
		}
		t.IsActive = true
		return c.JSON(t)
	}
}

// ConcludeTournament handles PUT /api/v1/tournaments/:id/conclude (admin):
// deactivates the tournament and appends its archival history row with the
// final score and winner.
func ConcludeTournament(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid tournament ID"})
		}

		var history models.TournamentHistory
		txErr := db.Transaction(func(tx *gorm.DB) error {
			var t models.Tournament
			if err := tx.First(&t, "id = ?", id).Error; err != nil {
				return err
			}

			var winner *models.TeamSide
			switch {
			case t.AviatorScore > t.ProducerScore:
				w := models.TeamAviators
				winner = &w
			case t.ProducerScore > t.AviatorScore:
				w := models.TeamProducers
				winner = &w
			}

			history = models.TournamentHistory{
				TournamentID:  t.ID,
				Year:          t.Year,
				WinningTeam:   winner,
				AviatorScore:  t.AviatorScore,
				ProducerScore: t.ProducerScore,
			}
			if err := tx.Create(&history).Error; err != nil {
				return err
			}
			return tx.Model(&t).Update("is_active", false).Error
		})
		if txErr != nil {
			if txErr == gorm.ErrRecordNotFound {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "tournament not found"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to conclude tournament"})
		}
		return c.JSON(history)
	}
}

// ListTournamentHistory handles GET /api/v1/tournaments/history: every
// concluded edition, newest first.
func ListTournamentHistory(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var rows []models.TournamentHistory
		if err := db.Order("year DESC").Find(&rows).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to fetch history"})
		}
		return c.JSON(rows)
	}
}
