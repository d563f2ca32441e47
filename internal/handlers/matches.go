package handlers

import (
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rowdycup/scoreboard/internal/models"
	"github.com/rowdycup/scoreboard/internal/scoring"
	"github.com/rowdycup/scoreboard/internal/websocket"
)

// ListMatches handles GET /api/v1/matches?roundId=<uuid>.
func ListMatches(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		roundID, err := uuid.Parse(c.Query("roundId"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "roundId query param is required"})
		}

		var matches []models.Match
		if err := db.Preload("Participants").Preload("Participants.Player").
			Where("round_id = ?", roundID).
			Order("created_at").
			Find(&matches).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to fetch matches"})
		}
		return c.JSON(matches)
	}
}

// GetMatch handles GET /api/v1/matches/:id, the full match view with
// participants and hole-by-hole scores.
func GetMatch(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid match ID"})
		}

		var match models.Match
		if err := db.Preload("Participants").Preload("Participants.Player").
			Preload("Scores", func(db *gorm.DB) *gorm.DB { return db.Order("hole_number") }).
			First(&match, "id = ?", id).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "match not found"})
		}
		return c.JSON(match)
	}
}

// ParticipantInput names one player and the side they play for.
type ParticipantInput struct {
	PlayerID string          `json:"player_id"`
	Team     models.TeamSide `json:"team"`
}

// CreateMatchRequest is the JSON body for POST /api/v1/matches.
type CreateMatchRequest struct {
	RoundID      string             `json:"round_id"`
	Name         string             `json:"name"`
	Participants []ParticipantInput `json:"participants"`
}

// CreateMatch handles POST /api/v1/matches (admin). Roster rules are
// enforced here, before anything is persisted: each side fields exactly the
// player count the round's match type requires, every player belongs to the
// side they're entered on, and a player can appear in at most one match per
// round.
func CreateMatch(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req CreateMatchRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}
		roundID, err := uuid.Parse(req.RoundID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid round_id"})
		}
		if req.Name == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name is required"})
		}

		var round models.Round
		if err := db.First(&round, "id = ?", roundID).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "round not found"})
		}
		perSide, ok := round.MatchType.PlayersPerSide()
		if !ok {
			// CreateRound validates the format, so an unknown one here is
			// a data-integrity fault, not caller error.
			log.Printf("data integrity fault: round %s has unknown match type %q", round.ID, round.MatchType)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "round has an unknown match type"})
		}

		// Count sides and collect player IDs, rejecting duplicates up front.
		playerIDs := make([]uuid.UUID, 0, len(req.Participants))
		seen := make(map[uuid.UUID]bool)
		sideCount := map[models.TeamSide]int{}
		for _, p := range req.Participants {
			playerID, err := uuid.Parse(p.PlayerID)
			if err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid player_id"})
			}
			if p.Team != models.TeamAviators && p.Team != models.TeamProducers {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "team must be aviators or producers"})
			}
			if seen[playerID] {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "player listed twice"})
			}
			seen[playerID] = true
			sideCount[p.Team]++
			playerIDs = append(playerIDs, playerID)
		}
		if sideCount[models.TeamAviators] != perSide || sideCount[models.TeamProducers] != perSide {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("%s requires %d players per side", round.MatchType, perSide),
			})
		}

		// Every listed player must exist and play for the side they're
		// entered on.
		var players []models.Player
		if err := db.Preload("Team").Where("id IN ?", playerIDs).Find(&players).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to fetch players"})
		}
		if len(players) != len(playerIDs) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unknown player"})
		}
		sideByPlayer := make(map[uuid.UUID]models.TeamSide, len(players))
		for _, p := range players {
			sideByPlayer[p.ID] = p.Team.Side
		}
		for _, p := range req.Participants {
			playerID, _ := uuid.Parse(p.PlayerID)
			if sideByPlayer[playerID] != p.Team {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "player is not on that team"})
			}
		}

		// One match per player per round.
		var alreadyPlaced int64
		db.Model(&models.MatchParticipant{}).
			Joins("JOIN matches ON matches.id = match_participants.match_id").
			Where("matches.round_id = ? AND match_participants.player_id IN ?", roundID, playerIDs).
			Count(&alreadyPlaced)
		if alreadyPlaced > 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "a player is already in another match this round"})
		}

		var match models.Match
		txErr := db.Transaction(func(tx *gorm.DB) error {
			match = models.Match{
				RoundID: roundID,
				Name:    req.Name,
				Status:  models.MatchStatusUpcoming,
			}
			if err := tx.Create(&match).Error; err != nil {
				return err
			}
			for _, p := range req.Participants {
				playerID, _ := uuid.Parse(p.PlayerID)
				participant := models.MatchParticipant{
					MatchID:  match.ID,
					PlayerID: playerID,
					Team:     p.Team,
				}
				if err := tx.Create(&participant).Error; err != nil {
					return err
				}
			}
			return nil
		})
		if txErr != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to create match"})
		}
		return c.Status(fiber.StatusCreated).JSON(match)
	}
}

// OverrideMatchRequest is the JSON body for PUT /api/v1/matches/:id/result.
type OverrideMatchRequest struct {
	Result      string          `json:"result"`       // "3&2", "2UP", or "AS"
	WinningTeam models.TeamSide `json:"winning_team"` // empty for "AS"
}

// OverrideMatchResult handles PUT /api/v1/matches/:id/result (admin): the
// recognized escape hatch for forcing a match to completed with an explicit
// result, e.g. a concession the hole scores don't show.
func OverrideMatchResult(db *gorm.DB, svc *scoring.Service, hub *websocket.Hub) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid match ID"})
		}
		var req OverrideMatchRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}

		match, err := svc.OverrideResult(c.Context(), id, req.Result, req.WinningTeam)
		if err != nil {
			return scoringError(c, err)
		}

		broadcastMatchUpdate(db, hub, match)
		return c.JSON(match)
	}
}

// UnlockMatch handles PUT /api/v1/matches/:id/unlock (admin): reopens a
// completed match so a miskeyed hole can be corrected.
func UnlockMatch(db *gorm.DB, svc *scoring.Service, hub *websocket.Hub) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid match ID"})
		}

		match, err := svc.UnlockMatch(c.Context(), id)
		if err != nil {
			return scoringError(c, err)
		}

		broadcastMatchUpdate(db, hub, match)
		return c.JSON(match)
	}
}
