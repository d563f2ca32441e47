package handlers

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rowdycup/scoreboard/internal/models"
	"github.com/rowdycup/scoreboard/internal/scoring"
	"github.com/rowdycup/scoreboard/internal/websocket"
)

// SubmitHoleScore handles POST /api/v1/matches/:id/scores: one hole result
// for a match. The scoring service validates, persists, and recomputes
// match, round, and tournament state synchronously; then the new aggregate
// is broadcast to spectators watching the tournament.
func SubmitHoleScore(db *gorm.DB, svc *scoring.Service, hub *websocket.Hub) fiber.Handler {
	return func(c *fiber.Ctx) error {
		matchID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid match ID"})
		}

		var in scoring.HoleScoreInput
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}

		match, err := svc.RecordHoleScore(c.Context(), matchID, in)
		if err != nil {
			return scoringError(c, err)
		}

		broadcastMatchUpdate(db, hub, match)
		return c.JSON(match)
	}
}

// matchUpdateEvent is the payload pushed over the websocket when a match
// changes. It carries just enough for the UI to know what to re-fetch.
type matchUpdateEvent struct {
	Type         string             `json:"type"`
	TournamentID string             `json:"tournament_id"`
	RoundID      string             `json:"round_id"`
	MatchID      string             `json:"match_id"`
	Status       models.MatchStatus `json:"status"`
}

// broadcastMatchUpdate notifies spectators of the match's tournament that
// something changed. Best effort: a failure to resolve the round just skips
// the notification, since clients poll authoritative state anyway.
func broadcastMatchUpdate(db *gorm.DB, hub *websocket.Hub, match *models.Match) {
	var round models.Round
	if err := db.First(&round, "id = ?", match.RoundID).Error; err != nil {
		return
	}
	payload, err := json.Marshal(matchUpdateEvent{
		Type:         "match_updated",
		TournamentID: round.TournamentID.String(),
		RoundID:      match.RoundID.String(),
		MatchID:      match.ID.String(),
		Status:       match.Status,
	})
	if err != nil {
		return
	}
	hub.BroadcastToTournament(round.TournamentID.String(), payload)
}
