package scoring

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/rowdycup/scoreboard/internal/models"
)

// ErrNotFound is returned by Store implementations when a requested record
// does not exist.
var ErrNotFound = errors.New("record not found")

// StatDelta is one player's share of a completed match: the increments to
// apply to both their tournament stat row and their career stat row.
type StatDelta struct {
	Wins   int
	Losses int
	Ties   int
	Points float64
}

// Store is the data-access contract the scoring core consumes. The delivery
// layer owns everything else (CRUD forms, auth, broadcast); the core only
// reads match state through this interface and writes recomputed aggregates
// back through it.
type Store interface {
	GetMatch(ctx context.Context, id uuid.UUID) (*models.Match, error)
	UpdateMatch(ctx context.Context, m *models.Match) error
	ListMatchesByRound(ctx context.Context, roundID uuid.UUID) ([]models.Match, error)

	ListScoresByMatch(ctx context.Context, matchID uuid.UUID) ([]models.Score, error)
	UpsertScore(ctx context.Context, sc *models.Score) error

	GetRound(ctx context.Context, id uuid.UUID) (*models.Round, error)
	UpdateRound(ctx context.Context, r *models.Round) error
	ListRoundsByTournament(ctx context.Context, tournamentID uuid.UUID) ([]models.Round, error)

	GetTournament(ctx context.Context, id uuid.UUID) (*models.Tournament, error)
	UpdateTournament(ctx context.Context, t *models.Tournament) error
	ListTournaments(ctx context.Context) ([]models.Tournament, error)

	ListParticipantsByMatch(ctx context.Context, matchID uuid.UUID) ([]models.MatchParticipant, error)

	// UpdatePlayerStats applies one delta to the player's tournament stat
	// row, their career stat row, and the counters on the player record
	// itself. The rows are created on first use.
	UpdatePlayerStats(ctx context.Context, tournamentID, playerID uuid.UUID, delta StatDelta) error

	// ResetPlayerStats zeroes every player, tournament, and career stat row
	// ahead of a reconciliation replay.
	ResetPlayerStats(ctx context.Context) error
}
