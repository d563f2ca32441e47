package scoring_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/rowdycup/scoreboard/internal/models"
	"github.com/rowdycup/scoreboard/internal/scoring"
)

func sidePtr(s models.TeamSide) *models.TeamSide { return &s }

func TestRollupMatches(t *testing.T) {
	matches := []models.Match{
		{Status: models.MatchStatusCompleted, LeadingTeam: sidePtr(models.TeamAviators), LeadAmount: 3},
		{Status: models.MatchStatusCompleted, LeadingTeam: nil}, // halved
		{Status: models.MatchStatusInProgress, LeadingTeam: sidePtr(models.TeamProducers), LeadAmount: 2},
		{Status: models.MatchStatusInProgress, LeadingTeam: nil}, // all square
		{Status: models.MatchStatusUpcoming},
	}

	tallies, err := scoring.RollupMatches(matches, 18)
	require.NoError(t, err)

	require.Equal(t, scoring.ScoreTally{Confirmed: 1.5, Pending: 0.5}, tallies.Aviators)
	require.Equal(t, scoring.ScoreTally{Confirmed: 0.5, Pending: 1.5}, tallies.Producers)
	require.Equal(t, 2.0, tallies.Aviators.Total())

	// Full recompute: a second pass over the same matches changes nothing.
	again, err := scoring.RollupMatches(matches, 18)
	require.NoError(t, err)
	require.Equal(t, tallies, again)
}

func TestRollupMatches_RejectsCorruptLeadAmount(t *testing.T) {
	matches := []models.Match{
		{ID: uuid.New(), Status: models.MatchStatusCompleted, LeadingTeam: sidePtr(models.TeamAviators), LeadAmount: 25},
	}
	_, err := scoring.RollupMatches(matches, 18)
	require.ErrorIs(t, err, scoring.ErrInconsistentState)
	require.Contains(t, err.Error(), matches[0].ID.String())
}

func TestRollupRounds(t *testing.T) {
	rounds := []models.Round{
		{AviatorScore: 3, ProducerScore: 1, PendingAviatorScore: 0.5, PendingProducerScore: 0.5},
		{AviatorScore: 1.5, ProducerScore: 2.5, PendingAviatorScore: 1},
	}
	tallies := scoring.RollupRounds(rounds)
	require.Equal(t, scoring.ScoreTally{Confirmed: 4.5, Pending: 1.5}, tallies.Aviators)
	require.Equal(t, scoring.ScoreTally{Confirmed: 3.5, Pending: 0.5}, tallies.Producers)
}
