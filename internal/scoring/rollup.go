package scoring

import (
	"fmt"

	"github.com/rowdycup/scoreboard/internal/models"
)

// ScoreTally pairs a team's confirmed points with its pending points.
// Confirmed points come from completed matches and never move backwards
// during normal play; pending points are projections from in-progress
// matches and can still change. Keeping the pair in one type stops the two
// buckets from drifting independently.
type ScoreTally struct {
	Confirmed float64 `json:"confirmed"`
	Pending   float64 `json:"pending"`
}

// Total is the projected score if every in-progress match holds.
func (t ScoreTally) Total() float64 { return t.Confirmed + t.Pending }

// TeamTallies holds both teams' tallies for one round or tournament.
type TeamTallies struct {
	Aviators  ScoreTally `json:"aviators"`
	Producers ScoreTally `json:"producers"`
}

// RollupMatches derives a round's team tallies from its matches:
//
//   - completed match: 1 confirmed point to the winner, 0.5/0.5 on "AS"
//   - in-progress match with a leader: 1 pending point to the leader
//   - in-progress match all square: 0.5/0.5 pending
//   - upcoming match: nothing
//
// It is a full recompute from match state, so running it twice over the same
// matches yields identical tallies. A stored lead amount outside 0..totalHoles
// is a data-integrity fault and is reported, never patched over.
func RollupMatches(matches []models.Match, totalHoles int) (TeamTallies, error) {
	if totalHoles <= 0 {
		totalHoles = DefaultTotalHoles
	}

	var tallies TeamTallies
	for _, m := range matches {
		if m.LeadAmount < 0 || m.LeadAmount > totalHoles {
			return TeamTallies{}, fmt.Errorf("%w: match %s lead amount %d", ErrInconsistentState, m.ID, m.LeadAmount)
		}

		switch m.Status {
		case models.MatchStatusCompleted:
			switch side(m.LeadingTeam) {
			case models.TeamAviators:
				tallies.Aviators.Confirmed++
			case models.TeamProducers:
				tallies.Producers.Confirmed++
			default: // halved match
				tallies.Aviators.Confirmed += 0.5
				tallies.Producers.Confirmed += 0.5
			}
		case models.MatchStatusInProgress:
			switch side(m.LeadingTeam) {
			case models.TeamAviators:
				tallies.Aviators.Pending++
			case models.TeamProducers:
				tallies.Producers.Pending++
			default: // all square, could break either way
				tallies.Aviators.Pending += 0.5
				tallies.Producers.Pending += 0.5
			}
		}
	}
	return tallies, nil
}

// RollupRounds sums round tallies into tournament-level tallies. Confirmed
// totals are what gets persisted on the tournament row; pending totals are
// re-derived from the rounds on every read and surfaced live, never stored.
func RollupRounds(rounds []models.Round) TeamTallies {
	var tallies TeamTallies
	for _, r := range rounds {
		tallies.Aviators.Confirmed += r.AviatorScore
		tallies.Producers.Confirmed += r.ProducerScore
		tallies.Aviators.Pending += r.PendingAviatorScore
		tallies.Producers.Pending += r.PendingProducerScore
	}
	return tallies
}

func side(p *models.TeamSide) models.TeamSide {
	if p == nil {
		return ""
	}
	return *p
}
