// Package scoring implements the match-state and score-aggregation model:
// how a match's current hole, leading team, and lead amount are derived from
// per-hole scores, and how match outcomes roll up into round scores,
// tournament standings, and player records.
//
// Everything here is a pure function of committed state. Recomputation is
// idempotent and total over well-formed input, so a failed write is always
// retriable by running the recompute again.
package scoring

import (
	"errors"
	"fmt"
	"sort"

	"github.com/rowdycup/scoreboard/internal/models"
)

// DefaultTotalHoles is the number of holes in the standard match format.
const DefaultTotalHoles = 18

var (
	// ErrHoleOutOfRange is returned when a hole number falls outside 1..totalHoles.
	ErrHoleOutOfRange = errors.New("hole number out of range")
	// ErrDuplicateHole is returned when the same hole appears twice in one match.
	ErrDuplicateHole = errors.New("duplicate hole entry")
	// ErrInvalidStrokes is returned when a submitted stroke count is not a positive integer.
	ErrInvalidStrokes = errors.New("stroke count must be a positive integer")
	// ErrMatchLocked is returned when a mutation targets a locked match.
	// Locked is the terminal-state guard: nothing about a completed match's
	// scores may change until an admin explicitly unlocks it.
	ErrMatchLocked = errors.New("match is locked")
	// ErrInvalidResult is returned when an admin override result string is not
	// one of "<n>&<m>", "<n>UP", or "AS".
	ErrInvalidResult = errors.New("invalid match result")
	// ErrInconsistentState marks a data-integrity fault found during a rollup,
	// e.g. a stored lead amount larger than the hole count. It is surfaced for
	// manual reconciliation, never auto-corrected.
	ErrInconsistentState = errors.New("inconsistent match state")
)

// HoleOutcome is the result of a single hole: the side that won it, or the
// empty string when the hole was halved.
type HoleOutcome struct {
	Hole   int
	Winner models.TeamSide
}

// MatchState is the aggregator's view of a match derived from its hole
// outcomes. LeadingTeam is empty while the match is all square or upcoming;
// Result is empty until the match completes.
type MatchState struct {
	Status      models.MatchStatus
	CurrentHole int
	LeadingTeam models.TeamSide
	LeadAmount  int
	Result      string
}

// AggregateMatch computes a match's current state from its ordered per-hole
// outcomes. It maintains a running differential (positive = Aviators ahead)
// and closes the match early once the lead exceeds the holes remaining,
// producing standard match-play notation: "3&2" for an early closure, "2UP"
// for a win on the last hole, "AS" for a halved match.
//
// Outcomes may arrive in any order; they are sorted by hole before use. An
// out-of-range hole number or a duplicate hole entry is rejected, not dropped.
func AggregateMatch(outcomes []HoleOutcome, totalHoles int) (MatchState, error) {
	if totalHoles <= 0 {
		totalHoles = DefaultTotalHoles
	}

	seen := make(map[int]bool, len(outcomes))
	for _, o := range outcomes {
		if o.Hole < 1 || o.Hole > totalHoles {
			return MatchState{}, fmt.Errorf("%w: hole %d", ErrHoleOutOfRange, o.Hole)
		}
		if seen[o.Hole] {
			return MatchState{}, fmt.Errorf("%w: hole %d", ErrDuplicateHole, o.Hole)
		}
		seen[o.Hole] = true
	}

	if len(outcomes) == 0 {
		return MatchState{Status: models.MatchStatusUpcoming, CurrentHole: 1}, nil
	}

	sorted := make([]HoleOutcome, len(outcomes))
	copy(sorted, outcomes)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Hole < sorted[j].Hole })

	d := 0 // running differential, positive = Aviators ahead
	played := 0
	for _, o := range sorted {
		switch o.Winner {
		case models.TeamAviators:
			d++
		case models.TeamProducers:
			d--
		}
		played++

		// Mathematically decided before the last hole: the trailing side
		// cannot win every remaining hole and still catch up. A win sealed
		// on the final hole is notated "1UP", not "1&0", so the last hole
		// falls through to the full-play branch below.
		remaining := totalHoles - played
		if remaining > 0 && abs(d) > remaining {
			return MatchState{
				Status:      models.MatchStatusCompleted,
				CurrentHole: o.Hole,
				LeadingTeam: leader(d),
				LeadAmount:  abs(d),
				Result:      fmt.Sprintf("%d&%d", abs(d), remaining),
			}, nil
		}
	}

	if played == totalHoles {
		st := MatchState{
			Status:      models.MatchStatusCompleted,
			CurrentHole: totalHoles,
			LeadingTeam: leader(d),
			LeadAmount:  abs(d),
		}
		if d == 0 {
			st.Result = "AS"
		} else {
			st.Result = fmt.Sprintf("%dUP", abs(d))
		}
		return st, nil
	}

	current := played + 1
	if current > totalHoles {
		current = totalHoles
	}
	return MatchState{
		Status:      models.MatchStatusInProgress,
		CurrentHole: current,
		LeadingTeam: leader(d),
		LeadAmount:  abs(d),
	}, nil
}

// StatusTag renders the running differential as the short scoreboard label
// stored on each hole's score row: "A2" (Aviators 2 up), "P1", or "AS".
func StatusTag(d int) string {
	switch {
	case d > 0:
		return fmt.Sprintf("A%d", d)
	case d < 0:
		return fmt.Sprintf("P%d", -d)
	default:
		return "AS"
	}
}

// HoleWinner decides a single hole from the two teams' stroke counts:
// fewer strokes wins, equal strokes is a halve (empty side).
func HoleWinner(aviatorStrokes, producerStrokes int) models.TeamSide {
	switch {
	case aviatorStrokes < producerStrokes:
		return models.TeamAviators
	case producerStrokes < aviatorStrokes:
		return models.TeamProducers
	default:
		return ""
	}
}

// OutcomesFromScores converts persisted score rows into hole outcomes for the
// aggregator.
func OutcomesFromScores(scores []models.Score) []HoleOutcome {
	outcomes := make([]HoleOutcome, 0, len(scores))
	for _, sc := range scores {
		outcomes = append(outcomes, HoleOutcome{
			Hole:   sc.HoleNumber,
			Winner: HoleWinner(sc.AviatorScore, sc.ProducerScore),
		})
	}
	return outcomes
}

func leader(d int) models.TeamSide {
	switch {
	case d > 0:
		return models.TeamAviators
	case d < 0:
		return models.TeamProducers
	default:
		return ""
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
