package scoring

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strconv"

	"github.com/google/uuid"

	"github.com/rowdycup/scoreboard/internal/models"
)

// Service runs the recomputation pipeline: a hole-score mutation updates the
// score row, the aggregator rederives the match state, the rollup rederives
// round and tournament totals, and the statistics rollup fires once when a
// match transitions to completed. All of it happens synchronously inside the
// mutating request.
type Service struct {
	store      Store
	totalHoles int
}

// NewService returns a Service for the standard 18-hole match format.
func NewService(store Store) *Service {
	return &Service{store: store, totalHoles: DefaultTotalHoles}
}

// HoleScoreInput is one hole result for a match: the hole number and each
// team's stroke count on that hole.
type HoleScoreInput struct {
	Hole          int `json:"hole_number"`
	AviatorScore  int `json:"aviator_score"`
	ProducerScore int `json:"producer_score"`
}

// RecordHoleScore validates and persists one hole result, then recomputes
// everything derived from it. Submissions against a locked match are rejected
// before anything is persisted.
func (s *Service) RecordHoleScore(ctx context.Context, matchID uuid.UUID, in HoleScoreInput) (*models.Match, error) {
	m, err := s.store.GetMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if m.Locked {
		return nil, ErrMatchLocked
	}
	if in.Hole < 1 || in.Hole > s.totalHoles {
		return nil, fmt.Errorf("%w: hole %d", ErrHoleOutOfRange, in.Hole)
	}
	if in.AviatorScore < 1 || in.ProducerScore < 1 {
		return nil, ErrInvalidStrokes
	}

	sc := &models.Score{
		MatchID:       matchID,
		HoleNumber:    in.Hole,
		AviatorScore:  in.AviatorScore,
		ProducerScore: in.ProducerScore,
	}
	if err := s.store.UpsertScore(ctx, sc); err != nil {
		return nil, err
	}

	return s.RecomputeMatch(ctx, matchID)
}

// RecomputeMatch rederives a match's state from its full set of hole scores
// and propagates the change through the round and tournament rollups. It is
// a pure recompute: running it again over the same scores is a no-op.
func (s *Service) RecomputeMatch(ctx context.Context, matchID uuid.UUID) (*models.Match, error) {
	m, err := s.store.GetMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}
	scores, err := s.store.ListScoresByMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}

	state, err := AggregateMatch(OutcomesFromScores(scores), s.totalHoles)
	if err != nil {
		return nil, err
	}

	if err := s.refreshDerivedScoreFields(ctx, scores); err != nil {
		return nil, err
	}

	wasCompleted := m.Status == models.MatchStatusCompleted

	m.Status = state.Status
	m.CurrentHole = state.CurrentHole
	m.LeadAmount = state.LeadAmount
	if state.LeadingTeam == "" {
		m.LeadingTeam = nil
	} else {
		lt := state.LeadingTeam
		m.LeadingTeam = &lt
	}
	if state.Result == "" {
		m.Result = nil
	} else {
		res := state.Result
		m.Result = &res
	}
	if m.Status == models.MatchStatusCompleted {
		m.Locked = true
	}
	if err := s.store.UpdateMatch(ctx, m); err != nil {
		return nil, err
	}

	// Statistics are edge-triggered: they fire exactly once, on the
	// transition into completed. The locked flag keeps the match there.
	if !wasCompleted && m.Status == models.MatchStatusCompleted {
		if err := s.applyMatchStats(ctx, m, 1); err != nil {
			return nil, err
		}
	}

	if err := s.RecomputeRound(ctx, m.RoundID); err != nil {
		return nil, err
	}
	return m, nil
}

// refreshDerivedScoreFields rewrites each score row's winning team and
// running status tag ("A2", "P1", "AS") in hole order.
func (s *Service) refreshDerivedScoreFields(ctx context.Context, scores []models.Score) error {
	sorted := make([]models.Score, len(scores))
	copy(sorted, scores)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].HoleNumber < sorted[j].HoleNumber })

	d := 0
	for i := range sorted {
		sc := &sorted[i]
		winner := HoleWinner(sc.AviatorScore, sc.ProducerScore)
		switch winner {
		case models.TeamAviators:
			d++
		case models.TeamProducers:
			d--
		}
		tag := StatusTag(d)

		var winnerPtr *models.TeamSide
		if winner != "" {
			w := winner
			winnerPtr = &w
		}
		if sc.MatchStatusTag == tag && side(sc.WinningTeam) == winner {
			continue
		}
		sc.WinningTeam = winnerPtr
		sc.MatchStatusTag = tag
		if err := s.store.UpsertScore(ctx, sc); err != nil {
			return err
		}
	}
	return nil
}

// RecomputeRound rederives a round's confirmed and pending tallies from its
// matches and propagates confirmed totals up to the tournament. Tournament
// pending is never persisted; readers re-derive it from round pending fields.
func (s *Service) RecomputeRound(ctx context.Context, roundID uuid.UUID) error {
	r, err := s.store.GetRound(ctx, roundID)
	if err != nil {
		return err
	}
	matches, err := s.store.ListMatchesByRound(ctx, roundID)
	if err != nil {
		return err
	}
	tallies, err := RollupMatches(matches, s.totalHoles)
	if err != nil {
		return err
	}

	r.AviatorScore = tallies.Aviators.Confirmed
	r.ProducerScore = tallies.Producers.Confirmed
	r.PendingAviatorScore = tallies.Aviators.Pending
	r.PendingProducerScore = tallies.Producers.Pending
	r.IsComplete = len(matches) > 0 && allCompleted(matches)
	if err := s.store.UpdateRound(ctx, r); err != nil {
		return err
	}

	t, err := s.store.GetTournament(ctx, r.TournamentID)
	if err != nil {
		return err
	}
	rounds, err := s.store.ListRoundsByTournament(ctx, r.TournamentID)
	if err != nil {
		return err
	}
	totals := RollupRounds(rounds)
	t.AviatorScore = totals.Aviators.Confirmed
	t.ProducerScore = totals.Producers.Confirmed
	return s.store.UpdateTournament(ctx, t)
}

var resultPattern = regexp.MustCompile(`^([1-9]\d*)&(\d+)$|^([1-9]\d*)UP$|^AS$`)

// OverrideResult is the admin escape hatch: force a match to completed with
// an explicit result, bypassing the aggregator. The result must still be
// valid match-play notation, and "AS" must not name a winner.
func (s *Service) OverrideResult(ctx context.Context, matchID uuid.UUID, result string, winner models.TeamSide) (*models.Match, error) {
	groups := resultPattern.FindStringSubmatch(result)
	if groups == nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidResult, result)
	}

	var lead int
	switch {
	case result == "AS":
		if winner != "" {
			return nil, fmt.Errorf("%w: halved match cannot have a winner", ErrInvalidResult)
		}
	case groups[3] != "":
		lead, _ = strconv.Atoi(groups[3])
		if lead > s.totalHoles {
			return nil, fmt.Errorf("%w: %q lead exceeds the hole count", ErrInvalidResult, result)
		}
	default:
		lead, _ = strconv.Atoi(groups[1])
		rem, _ := strconv.Atoi(groups[2])
		if lead <= rem {
			return nil, fmt.Errorf("%w: %q lead must exceed holes remaining", ErrInvalidResult, result)
		}
		// The lead is capped by the holes already played, so a result the
		// hole count cannot produce is rejected before anything is written.
		if lead+rem > s.totalHoles {
			return nil, fmt.Errorf("%w: %q is impossible over %d holes", ErrInvalidResult, result, s.totalHoles)
		}
	}
	if result != "AS" && winner != models.TeamAviators && winner != models.TeamProducers {
		return nil, fmt.Errorf("%w: decided match needs a winning team", ErrInvalidResult)
	}

	m, err := s.store.GetMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}
	wasCompleted := m.Status == models.MatchStatusCompleted
	if wasCompleted {
		// Back out the stats the old result contributed before the new
		// one is applied, so the override never double-counts.
		if err := s.applyMatchStats(ctx, m, -1); err != nil {
			return nil, err
		}
	}

	m.Status = models.MatchStatusCompleted
	m.Locked = true
	res := result
	m.Result = &res
	m.LeadAmount = lead
	if winner == "" {
		m.LeadingTeam = nil
	} else {
		w := winner
		m.LeadingTeam = &w
	}
	if err := s.store.UpdateMatch(ctx, m); err != nil {
		return nil, err
	}

	if err := s.applyMatchStats(ctx, m, 1); err != nil {
		return nil, err
	}
	if err := s.RecomputeRound(ctx, m.RoundID); err != nil {
		return nil, err
	}
	return m, nil
}

// UnlockMatch reopens a completed match so an admin can correct a miskeyed
// hole. The match's stat contributions are backed out and the match drops
// back to in_progress; the next score submission runs the full recompute,
// which re-completes, re-locks, and re-credits it if the scores still
// decide it.
func (s *Service) UnlockMatch(ctx context.Context, matchID uuid.UUID) (*models.Match, error) {
	m, err := s.store.GetMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if !m.Locked {
		return m, nil
	}
	if m.Status == models.MatchStatusCompleted {
		if err := s.applyMatchStats(ctx, m, -1); err != nil {
			return nil, err
		}
	}
	m.Locked = false
	m.Status = models.MatchStatusInProgress
	m.Result = nil
	if err := s.store.UpdateMatch(ctx, m); err != nil {
		return nil, err
	}
	if err := s.RecomputeRound(ctx, m.RoundID); err != nil {
		return nil, err
	}
	return m, nil
}

// applyMatchStats distributes one completed match to its participants'
// records: winners get a win and a point, losers a loss, and a halved match
// gives everyone a tie and half a point. sign = -1 backs a prior
// contribution out again, used when a match is unlocked or overridden.
func (s *Service) applyMatchStats(ctx context.Context, m *models.Match, sign int) error {
	r, err := s.store.GetRound(ctx, m.RoundID)
	if err != nil {
		return err
	}
	parts, err := s.store.ListParticipantsByMatch(ctx, m.ID)
	if err != nil {
		return err
	}

	winner := side(m.LeadingTeam)
	for _, p := range parts {
		var delta StatDelta
		switch {
		case winner == "":
			delta = StatDelta{Ties: 1, Points: 0.5}
		case p.Team == winner:
			delta = StatDelta{Wins: 1, Points: 1}
		default:
			delta = StatDelta{Losses: 1}
		}
		delta.Wins *= sign
		delta.Losses *= sign
		delta.Ties *= sign
		delta.Points *= float64(sign)
		if err := s.store.UpdatePlayerStats(ctx, r.TournamentID, p.PlayerID, delta); err != nil {
			return err
		}
	}
	return nil
}

// Reconcile rebuilds every stat row from scratch by replaying all completed
// matches across all tournaments, then rederives round and tournament totals.
// It exists because the incremental stats write can fail after the match
// completion has already committed; replaying committed state is the recovery
// path, and it must land on the same totals the incremental path produces.
func (s *Service) Reconcile(ctx context.Context) error {
	if err := s.store.ResetPlayerStats(ctx); err != nil {
		return err
	}
	tournaments, err := s.store.ListTournaments(ctx)
	if err != nil {
		return err
	}
	for _, t := range tournaments {
		rounds, err := s.store.ListRoundsByTournament(ctx, t.ID)
		if err != nil {
			return err
		}
		for _, r := range rounds {
			matches, err := s.store.ListMatchesByRound(ctx, r.ID)
			if err != nil {
				return err
			}
			for i := range matches {
				if matches[i].Status != models.MatchStatusCompleted {
					continue
				}
				if err := s.applyMatchStats(ctx, &matches[i], 1); err != nil {
					return err
				}
			}
			if err := s.RecomputeRound(ctx, r.ID); err != nil {
				return err
			}
		}
	}
	return nil
}

func allCompleted(matches []models.Match) bool {
	for _, m := range matches {
		if m.Status != models.MatchStatusCompleted {
			return false
		}
	}
	return true
}
