package store

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/rowdycup/scoreboard/internal/models"
	"github.com/rowdycup/scoreboard/internal/scoring"
)

type statKey struct {
	tournamentID uuid.UUID
	playerID     uuid.UUID
}

// Memory is an in-memory scoring.Store used by the core's tests. It hands out
// copies so callers cannot mutate stored state behind its back.
type Memory struct {
	mu           sync.RWMutex
	tournaments  map[uuid.UUID]*models.Tournament
	rounds       map[uuid.UUID]*models.Round
	matches      map[uuid.UUID]*models.Match
	scores       map[uuid.UUID]map[int]*models.Score // matchID -> hole -> score
	players      map[uuid.UUID]*models.Player
	participants map[uuid.UUID][]models.MatchParticipant // matchID -> participants
	tournStats   map[statKey]*models.TournamentPlayerStat
	careerStats  map[uuid.UUID]*models.PlayerCareerStat
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		tournaments:  make(map[uuid.UUID]*models.Tournament),
		rounds:       make(map[uuid.UUID]*models.Round),
		matches:      make(map[uuid.UUID]*models.Match),
		scores:       make(map[uuid.UUID]map[int]*models.Score),
		players:      make(map[uuid.UUID]*models.Player),
		participants: make(map[uuid.UUID][]models.MatchParticipant),
		tournStats:   make(map[statKey]*models.TournamentPlayerStat),
		careerStats:  make(map[uuid.UUID]*models.PlayerCareerStat),
	}
}

// --- seeding helpers for tests ---

func (s *Memory) AddTournament(t models.Tournament) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	s.tournaments[t.ID] = &t
}

func (s *Memory) AddRound(r models.Round) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	s.rounds[r.ID] = &r
}

func (s *Memory) AddMatch(m models.Match) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	s.matches[m.ID] = &m
}

func (s *Memory) AddPlayer(p models.Player) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	s.players[p.ID] = &p
}

func (s *Memory) AddParticipant(p models.MatchParticipant) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	s.participants[p.MatchID] = append(s.participants[p.MatchID], p)
}

// --- read-back helpers for test assertions ---

func (s *Memory) Player(id uuid.UUID) (models.Player, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.players[id]
	if !ok {
		return models.Player{}, false
	}
	return *p, true
}

func (s *Memory) TournamentStat(tournamentID, playerID uuid.UUID) (models.TournamentPlayerStat, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.tournStats[statKey{tournamentID, playerID}]
	if !ok {
		return models.TournamentPlayerStat{}, false
	}
	return *st, true
}

func (s *Memory) CareerStat(playerID uuid.UUID) (models.PlayerCareerStat, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.careerStats[playerID]
	if !ok {
		return models.PlayerCareerStat{}, false
	}
	return *st, true
}

// --- scoring.Store ---

func (s *Memory) GetMatch(_ context.Context, id uuid.UUID) (*models.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.matches[id]
	if !ok {
		return nil, scoring.ErrNotFound
	}
	copied := *m
	return &copied, nil
}

func (s *Memory) UpdateMatch(_ context.Context, m *models.Match) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.matches[m.ID]; !ok {
		return scoring.ErrNotFound
	}
	copied := *m
	s.matches[m.ID] = &copied
	return nil
}

func (s *Memory) ListMatchesByRound(_ context.Context, roundID uuid.UUID) ([]models.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Match
	for _, m := range s.matches {
		if m.RoundID == roundID {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (s *Memory) ListScoresByMatch(_ context.Context, matchID uuid.UUID) ([]models.Score, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Score, 0, len(s.scores[matchID]))
	for _, sc := range s.scores[matchID] {
		out = append(out, *sc)
	}
	return out, nil
}

func (s *Memory) UpsertScore(_ context.Context, sc *models.Score) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.scores[sc.MatchID] == nil {
		s.scores[sc.MatchID] = make(map[int]*models.Score)
	}
	copied := *sc
	if existing, ok := s.scores[sc.MatchID][sc.HoleNumber]; ok {
		copied.ID = existing.ID
	} else if copied.ID == uuid.Nil {
		copied.ID = uuid.New()
	}
	s.scores[sc.MatchID][sc.HoleNumber] = &copied
	return nil
}

func (s *Memory) GetRound(_ context.Context, id uuid.UUID) (*models.Round, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.rounds[id]
	if !ok {
		return nil, scoring.ErrNotFound
	}
	copied := *r
	return &copied, nil
}

func (s *Memory) UpdateRound(_ context.Context, r *models.Round) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rounds[r.ID]; !ok {
		return scoring.ErrNotFound
	}
	copied := *r
	s.rounds[r.ID] = &copied
	return nil
}

func (s *Memory) ListRoundsByTournament(_ context.Context, tournamentID uuid.UUID) ([]models.Round, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Round
	for _, r := range s.rounds {
		if r.TournamentID == tournamentID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (s *Memory) GetTournament(_ context.Context, id uuid.UUID) (*models.Tournament, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tournaments[id]
	if !ok {
		return nil, scoring.ErrNotFound
	}
	copied := *t
	return &copied, nil
}

func (s *Memory) UpdateTournament(_ context.Context, t *models.Tournament) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tournaments[t.ID]; !ok {
		return scoring.ErrNotFound
	}
	copied := *t
	s.tournaments[t.ID] = &copied
	return nil
}

func (s *Memory) ListTournaments(_ context.Context) ([]models.Tournament, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Tournament, 0, len(s.tournaments))
	for _, t := range s.tournaments {
		out = append(out, *t)
	}
	return out, nil
}

func (s *Memory) ListParticipantsByMatch(_ context.Context, matchID uuid.UUID) ([]models.MatchParticipant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.MatchParticipant, len(s.participants[matchID]))
	copy(out, s.participants[matchID])
	return out, nil
}

func (s *Memory) UpdatePlayerStats(_ context.Context, tournamentID, playerID uuid.UUID, delta scoring.StatDelta) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.players[playerID]
	if !ok {
		return scoring.ErrNotFound
	}
	p.Wins += delta.Wins
	p.Losses += delta.Losses
	p.Ties += delta.Ties

	key := statKey{tournamentID, playerID}
	ts, ok := s.tournStats[key]
	if !ok {
		ts = &models.TournamentPlayerStat{ID: uuid.New(), TournamentID: tournamentID, PlayerID: playerID}
		s.tournStats[key] = ts
	}
	ts.Wins += delta.Wins
	ts.Losses += delta.Losses
	ts.Ties += delta.Ties
	ts.Points += delta.Points

	cs, ok := s.careerStats[playerID]
	if !ok {
		cs = &models.PlayerCareerStat{ID: uuid.New(), PlayerID: playerID}
		s.careerStats[playerID] = cs
	}
	cs.Wins += delta.Wins
	cs.Losses += delta.Losses
	cs.Ties += delta.Ties
	cs.Points += delta.Points
	return nil
}

func (s *Memory) ResetPlayerStats(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.players {
		p.Wins, p.Losses, p.Ties = 0, 0, 0
	}
	for _, ts := range s.tournStats {
		ts.Wins, ts.Losses, ts.Ties, ts.Points = 0, 0, 0, 0
	}
	for _, cs := range s.careerStats {
		cs.Wins, cs.Losses, cs.Ties, cs.Points = 0, 0, 0, 0
	}
	return nil
}
