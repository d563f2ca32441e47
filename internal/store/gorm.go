// Package store provides the data-access implementations behind the scoring
// core's Store contract: a GORM-backed store for Postgres and an in-memory
// store used by tests.
package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rowdycup/scoreboard/internal/models"
	"github.com/rowdycup/scoreboard/internal/scoring"
)

// Gorm adapts a *gorm.DB to the scoring.Store contract.
type Gorm struct {
	db *gorm.DB
}

// NewGorm wraps the given database handle.
func NewGorm(db *gorm.DB) *Gorm {
	return &Gorm{db: db}
}

func (s *Gorm) GetMatch(ctx context.Context, id uuid.UUID) (*models.Match, error) {
	var m models.Match
	if err := s.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &m, nil
}

func (s *Gorm) UpdateMatch(ctx context.Context, m *models.Match) error {
	// Save writes every column, including fields being cleared back to NULL
	// (leading_team, result).
	return s.db.WithContext(ctx).Save(m).Error
}

func (s *Gorm) ListMatchesByRound(ctx context.Context, roundID uuid.UUID) ([]models.Match, error) {
	var out []models.Match
	err := s.db.WithContext(ctx).Where("round_id = ?", roundID).Order("created_at").Find(&out).Error
	return out, err
}

func (s *Gorm) ListScoresByMatch(ctx context.Context, matchID uuid.UUID) ([]models.Score, error) {
	var out []models.Score
	err := s.db.WithContext(ctx).Where("match_id = ?", matchID).Order("hole_number").Find(&out).Error
	return out, err
}

func (s *Gorm) UpsertScore(ctx context.Context, sc *models.Score) error {
	// One row per hole per match: conflicts on (match_id, hole_number)
	// overwrite the strokes and the derived fields.
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "match_id"}, {Name: "hole_number"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"aviator_score", "producer_score", "winning_team", "match_status", "updated_at",
		}),
	}).Create(sc).Error
}

func (s *Gorm) GetRound(ctx context.Context, id uuid.UUID) (*models.Round, error) {
	var r models.Round
	if err := s.db.WithContext(ctx).First(&r, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &r, nil
}

func (s *Gorm) UpdateRound(ctx context.Context, r *models.Round) error {
	return s.db.WithContext(ctx).Save(r).Error
}

func (s *Gorm) ListRoundsByTournament(ctx context.Context, tournamentID uuid.UUID) ([]models.Round, error) {
	var out []models.Round
	err := s.db.WithContext(ctx).Where("tournament_id = ?", tournamentID).Order("date").Find(&out).Error
	return out, err
}

func (s *Gorm) GetTournament(ctx context.Context, id uuid.UUID) (*models.Tournament, error) {
	var t models.Tournament
	if err := s.db.WithContext(ctx).First(&t, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &t, nil
}

func (s *Gorm) UpdateTournament(ctx context.Context, t *models.Tournament) error {
	return s.db.WithContext(ctx).Save(t).Error
}

func (s *Gorm) ListTournaments(ctx context.Context) ([]models.Tournament, error) {
	var out []models.Tournament
	err := s.db.WithContext(ctx).Order("year").Find(&out).Error
	return out, err
}

func (s *Gorm) ListParticipantsByMatch(ctx context.Context, matchID uuid.UUID) ([]models.MatchParticipant, error) {
	var out []models.MatchParticipant
	err := s.db.WithContext(ctx).Where("match_id = ?", matchID).Find(&out).Error
	return out, err
}

func (s *Gorm) UpdatePlayerStats(ctx context.Context, tournamentID, playerID uuid.UUID, delta scoring.StatDelta) error {
	increments := map[string]interface{}{
		"wins":   gorm.Expr("wins + ?", delta.Wins),
		"losses": gorm.Expr("losses + ?", delta.Losses),
		"ties":   gorm.Expr("ties + ?", delta.Ties),
	}
	withPoints := map[string]interface{}{
		"wins":   gorm.Expr("wins + ?", delta.Wins),
		"losses": gorm.Expr("losses + ?", delta.Losses),
		"ties":   gorm.Expr("ties + ?", delta.Ties),
		"points": gorm.Expr("points + ?", delta.Points),
	}

	// One transaction so a partial stats write can't leave the player's
	// counters out of step with the stat rows; the reconciliation pass is
	// the recovery for anything that slips through anyway.
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Player{}).Where("id = ?", playerID).Updates(increments).Error; err != nil {
			return err
		}

		ts := models.TournamentPlayerStat{TournamentID: tournamentID, PlayerID: playerID}
		if err := tx.Where("tournament_id = ? AND player_id = ?", tournamentID, playerID).
			FirstOrCreate(&ts).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.TournamentPlayerStat{}).Where("id = ?", ts.ID).Updates(withPoints).Error; err != nil {
			return err
		}

		cs := models.PlayerCareerStat{PlayerID: playerID}
		if err := tx.Where("player_id = ?", playerID).FirstOrCreate(&cs).Error; err != nil {
			return err
		}
		return tx.Model(&models.PlayerCareerStat{}).Where("id = ?", cs.ID).Updates(withPoints).Error
	})
}

func (s *Gorm) ResetPlayerStats(ctx context.Context) error {
	zero := map[string]interface{}{"wins": 0, "losses": 0, "ties": 0}
	zeroPoints := map[string]interface{}{"wins": 0, "losses": 0, "ties": 0, "points": 0}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		global := tx.Session(&gorm.Session{AllowGlobalUpdate: true})
		if err := global.Model(&models.Player{}).Updates(zero).Error; err != nil {
			return err
		}
		if err := global.Model(&models.TournamentPlayerStat{}).Updates(zeroPoints).Error; err != nil {
			return err
		}
		return global.Model(&models.PlayerCareerStat{}).Updates(zeroPoints).Error
	})
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return scoring.ErrNotFound
	}
	return err
}
