package store_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/rowdycup/scoreboard/internal/models"
	"github.com/rowdycup/scoreboard/internal/scoring"
	"github.com/rowdycup/scoreboard/internal/store"
)

// Just the tables these tests touch; IDs come from the model hooks.
const storeSchema = `
CREATE TABLE matches (
	id TEXT PRIMARY KEY,
	round_id TEXT NOT NULL,
	name TEXT NOT NULL,
	status TEXT NOT NULL DEFAULT 'upcoming',
	current_hole INTEGER NOT NULL DEFAULT 1,
	leading_team TEXT,
	lead_amount INTEGER NOT NULL DEFAULT 0,
	result TEXT,
	locked BOOLEAN NOT NULL DEFAULT FALSE,
	created_at DATETIME,
	updated_at DATETIME
);
CREATE TABLE scores (
	id TEXT PRIMARY KEY,
	match_id TEXT NOT NULL,
	hole_number INTEGER NOT NULL,
	aviator_score INTEGER NOT NULL,
	producer_score INTEGER NOT NULL,
	winning_team TEXT,
	match_status TEXT NOT NULL DEFAULT '',
	created_at DATETIME,
	updated_at DATETIME,
	UNIQUE (match_id, hole_number)
);
CREATE TABLE players (
	id TEXT PRIMARY KEY,
	team_id TEXT NOT NULL,
	name TEXT NOT NULL,
	wins INTEGER NOT NULL DEFAULT 0,
	losses INTEGER NOT NULL DEFAULT 0,
	ties INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME,
	updated_at DATETIME
);
CREATE TABLE tournament_player_stats (
	id TEXT PRIMARY KEY,
	tournament_id TEXT NOT NULL,
	player_id TEXT NOT NULL,
	wins INTEGER NOT NULL DEFAULT 0,
	losses INTEGER NOT NULL DEFAULT 0,
	ties INTEGER NOT NULL DEFAULT 0,
	points REAL NOT NULL DEFAULT 0,
	updated_at DATETIME,
	UNIQUE (tournament_id, player_id)
);
CREATE TABLE player_career_stats (
	id TEXT PRIMARY KEY,
	player_id TEXT NOT NULL UNIQUE,
	wins INTEGER NOT NULL DEFAULT 0,
	losses INTEGER NOT NULL DEFAULT 0,
	ties INTEGER NOT NULL DEFAULT 0,
	points REAL NOT NULL DEFAULT 0,
	updated_at DATETIME
);
`

func newStore(t *testing.T) (*store.Gorm, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.Exec(storeSchema).Error)
	return store.NewGorm(db), db
}

func TestUpsertScore_OneRowPerHole(t *testing.T) {
	s, db := newStore(t)
	ctx := context.Background()
	matchID := uuid.New()

	require.NoError(t, s.UpsertScore(ctx, &models.Score{
		MatchID: matchID, HoleNumber: 7, AviatorScore: 4, ProducerScore: 5,
	}))

	// Re-keying the same hole overwrites instead of adding a row.
	require.NoError(t, s.UpsertScore(ctx, &models.Score{
		MatchID: matchID, HoleNumber: 7, AviatorScore: 6, ProducerScore: 3,
	}))

	scores, err := s.ListScoresByMatch(ctx, matchID)
	require.NoError(t, err)
	require.Len(t, scores, 1)
	require.Equal(t, 6, scores[0].AviatorScore)
	require.Equal(t, 3, scores[0].ProducerScore)

	var count int64
	db.Model(&models.Score{}).Count(&count)
	require.EqualValues(t, 1, count)
}

func TestGetMatch_NotFound(t *testing.T) {
	s, _ := newStore(t)
	_, err := s.GetMatch(context.Background(), uuid.New())
	require.ErrorIs(t, err, scoring.ErrNotFound)
}

func TestUpdatePlayerStats_IncrementsAllThreeLevels(t *testing.T) {
	s, db := newStore(t)
	ctx := context.Background()
	tournamentID := uuid.New()
	player := models.Player{TeamID: uuid.New(), Name: "Sam"}
	require.NoError(t, db.Create(&player).Error)

	require.NoError(t, s.UpdatePlayerStats(ctx, tournamentID, player.ID, scoring.StatDelta{Wins: 1, Points: 1}))
	require.NoError(t, s.UpdatePlayerStats(ctx, tournamentID, player.ID, scoring.StatDelta{Ties: 1, Points: 0.5}))

	var p models.Player
	require.NoError(t, db.First(&p, "id = ?", player.ID).Error)
	require.Equal(t, 1, p.Wins)
	require.Equal(t, 1, p.Ties)

	var ts models.TournamentPlayerStat
	require.NoError(t, db.First(&ts, "tournament_id = ? AND player_id = ?", tournamentID, player.ID).Error)
	require.Equal(t, 1, ts.Wins)
	require.Equal(t, 1.5, ts.Points)

	var cs models.PlayerCareerStat
	require.NoError(t, db.First(&cs, "player_id = ?", player.ID).Error)
	require.Equal(t, 1.5, cs.Points)

	// A negative delta backs a result out again.
	require.NoError(t, s.UpdatePlayerStats(ctx, tournamentID, player.ID, scoring.StatDelta{Wins: -1, Points: -1}))
	require.NoError(t, db.First(&ts, "id = ?", ts.ID).Error)
	require.Zero(t, ts.Wins)
	require.Equal(t, 0.5, ts.Points)
}

func TestResetPlayerStats_ZeroesEverything(t *testing.T) {
	s, db := newStore(t)
	ctx := context.Background()
	tournamentID := uuid.New()

	p1 := models.Player{TeamID: uuid.New(), Name: "Sam"}
	p2 := models.Player{TeamID: uuid.New(), Name: "Reese"}
	require.NoError(t, db.Create(&p1).Error)
	require.NoError(t, db.Create(&p2).Error)
	require.NoError(t, s.UpdatePlayerStats(ctx, tournamentID, p1.ID, scoring.StatDelta{Wins: 2, Points: 2}))
	require.NoError(t, s.UpdatePlayerStats(ctx, tournamentID, p2.ID, scoring.StatDelta{Losses: 2}))

	require.NoError(t, s.ResetPlayerStats(ctx))

	var players []models.Player
	require.NoError(t, db.Find(&players).Error)
	for _, p := range players {
		require.Zero(t, p.Wins+p.Losses+p.Ties)
	}
	var stats []models.TournamentPlayerStat
	require.NoError(t, db.Find(&stats).Error)
	for _, st := range stats {
		require.Zero(t, st.Points)
		require.Zero(t, st.Wins+st.Losses+st.Ties)
	}
}
