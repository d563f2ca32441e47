// Package models defines the data structures that map to database tables.
// GORM uses these structs to generate SQL and map rows back to Go values; the
// struct tags tell it column types, constraints, defaults, and relationships.
//
// The data model represents a recurring two-team golf event:
//   - A Tournament is played between the two fixed teams (Aviators, Producers)
//   - Tournaments contain Rounds, each with a match format and a course
//   - Rounds contain Matches, each pairing players from both teams
//   - Matches track per-hole Scores, from which match state is derived
//
// Exactly one tournament is active at a time. Team point totals on Round and
// Tournament are derived fields: they are recomputed in full from match state
// whenever a score changes, never incremented ad hoc.
package models

import (
	"time"

	"github.com/google/uuid"
)

// --- Enums ---

// TeamSide identifies one of the two fixed teams.
type TeamSide string

const (
	TeamAviators  TeamSide = "aviators"
	TeamProducers TeamSide = "producers"
)

// MatchStatus tracks the lifecycle of a match.
// A match moves upcoming -> in_progress (first hole score entered) ->
// completed (result mathematically decided or all holes played).
type MatchStatus string

const (
	MatchStatusUpcoming   MatchStatus = "upcoming"
	MatchStatusInProgress MatchStatus = "in_progress"
	MatchStatusCompleted  MatchStatus = "completed"
)

// MatchType describes the match format for every match in a round.
// The format determines how many players each team fields per match.
type MatchType string

const (
	MatchTypeSingles         MatchType = "singles"
	MatchTypeTwoManScramble  MatchType = "two_man_scramble"
	MatchTypeFourManScramble MatchType = "four_man_scramble"
	MatchTypeShamble         MatchType = "shamble"
	MatchTypeBestBall        MatchType = "best_ball"
	MatchTypeAlternateShot   MatchType = "alternate_shot"
)

// playersPerSide is the single table mapping match format to the required
// player count per team. Adding a new format is a one-line addition here.
var playersPerSide = map[MatchType]int{
	MatchTypeSingles:         1,
	MatchTypeTwoManScramble:  2,
	MatchTypeFourManScramble: 4,
	MatchTypeShamble:         2,
	MatchTypeBestBall:        2,
	MatchTypeAlternateShot:   2,
}

// PlayersPerSide returns how many players each team fields for this format,
// and whether the format is known.
func (t MatchType) PlayersPerSide() (int, bool) {
	n, ok := playersPerSide[t]
	return n, ok
}

// --- Models ---

// Team is one of the two fixed sides. These rows are reference data seeded by
// the initial migration; Side is what the rest of the schema keys on.
type Team struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Side      TeamSide  `gorm:"type:team_side;not null;uniqueIndex" json:"side"`
	Name      string    `gorm:"not null" json:"name"`  // Display name: "Aviators", "Producers"
	Color     string    `gorm:"not null" json:"color"` // Display color hex, e.g. "#1E40AF"
	CreatedAt time.Time `json:"created_at"`
}

// User is a login account. Spectator pages are public; mutating routes
// require a user, and admin-only routes require IsAdmin.
type User struct {
	ID                  uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Username            string     `gorm:"uniqueIndex;not null" json:"username"`
	PasswordHash        string     `gorm:"not null" json:"-"`
	IsAdmin             bool       `gorm:"not null;default:false" json:"is_admin"`
	NeedsPasswordChange bool       `gorm:"not null;default:true" json:"needs_password_change"` // Forces a reset on first login
	PlayerID            *uuid.UUID `gorm:"type:uuid" json:"player_id"` // Optional link to the player this account belongs to
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

// Tournament is the top-level container: one edition of the event.
// AviatorScore/ProducerScore hold confirmed points only; pending points are
// always re-derived from round pending fields when serving the live view,
// never persisted here.
type Tournament struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name          string    `gorm:"not null" json:"name"`
	Year          int       `gorm:"not null" json:"year"`
	AviatorScore  float64   `gorm:"not null;default:0" json:"aviator_score"`
	ProducerScore float64   `gorm:"not null;default:0" json:"producer_score"`
	IsActive      bool      `gorm:"not null;default:false" json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	Rounds        []Round   `gorm:"foreignKey:TournamentID" json:"rounds,omitempty"`
}

// Course is where a round is played.
type Course struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	City      string    `gorm:"not null;default:''" json:"city"`
	State     string    `gorm:"not null;default:''" json:"state"`
	HoleCount int       `gorm:"not null;default:18" json:"hole_count"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Round is a single session of play within a tournament. Its score fields
// are derived: confirmed points from completed matches, pending points from
// the projected outcome of in-progress matches. The two are kept strictly
// separate so the scoreboard can distinguish locked-in points from live ones.
type Round struct {
	ID                   uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	TournamentID         uuid.UUID  `gorm:"type:uuid;not null" json:"tournament_id"`
	Tournament           Tournament `gorm:"foreignKey:TournamentID" json:"-"`
	Name                 string     `gorm:"not null" json:"name"`
	MatchType            MatchType  `gorm:"type:match_type;not null" json:"match_type"`
	CourseID             uuid.UUID  `gorm:"type:uuid;not null" json:"course_id"`
	Course               Course     `gorm:"foreignKey:CourseID" json:"course,omitempty"`
	Date                 time.Time  `gorm:"not null" json:"date"`
	AviatorScore         float64    `gorm:"not null;default:0" json:"aviator_score"`
	ProducerScore        float64    `gorm:"not null;default:0" json:"producer_score"`
	PendingAviatorScore  float64    `gorm:"not null;default:0" json:"pending_aviator_score"`
	PendingProducerScore float64    `gorm:"not null;default:0" json:"pending_producer_score"`
	IsComplete           bool       `gorm:"not null;default:false" json:"is_complete"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
	Matches              []Match    `gorm:"foreignKey:RoundID" json:"matches,omitempty"`
}

// Match is one head-to-head contest within a round. CurrentHole, LeadingTeam,
// LeadAmount, Result, Status, and Locked are all derived from the match's
// hole scores by the aggregator; handlers never set them by hand except for
// the admin result override.
//
// Locked is the terminal-state guard: once a match completes it locks, and
// further hole-score submissions are rejected as conflicts.
type Match struct {
	ID          uuid.UUID   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	RoundID     uuid.UUID   `gorm:"type:uuid;not null" json:"round_id"`
	Round       Round       `gorm:"foreignKey:RoundID" json:"-"`
	Name        string      `gorm:"not null" json:"name"`
	Status      MatchStatus `gorm:"type:match_status;not null;default:'upcoming'" json:"status"`
	CurrentHole int         `gorm:"not null;default:1" json:"current_hole"` // 1-18
	LeadingTeam *TeamSide   `gorm:"type:team_side" json:"leading_team"`     // nil while all square or upcoming
	LeadAmount  int         `gorm:"not null;default:0" json:"lead_amount"`
	Result      *string     `json:"result"` // "3&2", "2UP", "AS"; nil until completed
	Locked      bool        `gorm:"not null;default:false" json:"locked"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`

	Participants []MatchParticipant `gorm:"foreignKey:MatchID" json:"participants,omitempty"`
	Scores       []Score            `gorm:"foreignKey:MatchID" json:"scores,omitempty"`
}

// MatchParticipant places a player in a match on one side. The unique index
// prevents the same player being added to a match twice; the one-match-per-
// round rule is enforced at creation time with a join query.
type MatchParticipant struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	MatchID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_match_player" json:"match_id"`
	Match    Match     `gorm:"foreignKey:MatchID" json:"-"`
	PlayerID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_match_player" json:"player_id"`
	Player   Player    `gorm:"foreignKey:PlayerID" json:"player,omitempty"`
	Team     TeamSide  `gorm:"type:team_side;not null" json:"team"`
}

// Score is one hole of a match. Aviator/producer strokes are entered by the
// scorer; WinningTeam and MatchStatusTag are derived (the tag is the running
// state label after this hole: "A2" = Aviators 2 up, "P1", "AS"). One row per
// hole per match; rows become immutable once the match is locked.
type Score struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	MatchID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_match_hole" json:"match_id"`
	Match          Match     `gorm:"foreignKey:MatchID" json:"-"`
	HoleNumber     int       `gorm:"not null;uniqueIndex:idx_match_hole" json:"hole_number"` // 1-18
	AviatorScore   int       `gorm:"not null" json:"aviator_score"`                          // Team strokes on this hole
	ProducerScore  int       `gorm:"not null" json:"producer_score"`
	WinningTeam    *TeamSide `gorm:"type:team_side" json:"winning_team"` // nil when halved
	MatchStatusTag string    `gorm:"column:match_status;not null;default:''" json:"match_status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Player is a roster member. Wins/losses/ties are cumulative within the
// active tournament and maintained by the statistics rollup when matches
// complete; they are never decremented except by explicit admin correction.
type Player struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	TeamID    uuid.UUID `gorm:"type:uuid;not null" json:"team_id"`
	Team      Team      `gorm:"foreignKey:TeamID" json:"team,omitempty"`
	Name      string    `gorm:"not null" json:"name"`
	Wins      int       `gorm:"not null;default:0" json:"wins"`
	Losses    int       `gorm:"not null;default:0" json:"losses"`
	Ties      int       `gorm:"not null;default:0" json:"ties"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TournamentPlayerStat is a player's record within one tournament.
// The unique index gives one row per player per tournament.
type TournamentPlayerStat struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	TournamentID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_tournament_player" json:"tournament_id"`
	PlayerID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_tournament_player" json:"player_id"`
	Player       Player    `gorm:"foreignKey:PlayerID" json:"player,omitempty"`
	Wins         int       `gorm:"not null;default:0" json:"wins"`
	Losses       int       `gorm:"not null;default:0" json:"losses"`
	Ties         int       `gorm:"not null;default:0" json:"ties"`
	Points       float64   `gorm:"not null;default:0" json:"points"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// PlayerCareerStat is a player's all-time record across every tournament.
type PlayerCareerStat struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PlayerID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"player_id"`
	Player    Player    `gorm:"foreignKey:PlayerID" json:"player,omitempty"`
	Wins      int       `gorm:"not null;default:0" json:"wins"`
	Losses    int       `gorm:"not null;default:0" json:"losses"`
	Ties      int       `gorm:"not null;default:0" json:"ties"`
	Points    float64   `gorm:"not null;default:0" json:"points"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TournamentHistory is an archival row appended when a tournament is
// concluded: final score and winner, kept after the tournament stops being
// the active one.
type TournamentHistory struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	TournamentID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"tournament_id"`
	Year          int       `gorm:"not null" json:"year"`
	WinningTeam   *TeamSide `gorm:"type:team_side" json:"winning_team"` // nil on a tied cup
	AviatorScore  float64   `gorm:"not null" json:"aviator_score"`
	ProducerScore float64   `gorm:"not null" json:"producer_score"`
	ConcludedAt   time.Time `gorm:"autoCreateTime" json:"concluded_at"`
}
