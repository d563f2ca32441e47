package scoring_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rowdycup/scoreboard/internal/models"
	"github.com/rowdycup/scoreboard/internal/scoring"
)

// seq builds hole outcomes 1..n from a shorthand string: 'A' = Aviators win
// the hole, 'P' = Producers, 'H' = halved.
func seq(s string) []scoring.HoleOutcome {
	outcomes := make([]scoring.HoleOutcome, 0, len(s))
	for i, ch := range s {
		var winner models.TeamSide
		switch ch {
		case 'A':
			winner = models.TeamAviators
		case 'P':
			winner = models.TeamProducers
		}
		outcomes = append(outcomes, scoring.HoleOutcome{Hole: i + 1, Winner: winner})
	}
	return outcomes
}

func TestAggregateMatch(t *testing.T) {
	tests := []struct {
		name  string
		holes string
		want  scoring.MatchState
	}{
		{
			name:  "no holes played is upcoming",
			holes: "",
			want: scoring.MatchState{
				Status:      models.MatchStatusUpcoming,
				CurrentHole: 1,
			},
		},
		{
			name:  "single halved hole stays all square",
			holes: "H",
			want: scoring.MatchState{
				Status:      models.MatchStatusInProgress,
				CurrentHole: 2,
			},
		},
		{
			name:  "two up after ten holes",
			holes: "AAHHHHHHHH",
			want: scoring.MatchState{
				Status:      models.MatchStatusInProgress,
				CurrentHole: 11,
				LeadingTeam: models.TeamAviators,
				LeadAmount:  2,
			},
		},
		{
			name:  "producers lead mid match",
			holes: "PPPAH",
			want: scoring.MatchState{
				Status:      models.MatchStatusInProgress,
				CurrentHole: 6,
				LeadingTeam: models.TeamProducers,
				LeadAmount:  2,
			},
		},
		{
			name:  "four up with three to play closes early",
			holes: "AAAAHHHHHHHHHHH", // 4 up after hole 15, 3 remaining
			want: scoring.MatchState{
				Status:      models.MatchStatusCompleted,
				CurrentHole: 15,
				LeadingTeam: models.TeamAviators,
				LeadAmount:  4,
				Result:      "4&3",
			},
		},
		{
			name:  "three and two for producers",
			holes: "PPHHHHHHHHHHHHHP", // 3 up after hole 16, 2 remaining
			want: scoring.MatchState{
				Status:      models.MatchStatusCompleted,
				CurrentHole: 16,
				LeadingTeam: models.TeamProducers,
				LeadAmount:  3,
				Result:      "3&2",
			},
		},
		{
			name:  "dormie match plays on",
			holes: "AAAHHHHHHHHHHHH", // 3 up, 3 to play: not yet decided
			want: scoring.MatchState{
				Status:      models.MatchStatusInProgress,
				CurrentHole: 16,
				LeadingTeam: models.TeamAviators,
				LeadAmount:  3,
			},
		},
		{
			name:  "biggest possible win",
			holes: "AAAAAAAAAA", // 10 straight: decided on hole 10
			want: scoring.MatchState{
				Status:      models.MatchStatusCompleted,
				CurrentHole: 10,
				LeadingTeam: models.TeamAviators,
				LeadAmount:  10,
				Result:      "10&8",
			},
		},
		{
			name:  "won on the last hole",
			holes: "HHHHHHHHHHHHHHHHHA",
			want: scoring.MatchState{
				Status:      models.MatchStatusCompleted,
				CurrentHole: 18,
				LeadingTeam: models.TeamAviators,
				LeadAmount:  1,
				Result:      "1UP",
			},
		},
		{
			name:  "two up through eighteen",
			holes: "PHHHHHHHHHHHHHHHHP",
			want: scoring.MatchState{
				Status:      models.MatchStatusCompleted,
				CurrentHole: 18,
				LeadingTeam: models.TeamProducers,
				LeadAmount:  2,
				Result:      "2UP",
			},
		},
		{
			name:  "all square through eighteen",
			holes: "APAPAPAPAPHHHHHHHH",
			want: scoring.MatchState{
				Status:      models.MatchStatusCompleted,
				CurrentHole: 18,
				Result:      "AS",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := scoring.AggregateMatch(seq(tt.holes), 18)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestAggregateMatch_OutcomesMayArriveOutOfOrder(t *testing.T) {
	outcomes := []scoring.HoleOutcome{
		{Hole: 3, Winner: models.TeamAviators},
		{Hole: 1, Winner: models.TeamProducers},
		{Hole: 2, Winner: ""},
	}
	got, err := scoring.AggregateMatch(outcomes, 18)
	require.NoError(t, err)
	require.Equal(t, models.MatchStatusInProgress, got.Status)
	require.Equal(t, 4, got.CurrentHole)
	require.Equal(t, models.TeamSide(""), got.LeadingTeam)
	require.Equal(t, 0, got.LeadAmount)
}

func TestAggregateMatch_RejectsBadInput(t *testing.T) {
	t.Run("hole number out of range", func(t *testing.T) {
		_, err := scoring.AggregateMatch([]scoring.HoleOutcome{{Hole: 19, Winner: models.TeamAviators}}, 18)
		require.ErrorIs(t, err, scoring.ErrHoleOutOfRange)
	})
	t.Run("hole zero", func(t *testing.T) {
		_, err := scoring.AggregateMatch([]scoring.HoleOutcome{{Hole: 0, Winner: models.TeamAviators}}, 18)
		require.ErrorIs(t, err, scoring.ErrHoleOutOfRange)
	})
	t.Run("duplicate hole entry", func(t *testing.T) {
		_, err := scoring.AggregateMatch([]scoring.HoleOutcome{
			{Hole: 4, Winner: models.TeamAviators},
			{Hole: 4, Winner: models.TeamProducers},
		}, 18)
		require.ErrorIs(t, err, scoring.ErrDuplicateHole)
	})
}

// Result notation stays well-formed for every outcome sequence up to 18
// holes: "{n}&{m}" with n>m, "{n}UP" with n>=1, or "AS", always consistent
// with the leading team and lead amount.
func TestAggregateMatch_ResultNotationIsConsistent(t *testing.T) {
	patterns := []string{
		"AAAAAAAAAA",
		"PPPPPPPPPPP",
		"APAPAPAPAPAPAPAPAP",
		"AAHPAPHHAAHPPPHAAA",
		"HHHHHHHHHHHHHHHHHH",
		"AAAAHHHHHHHHHHAAAA",
		"PAAPPAAPPAAPPAAPPA",
	}
	re := `^([1-9]\d*)&(\d+)$|^([1-9]\d*)UP$|^AS$`

	for _, p := range patterns {
		for n := 0; n <= len(p); n++ {
			st, err := scoring.AggregateMatch(seq(p[:n]), 18)
			require.NoError(t, err)

			if st.Status != models.MatchStatusCompleted {
				require.Empty(t, st.Result)
				continue
			}
			require.Regexp(t, re, st.Result, "sequence %q", p[:n])
			if st.Result == "AS" {
				require.Equal(t, models.TeamSide(""), st.LeadingTeam)
				require.Zero(t, st.LeadAmount)
			} else {
				require.NotEmpty(t, st.LeadingTeam)
				require.Positive(t, st.LeadAmount)
			}
		}
	}
}

func TestStatusTag(t *testing.T) {
	require.Equal(t, "A2", scoring.StatusTag(2))
	require.Equal(t, "P1", scoring.StatusTag(-1))
	require.Equal(t, "AS", scoring.StatusTag(0))
}

func TestHoleWinner(t *testing.T) {
	require.Equal(t, models.TeamAviators, scoring.HoleWinner(4, 5))
	require.Equal(t, models.TeamProducers, scoring.HoleWinner(6, 3))
	require.Equal(t, models.TeamSide(""), scoring.HoleWinner(4, 4))
}
