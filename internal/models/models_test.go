package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlayersPerSide(t *testing.T) {
	tests := []struct {
		format MatchType
		want   int
	}{
		{MatchTypeSingles, 1},
		{MatchTypeTwoManScramble, 2},
		{MatchTypeFourManScramble, 4},
		{MatchTypeShamble, 2},
		{MatchTypeBestBall, 2},
		{MatchTypeAlternateShot, 2},
	}
	for _, tt := range tests {
		n, ok := tt.format.PlayersPerSide()
		assert.True(t, ok, "format %s", tt.format)
		assert.Equal(t, tt.want, n, "format %s", tt.format)
	}

	_, ok := MatchType("speedgolf").PlayersPerSide()
	assert.False(t, ok)
}
