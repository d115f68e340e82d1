package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMatchIsClean(t *testing.T) {
	date := time.Date(2024, 3, 1, 18, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		match Match
		want  bool
	}{
		{
			name: "clean match",
			match: Match{
				MatchID:   "m1",
				Team1Name: "Vitality",
				Team2Name: "FaZe",
				WinnerID:  WinnerTeam1,
				Date:      &date,
			},
			want: true,
		},
		{
			name: "undetermined winner",
			match: Match{
				MatchID:   "m2",
				Team1Name: "Vitality",
				Team2Name: "FaZe",
				WinnerID:  WinnerUndetermined,
				Date:      &date,
			},
			want: false,
		},
		{
			name: "missing team name",
			match: Match{
				MatchID:  "m3",
				Team1Name: "Vitality",
				WinnerID: WinnerTeam1,
				Date:     &date,
			},
			want: false,
		},
		{
			name: "unknown score",
			match: Match{
				MatchID:    "m4",
				Team1Name:  "Vitality",
				Team2Name:  "FaZe",
				Team1Score: ScoreUnknown,
				WinnerID:   WinnerTeam2,
				Date:       &date,
			},
			want: false,
		},
		{
			name: "missing date",
			match: Match{
				MatchID:   "m5",
				Team1Name: "Vitality",
				Team2Name: "FaZe",
				WinnerID:  WinnerTeam1,
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.match.IsClean())
		})
	}
}

func TestTournamentInfoTierParsing(t *testing.T) {
	numeric := Tournament{Tier: "2"}
	info := numeric.Info()
	if assert.NotNil(t, info.Tier) {
		assert.Equal(t, 2, *info.Tier)
	}

	qualifier := Tournament{Tier: "Qualifier"}
	assert.Nil(t, qualifier.Info().Tier)

	empty := Tournament{}
	assert.Nil(t, empty.Info().Tier)
}
