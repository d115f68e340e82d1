package features

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/esports-predictor/internal/models"
)

func decimalFromInt(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func TestExtractFeaturesColdStartLeavesStatsNil(t *testing.T) {
	row := ExtractFeatures(NewEloRatingSystem(), NewTeamStatsTracker(),
		"Astralis", "NAVI", day(0), models.TournamentInfo{})

	assert.Equal(t, DefaultRating, row.Team1Elo)
	assert.Equal(t, DefaultRating, row.Team2Elo)
	assert.Zero(t, row.EloDiff)

	assert.Nil(t, row.Team1WRAll)
	assert.Nil(t, row.Team2WR20)
	assert.Nil(t, row.Team1Form)
	assert.Nil(t, row.H2HWR)
	assert.Nil(t, row.Team1TierWR)
	assert.Nil(t, row.Team1DaysSince)
	assert.Nil(t, row.Tier)
	assert.Nil(t, row.LogPrizepool)
	assert.Zero(t, row.Team1Streak)
}

func TestExtractDistinguishesMissingFromNeutral(t *testing.T) {
	stats := NewTeamStatsTracker()
	// Astralis has an observed 50% record; NAVI has none.
	stats.RecordMatch("Astralis", "G2", true, day(0), "")
	stats.RecordMatch("Astralis", "G2", false, day(1), "")

	row := ExtractFeatures(NewEloRatingSystem(), stats,
		"Astralis", "NAVI", day(2), models.TournamentInfo{})

	require.NotNil(t, row.Team1WRAll)
	assert.InDelta(t, 0.5, *row.Team1WRAll, 1e-9)
	assert.Nil(t, row.Team2WRAll)
}

func TestFillDefaultsNeutralValues(t *testing.T) {
	row := ExtractFeatures(NewEloRatingSystem(), NewTeamStatsTracker(),
		"Astralis", "NAVI", day(0), models.TournamentInfo{})
	row.FillDefaults()

	assert.InDelta(t, 0.5, *row.Team1WRAll, 1e-9)
	assert.InDelta(t, 0.5, *row.Team2WR20, 1e-9)
	assert.InDelta(t, 0.5, *row.Team1Form, 1e-9)
	assert.InDelta(t, 0.5, *row.H2HWR, 1e-9)
	assert.InDelta(t, 0.5, *row.Team2TierWR, 1e-9)
	assert.Equal(t, 30, *row.Team1DaysSince)
	assert.Equal(t, 30, *row.Team2DaysSince)
	assert.Equal(t, 4, *row.Tier)
	assert.Zero(t, *row.LogPrizepool)
	assert.Zero(t, row.WRDiffAll)
	assert.Zero(t, row.FormDiff)
}

func TestFillDefaultsPreservesObservedValues(t *testing.T) {
	stats := NewTeamStatsTracker()
	stats.RecordMatch("Astralis", "G2", true, day(0), "")
	stats.RecordMatch("Astralis", "G2", true, day(1), "")

	row := ExtractFeatures(NewEloRatingSystem(), stats,
		"Astralis", "NAVI", day(5), models.TournamentInfo{})
	row.FillDefaults()

	assert.InDelta(t, 1.0, *row.Team1WRAll, 1e-9)
	assert.InDelta(t, 0.5, *row.Team2WRAll, 1e-9)
	assert.InDelta(t, 0.5, row.WRDiffAll, 1e-9)
	assert.Equal(t, 4, *row.Team1DaysSince)
	assert.Equal(t, 30, *row.Team2DaysSince)
}

func TestVectorMatchesColumnOrder(t *testing.T) {
	require.Len(t, FeatureColumns, 26)

	row := ExtractFeatures(NewEloRatingSystem(), NewTeamStatsTracker(),
		"Astralis", "NAVI", day(0), models.TournamentInfo{Type: models.TournamentTypeOnline})
	row.FillDefaults()

	vector := row.Vector()
	require.Len(t, vector, len(FeatureColumns))

	assert.Equal(t, row.Team1Elo, vector[0])
	assert.Equal(t, row.EloDiff, vector[2])
	assert.Equal(t, *row.H2HWR, vector[16])
	assert.Equal(t, float64(*row.Tier), vector[21])
	assert.Equal(t, 1.0, vector[23])
	assert.Equal(t, 0.0, vector[24])
}

func TestTournamentTypeFlags(t *testing.T) {
	tests := []struct {
		name    string
		tType   string
		online  int
		offline int
		hybrid  int
	}{
		{"online", models.TournamentTypeOnline, 1, 0, 0},
		{"offline", models.TournamentTypeOffline, 0, 1, 0},
		{"hybrid", models.TournamentTypeHybrid, 0, 0, 1},
		{"unknown", "", 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			online, offline, hybrid := tournamentTypeFlags(tt.tType)
			assert.Equal(t, tt.online, online)
			assert.Equal(t, tt.offline, offline)
			assert.Equal(t, tt.hybrid, hybrid)
		})
	}
}
