package features

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/esports-predictor/internal/models"
)

func cleanMatch(id string, date time.Time, team1, team2 string, team1Win bool) models.Match {
	winnerID := models.WinnerTeam2
	score1, score2 := 1, 2
	if team1Win {
		winnerID = models.WinnerTeam1
		score1, score2 = 2, 1
	}
	return models.Match{
		MatchID:            id,
		TournamentPagename: "ESL_Pro_League/Season_19",
		Date:               &date,
		BestOf:             3,
		Team1ID:            team1,
		Team1Name:          team1,
		Team1Score:         score1,
		Team2ID:            team2,
		Team2Name:          team2,
		Team2Score:         score2,
		WinnerID:           winnerID,
		Team1Win:           team1Win,
	}
}

// rivalry builds n alternating matches between two teams, one per day.
func rivalry(team1, team2 string, n int) []models.Match {
	matches := make([]models.Match, 0, n)
	for i := 0; i < n; i++ {
		matches = append(matches, cleanMatch(
			fmt.Sprintf("m%03d", i), day(i), team1, team2, i%2 == 0))
	}
	return matches
}

func newTestBuilder(minMatches int) *FeatureBuilder {
	return NewFeatureBuilder(NewEloRatingSystem(), NewTeamStatsTracker(), minMatches, nil)
}

func TestBuilderExtractsBeforeUpdating(t *testing.T) {
	builder := newTestBuilder(1)
	matches := []models.Match{
		cleanMatch("m001", day(0), "Astralis", "NAVI", true),
		cleanMatch("m002", day(1), "Astralis", "NAVI", true),
		cleanMatch("m003", day(2), "Astralis", "NAVI", false),
	}

	result, err := builder.Run(matches, nil)
	require.NoError(t, err)

	// The first match is warm-up, the other two yield rows.
	require.Len(t, result.Rows, 2)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, 3, result.Processed)

	// Row for m002 sees exactly one prior match: Astralis won it.
	second := result.Rows[0]
	assert.Equal(t, "m002", second.MatchID)
	assert.InDelta(t, 1524.0, second.Team1Elo, 1e-9)
	assert.InDelta(t, 1476.0, second.Team2Elo, 1e-9)
	assert.InDelta(t, 1.0, *second.Team1WRAll, 1e-9)
	assert.InDelta(t, 0.0, *second.Team2WRAll, 1e-9)
	assert.InDelta(t, 1.0, *second.H2HWR, 1e-9)
	assert.Equal(t, 1, second.Team1Streak)
	assert.Equal(t, -1, second.Team2Streak)

	// Row for m003 sees two priors and no influence from its own outcome.
	third := result.Rows[1]
	assert.Equal(t, "m003", third.MatchID)
	assert.InDelta(t, 1.0, *third.Team1WRAll, 1e-9)
	assert.Equal(t, 2, third.Team1Streak)
	assert.True(t, third.Team1Elo > second.Team1Elo)
}

func TestBuilderMinimumExposureGate(t *testing.T) {
	builder := newTestBuilder(5)
	matches := rivalry("Astralis", "NAVI", 7)

	result, err := builder.Run(matches, nil)
	require.NoError(t, err)

	// Matches 1-5 are warm-up, matches 6 and 7 yield rows.
	assert.Equal(t, 5, result.Skipped)
	require.Len(t, result.Rows, 2)
	assert.Equal(t, "m005", result.Rows[0].MatchID)

	// Warm-up still updated the models.
	assert.Equal(t, 7, builder.Elo().MatchCount("Astralis"))
	assert.Equal(t, 7, builder.Stats().TotalMatches("NAVI"))
}

func TestBuilderGateAppliesToEitherSide(t *testing.T) {
	builder := newTestBuilder(2)
	matches := rivalry("Astralis", "NAVI", 3)
	// A newcomer faces an established team: still gated.
	matches = append(matches, cleanMatch("m100", day(10), "Astralis", "Rookie", true))

	result, err := builder.Run(matches, nil)
	require.NoError(t, err)

	for _, row := range result.Rows {
		assert.NotEqual(t, "m100", row.MatchID)
	}
	assert.Equal(t, 3, result.Skipped)
}

func TestBuilderSortsOutOfOrderInput(t *testing.T) {
	matches := rivalry("Astralis", "NAVI", 6)
	shuffled := []models.Match{matches[4], matches[0], matches[5], matches[2], matches[1], matches[3]}

	ordered, err := newTestBuilder(5).Run(matches, nil)
	require.NoError(t, err)
	reordered, err := newTestBuilder(5).Run(shuffled, nil)
	require.NoError(t, err)

	require.Equal(t, len(ordered.Rows), len(reordered.Rows))
	for i := range ordered.Rows {
		assert.Equal(t, *ordered.Rows[i], *reordered.Rows[i])
	}
}

func TestBuilderDeterministicReplay(t *testing.T) {
	matches := rivalry("Astralis", "NAVI", 12)
	matches = append(matches, rivalry("G2", "FaZe", 9)...)

	dir := t.TempDir()
	paths := [2][2]string{
		{filepath.Join(dir, "elo_a.json"), filepath.Join(dir, "stats_a.json")},
		{filepath.Join(dir, "elo_b.json"), filepath.Join(dir, "stats_b.json")},
	}

	var results [2]*BuildResult
	for run := 0; run < 2; run++ {
		builder := newTestBuilder(5)
		result, err := builder.Run(matches, nil)
		require.NoError(t, err)
		require.NoError(t, builder.Elo().Save(paths[run][0]))
		require.NoError(t, builder.Stats().Save(paths[run][1]))
		results[run] = result
	}

	require.Equal(t, len(results[0].Rows), len(results[1].Rows))
	for i := range results[0].Rows {
		assert.Equal(t, *results[0].Rows[i], *results[1].Rows[i])
	}

	for col := 0; col < 2; col++ {
		a, err := os.ReadFile(paths[0][col])
		require.NoError(t, err)
		b, err := os.ReadFile(paths[1][col])
		require.NoError(t, err)
		assert.Equal(t, a, b)
	}
}

func TestBuilderUsesTournamentContext(t *testing.T) {
	builder := newTestBuilder(1)
	tier := 1
	prizepool := decimalFromInt(100000)
	tournaments := map[string]models.TournamentInfo{
		"ESL_Pro_League/Season_19": {
			Tier:      &tier,
			Prizepool: &prizepool,
			Type:      models.TournamentTypeOffline,
		},
	}
	matches := rivalry("Astralis", "NAVI", 3)

	result, err := builder.Run(matches, tournaments)
	require.NoError(t, err)
	require.NotEmpty(t, result.Rows)

	row := result.Rows[len(result.Rows)-1]
	require.NotNil(t, row.Tier)
	assert.Equal(t, 1, *row.Tier)
	require.NotNil(t, row.Team1TierWR)
	require.NotNil(t, row.LogPrizepool)
	assert.InDelta(t, 11.51293, *row.LogPrizepool, 1e-4)
	assert.Equal(t, 0, row.IsOnline)
	assert.Equal(t, 1, row.IsOffline)
	assert.Equal(t, 0, row.IsHybrid)
}

func TestBuilderRejectsUncleanMatch(t *testing.T) {
	builder := newTestBuilder(5)
	bad := cleanMatch("m001", day(0), "Astralis", "NAVI", true)
	bad.WinnerID = models.WinnerUndetermined

	_, err := builder.Run([]models.Match{bad}, nil)
	assert.Error(t, err)
}
