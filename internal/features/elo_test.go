package features

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpectedScoreEqualRatings(t *testing.T) {
	elo := NewEloRatingSystem()

	assert.InDelta(t, 0.5, elo.ExpectedScore(1500, 1500), 1e-9)
}

func TestExpectedScoreFavorsHigherRating(t *testing.T) {
	elo := NewEloRatingSystem()

	strong := elo.ExpectedScore(1700, 1500)
	weak := elo.ExpectedScore(1500, 1700)

	assert.Greater(t, strong, 0.5)
	assert.Less(t, weak, 0.5)
	assert.InDelta(t, 1.0, strong+weak, 1e-9)
}

func TestUnseenTeamDefaults(t *testing.T) {
	elo := NewEloRatingSystem()

	assert.Equal(t, DefaultRating, elo.Rating("Phantom"))
	assert.Equal(t, 0, elo.MatchCount("Phantom"))
	assert.Equal(t, 0, elo.TeamCount())
}

func TestUpdateMovesRatingsInOppositeDirections(t *testing.T) {
	elo := NewEloRatingSystem()

	elo.Update("Astralis", "NAVI", true)

	// Both sides are new, so both use the accelerated K of 48 on an
	// even 0.5 expectation.
	assert.InDelta(t, 1524.0, elo.Rating("Astralis"), 1e-9)
	assert.InDelta(t, 1476.0, elo.Rating("NAVI"), 1e-9)
	assert.Equal(t, 1, elo.MatchCount("Astralis"))
	assert.Equal(t, 1, elo.MatchCount("NAVI"))
}

func TestAdaptiveKFactorDropsWhenEstablished(t *testing.T) {
	elo := NewEloRatingSystem()

	assert.Equal(t, newTeamKFactor, elo.kFor("Vitality"))

	for i := 0; i < establishedThreshold; i++ {
		elo.matchCounts["Vitality"]++
	}
	assert.Equal(t, DefaultKFactor, elo.kFor("Vitality"))
}

func TestUpdateIsNotZeroSumAcrossExperienceGap(t *testing.T) {
	elo := NewEloRatingSystem()
	elo.matchCounts["Veteran"] = establishedThreshold

	before := elo.Rating("Veteran") + elo.Rating("Rookie")
	elo.Update("Veteran", "Rookie", true)
	after := elo.Rating("Veteran") + elo.Rating("Rookie")

	// The veteran gains with K=32 while the rookie loses with K=48.
	assert.Less(t, after, before)
}

func TestRankingsOrderedByRating(t *testing.T) {
	elo := NewEloRatingSystem()
	elo.Update("Astralis", "NAVI", true)
	elo.Update("Astralis", "G2", true)

	rankings := elo.Rankings()

	require.Len(t, rankings, 3)
	assert.Equal(t, "Astralis", rankings[0].Team)
	assert.Equal(t, 2, rankings[0].Matches)
	for i := 1; i < len(rankings); i++ {
		assert.GreaterOrEqual(t, rankings[i-1].Rating, rankings[i].Rating)
	}
}

func TestEloSaveLoadRoundTrip(t *testing.T) {
	elo := NewEloRatingSystem()
	elo.Update("Astralis", "NAVI", true)
	elo.Update("NAVI", "G2", false)
	elo.Update("Astralis", "G2", true)

	path := filepath.Join(t.TempDir(), "elo.json")
	require.NoError(t, elo.Save(path))

	loaded, err := LoadElo(path)
	require.NoError(t, err)

	for _, team := range []string{"Astralis", "NAVI", "G2", "Unseen"} {
		assert.Equal(t, elo.Rating(team), loaded.Rating(team), team)
		assert.Equal(t, elo.MatchCount(team), loaded.MatchCount(team), team)
	}
	assert.Equal(t, elo.TeamCount(), loaded.TeamCount())
}

func TestLoadEloRejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "elo.json")
	require.NoError(t, writeFile(path, "{not json"))

	_, err := LoadElo(path)
	assert.Error(t, err)
}

func TestLoadEloMissingFile(t *testing.T) {
	_, err := LoadElo(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
