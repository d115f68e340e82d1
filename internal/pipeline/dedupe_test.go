package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/esports-predictor/internal/models"
)

func TestDeduplicateFirstKeepsInputOrder(t *testing.T) {
	matches := []models.Match{
		testMatch("m1", "Event_One", 0),
		testMatch("m2", "Event_One", 1),
		testMatch("m1", "Event_One", 5),
	}

	clean, removed, err := Deduplicate(matches, DedupeFirst)

	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	require.Len(t, clean, 2)
	assert.Equal(t, "m1", clean[0].MatchID)
	assert.True(t, clean[0].Date.Equal(*testDate(0)))
	assert.Equal(t, "m2", clean[1].MatchID)
}

func TestDeduplicateLatestKeepsMostRecent(t *testing.T) {
	undated := testMatch("m1", "Event_One", 0)
	undated.Date = nil
	matches := []models.Match{
		undated,
		testMatch("m1", "Event_One", 2),
		testMatch("m1", "Event_One", 7),
		testMatch("m2", "Event_One", 1),
	}

	clean, removed, err := Deduplicate(matches, DedupeLatest)

	require.NoError(t, err)
	assert.Equal(t, 2, removed)
	require.Len(t, clean, 2)

	byID := make(map[string]models.Match)
	for _, match := range clean {
		byID[match.MatchID] = match
	}
	require.NotNil(t, byID["m1"].Date)
	assert.True(t, byID["m1"].Date.Equal(*testDate(7)))
}

func TestDeduplicateNoDuplicates(t *testing.T) {
	matches := []models.Match{
		testMatch("m1", "Event_One", 0),
		testMatch("m2", "Event_One", 1),
	}

	clean, removed, err := Deduplicate(matches, DedupeFirst)

	require.NoError(t, err)
	assert.Zero(t, removed)
	assert.Len(t, clean, 2)
}

func TestDeduplicateUnknownStrategy(t *testing.T) {
	_, _, err := Deduplicate(nil, "newest")
	assert.Error(t, err)
}

func TestDedupePipelinePreservesRawTable(t *testing.T) {
	store := newFakeStore()
	raw := []models.Match{
		testMatch("m1", "Event_One", 0),
		testMatch("m1", "Event_One", 1),
	}
	require.NoError(t, store.SaveMatches("raw.csv", raw))

	err := NewDedupePipeline(store, quietLogger()).Run("raw.csv", "clean.csv", DedupeFirst)

	require.NoError(t, err)
	assert.Len(t, store.matches["raw.csv"], 2)
	assert.Len(t, store.matches["clean.csv"], 1)
}
