package liquipedia

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/esports-predictor/internal/models"
)

const rawMatchJSON = `{
	"match2id": "m_abc123",
	"parent": "ESL_Pro_League/Season_19",
	"date": "2024-04-23 18:00:00",
	"winner": "1",
	"match2opponents": [
		{"id": "astralis", "name": "Astralis", "score": 2},
		{"id": "navi", "name": "NAVI", "score": "1"}
	],
	"extradata": {"bestof": "3"}
}`

func TestNormalizeMatchComplete(t *testing.T) {
	var raw rawMatch
	require.NoError(t, json.Unmarshal([]byte(rawMatchJSON), &raw))

	match := normalizeMatch(raw)

	assert.Equal(t, "m_abc123", match.MatchID)
	assert.Equal(t, "ESL_Pro_League/Season_19", match.TournamentPagename)
	require.NotNil(t, match.Date)
	assert.Equal(t, 2024, match.Date.Year())
	assert.Equal(t, 3, match.BestOf)
	assert.Equal(t, "Astralis", match.Team1Name)
	assert.Equal(t, 2, match.Team1Score)
	assert.Equal(t, "NAVI", match.Team2Name)
	assert.Equal(t, 1, match.Team2Score)
	assert.Equal(t, models.WinnerTeam1, match.WinnerID)
	assert.True(t, match.Team1Win)
	assert.True(t, match.IsClean())
}

func TestNormalizeMatchMissingPieces(t *testing.T) {
	var raw rawMatch
	require.NoError(t, json.Unmarshal([]byte(`{
		"match2id": "m_partial",
		"parent": "Some_Event",
		"date": "1970-01-01 00:00:00",
		"winner": "",
		"match2opponents": [{"id": "g2", "name": "G2"}]
	}`), &raw))

	match := normalizeMatch(raw)

	assert.Nil(t, match.Date)
	assert.Equal(t, models.WinnerUndetermined, match.WinnerID)
	assert.False(t, match.Team1Win)
	assert.Equal(t, models.ScoreUnknown, match.Team1Score)
	assert.Empty(t, match.Team2Name)
	assert.False(t, match.IsClean())
}

func TestNormalizeTournament(t *testing.T) {
	var raw rawTournament
	require.NoError(t, json.Unmarshal([]byte(`{
		"id": "t_55",
		"name": "ESL Pro League Season 19",
		"pagename": "ESL_Pro_League/Season_19",
		"startdate": "2024-04-23",
		"enddate": "2024-05-12",
		"liquipediatier": "1",
		"prizepool": 750000,
		"location": "Malta",
		"type": "Offline",
		"game": "cs2"
	}`), &raw))

	tournament := normalizeTournament(raw)

	assert.Equal(t, "ESL_Pro_League/Season_19", tournament.Pagename)
	require.NotNil(t, tournament.StartDate)
	assert.Equal(t, "1", tournament.Tier)
	require.NotNil(t, tournament.Prizepool)
	assert.Equal(t, "750000", tournament.Prizepool.String())

	info := tournament.Info()
	require.NotNil(t, info.Tier)
	assert.Equal(t, 1, *info.Tier)
	assert.Equal(t, models.TournamentTypeOffline, info.Type)
}

func TestNormalizeTournamentQualifierTier(t *testing.T) {
	var raw rawTournament
	require.NoError(t, json.Unmarshal([]byte(`{
		"id": "t_56",
		"pagename": "Some_Qualifier",
		"liquipediatier": "Qualifier",
		"prizepool": ""
	}`), &raw))

	tournament := normalizeTournament(raw)

	assert.Nil(t, tournament.Prizepool)
	assert.Nil(t, tournament.Info().Tier)
}

func TestParseAPIDateLayouts(t *testing.T) {
	assert.NotNil(t, parseAPIDate("2024-04-23 18:00:00"))
	assert.NotNil(t, parseAPIDate("2024-04-23"))
	assert.Nil(t, parseAPIDate(""))
	assert.Nil(t, parseAPIDate("1970-01-01 00:00:00"))
	assert.Nil(t, parseAPIDate("not a date"))
}
