package liquipedia

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/yourusername/esports-predictor/internal/models"
)

// API date layouts, most specific first.
var apiDateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// flexInt tolerates the API's habit of encoding integers as either JSON
// numbers or strings. Unparseable values read as invalid rather than
// failing the whole page.
type flexInt struct {
	Value int
	Valid bool
}

func (f *flexInt) UnmarshalJSON(data []byte) error {
	s := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if s == "" || s == "null" {
		return nil
	}
	value, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	f.Value = value
	f.Valid = true
	return nil
}

// flexDecimal is flexInt's counterpart for monetary fields.
type flexDecimal struct {
	Value decimal.Decimal
	Valid bool
}

func (f *flexDecimal) UnmarshalJSON(data []byte) error {
	s := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if s == "" || s == "null" {
		return nil
	}
	value, err := decimal.NewFromString(s)
	if err != nil {
		return nil
	}
	f.Value = value
	f.Valid = true
	return nil
}

// rawOpponent is one side of a match as returned by the API.
type rawOpponent struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Score flexInt `json:"score"`
}

// rawMatch is a match record as returned by the match endpoint.
type rawMatch struct {
	ID        string        `json:"match2id"`
	Parent    string        `json:"parent"`
	Date      string        `json:"date"`
	Winner    flexInt       `json:"winner"`
	Opponents []rawOpponent `json:"match2opponents"`
	Extradata struct {
		BestOf flexInt `json:"bestof"`
	} `json:"extradata"`
}

// rawTournament is a tournament record as returned by the tournament
// endpoint.
type rawTournament struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Pagename  string      `json:"pagename"`
	StartDate string      `json:"startdate"`
	EndDate   string      `json:"enddate"`
	Tier      string      `json:"liquipediatier"`
	Prizepool flexDecimal `json:"prizepool"`
	Location  string      `json:"location"`
	Type      string      `json:"type"`
	Game      string      `json:"game"`
}

// parseAPIDate parses an API timestamp. The API's epoch placeholder and
// anything unparseable come back nil.
func parseAPIDate(s string) *time.Time {
	if s == "" || strings.HasPrefix(s, "1970-01-01") || strings.HasPrefix(s, "0000") {
		return nil
	}
	for _, layout := range apiDateLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			parsed = parsed.UTC()
			return &parsed
		}
	}
	return nil
}

// normalizeMatch flattens a raw match record into the model form. It is
// purely structural; completeness filtering happens downstream.
func normalizeMatch(raw rawMatch) models.Match {
	match := models.Match{
		MatchID:            raw.ID,
		TournamentPagename: raw.Parent,
		Date:               parseAPIDate(raw.Date),
		Team1Score:         models.ScoreUnknown,
		Team2Score:         models.ScoreUnknown,
	}

	if raw.Extradata.BestOf.Valid {
		match.BestOf = raw.Extradata.BestOf.Value
	}

	if len(raw.Opponents) > 0 {
		match.Team1ID = raw.Opponents[0].ID
		match.Team1Name = raw.Opponents[0].Name
		if raw.Opponents[0].Score.Valid {
			match.Team1Score = raw.Opponents[0].Score.Value
		}
	}
	if len(raw.Opponents) > 1 {
		match.Team2ID = raw.Opponents[1].ID
		match.Team2Name = raw.Opponents[1].Name
		if raw.Opponents[1].Score.Valid {
			match.Team2Score = raw.Opponents[1].Score.Value
		}
	}

	if raw.Winner.Valid {
		match.WinnerID = raw.Winner.Value
	}
	match.Team1Win = match.WinnerID == models.WinnerTeam1

	return match
}

// normalizeTournament flattens a raw tournament record into the model form.
func normalizeTournament(raw rawTournament) models.Tournament {
	tournament := models.Tournament{
		TournamentID: raw.ID,
		Name:         raw.Name,
		Pagename:     raw.Pagename,
		StartDate:    parseAPIDate(raw.StartDate),
		EndDate:      parseAPIDate(raw.EndDate),
		Tier:         raw.Tier,
		Location:     raw.Location,
		Type:         raw.Type,
		Game:         raw.Game,
	}
	if raw.Prizepool.Valid {
		pool := raw.Prizepool.Value
		tournament.Prizepool = &pool
	}
	return tournament
}
