package models

import (
	"time"
)

// Match winner identifiers as reported by the upstream API.
const (
	WinnerUndetermined = 0
	WinnerTeam1        = 1
	WinnerTeam2        = 2
)

// ScoreUnknown marks a score the upstream API could not resolve.
const ScoreUnknown = -1

// Match represents a normalized esports match record
type Match struct {
	MatchID            string     `json:"match_id" csv:"match_id"`
	TournamentPagename string     `json:"tournament_pagename" csv:"tournament_pagename"`
	Date               *time.Time `json:"date" csv:"date,omitempty"`
	BestOf             int        `json:"bestof" csv:"bestof"`
	Team1ID            string     `json:"team1_id" csv:"team1_id"`
	Team1Name          string     `json:"team1_name" csv:"team1_name"`
	Team1Score         int        `json:"team1_score" csv:"team1_score"`
	Team2ID            string     `json:"team2_id" csv:"team2_id"`
	Team2Name          string     `json:"team2_name" csv:"team2_name"`
	Team2Score         int        `json:"team2_score" csv:"team2_score"`
	WinnerID           int        `json:"winner_id" csv:"winner_id"`
	Team1Win           bool       `json:"team1_win" csv:"team1_win"`
}

// HasWinner reports whether the upstream data determined a winner
func (m *Match) HasWinner() bool {
	return m.WinnerID == WinnerTeam1 || m.WinnerID == WinnerTeam2
}

// HasTeams reports whether both opponent names are present
func (m *Match) HasTeams() bool {
	return m.Team1Name != "" && m.Team2Name != ""
}

// HasValidScores reports whether both scores were resolved upstream
func (m *Match) HasValidScores() bool {
	return m.Team1Score != ScoreUnknown && m.Team2Score != ScoreUnknown
}

// IsClean reports whether the match passes every training-stream filter:
// determined winner, both team names, resolved scores and a parseable date.
// Matches failing any of these never reach the feature engine.
func (m *Match) IsClean() bool {
	return m.HasWinner() && m.HasTeams() && m.HasValidScores() && m.Date != nil
}
