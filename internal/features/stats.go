package features

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// recentFormWindow is the window size used for the form statistic.
const recentFormWindow = 10

// matchOutcome is one entry in a team's chronological history.
type matchOutcome struct {
	Date string `json:"date"`
	Won  bool   `json:"won"`
}

// TeamStatsTracker accumulates per-team rolling statistics as matches are
// recorded in chronological order. Every query answers from history
// recorded so far only; a statistic with no supporting history returns
// nil rather than a default.
type TeamStatsTracker struct {
	history     map[string][]matchOutcome
	tierHistory map[string]map[string][]matchOutcome
	h2h         map[string]map[string]int
	lastMatch   map[string]string
}

// trackerState is the serialized form of the tracker.
type trackerState struct {
	History     map[string][]matchOutcome            `json:"history"`
	TierHistory map[string]map[string][]matchOutcome `json:"tier_history"`
	H2H         map[string]map[string]int            `json:"h2h"`
	LastMatch   map[string]string                    `json:"last_match"`
}

// NewTeamStatsTracker creates an empty tracker.
func NewTeamStatsTracker() *TeamStatsTracker {
	return &TeamStatsTracker{
		history:     make(map[string][]matchOutcome),
		tierHistory: make(map[string]map[string][]matchOutcome),
		h2h:         make(map[string]map[string]int),
		lastMatch:   make(map[string]string),
	}
}

// pairKey builds the order-independent head-to-head key for two teams.
func pairKey(teamA, teamB string) string {
	if teamA > teamB {
		teamA, teamB = teamB, teamA
	}
	return teamA + "|" + teamB
}

// RecordMatch appends one completed match to both teams' histories. The
// tier label may be empty when the tournament tier is unknown; the match
// then contributes to overall statistics but not to any tier bucket.
func (t *TeamStatsTracker) RecordMatch(team1, team2 string, team1Win bool, date time.Time, tier string) {
	dateStr := date.Format(dateLayout)

	t.history[team1] = append(t.history[team1], matchOutcome{Date: dateStr, Won: team1Win})
	t.history[team2] = append(t.history[team2], matchOutcome{Date: dateStr, Won: !team1Win})

	if tier != "" {
		for _, side := range []struct {
			team string
			won  bool
		}{{team1, team1Win}, {team2, !team1Win}} {
			bucket := t.tierHistory[side.team]
			if bucket == nil {
				bucket = make(map[string][]matchOutcome)
				t.tierHistory[side.team] = bucket
			}
			bucket[tier] = append(bucket[tier], matchOutcome{Date: dateStr, Won: side.won})
		}
	}

	key := pairKey(team1, team2)
	wins := t.h2h[key]
	if wins == nil {
		wins = make(map[string]int)
		t.h2h[key] = wins
	}
	if team1Win {
		wins[team1]++
	} else {
		wins[team2]++
	}

	t.lastMatch[team1] = dateStr
	t.lastMatch[team2] = dateStr
}

// winRateOf computes the win fraction over the most recent lastN entries
// of a history slice, or over all of it when lastN <= 0.
func winRateOf(outcomes []matchOutcome, lastN int) *float64 {
	if len(outcomes) == 0 {
		return nil
	}
	if lastN > 0 && len(outcomes) > lastN {
		outcomes = outcomes[len(outcomes)-lastN:]
	}
	wins := 0
	for _, outcome := range outcomes {
		if outcome.Won {
			wins++
		}
	}
	rate := float64(wins) / float64(len(outcomes))
	return &rate
}

// WinRate returns the team's win fraction over its most recent lastN
// matches, or over all recorded matches when lastN <= 0. Nil when the
// team has no history.
func (t *TeamStatsTracker) WinRate(team string, lastN int) *float64 {
	return winRateOf(t.history[team], lastN)
}

// RecentForm returns the win fraction over the last ten matches.
func (t *TeamStatsTracker) RecentForm(team string) *float64 {
	return t.WinRate(team, recentFormWindow)
}

// WinStreak returns the signed run length of the team's most recent
// results: positive for consecutive wins, negative for consecutive
// losses, zero with no history.
func (t *TeamStatsTracker) WinStreak(team string) int {
	outcomes := t.history[team]
	if len(outcomes) == 0 {
		return 0
	}

	latest := outcomes[len(outcomes)-1].Won
	streak := 0
	for i := len(outcomes) - 1; i >= 0; i-- {
		if outcomes[i].Won != latest {
			break
		}
		streak++
	}
	if !latest {
		streak = -streak
	}
	return streak
}

// H2HWinRate returns the fraction of prior meetings between the two
// teams won by team. Nil when they have never met.
func (t *TeamStatsTracker) H2HWinRate(team, opponent string) *float64 {
	wins := t.h2h[pairKey(team, opponent)]
	if wins == nil {
		return nil
	}
	total := 0
	for _, count := range wins {
		total += count
	}
	if total == 0 {
		return nil
	}
	rate := float64(wins[team]) / float64(total)
	return &rate
}

// TierWinRate returns the team's win fraction within one tier bucket.
// Nil when the team has never played at that tier.
func (t *TeamStatsTracker) TierWinRate(team, tier string) *float64 {
	return winRateOf(t.tierHistory[team][tier], 0)
}

// DaysSinceLastMatch returns whole days between the team's most recent
// recorded match and asOf. Day granularity: two matches on the same
// calendar day are zero days apart. Nil for unseen teams.
func (t *TeamStatsTracker) DaysSinceLastMatch(team string, asOf time.Time) *int {
	dateStr, ok := t.lastMatch[team]
	if !ok {
		return nil
	}
	last, err := time.Parse(dateLayout, dateStr)
	if err != nil {
		return nil
	}
	asOfDay := time.Date(asOf.Year(), asOf.Month(), asOf.Day(), 0, 0, 0, 0, time.UTC)
	days := int(asOfDay.Sub(last).Hours() / 24)
	return &days
}

// TotalMatches returns the number of recorded matches for a team. This
// is the exposure count consulted by the minimum-history gate.
func (t *TeamStatsTracker) TotalMatches(team string) int {
	return len(t.history[team])
}

// TeamCount returns the number of teams with recorded history.
func (t *TeamStatsTracker) TeamCount() int {
	return len(t.history)
}

// Save writes the tracker state to a JSON file. Output is deterministic
// for a given state.
func (t *TeamStatsTracker) Save(path string) error {
	state := trackerState{
		History:     t.history,
		TierHistory: t.tierHistory,
		H2H:         t.h2h,
		LastMatch:   t.lastMatch,
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal team stats state: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write team stats state: %w", err)
	}
	return nil
}

// LoadTracker restores a tracker from a JSON state file. The loaded
// tracker answers every query identically to the one saved. A corrupt or
// unreadable file is an error; callers must treat it as fatal.
func LoadTracker(path string) (*TeamStatsTracker, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read team stats state: %w", err)
	}

	var state trackerState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to parse team stats state: %w", err)
	}
	for key := range state.H2H {
		if !strings.Contains(key, "|") {
			return nil, fmt.Errorf("failed to parse team stats state: malformed h2h key %q", key)
		}
	}

	tracker := NewTeamStatsTracker()
	if state.History != nil {
		tracker.history = state.History
	}
	if state.TierHistory != nil {
		tracker.tierHistory = state.TierHistory
	}
	if state.H2H != nil {
		tracker.h2h = state.H2H
	}
	if state.LastMatch != nil {
		tracker.lastMatch = state.LastMatch
	}
	return tracker, nil
}
