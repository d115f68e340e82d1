// Package features implements the chronological feature engine: an Elo
// rating system and a rolling team-statistics tracker, driven match by
// match over a time-ordered history so that every extracted feature
// vector reflects pre-match state only.
package features

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"sort"
)

// Rating model constants. New entrants use the larger step until they
// reach the established-match threshold.
const (
	DefaultRating        = 1500.0
	DefaultKFactor       = 32.0
	newTeamKFactor       = 48.0
	establishedThreshold = 30
)

// EloRatingSystem maintains one scalar skill estimate per team with an
// adaptive K-factor. Teams never seen read as DefaultRating with zero
// matches; absent entries are not an error.
type EloRatingSystem struct {
	kFactor       float64
	defaultRating float64
	ratings       map[string]float64
	matchCounts   map[string]int
}

// TeamRating is a ranking entry returned by Rankings.
type TeamRating struct {
	Team    string
	Rating  float64
	Matches int
}

// eloState is the serialized form of the rating model.
type eloState struct {
	Ratings       map[string]float64 `json:"ratings"`
	MatchCounts   map[string]int     `json:"match_counts"`
	KFactor       float64            `json:"k_factor"`
	DefaultRating float64            `json:"default_rating"`
}

// NewEloRatingSystem creates an empty rating model with standard constants.
func NewEloRatingSystem() *EloRatingSystem {
	return NewEloRatingSystemWith(DefaultKFactor, DefaultRating)
}

// NewEloRatingSystemWith creates an empty rating model with a custom base
// K-factor and default rating.
func NewEloRatingSystemWith(kFactor, defaultRating float64) *EloRatingSystem {
	return &EloRatingSystem{
		kFactor:       kFactor,
		defaultRating: defaultRating,
		ratings:       make(map[string]float64),
		matchCounts:   make(map[string]int),
	}
}

// ExpectedScore returns the standard Elo expectation for a player rated
// ratingA against one rated ratingB. Pure function.
func (e *EloRatingSystem) ExpectedScore(ratingA, ratingB float64) float64 {
	return 1.0 / (1.0 + math.Pow(10, (ratingB-ratingA)/400.0))
}

// kFor returns the adaptive K-factor: larger for teams with few matches
// so new entrants converge faster.
func (e *EloRatingSystem) kFor(team string) float64 {
	if e.matchCounts[team] < establishedThreshold {
		return newTeamKFactor
	}
	return e.kFactor
}

// Update adjusts both teams' ratings after an observed outcome and
// increments their match counts. The per-side step sizes differ when the
// two teams differ in experience, so rating mass is not conserved across
// an update.
func (e *EloRatingSystem) Update(team1, team2 string, team1Win bool) {
	r1 := e.Rating(team1)
	r2 := e.Rating(team2)

	e1 := e.ExpectedScore(r1, r2)
	e2 := 1.0 - e1

	s1 := 0.0
	if team1Win {
		s1 = 1.0
	}
	s2 := 1.0 - s1

	k1 := e.kFor(team1)
	k2 := e.kFor(team2)

	e.ratings[team1] = r1 + k1*(s1-e1)
	e.ratings[team2] = r2 + k2*(s2-e2)

	e.matchCounts[team1]++
	e.matchCounts[team2]++
}

// Rating returns the current rating for a team, defaulting unseen teams.
func (e *EloRatingSystem) Rating(team string) float64 {
	if rating, ok := e.ratings[team]; ok {
		return rating
	}
	return e.defaultRating
}

// MatchCount returns the number of matches recorded for a team.
func (e *EloRatingSystem) MatchCount(team string) int {
	return e.matchCounts[team]
}

// TeamCount returns the number of teams with at least one recorded match.
func (e *EloRatingSystem) TeamCount() int {
	return len(e.ratings)
}

// Rankings returns all rated teams ordered by rating, highest first.
// Ties break on team name for stable output.
func (e *EloRatingSystem) Rankings() []TeamRating {
	rankings := make([]TeamRating, 0, len(e.ratings))
	for team, rating := range e.ratings {
		rankings = append(rankings, TeamRating{
			Team:    team,
			Rating:  rating,
			Matches: e.matchCounts[team],
		})
	}
	sort.Slice(rankings, func(i, j int) bool {
		if rankings[i].Rating != rankings[j].Rating {
			return rankings[i].Rating > rankings[j].Rating
		}
		return rankings[i].Team < rankings[j].Team
	})
	return rankings
}

// Save writes ratings, match counts and the tunable constants to a JSON
// file. Output is deterministic for a given state.
func (e *EloRatingSystem) Save(path string) error {
	state := eloState{
		Ratings:       e.ratings,
		MatchCounts:   e.matchCounts,
		KFactor:       e.kFactor,
		DefaultRating: e.defaultRating,
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal elo state: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write elo state: %w", err)
	}
	return nil
}

// LoadElo restores a rating model from a JSON state file. The loaded
// model answers every query identically to the one saved, including
// defaults for teams not present in the file. A corrupt or unreadable
// file is an error; callers must treat it as fatal.
func LoadElo(path string) (*EloRatingSystem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read elo state: %w", err)
	}

	var state eloState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to parse elo state: %w", err)
	}

	elo := NewEloRatingSystemWith(state.KFactor, state.DefaultRating)
	if elo.kFactor == 0 {
		elo.kFactor = DefaultKFactor
	}
	if elo.defaultRating == 0 {
		elo.defaultRating = DefaultRating
	}
	for team, rating := range state.Ratings {
		elo.ratings[team] = rating
	}
	for team, count := range state.MatchCounts {
		elo.matchCounts[team] = count
	}
	return elo, nil
}
