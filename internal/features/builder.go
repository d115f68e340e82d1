package features

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/esports-predictor/internal/metrics"
	"github.com/yourusername/esports-predictor/internal/models"
)

// DefaultMinMatches is the minimum prior exposure both teams need before
// a match yields a training row.
const DefaultMinMatches = 5

// FeatureBuilder replays a match history in chronological order,
// extracting each feature vector from pre-match state before absorbing
// the match into the rating model and the stats tracker. The
// extract-then-update ordering is the leak-free guarantee of the whole
// pipeline.
type FeatureBuilder struct {
	elo        *EloRatingSystem
	stats      *TeamStatsTracker
	minMatches int
	logger     *logrus.Logger
}

// BuildResult summarizes one chronological build.
type BuildResult struct {
	Rows      []*FeatureRow
	Processed int
	Skipped   int
}

// NewFeatureBuilder creates a builder over the given models. A
// minMatches of zero or less falls back to DefaultMinMatches.
func NewFeatureBuilder(elo *EloRatingSystem, stats *TeamStatsTracker, minMatches int, logger *logrus.Logger) *FeatureBuilder {
	if minMatches <= 0 {
		minMatches = DefaultMinMatches
	}
	return &FeatureBuilder{
		elo:        elo,
		stats:      stats,
		minMatches: minMatches,
		logger:     logger,
	}
}

// Elo exposes the builder's rating model, for persistence after a run.
func (b *FeatureBuilder) Elo() *EloRatingSystem {
	return b.elo
}

// Stats exposes the builder's stats tracker, for persistence after a run.
func (b *FeatureBuilder) Stats() *TeamStatsTracker {
	return b.stats
}

// sortChronologically orders matches by date ascending, breaking date
// ties by match ID so replays are deterministic.
func sortChronologically(matches []models.Match) {
	sort.SliceStable(matches, func(i, j int) bool {
		di, dj := *matches[i].Date, *matches[j].Date
		if !di.Equal(dj) {
			return di.Before(dj)
		}
		return matches[i].MatchID < matches[j].MatchID
	})
}

// Run replays the given matches in chronological order against the
// builder's models. Matches that fail the completeness check are an
// error: callers are expected to feed the deduplicated clean set.
//
// Matches where either team has fewer than minMatches prior appearances
// produce no row but still update both models, so early history warms
// the models up instead of being discarded.
func (b *FeatureBuilder) Run(matches []models.Match, tournaments map[string]models.TournamentInfo) (*BuildResult, error) {
	started := time.Now()

	ordered := make([]models.Match, len(matches))
	copy(ordered, matches)
	for i := range ordered {
		if !ordered[i].IsClean() {
			return nil, fmt.Errorf("match %s is not clean: feature builds require the deduplicated set", ordered[i].MatchID)
		}
	}
	sortChronologically(ordered)

	result := &BuildResult{Rows: make([]*FeatureRow, 0, len(ordered))}

	for i := range ordered {
		match := &ordered[i]
		info := tournaments[match.TournamentPagename]

		gated := b.stats.TotalMatches(match.Team1Name) < b.minMatches ||
			b.stats.TotalMatches(match.Team2Name) < b.minMatches

		if gated {
			result.Skipped++
			metrics.RecordGateSkip()
		} else {
			row := ExtractFeatures(b.elo, b.stats, match.Team1Name, match.Team2Name, *match.Date, info)
			row.MatchID = match.MatchID
			row.Team1Win = match.Team1Win
			result.Rows = append(result.Rows, row)
			metrics.RecordFeatureRow()
		}

		b.absorb(match, info)
		result.Processed++

		if result.Processed%10000 == 0 && b.logger != nil {
			b.logger.WithFields(logrus.Fields{
				"processed": result.Processed,
				"rows":      len(result.Rows),
			}).Info("Feature build progress")
		}
	}

	metrics.TeamsTracked.Set(float64(b.stats.TeamCount()))
	metrics.FeatureBuildDuration.Observe(time.Since(started).Seconds())

	if b.logger != nil {
		b.logger.WithFields(logrus.Fields{
			"processed":  result.Processed,
			"rows":       len(result.Rows),
			"skipped":    result.Skipped,
			"teams":      b.stats.TeamCount(),
			"elapsed_ms": time.Since(started).Milliseconds(),
		}).Info("Feature build complete")
	}
	return result, nil
}

// absorb feeds one completed match into both models.
func (b *FeatureBuilder) absorb(match *models.Match, info models.TournamentInfo) {
	b.elo.Update(match.Team1Name, match.Team2Name, match.Team1Win)

	tierLabel := ""
	if info.Tier != nil {
		tierLabel = strconv.Itoa(*info.Tier)
	}
	b.stats.RecordMatch(match.Team1Name, match.Team2Name, match.Team1Win, *match.Date, tierLabel)
}

// FillAll applies FillDefaults to every row, in place.
func FillAll(rows []*FeatureRow) {
	for _, row := range rows {
		row.FillDefaults()
	}
}
