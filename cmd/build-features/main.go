// Package main provides the entry point for the chronological feature
// build.
package main

import (
	"flag"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/esports-predictor/internal/config"
	"github.com/yourusername/esports-predictor/internal/features"
	"github.com/yourusername/esports-predictor/internal/logger"
	"github.com/yourusername/esports-predictor/internal/metrics"
	"github.com/yourusername/esports-predictor/internal/models"
	"github.com/yourusername/esports-predictor/internal/store"
)

func main() {
	var (
		configPath = flag.String("config", "config/config.yaml", "Path to config file")
		minMatches = flag.Int("min-matches", 0, "Override the minimum-history gate (0 uses config)")
	)
	flag.Parse()

	cfg, err := config.LoadWithDefaults(*configPath)
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}
	if err := config.Validate(cfg); err != nil {
		logrus.Fatalf("Invalid configuration: %v", err)
	}
	log := logger.NewLogger(cfg.App.LogLevel)
	metrics.InitRegistry()

	csvStore := store.NewCSVStore(log)

	matches, err := csvStore.LoadMatches(cfg.Paths.MatchesCleanCSV)
	if err != nil {
		log.Fatalf("Failed to load clean matches (run ingestion with deduplication first): %v", err)
	}
	tournaments, err := csvStore.LoadTournaments(cfg.Paths.TournamentsCSV)
	if err != nil {
		log.Fatalf("Failed to load tournaments: %v", err)
	}

	tournamentInfo := make(map[string]models.TournamentInfo, len(tournaments))
	for i := range tournaments {
		tournamentInfo[tournaments[i].Pagename] = tournaments[i].Info()
	}

	// The feature build only consumes clean matches; anything
	// incomplete in the input is dropped here rather than failing the
	// run.
	clean := make([]models.Match, 0, len(matches))
	for i := range matches {
		if matches[i].IsClean() {
			clean = append(clean, matches[i])
		}
	}
	if dropped := len(matches) - len(clean); dropped > 0 {
		log.WithField("dropped", dropped).Warn("Dropped incomplete matches from feature build input")
	}

	gate := cfg.Features.MinMatches
	if *minMatches > 0 {
		gate = *minMatches
	}

	elo := features.NewEloRatingSystemWith(cfg.Features.KFactor, cfg.Features.DefaultRating)
	stats := features.NewTeamStatsTracker()
	builder := features.NewFeatureBuilder(elo, stats, gate, log)

	result, err := builder.Run(clean, tournamentInfo)
	if err != nil {
		log.Fatalf("Feature build failed: %v", err)
	}

	features.FillAll(result.Rows)
	if err := csvStore.SaveFeatureMatrix(cfg.Paths.FeatureMatrixCSV, result.Rows); err != nil {
		log.Fatalf("Failed to write feature matrix: %v", err)
	}

	if err := elo.Save(cfg.Paths.EloState); err != nil {
		log.Fatalf("Failed to save rating state: %v", err)
	}
	if err := stats.Save(cfg.Paths.TeamStatsState); err != nil {
		log.Fatalf("Failed to save team stats state: %v", err)
	}

	runID := uuid.New().String()
	logger.NewPipelineLogger(log).LogFeatureBuildSummary(
		runID, result.Processed, len(result.Rows), result.Skipped, stats.TeamCount())
}
