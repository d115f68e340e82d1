// Package predict serves win-probability predictions for hypothetical
// pairings from persisted feature-engine state.
package predict

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/esports-predictor/internal/features"
	"github.com/yourusername/esports-predictor/internal/metrics"
	"github.com/yourusername/esports-predictor/internal/ml"
	"github.com/yourusername/esports-predictor/internal/models"
)

// Teams below this exposure get a reliability warning on predictions.
const reliableMatchCount = 10

// ModelClient is the model-serving surface the service needs.
type ModelClient interface {
	Predict(ctx context.Context, columns []string, features []float64) (*ml.PredictResponse, error)
}

// Prediction is one served matchup prediction.
type Prediction struct {
	Team1               string   `json:"team1"`
	Team2               string   `json:"team2"`
	Team1WinProbability float64  `json:"team1_win_probability"`
	Team2WinProbability float64  `json:"team2_win_probability"`
	Team1Elo            float64  `json:"team1_elo"`
	Team2Elo            float64  `json:"team2_elo"`
	ModelVersion        string   `json:"model_version"`
	Warnings            []string `json:"warnings,omitempty"`
	Cached              bool     `json:"cached"`
}

// Service answers prediction queries against a loaded model state. The
// state is read-only here: serving never absorbs matches.
type Service struct {
	elo    *features.EloRatingSystem
	stats  *features.TeamStatsTracker
	model  ModelClient
	cache  *ml.PredictionCache
	logger *logrus.Logger

	now func() time.Time
}

// NewService creates a prediction service. cache may be nil to disable
// caching.
func NewService(elo *features.EloRatingSystem, stats *features.TeamStatsTracker, model ModelClient, cache *ml.PredictionCache, logger *logrus.Logger) *Service {
	return &Service{
		elo:    elo,
		stats:  stats,
		model:  model,
		cache:  cache,
		logger: logger,
		now:    time.Now,
	}
}

// LoadState restores the feature-engine state from its JSON files.
func LoadState(eloPath, statsPath string) (*features.EloRatingSystem, *features.TeamStatsTracker, error) {
	elo, err := features.LoadElo(eloPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load rating state: %w", err)
	}
	stats, err := features.LoadTracker(statsPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load team stats state: %w", err)
	}
	return elo, stats, nil
}

// warningsFor collects reliability warnings for one side of a pairing.
func (s *Service) warningsFor(team string) []string {
	count := s.stats.TotalMatches(team)
	switch {
	case count == 0:
		return []string{fmt.Sprintf("%s has no recorded history, prediction uses defaults", team)}
	case count < reliableMatchCount:
		return []string{fmt.Sprintf("%s has only %d recorded matches, prediction may be unreliable", team, count)}
	}
	return nil
}

// Predict serves the probability that team1 beats team2 as of now, with
// optional tournament context.
func (s *Service) Predict(ctx context.Context, team1, team2 string, info models.TournamentInfo) (*Prediction, error) {
	if team1 == "" || team2 == "" {
		return nil, models.ErrMissingTeams
	}
	if team1 == team2 {
		return nil, fmt.Errorf("cannot predict %s against itself", team1)
	}

	metrics.PredictionRequestsTotal.Inc()
	asOf := s.now()

	key := ml.CacheKey{Team1: team1, Team2: team2, AsOf: asOf.Format("2006-01-02")}
	if s.cache != nil {
		if cached := s.cache.Get(key); cached != nil {
			prediction := s.buildPrediction(team1, team2, cached)
			prediction.Cached = true
			return prediction, nil
		}
	}

	row := features.ExtractFeatures(s.elo, s.stats, team1, team2, asOf, info)
	row.FillDefaults()

	response, err := s.model.Predict(ctx, features.FeatureColumns, row.Vector())
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.Set(key, response)
	}

	prediction := s.buildPrediction(team1, team2, response)
	s.logger.WithFields(logrus.Fields{
		"component":   "predict",
		"team1":       team1,
		"team2":       team2,
		"probability": prediction.Team1WinProbability,
	}).Info("Prediction served")
	return prediction, nil
}

func (s *Service) buildPrediction(team1, team2 string, response *ml.PredictResponse) *Prediction {
	prediction := &Prediction{
		Team1:               team1,
		Team2:               team2,
		Team1WinProbability: response.Team1WinProbability,
		Team2WinProbability: 1 - response.Team1WinProbability,
		Team1Elo:            s.elo.Rating(team1),
		Team2Elo:            s.elo.Rating(team2),
		ModelVersion:        response.ModelVersion,
	}
	prediction.Warnings = append(prediction.Warnings, s.warningsFor(team1)...)
	prediction.Warnings = append(prediction.Warnings, s.warningsFor(team2)...)
	return prediction
}

// TeamRankings returns the top teams by rating. limit <= 0 returns all.
func (s *Service) TeamRankings(limit int) []features.TeamRating {
	rankings := s.elo.Rankings()
	if limit > 0 && len(rankings) > limit {
		rankings = rankings[:limit]
	}
	return rankings
}
