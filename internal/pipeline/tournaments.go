package pipeline

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/esports-predictor/internal/liquipedia"
	"github.com/yourusername/esports-predictor/internal/logger"
	"github.com/yourusername/esports-predictor/internal/models"
)

// Archiver mirrors ingested records into the optional Postgres archive.
// A nil Archiver disables archiving.
type Archiver interface {
	UpsertTournaments(ctx context.Context, tournaments []models.Tournament) error
	UpsertMatches(ctx context.Context, matches []models.Match) error
}

// TournamentFetcher is the upstream surface the pipelines need.
type TournamentFetcher interface {
	FetchTournaments(ctx context.Context, startDate, endDate string) ([]models.Tournament, error)
	FetchMatches(ctx context.Context, tournamentPagename string) ([]models.Match, error)
}

// TournamentStore is the dataset surface the pipelines need.
type TournamentStore interface {
	SaveTournaments(path string, tournaments []models.Tournament) error
	LoadTournaments(path string) ([]models.Tournament, error)
	SaveMatches(path string, matches []models.Match) error
	LoadMatches(path string) ([]models.Match, error)
}

// TournamentPipeline fetches the tournament table for a date range and
// persists it.
type TournamentPipeline struct {
	client   TournamentFetcher
	store    TournamentStore
	archiver Archiver
	log      *logrus.Logger
	events   *logger.PipelineLogger
}

// TournamentRunSummary reports one tournament pipeline run.
type TournamentRunSummary struct {
	RunID   string
	Fetched int
	Invalid int
	Elapsed time.Duration
}

// NewTournamentPipeline creates a tournament pipeline. archiver may be nil.
func NewTournamentPipeline(client TournamentFetcher, store TournamentStore, archiver Archiver, log *logrus.Logger) *TournamentPipeline {
	return &TournamentPipeline{
		client:   client,
		store:    store,
		archiver: archiver,
		log:      log,
		events:   logger.NewPipelineLogger(log),
	}
}

// Run fetches all tournaments starting between startDate and endDate
// (YYYY-MM-DD) and writes them to outputPath.
func (p *TournamentPipeline) Run(ctx context.Context, startDate, endDate, outputPath string) (*TournamentRunSummary, error) {
	runID := uuid.New().String()
	started := time.Now()

	p.log.WithFields(logrus.Fields{
		"run_id":     runID,
		"start_date": startDate,
		"end_date":   endDate,
	}).Info("Starting tournament pipeline")

	fetched, err := p.client.FetchTournaments(ctx, startDate, endDate)
	if err != nil {
		return nil, err
	}

	tournaments := make([]models.Tournament, 0, len(fetched))
	invalid := 0
	for i := range fetched {
		if validateTournament(&fetched[i]) {
			tournaments = append(tournaments, fetched[i])
		} else {
			invalid++
		}
	}

	if err := p.store.SaveTournaments(outputPath, tournaments); err != nil {
		return nil, err
	}

	if p.archiver != nil {
		if err := p.archiver.UpsertTournaments(ctx, tournaments); err != nil {
			// The CSV is the source of truth; archive failures are not fatal.
			p.log.WithError(err).WithField("run_id", runID).Warn("Tournament archive upsert failed")
		}
	}

	summary := &TournamentRunSummary{
		RunID:   runID,
		Fetched: len(tournaments),
		Invalid: invalid,
		Elapsed: time.Since(started),
	}
	p.events.LogIngestionSummary(runID, len(tournaments), 0, invalid, summary.Elapsed)
	return summary, nil
}

var _ TournamentFetcher = (*liquipedia.Client)(nil)
