package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/esports-predictor/internal/logger"
	"github.com/yourusername/esports-predictor/internal/metrics"
	"github.com/yourusername/esports-predictor/internal/models"
)

const cutoffDateLayout = "2006-01-02"

// MatchRunOptions controls one match pipeline run.
type MatchRunOptions struct {
	// Incremental restricts the run to tournaments starting after a
	// cutoff derived from the most recent match already on disk, minus
	// the buffer. Already-fetched tournaments inside the window are
	// re-fetched to catch late corrections.
	Incremental bool

	// FromDate overrides the derived cutoff (YYYY-MM-DD).
	FromDate string
}

// MatchRunSummary reports one match pipeline run.
type MatchRunSummary struct {
	RunID            string
	TournamentsTotal int
	TournamentsRun   int
	Resumed          int
	NoPagename       int
	NewMatches       int
	Invalid          int
	TotalMatches     int
	Elapsed          time.Duration
}

// MatchPipeline fetches matches tournament by tournament, writing a
// checkpoint after each one so an interrupted run resumes where it
// stopped. The output is the raw match table: duplicates introduced by
// re-fetching are preserved and removed later by deduplication.
type MatchPipeline struct {
	client     TournamentFetcher
	store      TournamentStore
	archiver   Archiver
	bufferDays int
	log        *logrus.Logger
	events     *logger.PipelineLogger
}

// NewMatchPipeline creates a match pipeline. archiver may be nil.
func NewMatchPipeline(client TournamentFetcher, store TournamentStore, archiver Archiver, bufferDays int, log *logrus.Logger) *MatchPipeline {
	return &MatchPipeline{
		client:     client,
		store:      store,
		archiver:   archiver,
		bufferDays: bufferDays,
		log:        log,
		events:     logger.NewPipelineLogger(log),
	}
}

// mostRecentMatchDate returns the latest dated match, or nil when none
// carry dates.
func mostRecentMatchDate(matches []models.Match) *time.Time {
	var latest *time.Time
	for i := range matches {
		date := matches[i].Date
		if date == nil {
			continue
		}
		if latest == nil || date.After(*latest) {
			latest = date
		}
	}
	return latest
}

// processedSet collects the tournament pagenames already present in the
// existing raw table.
func processedSet(matches []models.Match) map[string]bool {
	processed := make(map[string]bool)
	for i := range matches {
		if matches[i].TournamentPagename != "" {
			processed[matches[i].TournamentPagename] = true
		}
	}
	return processed
}

// Run executes the match pipeline against the tournament table at
// tournamentsPath, writing the raw match table to outputPath.
func (p *MatchPipeline) Run(ctx context.Context, opts MatchRunOptions, tournamentsPath, outputPath string) (*MatchRunSummary, error) {
	runID := uuid.New().String()
	started := time.Now()
	summary := &MatchRunSummary{RunID: runID}

	p.log.WithFields(logrus.Fields{
		"run_id":      runID,
		"incremental": opts.Incremental,
	}).Info("Starting match pipeline")

	tournaments, err := p.store.LoadTournaments(tournamentsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load tournament table (run the tournament pipeline first): %w", err)
	}
	summary.TournamentsTotal = len(tournaments)

	// Resume from the existing raw table when present.
	existing, processed := p.loadExisting(outputPath)

	incremental := opts.Incremental
	var cutoff *time.Time
	if incremental {
		cutoff = p.resolveCutoff(opts, existing)
		if cutoff == nil {
			p.log.WithField("run_id", runID).Warn("No existing match dates found, falling back to full history mode")
			incremental = false
		}
	}
	if incremental {
		tournaments = filterByStartDate(tournaments, *cutoff)
		// Re-fetch everything inside the window.
		processed = make(map[string]bool)
		p.log.WithFields(logrus.Fields{
			"run_id":      runID,
			"cutoff":      cutoff.Format(cutoffDateLayout),
			"tournaments": len(tournaments),
		}).Info("Incremental mode: filtered tournament window")
	}

	all := existing
	for i := range tournaments {
		tournament := &tournaments[i]
		if tournament.Pagename == "" {
			summary.NoPagename++
			continue
		}
		if processed[tournament.Pagename] {
			summary.Resumed++
			continue
		}

		fetched, err := p.client.FetchMatches(ctx, tournament.Pagename)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch matches for %s: %w", tournament.Pagename, err)
		}
		summary.TournamentsRun++

		invalid := 0
		for j := range fetched {
			if validateMatch(&fetched[j]) {
				all = append(all, fetched[j])
				summary.NewMatches++
			} else {
				invalid++
			}
		}
		summary.Invalid += invalid
		p.events.LogTournamentProcessed(runID, tournament.Pagename, len(fetched)-invalid, invalid)

		// Checkpoint after every tournament that returned matches.
		if len(fetched) > 0 {
			if err := p.store.SaveMatches(outputPath, all); err != nil {
				return nil, fmt.Errorf("failed to write checkpoint: %w", err)
			}
		}
	}

	if len(all) == 0 {
		return nil, fmt.Errorf("no match data to process")
	}

	if err := p.store.SaveMatches(outputPath, all); err != nil {
		return nil, err
	}

	if p.archiver != nil {
		if err := p.archiver.UpsertMatches(ctx, all); err != nil {
			p.log.WithError(err).WithField("run_id", runID).Warn("Match archive upsert failed")
		}
	}

	summary.TotalMatches = len(all)
	summary.Elapsed = time.Since(started)
	metrics.LastIngestionTimestamp.Set(float64(time.Now().Unix()))
	p.events.LogIngestionSummary(runID, summary.TournamentsRun, summary.NewMatches, summary.Invalid, summary.Elapsed)
	return summary, nil
}

// loadExisting reads the raw table if present. A missing or unreadable
// file simply starts the run fresh.
func (p *MatchPipeline) loadExisting(outputPath string) ([]models.Match, map[string]bool) {
	existing, err := p.store.LoadMatches(outputPath)
	if err != nil {
		return nil, make(map[string]bool)
	}
	processed := processedSet(existing)
	p.log.WithFields(logrus.Fields{
		"matches":     len(existing),
		"tournaments": len(processed),
	}).Info("Resuming from existing match table")
	return existing, processed
}

// resolveCutoff determines the incremental cutoff date, or nil when it
// cannot be derived.
func (p *MatchPipeline) resolveCutoff(opts MatchRunOptions, existing []models.Match) *time.Time {
	if opts.FromDate != "" {
		parsed, err := time.Parse(cutoffDateLayout, opts.FromDate)
		if err != nil {
			p.log.WithField("from_date", opts.FromDate).Warn("Ignoring unparseable cutoff override")
		} else {
			return &parsed
		}
	}
	latest := mostRecentMatchDate(existing)
	if latest == nil {
		return nil
	}
	cutoff := latest.AddDate(0, 0, -p.bufferDays)
	return &cutoff
}

// filterByStartDate keeps tournaments starting on or after the cutoff.
// Tournaments without a parseable start date are dropped from the
// incremental window.
func filterByStartDate(tournaments []models.Tournament, cutoff time.Time) []models.Tournament {
	kept := make([]models.Tournament, 0, len(tournaments))
	for i := range tournaments {
		start := tournaments[i].StartDate
		if start != nil && !start.Before(cutoff) {
			kept = append(kept, tournaments[i])
		}
	}
	return kept
}
