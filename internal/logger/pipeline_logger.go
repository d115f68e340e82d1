package logger

import (
	"time"

	"github.com/sirupsen/logrus"
)

// PipelineLogger emits structured events for ingestion and feature-build runs
type PipelineLogger struct {
	logger *logrus.Logger
}

// NewPipelineLogger creates a logger for pipeline events
func NewPipelineLogger(log *logrus.Logger) *PipelineLogger {
	return &PipelineLogger{logger: log}
}

// LogTournamentProcessed records a completed tournament fetch
func (p *PipelineLogger) LogTournamentProcessed(runID, pagename string, matchCount, invalidCount int) {
	p.logger.WithFields(logrus.Fields{
		"component":     "ingestion",
		"run_id":        runID,
		"tournament":    pagename,
		"match_count":   matchCount,
		"invalid_count": invalidCount,
	}).Info("Tournament processed")
}

// LogIngestionSummary records the end-of-run ingestion totals
func (p *PipelineLogger) LogIngestionSummary(runID string, tournaments, matches, invalid int, elapsed time.Duration) {
	p.logger.WithFields(logrus.Fields{
		"component":   "ingestion",
		"run_id":      runID,
		"tournaments": tournaments,
		"matches":     matches,
		"invalid":     invalid,
		"elapsed":     elapsed.String(),
	}).Info("Ingestion run completed")
}

// LogFeatureBuildSummary records the end-of-run feature build totals
func (p *PipelineLogger) LogFeatureBuildSummary(runID string, totalMatches, rows, skipped, teams int) {
	p.logger.WithFields(logrus.Fields{
		"component":     "features",
		"run_id":        runID,
		"total_matches": totalMatches,
		"feature_rows":  rows,
		"skipped_gate":  skipped,
		"teams_tracked": teams,
	}).Info("Feature build completed")
}
