// Package pipeline orchestrates the ingestion flows: fetching tournament
// and match records, structural validation, checkpointed persistence and
// deduplication of the raw match table.
package pipeline

import (
	"github.com/yourusername/esports-predictor/internal/metrics"
	"github.com/yourusername/esports-predictor/internal/models"
)

// validateMatch checks the structural minimum for a raw match record:
// an identifier and a parent tournament. Incomplete matches (missing
// winner, scores or date) still pass; completeness filtering belongs to
// the feature build, not ingestion.
func validateMatch(match *models.Match) bool {
	if match.MatchID == "" || match.TournamentPagename == "" {
		metrics.RecordValidationFailure("match")
		return false
	}
	return true
}

// validateTournament checks the structural minimum for a tournament
// record: a pagename, without which its matches cannot be queried.
func validateTournament(tournament *models.Tournament) bool {
	if tournament.Pagename == "" {
		metrics.RecordValidationFailure("tournament")
		return false
	}
	return true
}
