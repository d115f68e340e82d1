package repository

import (
	"context"

	"github.com/yourusername/esports-predictor/internal/database"
	"github.com/yourusername/esports-predictor/internal/models"
)

// Archive bundles both repositories behind the pipeline's Archiver
// surface.
type Archive struct {
	Tournaments TournamentRepository
	Matches     MatchRepository
}

// NewArchive creates an Archive over one database connection.
func NewArchive(db *database.DB) *Archive {
	return &Archive{
		Tournaments: NewPostgresTournamentRepository(db),
		Matches:     NewPostgresMatchRepository(db),
	}
}

// UpsertTournaments mirrors tournament records into the archive.
func (a *Archive) UpsertTournaments(ctx context.Context, tournaments []models.Tournament) error {
	return a.Tournaments.UpsertBatch(ctx, tournaments)
}

// UpsertMatches mirrors match records into the archive.
func (a *Archive) UpsertMatches(ctx context.Context, matches []models.Match) error {
	return a.Matches.UpsertBatch(ctx, matches)
}
