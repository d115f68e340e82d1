// Package repository implements Postgres persistence for the optional
// match archive.
package repository

import (
	"context"

	"github.com/yourusername/esports-predictor/internal/models"
)

// TournamentRepository stores tournament records.
type TournamentRepository interface {
	Upsert(ctx context.Context, tournament *models.Tournament) error
	UpsertBatch(ctx context.Context, tournaments []models.Tournament) error
	GetByPagename(ctx context.Context, pagename string) (*models.Tournament, error)
	Count(ctx context.Context) (int, error)
}

// MatchRepository stores match records.
type MatchRepository interface {
	Upsert(ctx context.Context, match *models.Match) error
	UpsertBatch(ctx context.Context, matches []models.Match) error
	GetByID(ctx context.Context, matchID string) (*models.Match, error)
	GetByTournament(ctx context.Context, pagename string) ([]models.Match, error)
	Count(ctx context.Context) (int, error)
}
