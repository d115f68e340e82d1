package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/yourusername/esports-predictor/internal/database"
	"github.com/yourusername/esports-predictor/internal/models"
)

const matchColumns = `match_id, tournament_pagename, date, bestof,
	team1_id, team1_name, team1_score, team2_id, team2_name, team2_score,
	winner_id, team1_win`

const upsertMatchQuery = `
	INSERT INTO matches (` + matchColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	ON CONFLICT (match_id) DO UPDATE SET
		tournament_pagename = EXCLUDED.tournament_pagename,
		date = EXCLUDED.date,
		bestof = EXCLUDED.bestof,
		team1_id = EXCLUDED.team1_id,
		team1_name = EXCLUDED.team1_name,
		team1_score = EXCLUDED.team1_score,
		team2_id = EXCLUDED.team2_id,
		team2_name = EXCLUDED.team2_name,
		team2_score = EXCLUDED.team2_score,
		winner_id = EXCLUDED.winner_id,
		team1_win = EXCLUDED.team1_win,
		updated_at = now()
`

// PostgresMatchRepository implements MatchRepository for PostgreSQL
type PostgresMatchRepository struct {
	db *database.DB
}

// NewPostgresMatchRepository creates a new match repository
func NewPostgresMatchRepository(db *database.DB) MatchRepository {
	return &PostgresMatchRepository{db: db}
}

func matchArgs(match *models.Match) []interface{} {
	return []interface{}{
		match.MatchID, match.TournamentPagename, match.Date, match.BestOf,
		match.Team1ID, match.Team1Name, match.Team1Score,
		match.Team2ID, match.Team2Name, match.Team2Score,
		match.WinnerID, match.Team1Win,
	}
}

// Upsert inserts or updates a single match
func (r *PostgresMatchRepository) Upsert(ctx context.Context, match *models.Match) error {
	if _, err := r.db.GetPool().Exec(ctx, upsertMatchQuery, matchArgs(match)...); err != nil {
		return fmt.Errorf("failed to upsert match %s: %w", match.MatchID, err)
	}
	return nil
}

// UpsertBatch inserts or updates matches in one round trip per batch
func (r *PostgresMatchRepository) UpsertBatch(ctx context.Context, matches []models.Match) error {
	if len(matches) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for i := range matches {
		batch.Queue(upsertMatchQuery, matchArgs(&matches[i])...)
	}

	results := r.db.GetPool().SendBatch(ctx, batch)
	defer results.Close()

	for range matches {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to upsert match batch: %w", err)
		}
	}
	return nil
}

// GetByID retrieves a match by its match ID
func (r *PostgresMatchRepository) GetByID(ctx context.Context, matchID string) (*models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE match_id = $1`

	match := &models.Match{}
	err := r.db.GetPool().QueryRow(ctx, query, matchID).Scan(
		&match.MatchID, &match.TournamentPagename, &match.Date, &match.BestOf,
		&match.Team1ID, &match.Team1Name, &match.Team1Score,
		&match.Team2ID, &match.Team2Name, &match.Team2Score,
		&match.WinnerID, &match.Team1Win,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get match: %w", err)
	}
	return match, nil
}

// GetByTournament retrieves all matches under one tournament, oldest first
func (r *PostgresMatchRepository) GetByTournament(ctx context.Context, pagename string) ([]models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE tournament_pagename = $1 ORDER BY date ASC NULLS LAST`

	rows, err := r.db.GetPool().Query(ctx, query, pagename)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches: %w", err)
	}
	defer rows.Close()

	var matches []models.Match
	for rows.Next() {
		var match models.Match
		if err := rows.Scan(
			&match.MatchID, &match.TournamentPagename, &match.Date, &match.BestOf,
			&match.Team1ID, &match.Team1Name, &match.Team1Score,
			&match.Team2ID, &match.Team2Name, &match.Team2Score,
			&match.WinnerID, &match.Team1Win,
		); err != nil {
			return nil, fmt.Errorf("failed to scan match: %w", err)
		}
		matches = append(matches, match)
	}
	return matches, rows.Err()
}

// Count returns the number of archived matches
func (r *PostgresMatchRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetPool().QueryRow(ctx, `SELECT COUNT(*) FROM matches`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count matches: %w", err)
	}
	return count, nil
}
