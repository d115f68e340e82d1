package database

import (
	"context"
	"fmt"

	"github.com/yourusername/esports-predictor/internal/config"
)

// archiveSchema holds the archive tables. Types mirror the CSV columns;
// match_id and pagename are the natural keys the upserts conflict on.
const archiveSchema = `
CREATE TABLE IF NOT EXISTS tournaments (
	tournament_id TEXT,
	name          TEXT,
	pagename      TEXT PRIMARY KEY,
	startdate     TIMESTAMPTZ,
	enddate       TIMESTAMPTZ,
	tier          TEXT,
	prizepool     NUMERIC,
	location      TEXT,
	type          TEXT,
	game          TEXT,
	updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS matches (
	match_id            TEXT PRIMARY KEY,
	tournament_pagename TEXT,
	date                TIMESTAMPTZ,
	bestof              INT,
	team1_id            TEXT,
	team1_name          TEXT,
	team1_score         INT,
	team2_id            TEXT,
	team2_name          TEXT,
	team2_score         INT,
	winner_id           INT,
	team1_win           BOOLEAN,
	updated_at          TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_matches_tournament ON matches (tournament_pagename);
CREATE INDEX IF NOT EXISTS idx_matches_date ON matches (date);
`

// Initialize creates a connection pool and ensures the archive schema
// exists.
func Initialize(ctx context.Context, cfg *config.Config) (*DB, error) {
	db, err := NewDB(ctx, &cfg.Database)
	if err != nil {
		return nil, err
	}

	if _, err := db.pool.Exec(ctx, archiveSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ensure archive schema: %w", err)
	}
	return db, nil
}
