package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/yourusername/esports-predictor/internal/database"
	"github.com/yourusername/esports-predictor/internal/models"
)

const tournamentColumns = `tournament_id, name, pagename, startdate, enddate,
	tier, prizepool, location, type, game`

const upsertTournamentQuery = `
	INSERT INTO tournaments (` + tournamentColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	ON CONFLICT (pagename) DO UPDATE SET
		tournament_id = EXCLUDED.tournament_id,
		name = EXCLUDED.name,
		startdate = EXCLUDED.startdate,
		enddate = EXCLUDED.enddate,
		tier = EXCLUDED.tier,
		prizepool = EXCLUDED.prizepool,
		location = EXCLUDED.location,
		type = EXCLUDED.type,
		game = EXCLUDED.game,
		updated_at = now()
`

// PostgresTournamentRepository implements TournamentRepository for PostgreSQL
type PostgresTournamentRepository struct {
	db *database.DB
}

// NewPostgresTournamentRepository creates a new tournament repository
func NewPostgresTournamentRepository(db *database.DB) TournamentRepository {
	return &PostgresTournamentRepository{db: db}
}

func tournamentArgs(t *models.Tournament) []interface{} {
	return []interface{}{
		t.TournamentID, t.Name, t.Pagename, t.StartDate, t.EndDate,
		t.Tier, t.Prizepool, t.Location, t.Type, t.Game,
	}
}

// Upsert inserts or updates a single tournament
func (r *PostgresTournamentRepository) Upsert(ctx context.Context, tournament *models.Tournament) error {
	if _, err := r.db.GetPool().Exec(ctx, upsertTournamentQuery, tournamentArgs(tournament)...); err != nil {
		return fmt.Errorf("failed to upsert tournament %s: %w", tournament.Pagename, err)
	}
	return nil
}

// UpsertBatch inserts or updates tournaments in one round trip per batch
func (r *PostgresTournamentRepository) UpsertBatch(ctx context.Context, tournaments []models.Tournament) error {
	if len(tournaments) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for i := range tournaments {
		batch.Queue(upsertTournamentQuery, tournamentArgs(&tournaments[i])...)
	}

	results := r.db.GetPool().SendBatch(ctx, batch)
	defer results.Close()

	for range tournaments {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to upsert tournament batch: %w", err)
		}
	}
	return nil
}

// GetByPagename retrieves a tournament by pagename
func (r *PostgresTournamentRepository) GetByPagename(ctx context.Context, pagename string) (*models.Tournament, error) {
	query := `SELECT ` + tournamentColumns + ` FROM tournaments WHERE pagename = $1`

	tournament := &models.Tournament{}
	err := r.db.GetPool().QueryRow(ctx, query, pagename).Scan(
		&tournament.TournamentID, &tournament.Name, &tournament.Pagename,
		&tournament.StartDate, &tournament.EndDate, &tournament.Tier,
		&tournament.Prizepool, &tournament.Location, &tournament.Type, &tournament.Game,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get tournament: %w", err)
	}
	return tournament, nil
}

// Count returns the number of archived tournaments
func (r *PostgresTournamentRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetPool().QueryRow(ctx, `SELECT COUNT(*) FROM tournaments`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count tournaments: %w", err)
	}
	return count, nil
}
