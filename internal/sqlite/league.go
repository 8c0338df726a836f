package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/ganot/playbook/internal/domain/league"
	"github.com/ganot/playbook/internal/repository"
)

// LeagueRepository implements league.Repository for SQLite
type LeagueRepository struct {
	db *DB
}

// NewLeagueRepository creates a new LeagueRepository
func NewLeagueRepository(db *DB) *LeagueRepository {
	return &LeagueRepository{db: db}
}

const leagueColumns = `
	l.id, l.name, l.organization, l.sport, l.website, l.source, l.active,
	(SELECT COUNT(*) FROM seasons s WHERE s.league_id = l.id) AS season_count,
	l.created_at, l.updated_at
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLeague(row rowScanner) (*league.League, error) {
	var l league.League
	err := row.Scan(
		&l.ID,
		&l.Name,
		&l.Organization,
		&l.Sport,
		&l.Website,
		&l.Source,
		&l.Active,
		&l.SeasonCount,
		&l.CreatedAt,
		&l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// Create inserts a league and sets its ID
func (r *LeagueRepository) Create(ctx context.Context, l *league.League) error {
	query := `
		INSERT INTO leagues (name, organization, sport, website, source, active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		l.Name,
		l.Organization,
		l.Sport,
		l.Website,
		l.Source,
		l.Active,
		l.CreatedAt,
		l.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create league: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read league id: %w", err)
	}
	l.ID = id
	return nil
}

// Get retrieves a league by ID
func (r *LeagueRepository) Get(ctx context.Context, id int64) (*league.League, error) {
	query := `SELECT ` + leagueColumns + ` FROM leagues l WHERE l.id = ?`

	l, err := scanLeague(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get league: %w", err)
	}
	return l, nil
}

// Update overwrites a league's mutable fields
func (r *LeagueRepository) Update(ctx context.Context, l *league.League) error {
	query := `
		UPDATE leagues
		SET name = ?, organization = ?, sport = ?, website = ?, active = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		l.Name,
		l.Organization,
		l.Sport,
		l.Website,
		l.Active,
		l.UpdatedAt,
		l.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update league: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check league update: %w", err)
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// List returns leagues ordered by name
func (r *LeagueRepository) List(ctx context.Context, opts league.ListOptions) ([]league.League, error) {
	query := `SELECT ` + leagueColumns + ` FROM leagues l`

	args := []any{}
	conditions := []string{}
	if opts.Sport != "" {
		conditions = append(conditions, "l.sport = ?")
		args = append(args, opts.Sport)
	}
	if opts.ActiveOnly {
		conditions = append(conditions, "l.active = 1")
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY l.name COLLATE NOCASE, l.id"

	return r.queryLeagues(ctx, query, args...)
}

func (r *LeagueRepository) queryLeagues(ctx context.Context, query string, args ...any) ([]league.League, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list leagues: %w", err)
	}
	defer rows.Close()

	leagues := []league.League{}
	for rows.Next() {
		l, err := scanLeague(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan league: %w", err)
		}
		leagues = append(leagues, *l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating league rows: %w", err)
	}
	return leagues, nil
}
