package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/ganot/playbook/internal/domain/season"
	"github.com/ganot/playbook/internal/repository"
)

// SeasonRepository implements season.Repository for SQLite
type SeasonRepository struct {
	db *DB
}

// NewSeasonRepository creates a new SeasonRepository
func NewSeasonRepository(db *DB) *SeasonRepository {
	return &SeasonRepository{db: db}
}

const seasonColumns = `
	s.id, s.league_id, s.name, s.sport,
	s.signup_start, s.signup_end, s.season_start, s.season_end,
	s.age_group, s.details_url, s.registration_url, s.visible,
	s.created_at, s.updated_at,
	l.name, l.organization, l.website
`

func scanSeason(row rowScanner) (*season.Season, error) {
	var s season.Season
	var signupStart, signupEnd, seasonStart, seasonEnd sql.NullString
	err := row.Scan(
		&s.ID,
		&s.LeagueID,
		&s.Name,
		&s.Sport,
		&signupStart,
		&signupEnd,
		&seasonStart,
		&seasonEnd,
		&s.AgeGroup,
		&s.DetailsURL,
		&s.RegistrationURL,
		&s.Visible,
		&s.CreatedAt,
		&s.UpdatedAt,
		&s.LeagueName,
		&s.Organization,
		&s.LeagueWebsite,
	)
	if err != nil {
		return nil, err
	}
	s.SignupStart = scanDate(signupStart)
	s.SignupEnd = scanDate(signupEnd)
	s.SeasonStart = scanDate(seasonStart)
	s.SeasonEnd = scanDate(seasonEnd)
	return &s, nil
}

// Create inserts a season and sets its ID
func (r *SeasonRepository) Create(ctx context.Context, s *season.Season) error {
	query := `
		INSERT INTO seasons (
			league_id, name, sport,
			signup_start, signup_end, season_start, season_end,
			age_group, details_url, registration_url, visible,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		s.LeagueID,
		s.Name,
		s.Sport,
		nullDate(s.SignupStart),
		nullDate(s.SignupEnd),
		nullDate(s.SeasonStart),
		nullDate(s.SeasonEnd),
		s.AgeGroup,
		s.DetailsURL,
		s.RegistrationURL,
		s.Visible,
		s.CreatedAt,
		s.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return repository.ErrForeignKeyViolation
		}
		return fmt.Errorf("failed to create season: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read season id: %w", err)
	}
	s.ID = id
	return nil
}

// Get retrieves a season joined with its league
func (r *SeasonRepository) Get(ctx context.Context, id int64) (*season.Season, error) {
	query := `
		SELECT ` + seasonColumns + `
		FROM seasons s
		JOIN leagues l ON l.id = s.league_id
		WHERE s.id = ?
	`

	s, err := scanSeason(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get season: %w", err)
	}
	return s, nil
}

// Update overwrites a season's mutable fields
func (r *SeasonRepository) Update(ctx context.Context, s *season.Season) error {
	query := `
		UPDATE seasons
		SET name = ?, sport = ?,
			signup_start = ?, signup_end = ?, season_start = ?, season_end = ?,
			age_group = ?, details_url = ?, registration_url = ?, visible = ?,
			updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		s.Name,
		s.Sport,
		nullDate(s.SignupStart),
		nullDate(s.SignupEnd),
		nullDate(s.SeasonStart),
		nullDate(s.SeasonEnd),
		s.AgeGroup,
		s.DetailsURL,
		s.RegistrationURL,
		s.Visible,
		s.UpdatedAt,
		s.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update season: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check season update: %w", err)
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes a season
func (r *SeasonRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM seasons WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete season: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check season delete: %w", err)
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// List returns seasons joined with their league. Unless IncludeHidden is
// set, only visible seasons of active leagues are returned.
func (r *SeasonRepository) List(ctx context.Context, opts season.ListOptions) ([]season.Season, error) {
	query := `
		SELECT ` + seasonColumns + `
		FROM seasons s
		JOIN leagues l ON l.id = s.league_id
	`

	args := []any{}
	conditions := []string{}

	if !opts.IncludeHidden {
		conditions = append(conditions, "s.visible = 1", "l.active = 1")
	}
	if opts.Sport != "" {
		conditions = append(conditions, "s.sport = ?")
		args = append(args, opts.Sport)
	}
	if opts.LeagueID > 0 {
		conditions = append(conditions, "s.league_id = ?")
		args = append(args, opts.LeagueID)
	}
	if opts.From != nil && opts.To != nil {
		// Signup window, play window, or the whole signup-to-season span
		// overlaps [From, To].
		conditions = append(conditions, `(
			(s.signup_start <= ? AND s.signup_end >= ?)
			OR (s.season_start <= ? AND s.season_end >= ?)
			OR (s.signup_start <= ? AND s.season_end >= ?)
		)`)
		from, to := opts.From.String(), opts.To.String()
		args = append(args, to, from, to, from, to, from)
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += `
		ORDER BY COALESCE(s.signup_start, s.season_start) IS NULL,
			COALESCE(s.signup_start, s.season_start),
			l.name, s.name, s.id
	`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list seasons: %w", err)
	}
	defer rows.Close()

	seasons := []season.Season{}
	for rows.Next() {
		s, err := scanSeason(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan season: %w", err)
		}
		seasons = append(seasons, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating season rows: %w", err)
	}
	return seasons, nil
}

// Sports returns the distinct sports of visible seasons, sorted
func (r *SeasonRepository) Sports(ctx context.Context) ([]string, error) {
	query := `
		SELECT DISTINCT s.sport
		FROM seasons s
		JOIN leagues l ON l.id = s.league_id
		WHERE s.visible = 1 AND l.active = 1
		ORDER BY s.sport
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list sports: %w", err)
	}
	defer rows.Close()

	sports := []string{}
	for rows.Next() {
		var sport string
		if err := rows.Scan(&sport); err != nil {
			return nil, fmt.Errorf("failed to scan sport: %w", err)
		}
		sports = append(sports, sport)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sports: %w", err)
	}
	return sports, nil
}
