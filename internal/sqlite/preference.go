package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"cloud.google.com/go/civil"
	"github.com/ganot/playbook/internal/domain/preference"
	"github.com/ganot/playbook/internal/repository"
)

// PreferenceRepository implements preference.Repository for SQLite
type PreferenceRepository struct {
	db *DB
}

// NewPreferenceRepository creates a new PreferenceRepository
func NewPreferenceRepository(db *DB) *PreferenceRepository {
	return &PreferenceRepository{db: db}
}

// Create inserts an empty profile
func (r *PreferenceRepository) Create(ctx context.Context, p *preference.Profile) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO preference_profiles (id, created_at, updated_at) VALUES (?, ?, ?)`,
		p.ID, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrConflict
		}
		return fmt.Errorf("failed to create profile: %w", err)
	}
	return nil
}

// Get loads a profile with its hidden seasons and birthdates
func (r *PreferenceRepository) Get(ctx context.Context, id string) (*preference.Profile, error) {
	p := preference.Profile{ID: id, HiddenSeasonIDs: []int64{}, Birthdates: []civil.Date{}}
	err := r.db.QueryRowContext(ctx,
		`SELECT created_at, updated_at FROM preference_profiles WHERE id = ?`, id,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT season_id FROM hidden_seasons WHERE profile_id = ? ORDER BY season_id`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load hidden seasons: %w", err)
	}
	for rows.Next() {
		var seasonID int64
		if err := rows.Scan(&seasonID); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan hidden season: %w", err)
		}
		p.HiddenSeasonIDs = append(p.HiddenSeasonIDs, seasonID)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating hidden seasons: %w", err)
	}

	rows, err = r.db.QueryContext(ctx,
		`SELECT birthdate FROM profile_children WHERE profile_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load birthdates: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var raw sql.NullString
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("failed to scan birthdate: %w", err)
		}
		if d := scanDate(raw); d != nil {
			p.Birthdates = append(p.Birthdates, *d)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating birthdates: %w", err)
	}

	return &p, nil
}

// SetHidden adds or removes hidden seasons for a profile
func (r *PreferenceRepository) SetHidden(ctx context.Context, id string, seasonIDs []int64, hidden bool) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := touchProfile(ctx, tx, id); err != nil {
		return err
	}

	stmt := `DELETE FROM hidden_seasons WHERE profile_id = ? AND season_id = ?`
	if hidden {
		stmt = `INSERT OR IGNORE INTO hidden_seasons (profile_id, season_id) VALUES (?, ?)`
	}
	for _, seasonID := range seasonIDs {
		if _, err := tx.ExecContext(ctx, stmt, id, seasonID); err != nil {
			return fmt.Errorf("failed to update hidden season: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit hidden seasons: %w", err)
	}
	return nil
}

// ReplaceBirthdates swaps the profile's children birthdates
func (r *PreferenceRepository) ReplaceBirthdates(ctx context.Context, id string, dates []civil.Date) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := touchProfile(ctx, tx, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM profile_children WHERE profile_id = ?`, id); err != nil {
		return fmt.Errorf("failed to clear birthdates: %w", err)
	}
	for i, d := range dates {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO profile_children (profile_id, position, birthdate) VALUES (?, ?, ?)`,
			id, i, d.String(),
		); err != nil {
			return fmt.Errorf("failed to insert birthdate: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit birthdates: %w", err)
	}
	return nil
}

func touchProfile(ctx context.Context, tx *sql.Tx, id string) error {
	result, err := tx.ExecContext(ctx,
		`UPDATE preference_profiles SET updated_at = ? WHERE id = ?`, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to touch profile: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check profile: %w", err)
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}
