package sqlite

import (
	"context"
	"strings"

	"github.com/ganot/playbook/internal/domain/league"
)

// SearchRepository implements league.SearchRepository over the FTS5 index
type SearchRepository struct {
	leagues *LeagueRepository
}

// NewSearchRepository creates a new SearchRepository
func NewSearchRepository(db *DB) *SearchRepository {
	return &SearchRepository{leagues: NewLeagueRepository(db)}
}

// Search performs a prefix full-text search over league name, organization
// and sport, best matches first
func (r *SearchRepository) Search(ctx context.Context, query string, limit int) ([]league.League, error) {
	match := ftsQuery(query)
	if match == "" {
		return []league.League{}, nil
	}

	q := `
		SELECT ` + leagueColumns + `
		FROM leagues_fts
		JOIN leagues l ON l.id = leagues_fts.rowid
		WHERE leagues_fts MATCH ?
		ORDER BY bm25(leagues_fts), l.name
	`
	args := []any{match}
	if limit > 0 {
		q += " LIMIT ?"
		args = append(args, limit)
	}

	return r.leagues.queryLeagues(ctx, q, args...)
}

// ftsQuery turns free text into an FTS5 query of quoted prefix terms so
// user input cannot inject FTS operators.
func ftsQuery(text string) string {
	var terms []string
	for _, tok := range strings.Fields(text) {
		tok = strings.ReplaceAll(tok, `"`, "")
		if tok == "" {
			continue
		}
		terms = append(terms, `"`+tok+`"*`)
	}
	return strings.Join(terms, " ")
}
