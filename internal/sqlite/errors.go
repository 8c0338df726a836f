package sqlite

import (
	"database/sql"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/ganot/playbook/internal/domain/season"
)

func isForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// nullDate converts an optional date to a nullable TEXT column value.
func nullDate(d *civil.Date) sql.NullString {
	if d == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: d.String(), Valid: true}
}

// scanDate converts a nullable TEXT column back to a date. Malformed
// values load as absent.
func scanDate(s sql.NullString) *civil.Date {
	if !s.Valid {
		return nil
	}
	return season.ParseDate(s.String)
}

func nullInt64(p *int64) sql.NullInt64 {
	if p == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *p, Valid: true}
}

func int64Ptr(n sql.NullInt64) *int64 {
	if !n.Valid {
		return nil
	}
	v := n.Int64
	return &v
}
