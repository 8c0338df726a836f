package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/ganot/playbook/internal/domain/league"
	"github.com/ganot/playbook/internal/domain/season"
	"github.com/stretchr/testify/require"
)

func createLeague(t *testing.T, db *DB, name, sport string) *league.League {
	t.Helper()
	now := time.Now().UTC()
	l := &league.League{
		Name:         name,
		Organization: name + " Association",
		Sport:        sport,
		Website:      "https://example.org/" + sport,
		Source:       league.SourceManual,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, NewLeagueRepository(db).Create(context.Background(), l))
	return l
}

func createSeason(t *testing.T, db *DB, leagueID int64, name, sport string, signupStart, signupEnd, seasonStart, seasonEnd string) *season.Season {
	t.Helper()
	now := time.Now().UTC()
	s := &season.Season{
		LeagueID:    leagueID,
		Name:        name,
		Sport:       sport,
		SignupStart: season.ParseDate(signupStart),
		SignupEnd:   season.ParseDate(signupEnd),
		SeasonStart: season.ParseDate(seasonStart),
		SeasonEnd:   season.ParseDate(seasonEnd),
		Visible:     true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	require.NoError(t, NewSeasonRepository(db).Create(context.Background(), s))
	return s
}
