package mocks

import (
	"context"
	"time"

	"cloud.google.com/go/civil"
	"github.com/ganot/playbook/internal/domain/activity"
	"github.com/ganot/playbook/internal/domain/league"
	"github.com/ganot/playbook/internal/domain/preference"
	"github.com/ganot/playbook/internal/domain/season"
	"github.com/ganot/playbook/internal/domain/session"
	"github.com/stretchr/testify/mock"
)

// LeagueRepository is a mock for league.Repository.
type LeagueRepository struct {
	mock.Mock
}

func (m *LeagueRepository) Create(ctx context.Context, l *league.League) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

func (m *LeagueRepository) Get(ctx context.Context, id int64) (*league.League, error) {
	args := m.Called(ctx, id)
	if l, ok := args.Get(0).(*league.League); ok {
		return l, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *LeagueRepository) Update(ctx context.Context, l *league.League) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

func (m *LeagueRepository) List(ctx context.Context, opts league.ListOptions) ([]league.League, error) {
	args := m.Called(ctx, opts)
	if list, ok := args.Get(0).([]league.League); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// LeagueSearchRepository is a mock for league.SearchRepository.
type LeagueSearchRepository struct {
	mock.Mock
}

func (m *LeagueSearchRepository) Search(ctx context.Context, query string, limit int) ([]league.League, error) {
	args := m.Called(ctx, query, limit)
	if list, ok := args.Get(0).([]league.League); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// SeasonRepository is a mock for season.Repository.
type SeasonRepository struct {
	mock.Mock
}

func (m *SeasonRepository) Create(ctx context.Context, s *season.Season) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *SeasonRepository) Get(ctx context.Context, id int64) (*season.Season, error) {
	args := m.Called(ctx, id)
	if s, ok := args.Get(0).(*season.Season); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *SeasonRepository) Update(ctx context.Context, s *season.Season) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *SeasonRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *SeasonRepository) List(ctx context.Context, opts season.ListOptions) ([]season.Season, error) {
	args := m.Called(ctx, opts)
	if list, ok := args.Get(0).([]season.Season); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *SeasonRepository) Sports(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]string); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// PreferenceRepository is a mock for preference.Repository.
type PreferenceRepository struct {
	mock.Mock
}

func (m *PreferenceRepository) Create(ctx context.Context, p *preference.Profile) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *PreferenceRepository) Get(ctx context.Context, id string) (*preference.Profile, error) {
	args := m.Called(ctx, id)
	if p, ok := args.Get(0).(*preference.Profile); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *PreferenceRepository) SetHidden(ctx context.Context, id string, seasonIDs []int64, hidden bool) error {
	args := m.Called(ctx, id, seasonIDs, hidden)
	return args.Error(0)
}

func (m *PreferenceRepository) ReplaceBirthdates(ctx context.Context, id string, dates []civil.Date) error {
	args := m.Called(ctx, id, dates)
	return args.Error(0)
}

// SessionRepository is a mock for session.Repository.
type SessionRepository struct {
	mock.Mock
}

func (m *SessionRepository) Create(ctx context.Context, sess *session.Session) error {
	args := m.Called(ctx, sess)
	return args.Error(0)
}

func (m *SessionRepository) Get(ctx context.Context, tokenHash string) (*session.Session, error) {
	args := m.Called(ctx, tokenHash)
	if sess, ok := args.Get(0).(*session.Session); ok {
		return sess, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *SessionRepository) Delete(ctx context.Context, tokenHash string) error {
	args := m.Called(ctx, tokenHash)
	return args.Error(0)
}

func (m *SessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

// ActivityRepository is a mock for activity.Repository.
type ActivityRepository struct {
	mock.Mock
}

func (m *ActivityRepository) Log(ctx context.Context, entry *activity.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *ActivityRepository) List(ctx context.Context, opts activity.ListOptions) ([]activity.Entry, error) {
	args := m.Called(ctx, opts)
	if list, ok := args.Get(0).([]activity.Entry); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}
