package league_test

import (
	"context"
	"testing"

	"github.com/ganot/playbook/internal/domain/activity"
	"github.com/ganot/playbook/internal/domain/league"
	"github.com/ganot/playbook/internal/repository"
	"github.com/ganot/playbook/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestLeagueService_Create(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.LeagueRepository{}
	activities := &mocks.ActivityRepository{}

	repo.On("Create", ctx, mock.AnythingOfType("*league.League")).Return(nil)
	activities.On("Log", ctx, mock.MatchedBy(func(e *activity.Entry) bool {
		return e.Type == activity.TypeLeagueCreated
	})).Return(nil)

	svc := league.NewService(repo, nil, activities, nil)
	l, err := svc.Create(ctx, league.CreateRequest{
		Name:    "Northside Youth Soccer",
		Sport:   "Soccer",
		Website: "https://example.org",
	})
	require.NoError(t, err)
	require.Equal(t, league.SourceManual, l.Source)
	require.True(t, l.Active)
	activities.AssertExpectations(t)
}

func TestLeagueService_Create_RequiresFields(t *testing.T) {
	svc := league.NewService(&mocks.LeagueRepository{}, nil, nil, nil)
	_, err := svc.Create(context.Background(), league.CreateRequest{Name: "X", Sport: "Soccer"})
	require.ErrorIs(t, err, league.ErrInvalidInput)
}

func TestLeagueService_Get_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.LeagueRepository{}
	repo.On("Get", ctx, int64(4)).Return(nil, repository.ErrNotFound)

	svc := league.NewService(repo, nil, nil, nil)
	_, err := svc.Get(ctx, 4)
	require.ErrorIs(t, err, league.ErrLeagueNotFound)
}

func TestLeagueService_Update(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.LeagueRepository{}
	repo.On("Get", ctx, int64(4)).Return(&league.League{ID: 4, Name: "Old", Sport: "Soccer", Website: "https://a", Active: true}, nil)
	repo.On("Update", ctx, mock.Anything).Return(nil)

	svc := league.NewService(repo, nil, nil, nil)
	name := "New"
	inactive := false
	l, err := svc.Update(ctx, 4, league.UpdateRequest{Name: &name, Active: &inactive})
	require.NoError(t, err)
	require.Equal(t, "New", l.Name)
	require.False(t, l.Active)

	blank := " "
	_, err = svc.Update(ctx, 4, league.UpdateRequest{Website: &blank})
	require.ErrorIs(t, err, league.ErrInvalidInput)
}

func TestLeagueService_Search(t *testing.T) {
	ctx := context.Background()
	search := &mocks.LeagueSearchRepository{}
	search.On("Search", ctx, "soccer", league.DefaultSearchLimit).Return([]league.League{{ID: 1, Name: "Northside"}}, nil)

	svc := league.NewService(&mocks.LeagueRepository{}, search, nil, nil)
	results, err := svc.Search(ctx, "soccer", 0)
	require.NoError(t, err)
	require.Len(t, results, 1)

	results, err = svc.Search(ctx, "  ", 0)
	require.NoError(t, err)
	require.Empty(t, results)
}
