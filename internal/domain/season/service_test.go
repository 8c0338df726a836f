package season_test

import (
	"context"
	"testing"

	"github.com/ganot/playbook/internal/domain/activity"
	"github.com/ganot/playbook/internal/domain/season"
	"github.com/ganot/playbook/internal/repository"
	"github.com/ganot/playbook/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSeasonService_Create(t *testing.T) {
	ctx := context.Background()

	seasonsRepo := &mocks.SeasonRepository{}
	activitiesRepo := &mocks.ActivityRepository{}

	seasonsRepo.On("Create", ctx, mock.AnythingOfType("*season.Season")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*season.Season).ID = 11
		}).
		Return(nil)
	activitiesRepo.On("Log", ctx, mock.MatchedBy(func(e *activity.Entry) bool {
		return e.Type == activity.TypeSeasonCreated && e.SeasonID != nil && *e.SeasonID == 11
	})).Return(nil)

	svc := season.NewService(seasonsRepo, activitiesRepo, nil)
	sea, err := svc.Create(ctx, season.CreateRequest{
		LeagueID:    3,
		Name:        " Spring 2026 ",
		Sport:       "Soccer",
		SignupStart: "2026-02-15",
		SignupEnd:   "2026-03-05",
		AgeGroup:    "U10",
	})
	require.NoError(t, err)
	require.Equal(t, int64(11), sea.ID)
	require.Equal(t, "Spring 2026", sea.Name)
	require.Equal(t, "2026-03-05", season.FormatDate(sea.SignupEnd))
	require.Nil(t, sea.SeasonStart)
	seasonsRepo.AssertExpectations(t)
	activitiesRepo.AssertExpectations(t)
}

func TestSeasonService_Create_Validation(t *testing.T) {
	ctx := context.Background()
	svc := season.NewService(&mocks.SeasonRepository{}, nil, nil)

	_, err := svc.Create(ctx, season.CreateRequest{LeagueID: 1, Sport: "Soccer"})
	require.ErrorIs(t, err, season.ErrInvalidInput)

	_, err = svc.Create(ctx, season.CreateRequest{LeagueID: 1, Name: "Fall", Sport: "Soccer", SignupEnd: "03/05/2026"})
	require.ErrorIs(t, err, season.ErrInvalidDate)

	_, err = svc.Create(ctx, season.CreateRequest{
		LeagueID:    1,
		Name:        "Fall",
		Sport:       "Soccer",
		SeasonStart: "2026-09-10",
		SeasonEnd:   "2026-09-01",
	})
	require.ErrorIs(t, err, season.ErrInvalidRange)
}

func TestSeasonService_Create_UnknownLeague(t *testing.T) {
	ctx := context.Background()
	seasonsRepo := &mocks.SeasonRepository{}
	seasonsRepo.On("Create", ctx, mock.Anything).Return(repository.ErrForeignKeyViolation)

	svc := season.NewService(seasonsRepo, nil, nil)
	_, err := svc.Create(ctx, season.CreateRequest{LeagueID: 99, Name: "Fall", Sport: "Soccer"})
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestSeasonService_Get_NotFound(t *testing.T) {
	ctx := context.Background()
	seasonsRepo := &mocks.SeasonRepository{}
	seasonsRepo.On("Get", ctx, int64(5)).Return(nil, repository.ErrNotFound)

	svc := season.NewService(seasonsRepo, nil, nil)
	_, err := svc.Get(ctx, 5)
	require.ErrorIs(t, err, season.ErrSeasonNotFound)
}

func TestSeasonService_Update_ClearsDate(t *testing.T) {
	ctx := context.Background()
	seasonsRepo := &mocks.SeasonRepository{}
	seasonsRepo.On("Get", ctx, int64(5)).Return(&season.Season{
		ID:          5,
		LeagueID:    1,
		Name:        "Fall",
		Sport:       "Soccer",
		SignupStart: season.ParseDate("2026-08-01"),
		SignupEnd:   season.ParseDate("2026-08-20"),
	}, nil)
	seasonsRepo.On("Update", ctx, mock.Anything).Return(nil)

	svc := season.NewService(seasonsRepo, nil, nil)
	empty := ""
	name := "Fall Classic"
	sea, err := svc.Update(ctx, 5, season.UpdateRequest{Name: &name, SignupEnd: &empty})
	require.NoError(t, err)
	require.Equal(t, "Fall Classic", sea.Name)
	require.Nil(t, sea.SignupEnd)
	require.NotNil(t, sea.SignupStart)
}

func TestSeasonService_Update_RejectsInvertedRange(t *testing.T) {
	ctx := context.Background()
	seasonsRepo := &mocks.SeasonRepository{}
	seasonsRepo.On("Get", ctx, int64(5)).Return(&season.Season{
		ID:          5,
		Name:        "Fall",
		Sport:       "Soccer",
		SignupStart: season.ParseDate("2026-08-01"),
	}, nil)

	svc := season.NewService(seasonsRepo, nil, nil)
	end := "2026-07-01"
	_, err := svc.Update(ctx, 5, season.UpdateRequest{SignupEnd: &end})
	require.ErrorIs(t, err, season.ErrInvalidRange)
	seasonsRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestSeasonService_SetVisible(t *testing.T) {
	ctx := context.Background()
	seasonsRepo := &mocks.SeasonRepository{}
	activitiesRepo := &mocks.ActivityRepository{}
	seasonsRepo.On("Get", ctx, int64(5)).Return(&season.Season{ID: 5, LeagueID: 2, Name: "Fall"}, nil)
	seasonsRepo.On("Update", ctx, mock.MatchedBy(func(s *season.Season) bool { return s.Visible })).Return(nil)
	activitiesRepo.On("Log", ctx, mock.MatchedBy(func(e *activity.Entry) bool {
		return e.Type == activity.TypeSeasonVisibility
	})).Return(nil)

	svc := season.NewService(seasonsRepo, activitiesRepo, nil)
	sea, err := svc.SetVisible(ctx, 5, true)
	require.NoError(t, err)
	require.True(t, sea.Visible)
	activitiesRepo.AssertExpectations(t)
}

func TestSeasonService_Delete(t *testing.T) {
	ctx := context.Background()
	seasonsRepo := &mocks.SeasonRepository{}
	seasonsRepo.On("Get", ctx, int64(5)).Return(&season.Season{ID: 5, Name: "Fall"}, nil)
	seasonsRepo.On("Delete", ctx, int64(5)).Return(nil)

	svc := season.NewService(seasonsRepo, nil, nil)
	require.NoError(t, svc.Delete(ctx, 5))
	seasonsRepo.AssertExpectations(t)
}
