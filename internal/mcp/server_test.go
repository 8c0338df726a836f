package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/ganot/playbook/internal/browse"
	"github.com/ganot/playbook/internal/domain/calendar"
	"github.com/ganot/playbook/internal/domain/deadline"
	"github.com/ganot/playbook/internal/domain/league"
	"github.com/ganot/playbook/internal/domain/preference"
	"github.com/ganot/playbook/internal/domain/season"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"
)

type seasonStub struct {
	sportsFn func(context.Context) ([]string, error)
}

func (s seasonStub) Sports(ctx context.Context) ([]string, error) {
	return s.sportsFn(ctx)
}

type leagueStub struct {
	searchFn func(context.Context, string, int) ([]league.League, error)
}

func (l leagueStub) Search(ctx context.Context, query string, limit int) ([]league.League, error) {
	return l.searchFn(ctx, query, limit)
}

type browseStub struct {
	monthFn     func(context.Context, browse.Query) (*browse.MonthView, error)
	dayFn       func(context.Context, browse.Query, int) (*browse.DayView, error)
	deadlinesFn func(context.Context, browse.Query) (*browse.DeadlineView, error)
}

func (b browseStub) Month(ctx context.Context, q browse.Query) (*browse.MonthView, error) {
	return b.monthFn(ctx, q)
}

func (b browseStub) Day(ctx context.Context, q browse.Query, day int) (*browse.DayView, error) {
	return b.dayFn(ctx, q, day)
}

func (b browseStub) Deadlines(ctx context.Context, q browse.Query) (*browse.DeadlineView, error) {
	return b.deadlinesFn(ctx, q)
}

type recorderStub struct {
	calls map[string][]error
}

func (r *recorderStub) ToolCall(tool string, err error) {
	r.calls[tool] = append(r.calls[tool], err)
}

func connect(t *testing.T, svc Services, rec ToolRecorder) *sdkmcp.ClientSession {
	t.Helper()
	ctx := context.Background()

	server := NewServer(Config{Services: svc, Version: "test", Metrics: rec})
	serverTransport, clientTransport := sdkmcp.NewInMemoryTransports()
	ss, err := server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { ss.Close() })

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test-client", Version: "v0"}, nil)
	cs, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { cs.Close() })
	return cs
}

func callTool(t *testing.T, cs *sdkmcp.ClientSession, name string, args map[string]any, out any) *sdkmcp.CallToolResult {
	t.Helper()
	res, err := cs.CallTool(context.Background(), &sdkmcp.CallToolParams{Name: name, Arguments: args})
	require.NoError(t, err)
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(*sdkmcp.TextContent)
	require.True(t, ok)
	if out != nil {
		require.NoError(t, json.Unmarshal([]byte(text.Text), out))
	}
	return res
}

func TestListTools(t *testing.T) {
	cs := connect(t, Services{}, nil)

	res, err := cs.ListTools(context.Background(), nil)
	require.NoError(t, err)

	var names []string
	for _, tool := range res.Tools {
		names = append(names, tool.Name)
		require.NotNil(t, tool.Annotations)
		require.True(t, tool.Annotations.ReadOnlyHint)
	}
	require.ElementsMatch(t, []string{
		"list_sports", "search_leagues", "get_calendar_month", "get_day_events",
		"get_deadlines", "parse_age_group", "match_age_group",
	}, names)
}

func TestListSportsAndSearch(t *testing.T) {
	rec := &recorderStub{calls: map[string][]error{}}
	cs := connect(t, Services{
		Seasons: seasonStub{sportsFn: func(context.Context) ([]string, error) {
			return []string{"Baseball", "Soccer"}, nil
		}},
		Leagues: leagueStub{searchFn: func(_ context.Context, query string, limit int) ([]league.League, error) {
			require.Equal(t, "lake", query)
			require.Equal(t, 5, limit)
			return []league.League{{ID: 1, Name: "Lakewood Little League", Sport: "Baseball"}}, nil
		}},
	}, rec)

	var sports SportsResult
	callTool(t, cs, "list_sports", map[string]any{}, &sports)
	require.Equal(t, []string{"Baseball", "Soccer"}, sports.Sports)

	var leagues LeaguesResult
	callTool(t, cs, "search_leagues", map[string]any{"query": "lake", "limit": 5}, &leagues)
	require.Len(t, leagues.Leagues, 1)
	require.Equal(t, "Lakewood Little League", leagues.Leagues[0].Name)

	require.Equal(t, []error{nil}, rec.calls["list_sports"])
	require.Equal(t, []error{nil}, rec.calls["search_leagues"])
}

func TestCalendarMonth(t *testing.T) {
	cs := connect(t, Services{
		Browse: browseStub{monthFn: func(_ context.Context, q browse.Query) (*browse.MonthView, error) {
			require.Equal(t, browse.Query{Sport: "Soccer", Year: 2026, Month: 3, Ages: []int{6, 9}}, q)
			return &browse.MonthView{
				Month:       "2026-03",
				DaysInMonth: 31,
				Today:       civil.Date{Year: 2026, Month: time.March, Day: 3},
				Days:        map[int]*calendar.DayInfo{5: {RegCloses: 1}},
			}, nil
		}},
	}, nil)

	var view browse.MonthView
	callTool(t, cs, "get_calendar_month", map[string]any{
		"year": 2026, "month": 3, "sport": "Soccer", "ages": []int{6, 9},
	}, &view)
	require.Equal(t, "2026-03", view.Month)
	require.Equal(t, 1, view.Days[5].RegCloses)
}

func TestDayEventsUsesProfileFromMeta(t *testing.T) {
	cs := connect(t, Services{
		Browse: browseStub{dayFn: func(ctx context.Context, q browse.Query, day int) (*browse.DayView, error) {
			require.Equal(t, "profile-1", q.ProfileID)
			require.Equal(t, 5, day)
			return &browse.DayView{
				Date:   civil.Date{Year: 2026, Month: time.March, Day: 5},
				Events: []calendar.DayEvent{{Season: season.Season{ID: 1}, RegCloses: true}},
			}, nil
		}},
	}, nil)

	res, err := cs.CallTool(context.Background(), &sdkmcp.CallToolParams{
		Meta:      sdkmcp.Meta{"profile_id": "profile-1"},
		Name:      "get_day_events",
		Arguments: map[string]any{"year": 2026, "month": 3, "day": 5},
	})
	require.NoError(t, err)
	require.False(t, res.IsError)

	var view browse.DayView
	require.NoError(t, json.Unmarshal([]byte(res.Content[0].(*sdkmcp.TextContent).Text), &view))
	require.Len(t, view.Events, 1)
	require.True(t, view.Events[0].RegCloses)
}

func TestDeadlines(t *testing.T) {
	today := civil.Date{Year: 2026, Month: time.March, Day: 3}
	cs := connect(t, Services{
		Browse: browseStub{deadlinesFn: func(context.Context, browse.Query) (*browse.DeadlineView, error) {
			entry := deadline.Entry{
				Season:        season.Season{ID: 4, Name: "Spring", Sport: "Soccer", LeagueName: "Northside"},
				SignupEnd:     civil.Date{Year: 2026, Month: time.March, Day: 4},
				DaysRemaining: 1,
				ClosingSoon:   true,
				Urgency:       deadline.UrgencyUrgent,
			}
			return &browse.DeadlineView{
				Today:          today,
				ClosingSoon:    []deadline.Entry{entry},
				Upcoming:       []deadline.Entry{entry},
				RecentlyClosed: []deadline.Entry{},
			}, nil
		}},
	}, nil)

	var out DeadlinesResult
	callTool(t, cs, "get_deadlines", map[string]any{}, &out)
	require.Equal(t, "2026-03-03", out.Today)
	require.Len(t, out.ClosingSoon, 1)
	require.Equal(t, "Closes tomorrow!", out.ClosingSoon[0].Label)
	require.Equal(t, "2026-03-04", out.ClosingSoon[0].SignupEnd)
	require.Empty(t, out.RecentlyClosed)
}

func TestAgeGroupTools(t *testing.T) {
	cs := connect(t, Services{}, nil)

	var parsed AgeGroupResult
	callTool(t, cs, "parse_age_group", map[string]any{"text": "1st-6th Grade"}, &parsed)
	require.True(t, parsed.Parseable)
	require.Equal(t, 6, parsed.Range.Min)
	require.Equal(t, 11, parsed.Range.Max)

	callTool(t, cs, "parse_age_group", map[string]any{"text": "All ages"}, &parsed)
	require.False(t, parsed.Parseable)

	var matched AgeGroupResult
	callTool(t, cs, "match_age_group", map[string]any{"text": "14U", "ages": []int{15}}, &matched)
	require.NotNil(t, matched.Matches)
	require.False(t, *matched.Matches)

	callTool(t, cs, "match_age_group", map[string]any{"text": "Adults", "ages": []int{15}}, &matched)
	require.True(t, *matched.Matches)
}

func TestToolErrors(t *testing.T) {
	rec := &recorderStub{calls: map[string][]error{}}
	cs := connect(t, Services{
		Browse: browseStub{
			monthFn: func(context.Context, browse.Query) (*browse.MonthView, error) {
				return nil, calendar.ErrInvalidMonth
			},
			deadlinesFn: func(context.Context, browse.Query) (*browse.DeadlineView, error) {
				return nil, preference.ErrProfileNotFound
			},
		},
		Seasons: seasonStub{sportsFn: func(context.Context) ([]string, error) {
			return nil, errors.New("database is locked")
		}},
	}, rec)

	var apiErr APIError
	res := callTool(t, cs, "get_calendar_month", map[string]any{"year": 2026, "month": 13}, &apiErr)
	require.True(t, res.IsError)
	require.Equal(t, "INVALID_MONTH", apiErr.Code)

	res = callTool(t, cs, "get_deadlines", map[string]any{"profile_id": "nope"}, &apiErr)
	require.True(t, res.IsError)
	require.Equal(t, "PROFILE_NOT_FOUND", apiErr.Code)

	res = callTool(t, cs, "list_sports", map[string]any{}, &apiErr)
	require.True(t, res.IsError)
	require.Equal(t, "INTERNAL", apiErr.Code)
	require.NotContains(t, apiErr.Message, "locked")

	res = callTool(t, cs, "match_age_group", map[string]any{"text": "14U", "ages": []int{-2}}, &apiErr)
	require.True(t, res.IsError)
	require.Equal(t, "INVALID_ARGUMENT", apiErr.Code)

	require.Len(t, rec.calls["get_calendar_month"], 1)
	require.Error(t, rec.calls["get_calendar_month"][0])
}

func TestDocResources(t *testing.T) {
	cs := connect(t, Services{}, nil)
	ctx := context.Background()

	list, err := cs.ListResources(ctx, nil)
	require.NoError(t, err)
	require.NotEmpty(t, list.Resources)

	res, err := cs.ReadResource(ctx, &sdkmcp.ReadResourceParams{URI: "playbook://docs/age-groups"})
	require.NoError(t, err)
	require.Len(t, res.Contents, 1)
	require.Equal(t, "text/markdown", res.Contents[0].MIMEType)
	require.Contains(t, res.Contents[0].Text, "# Age groups")
}

func TestMapError(t *testing.T) {
	require.Nil(t, MapError(nil))
	require.Equal(t, "INVALID_DAY", MapError(browse.ErrInvalidDay).Code)
	require.Equal(t, "INVALID_AGE", MapError(browse.ErrInvalidAge).Code)
	require.Equal(t, "INVALID_ARGUMENT", MapError(league.ErrInvalidInput).Code)
}
