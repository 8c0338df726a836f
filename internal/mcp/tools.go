package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ganot/playbook/internal/browse"
	"github.com/ganot/playbook/internal/domain/age"
	"github.com/ganot/playbook/internal/domain/deadline"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

func registerTools(server *sdkmcp.Server, svc Services, rec ToolRecorder, logger *slog.Logger) {
	readOnly := &sdkmcp.ToolAnnotations{ReadOnlyHint: true}

	addTool(server, rec, logger, &sdkmcp.Tool{
		Name:        "list_sports",
		Description: "List the sports that have visible seasons",
		Annotations: readOnly,
	}, func(ctx context.Context, _ ListSportsParams) (any, error) {
		sports, err := svc.Seasons.Sports(ctx)
		if err != nil {
			return nil, err
		}
		return SportsResult{Sports: sports}, nil
	})

	addTool(server, rec, logger, &sdkmcp.Tool{
		Name:        "search_leagues",
		Description: "Search leagues by name, organization or sport (prefix match)",
		Annotations: readOnly,
	}, func(ctx context.Context, in SearchLeaguesParams) (any, error) {
		if in.Limit < 0 {
			return nil, fmt.Errorf("%w: limit must not be negative", errInvalidArgument)
		}
		leagues, err := svc.Leagues.Search(ctx, in.Query, in.Limit)
		if err != nil {
			return nil, err
		}
		return LeaguesResult{Leagues: leagues}, nil
	})

	addTool(server, rec, logger, &sdkmcp.Tool{
		Name:        "get_calendar_month",
		Description: "Get the calendar for a month: per-day milestone counts, covering seasons and bar rows",
		Annotations: readOnly,
	}, func(ctx context.Context, in CalendarMonthParams) (any, error) {
		return svc.Browse.Month(ctx, in.query(getProfileID(ctx)))
	})

	addTool(server, rec, logger, &sdkmcp.Tool{
		Name:        "get_day_events",
		Description: "List the seasons touching one day, registration closings first",
		Annotations: readOnly,
	}, func(ctx context.Context, in DayEventsParams) (any, error) {
		return svc.Browse.Day(ctx, in.query(getProfileID(ctx)), in.Day)
	})

	addTool(server, rec, logger, &sdkmcp.Tool{
		Name:        "get_deadlines",
		Description: "Registration deadlines: closing soon, upcoming and recently closed",
		Annotations: readOnly,
	}, func(ctx context.Context, in DeadlinesParams) (any, error) {
		view, err := svc.Browse.Deadlines(ctx, in.query(getProfileID(ctx)))
		if err != nil {
			return nil, err
		}
		return newDeadlinesResult(view), nil
	})

	addTool(server, rec, logger, &sdkmcp.Tool{
		Name:        "parse_age_group",
		Description: "Parse age group text such as 14U, 5-12 or K through 2nd into an age range",
		Annotations: readOnly,
	}, func(_ context.Context, in ParseAgeGroupParams) (any, error) {
		out := AgeGroupResult{Text: in.Text}
		if r, ok := age.ParseGroup(in.Text); ok {
			out.Parseable = true
			out.Range = &r
		}
		return out, nil
	})

	addTool(server, rec, logger, &sdkmcp.Tool{
		Name:        "match_age_group",
		Description: "Check whether age group text admits any of the given children's ages",
		Annotations: readOnly,
	}, func(_ context.Context, in MatchAgeGroupParams) (any, error) {
		for _, a := range in.Ages {
			if a < 0 {
				return nil, fmt.Errorf("%w: ages must not be negative", errInvalidArgument)
			}
		}
		out := AgeGroupResult{Text: in.Text, Ages: in.Ages}
		if r, ok := age.ParseGroup(in.Text); ok {
			out.Parseable = true
			out.Range = &r
		}
		matches := age.Matches(in.Text, in.Ages)
		out.Matches = &matches
		return out, nil
	})
}

// addTool registers a tool whose result is JSON text. Domain errors are
// returned as tool errors carrying an APIError payload.
func addTool[In any](server *sdkmcp.Server, rec ToolRecorder, logger *slog.Logger, tool *sdkmcp.Tool, fn func(context.Context, In) (any, error)) {
	sdkmcp.AddTool(server, tool, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in In) (*sdkmcp.CallToolResult, any, error) {
		out, err := fn(ctx, in)
		if rec != nil {
			rec.ToolCall(tool.Name, err)
		}
		if err != nil {
			apiErr := MapError(err)
			if apiErr.Code == "INTERNAL" {
				logger.Error("tool failed", "tool", tool.Name, "error", err)
			}
			return errorResult(apiErr), nil, nil
		}
		return jsonResult(out)
	})
}

func jsonResult(v any) (*sdkmcp.CallToolResult, any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, nil, fmt.Errorf("encode result: %w", err)
	}
	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: string(data)}},
	}, nil, nil
}

func errorResult(apiErr *APIError) *sdkmcp.CallToolResult {
	data, _ := json.Marshal(apiErr)
	return &sdkmcp.CallToolResult{
		IsError: true,
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: string(data)}},
	}
}

// DeadlineItem is a compact deadline with its display label.
type DeadlineItem struct {
	SeasonID      int64            `json:"season_id"`
	Season        string           `json:"season"`
	League        string           `json:"league,omitempty"`
	Sport         string           `json:"sport"`
	SignupEnd     string           `json:"signup_end"`
	DaysRemaining int              `json:"days_remaining"`
	Label         string           `json:"label"`
	Urgency       deadline.Urgency `json:"urgency"`
}

type DeadlinesResult struct {
	Today          string         `json:"today"`
	ClosingSoon    []DeadlineItem `json:"closing_soon"`
	Upcoming       []DeadlineItem `json:"upcoming"`
	RecentlyClosed []DeadlineItem `json:"recently_closed"`
}

func newDeadlinesResult(view *browse.DeadlineView) DeadlinesResult {
	return DeadlinesResult{
		Today:          view.Today.String(),
		ClosingSoon:    deadlineItems(view.ClosingSoon),
		Upcoming:       deadlineItems(view.Upcoming),
		RecentlyClosed: deadlineItems(view.RecentlyClosed),
	}
}

func deadlineItems(entries []deadline.Entry) []DeadlineItem {
	out := make([]DeadlineItem, 0, len(entries))
	for _, e := range entries {
		out = append(out, DeadlineItem{
			SeasonID:      e.Season.ID,
			Season:        e.Season.Name,
			League:        e.Season.LeagueName,
			Sport:         e.Season.Sport,
			SignupEnd:     e.SignupEnd.String(),
			DaysRemaining: e.DaysRemaining,
			Label:         e.Label(),
			Urgency:       e.Urgency,
		})
	}
	return out
}
