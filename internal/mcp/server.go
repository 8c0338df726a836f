package mcp

import (
	"context"
	"log/slog"

	"github.com/ganot/playbook/internal/browse"
	"github.com/ganot/playbook/internal/domain/league"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// SeasonService defines season operations needed by MCP.
type SeasonService interface {
	Sports(ctx context.Context) ([]string, error)
}

// LeagueService defines league operations needed by MCP.
type LeagueService interface {
	Search(ctx context.Context, query string, limit int) ([]league.League, error)
}

// BrowseService defines the calendar views needed by MCP.
type BrowseService interface {
	Month(ctx context.Context, q browse.Query) (*browse.MonthView, error)
	Day(ctx context.Context, q browse.Query, day int) (*browse.DayView, error)
	Deadlines(ctx context.Context, q browse.Query) (*browse.DeadlineView, error)
}

// ToolRecorder observes tool calls.
type ToolRecorder interface {
	ToolCall(tool string, err error)
}

// Services contains all domain services needed by MCP.
type Services struct {
	Seasons SeasonService
	Leagues LeagueService
	Browse  BrowseService
}

// Config contains server configuration.
type Config struct {
	Services Services
	Version  string
	Logger   *slog.Logger
	// Metrics is optional.
	Metrics ToolRecorder
}

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	version := cfg.Version
	if version == "" {
		version = "dev"
	}

	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "playbook",
		Version: version,
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       logger,
	})

	registerDocResources(server)

	// Each call wraps the previous handler, so the profile middleware runs
	// first and traffic logging sees the profile ID.
	server.AddReceivingMiddleware(trafficLoggingMiddleware(logger, "inbound"))
	server.AddReceivingMiddleware(profileMiddleware())
	server.AddSendingMiddleware(trafficLoggingMiddleware(logger, "outbound"))

	registerTools(server, cfg.Services, cfg.Metrics, logger)

	return server
}
