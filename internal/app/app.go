// Package app wires the SQLite repositories, domain services and the HTTP
// and MCP surfaces into one application.
package app

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/ganot/playbook/internal/browse"
	"github.com/ganot/playbook/internal/domain/activity"
	"github.com/ganot/playbook/internal/domain/league"
	"github.com/ganot/playbook/internal/domain/preference"
	"github.com/ganot/playbook/internal/domain/season"
	"github.com/ganot/playbook/internal/domain/session"
	"github.com/ganot/playbook/internal/mcp"
	"github.com/ganot/playbook/internal/metrics"
	"github.com/ganot/playbook/internal/sqlite"
	"github.com/ganot/playbook/internal/transport"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// MCPSessionTimeout closes idle streamable HTTP sessions.
const MCPSessionTimeout = 30 * time.Minute

// Options configures the application.
type Options struct {
	// Location is the timezone "today" is computed in.
	Location     *time.Location
	RecentWindow int

	AdminPassword     string
	AdminPasswordHash string
	SessionTTL        time.Duration

	Version string
	Logger  *slog.Logger
	// Metrics is optional.
	Metrics *metrics.Metrics
}

// App holds the wired services.
type App struct {
	DB          *sqlite.DB
	Leagues     *league.Service
	Seasons     *season.Service
	Preferences *preference.Service
	Sessions    *session.Service
	Activity    *activity.Service
	Browse      *browse.Service
	MCP         *sdkmcp.Server

	metrics *metrics.Metrics
	logger  *slog.Logger
}

// New builds every service on top of db. Migrations must already be applied.
func New(db *sqlite.DB, opts Options) *App {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	leagueRepo := sqlite.NewLeagueRepository(db)
	seasonRepo := sqlite.NewSeasonRepository(db)
	preferenceRepo := sqlite.NewPreferenceRepository(db)
	sessionRepo := sqlite.NewSessionRepository(db)
	activityRepo := sqlite.NewActivityRepository(db)
	searchRepo := sqlite.NewSearchRepository(db)

	a := &App{
		DB:          db,
		Leagues:     league.NewService(leagueRepo, searchRepo, activityRepo, logger),
		Seasons:     season.NewService(seasonRepo, activityRepo, logger),
		Preferences: preference.NewService(preferenceRepo, logger),
		Sessions: session.NewService(
			sessionRepo,
			session.NewVerifier(opts.AdminPasswordHash, opts.AdminPassword),
			activityRepo,
			opts.SessionTTL,
			logger,
		),
		Activity: activity.NewService(activityRepo, logger),
		metrics:  opts.Metrics,
		logger:   logger,
	}
	a.Browse = browse.NewService(a.Seasons, a.Preferences, browse.Options{
		Location:     opts.Location,
		RecentWindow: opts.RecentWindow,
	}, logger)

	mcpCfg := mcp.Config{
		Services: mcp.Services{
			Seasons: a.Seasons,
			Leagues: a.Leagues,
			Browse:  a.Browse,
		},
		Version: opts.Version,
		Logger:  logger,
	}
	if opts.Metrics != nil {
		mcpCfg.Metrics = opts.Metrics
	}
	a.MCP = mcp.NewServer(mcpCfg)

	return a
}

// HTTPOptions configures the HTTP surface.
type HTTPOptions struct {
	CookieSecure bool
	CSRFKey      []byte
	// MountMCP serves the MCP server over streamable HTTP at /mcp.
	MountMCP bool
}

// Handler returns the HTTP API router.
func (a *App) Handler(opts HTTPOptions) http.Handler {
	topts := transport.Options{
		CookieSecure: opts.CookieSecure,
		CSRFKey:      opts.CSRFKey,
		Logger:       a.logger,
	}
	if a.metrics != nil {
		topts.Metrics = a.metrics
	}
	if opts.MountMCP {
		topts.MCP = sdkmcp.NewStreamableHTTPHandler(
			func(*http.Request) *sdkmcp.Server { return a.MCP },
			&sdkmcp.StreamableHTTPOptions{SessionTimeout: MCPSessionTimeout},
		)
	}

	return transport.NewServer(transport.Services{
		Leagues:     a.Leagues,
		Seasons:     a.Seasons,
		Browse:      a.Browse,
		Preferences: a.Preferences,
		Sessions:    a.Sessions,
		Activity:    a.Activity,
	}, topts)
}
