package transport

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/ganot/playbook/internal/browse"
	"github.com/ganot/playbook/internal/docs"
	"github.com/ganot/playbook/internal/domain/activity"
	"github.com/ganot/playbook/internal/domain/age"
	"github.com/ganot/playbook/internal/domain/league"
	"github.com/ganot/playbook/internal/domain/preference"
	"github.com/ganot/playbook/internal/domain/season"
	"github.com/ganot/playbook/internal/domain/session"
	"github.com/ganot/playbook/internal/ics"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const leagueSearchLimit = 50

// LeagueService reads and edits leagues.
type LeagueService interface {
	Create(ctx context.Context, req league.CreateRequest) (*league.League, error)
	Get(ctx context.Context, id int64) (*league.League, error)
	Update(ctx context.Context, id int64, req league.UpdateRequest) (*league.League, error)
	List(ctx context.Context, opts league.ListOptions) ([]league.League, error)
	Search(ctx context.Context, query string, limit int) ([]league.League, error)
}

// SeasonService edits seasons and lists sports.
type SeasonService interface {
	Create(ctx context.Context, req season.CreateRequest) (*season.Season, error)
	Update(ctx context.Context, id int64, req season.UpdateRequest) (*season.Season, error)
	Delete(ctx context.Context, id int64) error
	SetVisible(ctx context.Context, id int64, visible bool) (*season.Season, error)
	Sports(ctx context.Context) ([]string, error)
}

// BrowseService builds the read-only calendar views.
type BrowseService interface {
	Today() civil.Date
	Month(ctx context.Context, q browse.Query) (*browse.MonthView, error)
	Day(ctx context.Context, q browse.Query, day int) (*browse.DayView, error)
	Deadlines(ctx context.Context, q browse.Query) (*browse.DeadlineView, error)
	Seasons(ctx context.Context, q browse.Query) ([]season.Season, error)
}

// PreferenceService manages viewer profiles.
type PreferenceService interface {
	Create(ctx context.Context) (*preference.Profile, error)
	Get(ctx context.Context, id string) (*preference.Profile, error)
	ToggleSeason(ctx context.Context, id string, seasonID int64) (bool, error)
	SetVisibility(ctx context.Context, id string, seasonIDs []int64, visible bool) (*preference.Profile, error)
	SetBirthdates(ctx context.Context, id string, birthdates []string, today civil.Date) (*preference.Profile, error)
}

// ActivityService reads the admin audit log.
type ActivityService interface {
	Recent(ctx context.Context, opts activity.ListOptions) ([]activity.Entry, error)
}

// Metrics instruments the HTTP server.
type Metrics interface {
	Handler() http.Handler
	Middleware(next http.Handler) http.Handler
	Login(err error)
}

// Services groups the domain services behind the API.
type Services struct {
	Leagues     LeagueService
	Seasons     SeasonService
	Browse      BrowseService
	Preferences PreferenceService
	Sessions    SessionService
	Activity    ActivityService
}

// Options configures optional server features.
type Options struct {
	// CookieSecure marks session and CSRF cookies Secure.
	CookieSecure bool
	// CSRFKey enables CSRF protection on auth and manage routes when set.
	CSRFKey []byte
	// Metrics, when set, instruments requests and serves /metrics.
	Metrics Metrics
	// MCP, when set, is mounted at /mcp.
	MCP    http.Handler
	Logger *slog.Logger
}

// Server wires HTTP handlers.
type Server struct {
	svc    Services
	opts   Options
	logger *slog.Logger
}

// NewServer creates an HTTP server router with middleware.
func NewServer(svc Services, opts Options) *chi.Mux {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Server{svc: svc, opts: opts, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(RequestLogger(logger))
	if opts.Metrics != nil {
		r.Use(opts.Metrics.Middleware)
	}

	r.Get("/health", s.handleHealth)
	if opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", opts.Metrics.Handler())
	}
	if opts.MCP != nil {
		r.Handle("/mcp", opts.MCP)
	}
	r.With(SecurityHeaders).Get("/docs/{slug}", s.handleDoc)

	r.Route("/api", func(r chi.Router) {
		r.Use(AdminMiddleware(svc.Sessions))

		r.Get("/sports", s.handleSports)
		r.Get("/leagues", s.handleLeagues)
		r.Get("/leagues/{id}", s.handleLeague)
		r.Get("/seasons", s.handleSeasons)
		r.Get("/calendar", s.handleMonth)
		r.Get("/calendar/day", s.handleDay)
		r.Get("/calendar.ics", s.handleICS)
		r.Get("/deadlines", s.handleDeadlines)
		r.Get("/age-groups/parse", s.handleParseAgeGroup)
		r.Get("/age-groups/match", s.handleMatchAgeGroup)

		r.Route("/preferences", func(r chi.Router) {
			r.Post("/", s.handleCreateProfile)
			r.Get("/{id}", s.handleGetProfile)
			r.Post("/{id}/seasons/{seasonID}/toggle", s.handleToggleSeason)
			r.Put("/{id}/visibility", s.handleProfileVisibility)
			r.Put("/{id}/birthdates", s.handleBirthdates)
		})

		r.Group(func(r chi.Router) {
			if len(opts.CSRFKey) > 0 {
				r.Use(CSRF(opts.CSRFKey, opts.CookieSecure))
			}

			r.Route("/auth", func(r chi.Router) {
				r.Get("/csrf", s.handleCSRFToken)
				r.Post("/login", s.handleLogin)
				r.Post("/logout", s.handleLogout)
				r.Get("/check", s.handleCheck)
			})

			r.Route("/manage", func(r chi.Router) {
				r.Use(RequireAdmin)
				r.Get("/leagues", s.handleManageLeagues)
				r.Post("/leagues", s.handleCreateLeague)
				r.Put("/leagues/{id}", s.handleUpdateLeague)
				r.Post("/seasons", s.handleCreateSeason)
				r.Put("/seasons/{id}", s.handleUpdateSeason)
				r.Delete("/seasons/{id}", s.handleDeleteSeason)
				r.Put("/seasons/{id}/visibility", s.handleSeasonVisibility)
				r.Get("/activity", s.handleActivity)
			})
		})
	})

	return r
}

// fail writes err as a JSON error, hiding internal details.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, public := statusFor(err)
	if !public {
		s.logger.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		writeError(w, status, "internal error")
		return
	}
	writeError(w, status, err.Error())
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleSports(w http.ResponseWriter, r *http.Request) {
	sports, err := s.svc.Seasons.Sports(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sports)
}

func (s *Server) handleLeagues(w http.ResponseWriter, r *http.Request) {
	sport := strings.TrimSpace(r.URL.Query().Get("sport"))
	q := strings.TrimSpace(r.URL.Query().Get("q"))

	if q == "" {
		leagues, err := s.svc.Leagues.List(r.Context(), league.ListOptions{Sport: sport, ActiveOnly: true})
		if err != nil {
			s.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, leagues)
		return
	}

	found, err := s.svc.Leagues.Search(r.Context(), q, leagueSearchLimit)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	leagues := make([]league.League, 0, len(found))
	for _, l := range found {
		if !l.Active || (sport != "" && !strings.EqualFold(l.Sport, sport)) {
			continue
		}
		leagues = append(leagues, l)
	}
	writeJSON(w, http.StatusOK, leagues)
}

func (s *Server) handleLeague(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	l, err := s.svc.Leagues.Get(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, l)
}

func (s *Server) handleSeasons(w http.ResponseWriter, r *http.Request) {
	q, err := browseQuery(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	seasons, err := s.svc.Browse.Seasons(r.Context(), q)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, seasons)
}

func (s *Server) handleMonth(w http.ResponseWriter, r *http.Request) {
	q, err := browseQuery(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	view, err := s.svc.Browse.Month(r.Context(), q)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleDay(w http.ResponseWriter, r *http.Request) {
	q, err := browseQuery(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	day, err := intParam(r.URL.Query().Get("day"), "day")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	view, err := s.svc.Browse.Day(r.Context(), q, day)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleDeadlines(w http.ResponseWriter, r *http.Request) {
	q, err := browseQuery(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	view, err := s.svc.Browse.Deadlines(r.Context(), q)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleICS(w http.ResponseWriter, r *http.Request) {
	q, err := browseQuery(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	seasons, err := s.svc.Browse.Seasons(r.Context(), q)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	name := "Youth sports seasons"
	if q.Sport != "" {
		name = q.Sport + " seasons"
	}
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="playbook.ics"`)
	if err := ics.Export(w, seasons, ics.Options{Name: name}); err != nil {
		s.logger.Error("failed to export calendar", "error", err)
	}
}

type ageGroupResult struct {
	Text      string     `json:"text"`
	Parseable bool       `json:"parseable"`
	Range     *age.Range `json:"range,omitempty"`
	Ages      []int      `json:"ages,omitempty"`
	Matches   *bool      `json:"matches,omitempty"`
}

func parseAgeGroup(text string) ageGroupResult {
	res := ageGroupResult{Text: text}
	if rng, ok := age.ParseGroup(text); ok {
		res.Parseable = true
		res.Range = &rng
	}
	return res
}

func (s *Server) handleParseAgeGroup(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, parseAgeGroup(r.URL.Query().Get("text")))
}

func (s *Server) handleMatchAgeGroup(w http.ResponseWriter, r *http.Request) {
	ages, err := agesParam(r.URL.Query().Get("ages"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	text := r.URL.Query().Get("text")
	res := parseAgeGroup(text)
	matches := age.Matches(text, ages)
	res.Ages = ages
	res.Matches = &matches
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleCreateProfile(w http.ResponseWriter, r *http.Request) {
	p, err := s.svc.Preferences.Create(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	p, err := s.svc.Preferences.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleToggleSeason(w http.ResponseWriter, r *http.Request) {
	seasonID, err := idParam(r, "seasonID")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	visible, err := s.svc.Preferences.ToggleSeason(r.Context(), chi.URLParam(r, "id"), seasonID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"season_id": seasonID, "visible": visible})
}

type visibilityRequest struct {
	SeasonIDs []int64 `json:"season_ids"`
	Visible   bool    `json:"visible"`
}

func (s *Server) handleProfileVisibility(w http.ResponseWriter, r *http.Request) {
	var req visibilityRequest
	if err := decodeJSON(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	p, err := s.svc.Preferences.SetVisibility(r.Context(), chi.URLParam(r, "id"), req.SeasonIDs, req.Visible)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

type birthdatesRequest struct {
	Birthdates []string `json:"birthdates"`
}

func (s *Server) handleBirthdates(w http.ResponseWriter, r *http.Request) {
	var req birthdatesRequest
	if err := decodeJSON(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	p, err := s.svc.Preferences.SetBirthdates(r.Context(), chi.URLParam(r, "id"), req.Birthdates, s.svc.Browse.Today())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

var docTemplate = template.Must(template.New("doc").Parse(`<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}} · Playbook</title>
<meta name="description" content="{{.Description}}">
</head>
<body>
<main>
{{.Body}}
</main>
</body>
</html>
`))

func (s *Server) handleDoc(w http.ResponseWriter, r *http.Request) {
	page, err := docs.Get(chi.URLParam(r, "slug"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	body, err := page.HTML()
	if err != nil {
		s.fail(w, r, fmt.Errorf("rendering %s: %w", page.Slug, err))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err = docTemplate.Execute(w, map[string]any{
		"Title":       page.Title,
		"Description": page.Description,
		"Body":        template.HTML(body),
	})
	if err != nil {
		s.logger.Error("failed to render doc page", "slug", page.Slug, "error", err)
	}
}

type loginRequest struct {
	Password string `json:"password"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	login, err := s.svc.Sessions.Login(r.Context(), req.Password)
	if s.opts.Metrics != nil {
		s.opts.Metrics.Login(err)
	}
	if err != nil {
		s.fail(w, r, err)
		return
	}
	setSessionCookie(w, login.Token, s.svc.Sessions.TTL(), s.opts.CookieSecure)
	writeJSON(w, http.StatusOK, map[string]any{"authenticated": true, "expires_at": login.ExpiresAt})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if token := sessionToken(r); token != "" {
		err := s.svc.Sessions.Logout(r.Context(), token)
		if err != nil && !errors.Is(err, session.ErrSessionNotFound) {
			s.fail(w, r, err)
			return
		}
	}
	clearSessionCookie(w, s.opts.CookieSecure)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	sess, ok := AdminFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusOK, map[string]any{"authenticated": false})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"authenticated": true, "expires_at": sess.ExpiresAt})
}

func (s *Server) handleManageLeagues(w http.ResponseWriter, r *http.Request) {
	leagues, err := s.svc.Leagues.List(r.Context(), league.ListOptions{
		Sport: strings.TrimSpace(r.URL.Query().Get("sport")),
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, leagues)
}

func (s *Server) handleCreateLeague(w http.ResponseWriter, r *http.Request) {
	var req league.CreateRequest
	if err := decodeJSON(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	if req.Source == "" {
		req.Source = league.SourceManual
	}
	l, err := s.svc.Leagues.Create(r.Context(), req)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, l)
}

func (s *Server) handleUpdateLeague(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	var req league.UpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	l, err := s.svc.Leagues.Update(r.Context(), id, req)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, l)
}

func (s *Server) handleCreateSeason(w http.ResponseWriter, r *http.Request) {
	var req season.CreateRequest
	if err := decodeJSON(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	sea, err := s.svc.Seasons.Create(r.Context(), req)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, sea)
}

func (s *Server) handleUpdateSeason(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	var req season.UpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	sea, err := s.svc.Seasons.Update(r.Context(), id, req)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sea)
}

func (s *Server) handleDeleteSeason(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if err := s.svc.Seasons.Delete(r.Context(), id); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type seasonVisibilityRequest struct {
	Visible *bool `json:"visible"`
}

func (s *Server) handleSeasonVisibility(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	var req seasonVisibilityRequest
	if err := decodeJSON(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	if req.Visible == nil {
		s.fail(w, r, fmt.Errorf("%w: visible is required", ErrBadRequest))
		return
	}
	sea, err := s.svc.Seasons.SetVisible(r.Context(), id, *req.Visible)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sea)
}

func (s *Server) handleActivity(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()
	leagueID, err := optionalID(values.Get("league_id"), "league_id")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	seasonID, err := optionalID(values.Get("season_id"), "season_id")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	limit, err := intParam(values.Get("limit"), "limit")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	offset, err := intParam(values.Get("offset"), "offset")
	if err != nil {
		s.fail(w, r, err)
		return
	}

	opts := activity.ListOptions{
		LeagueID: leagueID,
		SeasonID: seasonID,
		Limit:    limit,
		Offset:   offset,
	}
	if typ := strings.TrimSpace(values.Get("type")); typ != "" {
		t := activity.Type(typ)
		opts.Type = &t
	}

	entries, err := s.svc.Activity.Recent(r.Context(), opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}
