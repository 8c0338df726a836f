// Package browse composes season retrieval, viewer preferences and the
// calendar, age and deadline computations into the views served to
// viewers over HTTP, MCP and the CLI.
package browse

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"cloud.google.com/go/civil"
	"github.com/ganot/playbook/internal/domain/age"
	"github.com/ganot/playbook/internal/domain/calendar"
	"github.com/ganot/playbook/internal/domain/deadline"
	"github.com/ganot/playbook/internal/domain/preference"
	"github.com/ganot/playbook/internal/domain/season"
)

var (
	// ErrInvalidDay is returned for a day outside the requested month.
	ErrInvalidDay = errors.New("invalid day")
	// ErrInvalidAge is returned for a negative child age.
	ErrInvalidAge = errors.New("invalid age")
)

// SeasonLister loads seasons for a filter.
type SeasonLister interface {
	List(ctx context.Context, opts season.ListOptions) ([]season.Season, error)
}

// ProfileGetter loads viewer preference profiles.
type ProfileGetter interface {
	Get(ctx context.Context, id string) (*preference.Profile, error)
}

// Query selects and filters the seasons a view is built from.
type Query struct {
	Sport string
	// Year and Month scope the query to one calendar month. Both zero
	// means no month scope.
	Year  int
	Month int
	// Ages filters by children's ages and wins over the profile's
	// birthdates when both are present.
	Ages          []int
	ProfileID     string
	IncludeHidden bool
}

func (q Query) hasMonth() bool {
	return q.Year != 0 || q.Month != 0
}

// Options configures a Service.
type Options struct {
	// Location is the timezone "today" is computed in. Nil means time.Local.
	Location *time.Location
	// RecentWindow limits how many days back closed deadlines are listed.
	RecentWindow int
}

// Service builds calendar, day and deadline views.
type Service struct {
	seasons  SeasonLister
	profiles ProfileGetter
	ranker   deadline.Ranker
	loc      *time.Location
	logger   *slog.Logger

	// Now is the clock; it is read once per call.
	Now func() time.Time
}

// NewService creates a browse service. profiles may be nil when viewer
// profiles are not available.
func NewService(seasons SeasonLister, profiles ProfileGetter, opts Options, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	return &Service{
		seasons:  seasons,
		profiles: profiles,
		ranker:   deadline.Ranker{RecentWindow: opts.RecentWindow},
		loc:      loc,
		logger:   logger,
		Now:      time.Now,
	}
}

// Today returns the current date in the configured timezone.
func (s *Service) Today() civil.Date {
	return civil.DateOf(s.Now().In(s.loc))
}

// MonthView is the calendar grid for one month.
type MonthView struct {
	Month          string                     `json:"month"`
	Year           int                        `json:"year"`
	MonthNumber    int                        `json:"month_number"`
	DaysInMonth    int                        `json:"days_in_month"`
	FirstWeekday   int                        `json:"first_weekday"`
	Prev           string                     `json:"prev"`
	Next           string                     `json:"next"`
	Today          civil.Date                 `json:"today"`
	IsCurrentMonth bool                       `json:"is_current_month"`
	Ages           []int                      `json:"ages"`
	Seasons        []season.Season            `json:"seasons"`
	Days           map[int]*calendar.DayInfo  `json:"days"`
	Bars           []calendar.BarSegment      `json:"bars"`
	Rows           int                        `json:"rows"`
}

// DayView lists what happens on one day.
type DayView struct {
	Date   civil.Date          `json:"date"`
	Info   *calendar.DayInfo   `json:"info"`
	Events []calendar.DayEvent `json:"events"`
}

// DeadlineView lists registration deadlines relative to today.
type DeadlineView struct {
	Today          civil.Date       `json:"today"`
	ClosingSoon    []deadline.Entry `json:"closing_soon"`
	Upcoming       []deadline.Entry `json:"upcoming"`
	RecentlyClosed []deadline.Entry `json:"recently_closed"`
}

// Month builds the calendar for the query's month, or the current month
// when the query has none.
func (s *Service) Month(ctx context.Context, q Query) (*MonthView, error) {
	today := s.Today()
	m, err := s.resolveMonth(q, today)
	if err != nil {
		return nil, err
	}

	seasons, ages, err := s.load(ctx, q, &m, today)
	if err != nil {
		return nil, err
	}

	bars := calendar.BarSegments(seasons, m)
	return &MonthView{
		Month:          m.String(),
		Year:           m.Year,
		MonthNumber:    int(m.Month),
		DaysInMonth:    m.Days(),
		FirstWeekday:   int(m.FirstWeekday()),
		Prev:           m.Prev().String(),
		Next:           m.Next().String(),
		Today:          today,
		IsCurrentMonth: m.Contains(today),
		Ages:           ages,
		Seasons:        seasons,
		Days:           calendar.ComputeDayInfo(seasons, m),
		Bars:           bars,
		Rows:           calendar.Rows(bars),
	}, nil
}

// Day builds the event list for one day of the query's month.
func (s *Service) Day(ctx context.Context, q Query, day int) (*DayView, error) {
	today := s.Today()
	m, err := s.resolveMonth(q, today)
	if err != nil {
		return nil, err
	}
	if day < 1 || day > m.Days() {
		return nil, fmt.Errorf("%w: %d not in %s", ErrInvalidDay, day, m)
	}

	seasons, _, err := s.load(ctx, q, &m, today)
	if err != nil {
		return nil, err
	}

	info := calendar.ComputeDayInfo(seasons, m)[day]
	events := calendar.EventsForDay(info, m, day)
	if events == nil {
		events = []calendar.DayEvent{}
	}
	return &DayView{
		Date:   m.Date(day),
		Info:   info,
		Events: events,
	}, nil
}

// Deadlines ranks registration deadlines over the query's month, or over
// every listed season when the query has no month.
func (s *Service) Deadlines(ctx context.Context, q Query) (*DeadlineView, error) {
	today := s.Today()
	var scope *calendar.Month
	if q.hasMonth() {
		m, err := calendar.NewMonth(q.Year, q.Month)
		if err != nil {
			return nil, err
		}
		scope = &m
	}

	seasons, _, err := s.load(ctx, q, scope, today)
	if err != nil {
		return nil, err
	}

	ranked := s.ranker.Rank(seasons, today)
	return &DeadlineView{
		Today:          today,
		ClosingSoon:    deadline.ClosingSoon(seasons, today),
		Upcoming:       ranked.Upcoming,
		RecentlyClosed: ranked.RecentlyClosed,
	}, nil
}

// Seasons returns the filtered seasons for the query.
func (s *Service) Seasons(ctx context.Context, q Query) ([]season.Season, error) {
	today := s.Today()
	var scope *calendar.Month
	if q.hasMonth() {
		m, err := calendar.NewMonth(q.Year, q.Month)
		if err != nil {
			return nil, err
		}
		scope = &m
	}
	seasons, _, err := s.load(ctx, q, scope, today)
	return seasons, err
}

func (s *Service) resolveMonth(q Query, today civil.Date) (calendar.Month, error) {
	if !q.hasMonth() {
		return calendar.MonthOf(today), nil
	}
	return calendar.NewMonth(q.Year, q.Month)
}

// load fetches seasons for the query and applies the viewer's hidden set
// and age filter. It returns the ages actually used for filtering.
func (s *Service) load(ctx context.Context, q Query, m *calendar.Month, today civil.Date) ([]season.Season, []int, error) {
	for _, a := range q.Ages {
		if a < 0 {
			return nil, nil, fmt.Errorf("%w: %d", ErrInvalidAge, a)
		}
	}

	var profile *preference.Profile
	if q.ProfileID != "" && s.profiles != nil {
		p, err := s.profiles.Get(ctx, q.ProfileID)
		if err != nil {
			return nil, nil, err
		}
		profile = p
	}

	opts := season.ListOptions{Sport: q.Sport, IncludeHidden: q.IncludeHidden}
	if m != nil {
		first, last := m.First(), m.Last()
		opts.From, opts.To = &first, &last
	}
	seasons, err := s.seasons.List(ctx, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("listing seasons: %w", err)
	}

	ages := q.Ages
	if profile != nil {
		seasons = profile.Visible(seasons)
		if len(ages) == 0 {
			ages = profile.ChildAges(today)
		}
	}
	if ages == nil {
		ages = []int{}
	}
	seasons = age.Filter(seasons, ages)

	s.logger.Debug("loaded seasons", "sport", q.Sport, "month", q.Month, "year", q.Year, "count", len(seasons), "ages", ages)
	return seasons, ages, nil
}
