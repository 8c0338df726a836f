package league

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ganot/playbook/internal/domain/activity"
	"github.com/ganot/playbook/internal/repository"
)

// DefaultSearchLimit caps search results when the caller passes no limit.
const DefaultSearchLimit = 20

// Service handles league operations.
type Service struct {
	repo       Repository
	search     SearchRepository
	activities ActivityRepository
	logger     *slog.Logger
}

// NewService creates a new league service.
func NewService(repo Repository, search SearchRepository, activities ActivityRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{repo: repo, search: search, activities: activities, logger: logger}
}

// CreateRequest defines league creation inputs.
type CreateRequest struct {
	Name         string `json:"name"`
	Organization string `json:"organization"`
	Sport        string `json:"sport"`
	Website      string `json:"website"`
	Source       string `json:"source"`
}

// UpdateRequest defines a partial league update.
type UpdateRequest struct {
	Name         *string `json:"name"`
	Organization *string `json:"organization"`
	Sport        *string `json:"sport"`
	Website      *string `json:"website"`
	Active       *bool   `json:"active"`
}

// Create creates a new active league.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*League, error) {
	name := strings.TrimSpace(req.Name)
	sport := strings.TrimSpace(req.Sport)
	website := strings.TrimSpace(req.Website)
	if name == "" || sport == "" || website == "" {
		return nil, ErrInvalidInput
	}
	source := strings.TrimSpace(req.Source)
	if source == "" {
		source = SourceManual
	}

	now := time.Now().UTC()
	l := &League{
		Name:         name,
		Organization: strings.TrimSpace(req.Organization),
		Sport:        sport,
		Website:      website,
		Source:       source,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, l); err != nil {
		return nil, fmt.Errorf("creating league: %w", err)
	}

	s.logActivity(ctx, activity.TypeLeagueCreated, l, fmt.Sprintf("created league %q", l.Name))
	return l, nil
}

// Get fetches a league by ID.
func (s *Service) Get(ctx context.Context, id int64) (*League, error) {
	l, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrLeagueNotFound
		}
		return nil, fmt.Errorf("getting league: %w", err)
	}
	return l, nil
}

// Update applies a partial update to a league.
func (s *Service) Update(ctx context.Context, id int64, req UpdateRequest) (*League, error) {
	l, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	for _, f := range []struct {
		in  *string
		out *string
	}{
		{req.Name, &l.Name},
		{req.Sport, &l.Sport},
		{req.Website, &l.Website},
	} {
		if f.in == nil {
			continue
		}
		v := strings.TrimSpace(*f.in)
		if v == "" {
			return nil, ErrInvalidInput
		}
		*f.out = v
	}
	if req.Organization != nil {
		l.Organization = strings.TrimSpace(*req.Organization)
	}
	if req.Active != nil {
		l.Active = *req.Active
	}
	l.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, l); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrLeagueNotFound
		}
		return nil, fmt.Errorf("updating league: %w", err)
	}

	s.logActivity(ctx, activity.TypeLeagueUpdated, l, fmt.Sprintf("updated league %q", l.Name))
	return l, nil
}

// List lists leagues ordered by name.
func (s *Service) List(ctx context.Context, opts ListOptions) ([]League, error) {
	leagues, err := s.repo.List(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("listing leagues: %w", err)
	}
	return leagues, nil
}

// Search runs a full-text query over league name, organization and sport.
// A blank query returns no results.
func (s *Service) Search(ctx context.Context, query string, limit int) ([]League, error) {
	if strings.TrimSpace(query) == "" {
		return []League{}, nil
	}
	if s.search == nil {
		return nil, errors.New("league search not configured")
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	leagues, err := s.search.Search(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("searching leagues: %w", err)
	}
	return leagues, nil
}

func (s *Service) logActivity(ctx context.Context, typ activity.Type, l *League, summary string) {
	if s.activities == nil {
		return
	}
	leagueID := l.ID
	if err := s.activities.Log(ctx, &activity.Entry{Type: typ, Summary: summary, LeagueID: &leagueID}); err != nil {
		s.logger.WarnContext(ctx, "failed to log league activity", "type", typ, "league_id", l.ID, "error", err)
	}
}
