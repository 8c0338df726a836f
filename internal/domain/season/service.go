package season

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/ganot/playbook/internal/domain/activity"
	"github.com/ganot/playbook/internal/repository"
)

// Service handles season business logic.
type Service struct {
	seasons    Repository
	activities ActivityRepository
	logger     *slog.Logger
}

// NewService creates a new season service.
func NewService(seasons Repository, activities ActivityRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{seasons: seasons, activities: activities, logger: logger}
}

// CreateRequest describes a season creation request. Dates are YYYY-MM-DD
// strings; empty means absent.
type CreateRequest struct {
	LeagueID        int64  `json:"league_id"`
	Name            string `json:"name"`
	Sport           string `json:"sport"`
	SignupStart     string `json:"signup_start"`
	SignupEnd       string `json:"signup_end"`
	SeasonStart     string `json:"season_start"`
	SeasonEnd       string `json:"season_end"`
	AgeGroup        string `json:"age_group"`
	DetailsURL      string `json:"details_url"`
	RegistrationURL string `json:"registration_url"`
	// Visible defaults to true when omitted.
	Visible         *bool  `json:"visible"`
}

// UpdateRequest describes a partial season update. A nil field is left
// unchanged; an empty date string clears the date.
type UpdateRequest struct {
	Name            *string `json:"name"`
	Sport           *string `json:"sport"`
	SignupStart     *string `json:"signup_start"`
	SignupEnd       *string `json:"signup_end"`
	SeasonStart     *string `json:"season_start"`
	SeasonEnd       *string `json:"season_end"`
	AgeGroup        *string `json:"age_group"`
	DetailsURL      *string `json:"details_url"`
	RegistrationURL *string `json:"registration_url"`
	Visible         *bool   `json:"visible"`
}

// Create validates and stores a new season.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Season, error) {
	if err := ValidateCreateInput(req); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	sea := &Season{
		LeagueID:        req.LeagueID,
		Name:            strings.TrimSpace(req.Name),
		Sport:           strings.TrimSpace(req.Sport),
		AgeGroup:        strings.TrimSpace(req.AgeGroup),
		DetailsURL:      strings.TrimSpace(req.DetailsURL),
		RegistrationURL: strings.TrimSpace(req.RegistrationURL),
		Visible:         req.Visible == nil || *req.Visible,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := applyDates(sea, &req.SignupStart, &req.SignupEnd, &req.SeasonStart, &req.SeasonEnd); err != nil {
		return nil, err
	}

	if err := s.seasons.Create(ctx, sea); err != nil {
		if errors.Is(err, repository.ErrForeignKeyViolation) {
			return nil, fmt.Errorf("creating season: league %d: %w", req.LeagueID, repository.ErrNotFound)
		}
		return nil, fmt.Errorf("creating season: %w", err)
	}

	s.logActivity(ctx, activity.TypeSeasonCreated, sea, fmt.Sprintf("created season %q", sea.Name))
	return sea, nil
}

// Get retrieves a season by ID.
func (s *Service) Get(ctx context.Context, id int64) (*Season, error) {
	sea, err := s.seasons.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSeasonNotFound
		}
		return nil, fmt.Errorf("getting season: %w", err)
	}
	return sea, nil
}

// Update applies a partial update to a season.
func (s *Service) Update(ctx context.Context, id int64, req UpdateRequest) (*Season, error) {
	sea, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrInvalidInput
		}
		sea.Name = strings.TrimSpace(*req.Name)
	}
	if req.Sport != nil {
		if strings.TrimSpace(*req.Sport) == "" {
			return nil, ErrInvalidInput
		}
		sea.Sport = strings.TrimSpace(*req.Sport)
	}
	if req.AgeGroup != nil {
		sea.AgeGroup = strings.TrimSpace(*req.AgeGroup)
	}
	if req.DetailsURL != nil {
		sea.DetailsURL = strings.TrimSpace(*req.DetailsURL)
	}
	if req.RegistrationURL != nil {
		sea.RegistrationURL = strings.TrimSpace(*req.RegistrationURL)
	}
	if req.Visible != nil {
		sea.Visible = *req.Visible
	}
	if err := applyDates(sea, req.SignupStart, req.SignupEnd, req.SeasonStart, req.SeasonEnd); err != nil {
		return nil, err
	}
	sea.UpdatedAt = time.Now().UTC()

	if err := s.seasons.Update(ctx, sea); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSeasonNotFound
		}
		return nil, fmt.Errorf("updating season: %w", err)
	}

	s.logActivity(ctx, activity.TypeSeasonUpdated, sea, fmt.Sprintf("updated season %q", sea.Name))
	return sea, nil
}

// Delete removes a season.
func (s *Service) Delete(ctx context.Context, id int64) error {
	sea, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.seasons.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrSeasonNotFound
		}
		return fmt.Errorf("deleting season: %w", err)
	}
	s.logActivity(ctx, activity.TypeSeasonDeleted, sea, fmt.Sprintf("deleted season %q", sea.Name))
	return nil
}

// SetVisible records the admin approval decision for a season.
func (s *Service) SetVisible(ctx context.Context, id int64, visible bool) (*Season, error) {
	sea, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if sea.Visible == visible {
		return sea, nil
	}
	sea.Visible = visible
	sea.UpdatedAt = time.Now().UTC()
	if err := s.seasons.Update(ctx, sea); err != nil {
		return nil, fmt.Errorf("updating season visibility: %w", err)
	}

	summary := fmt.Sprintf("hid season %q", sea.Name)
	if visible {
		summary = fmt.Sprintf("approved season %q", sea.Name)
	}
	s.logActivity(ctx, activity.TypeSeasonVisibility, sea, summary)
	return sea, nil
}

// List returns seasons matching the options, joined with league details.
func (s *Service) List(ctx context.Context, opts ListOptions) ([]Season, error) {
	seasons, err := s.seasons.List(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("listing seasons: %w", err)
	}
	return seasons, nil
}

// Sports returns the distinct sports across visible seasons, sorted.
func (s *Service) Sports(ctx context.Context) ([]string, error) {
	sports, err := s.seasons.Sports(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing sports: %w", err)
	}
	return sports, nil
}

func (s *Service) logActivity(ctx context.Context, typ activity.Type, sea *Season, summary string) {
	if s.activities == nil {
		return
	}
	leagueID, seasonID := sea.LeagueID, sea.ID
	err := s.activities.Log(ctx, &activity.Entry{
		Type:     typ,
		Summary:  summary,
		LeagueID: &leagueID,
		SeasonID: &seasonID,
	})
	if err != nil {
		s.logger.WarnContext(ctx, "failed to log season activity", "type", typ, "season_id", sea.ID, "error", err)
	}
}

// applyDates parses each non-nil date string into sea and validates the
// resulting windows.
func applyDates(sea *Season, signupStart, signupEnd, seasonStart, seasonEnd *string) error {
	fields := []struct {
		in  *string
		out **civil.Date
	}{
		{signupStart, &sea.SignupStart},
		{signupEnd, &sea.SignupEnd},
		{seasonStart, &sea.SeasonStart},
		{seasonEnd, &sea.SeasonEnd},
	}
	for _, f := range fields {
		if f.in == nil {
			continue
		}
		d, err := parseOptionalDate(*f.in)
		if err != nil {
			return fmt.Errorf("%w: %q", err, *f.in)
		}
		*f.out = d
	}
	return ValidateDates(sea)
}
