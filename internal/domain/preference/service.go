package preference

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/ganot/playbook/internal/domain/season"
	"github.com/ganot/playbook/internal/repository"
	"github.com/google/uuid"
)

// MaxChildren bounds the birthdates stored on one profile.
const MaxChildren = 12

// Service handles preference profiles.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new preference service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{repo: repo, logger: logger}
}

// Create creates an empty profile with a fresh ID.
func (s *Service) Create(ctx context.Context) (*Profile, error) {
	now := time.Now().UTC()
	p := &Profile{
		ID:              uuid.NewString(),
		HiddenSeasonIDs: []int64{},
		Birthdates:      []civil.Date{},
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("creating profile: %w", err)
	}
	return p, nil
}

// Get fetches a profile.
func (s *Service) Get(ctx context.Context, id string) (*Profile, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrProfileNotFound
	}
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("getting profile: %w", err)
	}
	return p, nil
}

// ToggleSeason flips the hidden state of a season and returns whether the
// season is now visible.
func (s *Service) ToggleSeason(ctx context.Context, id string, seasonID int64) (bool, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return false, err
	}
	hide := !p.IsHidden(seasonID)
	if err := s.setHidden(ctx, id, []int64{seasonID}, hide); err != nil {
		return false, err
	}
	return !hide, nil
}

// SetVisibility shows or hides several seasons at once.
func (s *Service) SetVisibility(ctx context.Context, id string, seasonIDs []int64, visible bool) (*Profile, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	if len(seasonIDs) > 0 {
		if err := s.setHidden(ctx, id, seasonIDs, !visible); err != nil {
			return nil, err
		}
	}
	return s.Get(ctx, id)
}

// SetBirthdates replaces the children's birthdates. Each must be a valid
// YYYY-MM-DD date not after today.
func (s *Service) SetBirthdates(ctx context.Context, id string, birthdates []string, today civil.Date) (*Profile, error) {
	if len(birthdates) > MaxChildren {
		return nil, fmt.Errorf("%w: at most %d birthdates", ErrInvalidInput, MaxChildren)
	}
	dates := make([]civil.Date, 0, len(birthdates))
	for _, raw := range birthdates {
		d := season.ParseDate(raw)
		if d == nil || d.After(today) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidBirthdate, strings.TrimSpace(raw))
		}
		dates = append(dates, *d)
	}

	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	if err := s.repo.ReplaceBirthdates(ctx, id, dates); err != nil {
		return nil, fmt.Errorf("setting birthdates: %w", err)
	}
	return s.Get(ctx, id)
}

func (s *Service) setHidden(ctx context.Context, id string, seasonIDs []int64, hidden bool) error {
	if err := s.repo.SetHidden(ctx, id, seasonIDs, hidden); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrProfileNotFound
		}
		return fmt.Errorf("updating hidden seasons: %w", err)
	}
	s.logger.DebugContext(ctx, "hidden seasons updated", "profile", id, "count", len(seasonIDs), "hidden", hidden)
	return nil
}
