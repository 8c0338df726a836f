package preference

import (
	"context"

	"cloud.google.com/go/civil"
)

// Repository provides persistence for preference profiles.
type Repository interface {
	Create(ctx context.Context, p *Profile) error
	Get(ctx context.Context, id string) (*Profile, error)
	SetHidden(ctx context.Context, id string, seasonIDs []int64, hidden bool) error
	ReplaceBirthdates(ctx context.Context, id string, dates []civil.Date) error
}
