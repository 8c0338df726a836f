package league

import (
	"context"

	"github.com/ganot/playbook/internal/domain/activity"
)

// Repository provides persistence for leagues.
type Repository interface {
	Create(ctx context.Context, l *League) error
	Get(ctx context.Context, id int64) (*League, error)
	Update(ctx context.Context, l *League) error
	List(ctx context.Context, opts ListOptions) ([]League, error)
}

// SearchRepository provides full-text search over leagues.
type SearchRepository interface {
	Search(ctx context.Context, query string, limit int) ([]League, error)
}

// ActivityRepository logs league mutations.
type ActivityRepository interface {
	Log(ctx context.Context, entry *activity.Entry) error
}
