package season

import (
	"context"

	"github.com/ganot/playbook/internal/domain/activity"
)

// Repository provides persistence for seasons.
type Repository interface {
	Create(ctx context.Context, s *Season) error
	Get(ctx context.Context, id int64) (*Season, error)
	Update(ctx context.Context, s *Season) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, opts ListOptions) ([]Season, error)
	Sports(ctx context.Context) ([]string, error)
}

// ActivityRepository logs season mutations.
type ActivityRepository interface {
	Log(ctx context.Context, entry *activity.Entry) error
}
