package session

import (
	"context"
	"time"

	"github.com/ganot/playbook/internal/domain/activity"
)

// Repository stores admin sessions keyed by token digest.
type Repository interface {
	Create(ctx context.Context, sess *Session) error
	Get(ctx context.Context, tokenHash string) (*Session, error)
	Delete(ctx context.Context, tokenHash string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// Verifier checks an admin password.
type Verifier interface {
	Verify(password string) bool
}

// ActivityRepository logs login and logout events.
type ActivityRepository interface {
	Log(ctx context.Context, entry *activity.Entry) error
}
