package session

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ganot/playbook/internal/domain/activity"
	"github.com/ganot/playbook/internal/repository"
)

// DefaultTTL is the admin session lifetime when none is configured.
const DefaultTTL = 7 * 24 * time.Hour

const tokenBytes = 32

// Service issues and validates admin sessions.
type Service struct {
	sessions   Repository
	verifier   Verifier
	activities ActivityRepository
	ttl        time.Duration
	logger     *slog.Logger

	// Now is the clock; tests may replace it.
	Now func() time.Time
}

// NewService creates a new session service.
func NewService(sessions Repository, verifier Verifier, activities ActivityRepository, ttl time.Duration, logger *slog.Logger) *Service {
	if verifier == nil {
		verifier = denyAll{}
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{
		sessions:   sessions,
		verifier:   verifier,
		activities: activities,
		ttl:        ttl,
		logger:     logger,
		Now:        time.Now,
	}
}

// TTL returns the configured session lifetime.
func (s *Service) TTL() time.Duration {
	return s.ttl
}

// Login verifies the admin password and issues a new session token.
func (s *Service) Login(ctx context.Context, password string) (*Login, error) {
	if !s.verifier.Verify(password) {
		s.logActivity(ctx, activity.TypeAdminLoginFailed, "rejected admin login")
		return nil, ErrInvalidCredentials
	}

	token, err := newToken()
	if err != nil {
		return nil, err
	}
	now := s.Now().UTC()
	sess := &Session{
		TokenHash: HashToken(token),
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	if err := s.sessions.Create(ctx, sess); err != nil {
		return nil, fmt.Errorf("creating session: %w", err)
	}

	s.logActivity(ctx, activity.TypeAdminLogin, "admin logged in")
	return &Login{Token: token, ExpiresAt: sess.ExpiresAt}, nil
}

// Validate returns the session for token. Expired sessions are removed.
func (s *Service) Validate(ctx context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, ErrSessionNotFound
	}
	hash := HashToken(token)
	sess, err := s.sessions.Get(ctx, hash)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("getting session: %w", err)
	}
	if sess.Expired(s.Now()) {
		if err := s.sessions.Delete(ctx, hash); err != nil && !errors.Is(err, repository.ErrNotFound) {
			s.logger.WarnContext(ctx, "failed to delete expired session", "error", err)
		}
		return nil, ErrSessionExpired
	}
	return sess, nil
}

// Logout revokes token. Unknown tokens are not an error.
func (s *Service) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.sessions.Delete(ctx, HashToken(token)); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("deleting session: %w", err)
	}
	s.logActivity(ctx, activity.TypeAdminLogout, "admin logged out")
	return nil
}

// Sweep deletes every expired session and returns how many were removed.
func (s *Service) Sweep(ctx context.Context) (int64, error) {
	n, err := s.sessions.DeleteExpired(ctx, s.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("sweeping sessions: %w", err)
	}
	if n > 0 {
		s.logger.InfoContext(ctx, "expired sessions removed", "count", n)
	}
	return n, nil
}

// RunSweeper calls Sweep every interval until ctx is done. observe, when
// non-nil, receives the count of every successful sweep.
func (s *Service) RunSweeper(ctx context.Context, interval time.Duration, observe func(n int64)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := s.Sweep(ctx)
			if err != nil {
				s.logger.ErrorContext(ctx, "session sweep failed", "error", err)
				continue
			}
			if observe != nil {
				observe(n)
			}
		}
	}
}

// HashToken returns the hex SHA-256 digest stored for a token.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func newToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}
	return hex.EncodeToString(b), nil
}

func (s *Service) logActivity(ctx context.Context, typ activity.Type, summary string) {
	if s.activities == nil {
		return
	}
	if err := s.activities.Log(ctx, &activity.Entry{Type: typ, Summary: summary}); err != nil {
		s.logger.WarnContext(ctx, "failed to log session activity", "type", typ, "error", err)
	}
}
