package transport

import (
	"context"
	"net/http"
	"time"

	"github.com/ganot/playbook/internal/domain/session"
)

type adminKey struct{}

// SessionService authenticates the admin and manages their sessions.
type SessionService interface {
	Login(ctx context.Context, password string) (*session.Login, error)
	Validate(ctx context.Context, token string) (*session.Session, error)
	Logout(ctx context.Context, token string) error
	TTL() time.Duration
}

// AdminFromContext returns the admin session from context, if present.
func AdminFromContext(ctx context.Context) (*session.Session, bool) {
	sess, ok := ctx.Value(adminKey{}).(*session.Session)
	return sess, ok
}

// AdminMiddleware attaches the admin session to the request context when
// the session cookie is valid. It never rejects a request.
func AdminMiddleware(sessions SessionService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := sessionToken(r)
			if token == "" || sessions == nil {
				next.ServeHTTP(w, r)
				return
			}
			sess, err := sessions.Validate(r.Context(), token)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			ctx := context.WithValue(r.Context(), adminKey{}, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin rejects requests without an admin session. It must run
// after AdminMiddleware.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := AdminFromContext(r.Context()); !ok {
			writeError(w, http.StatusUnauthorized, "admin session required")
			return
		}
		next.ServeHTTP(w, r)
	})
}
