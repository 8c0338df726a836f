package session

import "time"

// Session is an authenticated admin session. Only a digest of the bearer
// token is kept; the token itself is returned once at login.
type Session struct {
	TokenHash string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the session has lapsed at now.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// Login is the result of a successful login.
type Login struct {
	Token     string    `json:"-"`
	ExpiresAt time.Time `json:"expires_at"`
}
