package session

import "errors"

var (
	// ErrInvalidCredentials indicates a rejected admin password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrSessionNotFound indicates an unknown or already revoked token.
	ErrSessionNotFound = errors.New("session not found")
	// ErrSessionExpired indicates a token past its expiry.
	ErrSessionExpired = errors.New("session expired")
	// ErrInvalidHash indicates a malformed argon2id password hash.
	ErrInvalidHash = errors.New("invalid password hash")
)
