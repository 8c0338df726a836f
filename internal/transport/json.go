package transport

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/ganot/playbook/internal/browse"
	"github.com/ganot/playbook/internal/docs"
	"github.com/ganot/playbook/internal/domain/calendar"
	"github.com/ganot/playbook/internal/domain/league"
	"github.com/ganot/playbook/internal/domain/preference"
	"github.com/ganot/playbook/internal/domain/season"
	"github.com/ganot/playbook/internal/domain/session"
	"github.com/ganot/playbook/internal/repository"
)

const maxBodyBytes = 1 << 20

// ErrBadRequest marks malformed query parameters or bodies.
var ErrBadRequest = errors.New("bad request")

// Error is the JSON body of every failed request.
type Error struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, Error{Error: message})
}

// decodeJSON parses a bounded JSON request body, rejecting unknown fields.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %v", ErrBadRequest, err)
	}
	return nil
}

// statusFor maps domain errors to HTTP statuses. The boolean reports
// whether the error text is safe to show to the client.
func statusFor(err error) (int, bool) {
	switch {
	case errors.Is(err, ErrBadRequest),
		errors.Is(err, calendar.ErrInvalidMonth),
		errors.Is(err, browse.ErrInvalidDay),
		errors.Is(err, browse.ErrInvalidAge),
		errors.Is(err, season.ErrInvalidInput),
		errors.Is(err, season.ErrInvalidDate),
		errors.Is(err, season.ErrInvalidRange),
		errors.Is(err, league.ErrInvalidInput),
		errors.Is(err, preference.ErrInvalidInput),
		errors.Is(err, preference.ErrInvalidBirthdate):
		return http.StatusBadRequest, true
	case errors.Is(err, season.ErrSeasonNotFound),
		errors.Is(err, league.ErrLeagueNotFound),
		errors.Is(err, preference.ErrProfileNotFound),
		errors.Is(err, docs.ErrPageNotFound),
		errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound, true
	case errors.Is(err, session.ErrInvalidCredentials),
		errors.Is(err, session.ErrSessionNotFound),
		errors.Is(err, session.ErrSessionExpired):
		return http.StatusUnauthorized, true
	case errors.Is(err, repository.ErrConflict):
		return http.StatusConflict, true
	default:
		return http.StatusInternalServerError, false
	}
}
