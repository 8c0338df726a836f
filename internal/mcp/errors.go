package mcp

import (
	"errors"
	"fmt"

	"github.com/ganot/playbook/internal/browse"
	"github.com/ganot/playbook/internal/domain/calendar"
	"github.com/ganot/playbook/internal/domain/league"
	"github.com/ganot/playbook/internal/domain/preference"
)

// APIError is the payload of a failed tool call.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// MapError maps domain errors to tool error codes. Unknown errors become
// INTERNAL without leaking their text.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, calendar.ErrInvalidMonth):
		return &APIError{Code: "INVALID_MONTH", Message: "invalid month", RecoveryHint: "Use month 1-12 and a four digit year"}
	case errors.Is(err, browse.ErrInvalidDay):
		return &APIError{Code: "INVALID_DAY", Message: "day is not in the month", RecoveryHint: "Pick a day between 1 and the month's last day"}
	case errors.Is(err, browse.ErrInvalidAge):
		return &APIError{Code: "INVALID_AGE", Message: "ages must be zero or greater"}
	case errors.Is(err, preference.ErrProfileNotFound):
		return &APIError{Code: "PROFILE_NOT_FOUND", Message: "preference profile not found", RecoveryHint: "Omit profile_id or create a profile first"}
	case errors.Is(err, league.ErrInvalidInput), errors.Is(err, errInvalidArgument):
		return &APIError{Code: "INVALID_ARGUMENT", Message: err.Error()}
	default:
		return &APIError{Code: "INTERNAL", Message: "internal error"}
	}
}

var errInvalidArgument = errors.New("invalid argument")
