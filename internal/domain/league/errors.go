package league

import "errors"

var (
	// ErrLeagueNotFound indicates the league doesn't exist.
	ErrLeagueNotFound = errors.New("league not found")
	// ErrInvalidInput indicates invalid league input.
	ErrInvalidInput = errors.New("invalid league input")
)
