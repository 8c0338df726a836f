package season

import "errors"

var (
	// ErrSeasonNotFound indicates the season doesn't exist.
	ErrSeasonNotFound = errors.New("season not found")
	// ErrInvalidInput indicates a required field is missing.
	ErrInvalidInput = errors.New("invalid season input")
	// ErrInvalidDate indicates a date that is not YYYY-MM-DD.
	ErrInvalidDate = errors.New("invalid season date")
	// ErrInvalidRange indicates a window whose end precedes its start.
	ErrInvalidRange = errors.New("season date range ends before it starts")
)
