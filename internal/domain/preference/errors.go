package preference

import "errors"

var (
	// ErrProfileNotFound indicates the profile doesn't exist.
	ErrProfileNotFound = errors.New("preference profile not found")
	// ErrInvalidBirthdate indicates a malformed or future birthdate.
	ErrInvalidBirthdate = errors.New("invalid birthdate")
	// ErrInvalidInput indicates invalid preference input.
	ErrInvalidInput = errors.New("invalid preference input")
)
