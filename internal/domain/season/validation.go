package season

import (
	"strings"

	"cloud.google.com/go/civil"
)

// ValidateCreateInput validates fields required to create a season.
func ValidateCreateInput(req CreateRequest) error {
	if req.LeagueID <= 0 {
		return ErrInvalidInput
	}
	if strings.TrimSpace(req.Name) == "" {
		return ErrInvalidInput
	}
	if strings.TrimSpace(req.Sport) == "" {
		return ErrInvalidInput
	}
	return nil
}

// ValidateDates rejects windows whose end precedes their start. One-sided
// windows are allowed.
func ValidateDates(s *Season) error {
	if before(s.SignupEnd, s.SignupStart) || before(s.SeasonEnd, s.SeasonStart) {
		return ErrInvalidRange
	}
	return nil
}

func before(a, b *civil.Date) bool {
	return a != nil && b != nil && a.Before(*b)
}
