package season

import (
	"strings"

	"cloud.google.com/go/civil"
)

// ParseDate parses a zero-padded ISO YYYY-MM-DD date. Empty, partial or
// malformed input yields nil so the date is treated as absent.
func ParseDate(s string) *civil.Date {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	d, err := civil.ParseDate(s)
	if err != nil || !d.IsValid() {
		return nil
	}
	return &d
}

// FormatDate renders d as YYYY-MM-DD, or "" when d is nil.
func FormatDate(d *civil.Date) string {
	if d == nil {
		return ""
	}
	return d.String()
}

// parseOptionalDate is the strict variant used for writes: empty means
// absent, anything else must parse.
func parseOptionalDate(s string) (*civil.Date, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	d := ParseDate(s)
	if d == nil {
		return nil, ErrInvalidDate
	}
	return d, nil
}
