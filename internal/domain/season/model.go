package season

import (
	"time"

	"cloud.google.com/go/civil"
)

// Season is one registration/play cycle offered by a league.
type Season struct {
	ID              int64       `json:"id"`
	LeagueID        int64       `json:"league_id"`
	Name            string      `json:"name"`
	Sport           string      `json:"sport"`
	SignupStart     *civil.Date `json:"signup_start"`
	SignupEnd       *civil.Date `json:"signup_end"`
	SeasonStart     *civil.Date `json:"season_start"`
	SeasonEnd       *civil.Date `json:"season_end"`
	AgeGroup        string      `json:"age_group,omitempty"`
	DetailsURL      string      `json:"details_url,omitempty"`
	RegistrationURL string      `json:"registration_url,omitempty"`
	Visible         bool        `json:"visible"`
	LeagueName      string      `json:"league_name,omitempty"`
	Organization    string      `json:"organization,omitempty"`
	LeagueWebsite   string      `json:"league_website,omitempty"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

// Window is an inclusive date range.
type Window struct {
	Start civil.Date `json:"start"`
	End   civil.Date `json:"end"`
}

// Contains reports whether d lies within the window, bounds included.
func (w Window) Contains(d civil.Date) bool {
	return !d.Before(w.Start) && !d.After(w.End)
}

// Overlaps reports whether the window shares at least one day with o.
func (w Window) Overlaps(o Window) bool {
	return !w.Start.After(o.End) && !w.End.Before(o.Start)
}

// SignupWindow returns the registration window. ok is false unless both
// bounds are present and ordered.
func (s Season) SignupWindow() (Window, bool) {
	return newWindow(s.SignupStart, s.SignupEnd)
}

// ActiveWindow returns the play window. ok is false unless both bounds are
// present and ordered.
func (s Season) ActiveWindow() (Window, bool) {
	return newWindow(s.SeasonStart, s.SeasonEnd)
}

func newWindow(start, end *civil.Date) (Window, bool) {
	if start == nil || end == nil {
		return Window{}, false
	}
	if end.Before(*start) {
		return Window{}, false
	}
	return Window{Start: *start, End: *end}, true
}
