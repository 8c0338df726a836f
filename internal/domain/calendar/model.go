package calendar

import "github.com/ganot/playbook/internal/domain/season"

// RangeType identifies which of a season's two windows covers a day.
type RangeType string

const (
	RangeSignup RangeType = "signup"
	RangeActive RangeType = "active"
)

// DayInfo aggregates milestone counts and covering seasons for one day.
type DayInfo struct {
	RegOpens     int             `json:"reg_opens"`
	RegCloses    int             `json:"reg_closes"`
	SeasonStarts int             `json:"season_starts"`
	SeasonEnds   int             `json:"season_ends"`
	Active       []season.Season `json:"active"`
}

// HasMilestone reports whether any window starts or ends on the day.
func (d *DayInfo) HasMilestone() bool {
	return d.RegOpens+d.RegCloses+d.SeasonStarts+d.SeasonEnds > 0
}

func (d *DayInfo) addActive(s season.Season) {
	for _, existing := range d.Active {
		if existing.ID == s.ID {
			return
		}
	}
	d.Active = append(d.Active, s)
}

// DayEvent describes one season's relationship to a specific day.
type DayEvent struct {
	Season       season.Season `json:"season"`
	Types        []RangeType   `json:"types"`
	RegOpens     bool          `json:"reg_opens"`
	RegCloses    bool          `json:"reg_closes"`
	SeasonStarts bool          `json:"season_starts"`
	SeasonEnds   bool          `json:"season_ends"`
	HasMilestone bool          `json:"has_milestone"`
}

// Countdown is the registration-closing status of a season.
type Countdown struct {
	IsClosingSoon bool `json:"is_closing_soon"`
	DaysRemaining *int `json:"days_remaining"`
}

// BarSegment is one window of one season clipped to a month.
type BarSegment struct {
	Season   season.Season `json:"season"`
	Type     RangeType     `json:"type"`
	StartDay int           `json:"start_day"`
	EndDay   int           `json:"end_day"`
	// ContinuesBefore and ContinuesAfter mark windows clipped at the month edges.
	ContinuesBefore bool `json:"continues_before"`
	ContinuesAfter  bool `json:"continues_after"`
	Row             int  `json:"row"`
}
