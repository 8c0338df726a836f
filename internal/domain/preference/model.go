package preference

import (
	"slices"
	"time"

	"cloud.google.com/go/civil"
	"github.com/ganot/playbook/internal/domain/age"
	"github.com/ganot/playbook/internal/domain/season"
)

// Profile holds one viewer's calendar preferences: seasons they have
// hidden and their children's birthdates for age filtering.
type Profile struct {
	ID              string       `json:"id"`
	HiddenSeasonIDs []int64      `json:"hidden_season_ids"`
	Birthdates      []civil.Date `json:"birthdates"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
}

// IsHidden reports whether the viewer hid the season.
func (p *Profile) IsHidden(seasonID int64) bool {
	return slices.Contains(p.HiddenSeasonIDs, seasonID)
}

// ChildAges returns the children's ages as of today.
func (p *Profile) ChildAges(today civil.Date) []int {
	return age.Ages(p.Birthdates, today)
}

// Visible drops the seasons the viewer hid.
func (p *Profile) Visible(seasons []season.Season) []season.Season {
	if len(p.HiddenSeasonIDs) == 0 {
		return seasons
	}
	out := make([]season.Season, 0, len(seasons))
	for _, s := range seasons {
		if !p.IsHidden(s.ID) {
			out = append(out, s)
		}
	}
	return out
}
