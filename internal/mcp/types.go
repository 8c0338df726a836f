package mcp

import (
	"github.com/ganot/playbook/internal/browse"
	"github.com/ganot/playbook/internal/domain/age"
	"github.com/ganot/playbook/internal/domain/league"
)

type ListSportsParams struct{}

type SearchLeaguesParams struct {
	Query string `json:"query" jsonschema:"Free text matched against league name, organization and sport"`
	Limit int    `json:"limit,omitempty" jsonschema:"Maximum number of leagues to return"`
}

type CalendarMonthParams struct {
	Year      int    `json:"year,omitempty" jsonschema:"Four digit year; omit with month for the current month"`
	Month     int    `json:"month,omitempty" jsonschema:"Month 1-12"`
	Sport     string `json:"sport,omitempty" jsonschema:"Only seasons of this sport"`
	Ages      []int  `json:"ages,omitempty" jsonschema:"Children's ages; seasons whose age group excludes all of them are dropped"`
	ProfileID string `json:"profile_id,omitempty" jsonschema:"Preference profile whose hidden seasons and children apply"`
}

type DayEventsParams struct {
	Year      int    `json:"year" jsonschema:"Four digit year"`
	Month     int    `json:"month" jsonschema:"Month 1-12"`
	Day       int    `json:"day" jsonschema:"Day of the month"`
	Sport     string `json:"sport,omitempty" jsonschema:"Only seasons of this sport"`
	Ages      []int  `json:"ages,omitempty" jsonschema:"Children's ages"`
	ProfileID string `json:"profile_id,omitempty" jsonschema:"Preference profile ID"`
}

type DeadlinesParams struct {
	Year      int    `json:"year,omitempty" jsonschema:"Limit to seasons touching this month's year"`
	Month     int    `json:"month,omitempty" jsonschema:"Limit to seasons touching this month"`
	Sport     string `json:"sport,omitempty" jsonschema:"Only seasons of this sport"`
	Ages      []int  `json:"ages,omitempty" jsonschema:"Children's ages"`
	ProfileID string `json:"profile_id,omitempty" jsonschema:"Preference profile ID"`
}

type ParseAgeGroupParams struct {
	Text string `json:"text" jsonschema:"Age group text such as 14U, 5-12 or 1st-6th Grade"`
}

type MatchAgeGroupParams struct {
	Text string `json:"text" jsonschema:"Age group text"`
	Ages []int  `json:"ages" jsonschema:"Children's ages"`
}

type SportsResult struct {
	Sports []string `json:"sports"`
}

type LeaguesResult struct {
	Leagues []league.League `json:"leagues"`
}

type AgeGroupResult struct {
	Text      string     `json:"text"`
	Parseable bool       `json:"parseable"`
	Range     *age.Range `json:"range,omitempty"`
	Matches   *bool      `json:"matches,omitempty"`
	Ages      []int      `json:"ages,omitempty"`
}

func (p CalendarMonthParams) query(ctxProfile string) browse.Query {
	return browse.Query{
		Sport:     p.Sport,
		Year:      p.Year,
		Month:     p.Month,
		Ages:      p.Ages,
		ProfileID: firstNonEmpty(p.ProfileID, ctxProfile),
	}
}

func (p DayEventsParams) query(ctxProfile string) browse.Query {
	return browse.Query{
		Sport:     p.Sport,
		Year:      p.Year,
		Month:     p.Month,
		Ages:      p.Ages,
		ProfileID: firstNonEmpty(p.ProfileID, ctxProfile),
	}
}

func (p DeadlinesParams) query(ctxProfile string) browse.Query {
	return browse.Query{
		Sport:     p.Sport,
		Year:      p.Year,
		Month:     p.Month,
		Ages:      p.Ages,
		ProfileID: firstNonEmpty(p.ProfileID, ctxProfile),
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
