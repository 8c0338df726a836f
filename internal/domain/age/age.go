// Package age parses free-text league age groups and matches them against
// children's ages. Matching fails open: text that cannot be parsed matches
// every child so a relevant season is never hidden.
package age

import (
	"cloud.google.com/go/civil"
	"github.com/ganot/playbook/internal/domain/season"
)

// Range is an inclusive age range in whole years.
type Range struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Contains reports whether age lies within the range.
func (r Range) Contains(age int) bool {
	return age >= r.Min && age <= r.Max
}

// CalculateAge returns the whole years between birth and today, not
// counting the current year until the birthday is reached.
func CalculateAge(birth, today civil.Date) int {
	years := today.Year - birth.Year
	if today.Month < birth.Month || (today.Month == birth.Month && today.Day < birth.Day) {
		years--
	}
	return years
}

// Ages converts birthdates to ages as of today. Birthdates after today
// are skipped.
func Ages(birthdates []civil.Date, today civil.Date) []int {
	ages := make([]int, 0, len(birthdates))
	for _, b := range birthdates {
		if b.After(today) {
			continue
		}
		ages = append(ages, CalculateAge(b, today))
	}
	return ages
}

// Matches reports whether an age group admits any of the children.
// No children means no filter; unparseable text matches everyone.
func Matches(text string, childAges []int) bool {
	if len(childAges) == 0 {
		return true
	}
	r, ok := ParseGroup(text)
	if !ok {
		return true
	}
	for _, a := range childAges {
		if r.Contains(a) {
			return true
		}
	}
	return false
}

// Filter keeps the seasons whose age group matches any of the children.
func Filter(seasons []season.Season, childAges []int) []season.Season {
	if len(childAges) == 0 {
		return seasons
	}
	out := make([]season.Season, 0, len(seasons))
	for _, s := range seasons {
		if Matches(s.AgeGroup, childAges) {
			out = append(out, s)
		}
	}
	return out
}
