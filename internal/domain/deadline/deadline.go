// Package deadline ranks seasons by registration close date.
package deadline

import (
	"cmp"
	"fmt"
	"slices"

	"cloud.google.com/go/civil"
	"github.com/ganot/playbook/internal/domain/calendar"
	"github.com/ganot/playbook/internal/domain/season"
)

// Urgency buckets an upcoming deadline for display.
type Urgency string

const (
	UrgencyUrgent Urgency = "urgent" // two days or fewer
	UrgencySoon   Urgency = "soon"   // within the closing-soon threshold
	UrgencyNormal Urgency = "normal"
	UrgencyClosed Urgency = "closed"
)

// Entry is one season's registration deadline relative to today.
type Entry struct {
	Season    season.Season `json:"season"`
	SignupEnd civil.Date    `json:"signup_end"`
	// DaysRemaining is negative once registration has closed.
	DaysRemaining int     `json:"days_remaining"`
	ClosingSoon   bool    `json:"closing_soon"`
	Urgency       Urgency `json:"urgency"`
}

// Label renders the countdown the way the deadline list shows it.
func (e Entry) Label() string {
	switch d := e.DaysRemaining; {
	case d == 0:
		return "Closes today!"
	case d == 1:
		return "Closes tomorrow!"
	case d > 1:
		return fmt.Sprintf("%d days left", d)
	case d == -1:
		return "Closed 1 day ago"
	default:
		return fmt.Sprintf("Closed %d days ago", -d)
	}
}

// View splits deadlines into those still open and those already closed.
type View struct {
	Upcoming       []Entry `json:"upcoming"`
	RecentlyClosed []Entry `json:"recently_closed"`
}

// Ranker orders seasons by signup end date.
type Ranker struct {
	// RecentWindow drops closed deadlines more than this many days old.
	// Zero keeps every closed deadline.
	RecentWindow int
}

// Rank returns open deadlines ascending by date and closed deadlines
// descending. Seasons without a signup end appear in neither list.
func (r Ranker) Rank(seasons []season.Season, today civil.Date) View {
	view := View{Upcoming: []Entry{}, RecentlyClosed: []Entry{}}
	for _, s := range seasons {
		if s.SignupEnd == nil {
			continue
		}
		e := newEntry(s, today)
		if e.DaysRemaining >= 0 {
			view.Upcoming = append(view.Upcoming, e)
			continue
		}
		if r.RecentWindow > 0 && -e.DaysRemaining > r.RecentWindow {
			continue
		}
		view.RecentlyClosed = append(view.RecentlyClosed, e)
	}

	slices.SortStableFunc(view.Upcoming, func(a, b Entry) int {
		return compareDates(a.SignupEnd, b.SignupEnd)
	})
	slices.SortStableFunc(view.RecentlyClosed, func(a, b Entry) int {
		return compareDates(b.SignupEnd, a.SignupEnd)
	})
	return view
}

// ClosingSoon returns the seasons whose registration closes within the
// closing-soon threshold, soonest first.
func ClosingSoon(seasons []season.Season, today civil.Date) []Entry {
	out := []Entry{}
	for _, s := range seasons {
		if !calendar.ClosingSoon(s.SignupEnd, today).IsClosingSoon {
			continue
		}
		out = append(out, newEntry(s, today))
	}
	slices.SortStableFunc(out, func(a, b Entry) int {
		return cmp.Compare(a.DaysRemaining, b.DaysRemaining)
	})
	return out
}

func newEntry(s season.Season, today civil.Date) Entry {
	end := *s.SignupEnd
	days := end.DaysSince(today)
	countdown := calendar.ClosingSoon(s.SignupEnd, today)
	return Entry{
		Season:        s,
		SignupEnd:     end,
		DaysRemaining: days,
		ClosingSoon:   countdown.IsClosingSoon,
		Urgency:       urgency(days),
	}
}

func urgency(days int) Urgency {
	switch {
	case days < 0:
		return UrgencyClosed
	case days <= 2:
		return UrgencyUrgent
	case days <= calendar.ClosingSoonDays:
		return UrgencySoon
	default:
		return UrgencyNormal
	}
}

func compareDates(a, b civil.Date) int {
	switch {
	case a.Before(b):
		return -1
	case a.After(b):
		return 1
	default:
		return 0
	}
}
