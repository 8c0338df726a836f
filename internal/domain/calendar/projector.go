package calendar

import (
	"slices"

	"cloud.google.com/go/civil"
	"github.com/ganot/playbook/internal/domain/season"
)

// ClosingSoonDays is the inclusive countdown threshold for "closing soon".
const ClosingSoonDays = 7

// windows returns the season's complete windows in signup, active order.
func windows(s season.Season) []typedWindow {
	var out []typedWindow
	if w, ok := s.SignupWindow(); ok {
		out = append(out, typedWindow{RangeSignup, w})
	}
	if w, ok := s.ActiveWindow(); ok {
		out = append(out, typedWindow{RangeActive, w})
	}
	return out
}

type typedWindow struct {
	kind RangeType
	season.Window
}

// ComputeDayInfo projects seasons onto the days of a month. Only days that
// carry a milestone or an active season get an entry. Windows with a
// missing bound, or whose end precedes their start, are ignored.
func ComputeDayInfo(seasons []season.Season, m Month) map[int]*DayInfo {
	days := make(map[int]*DayInfo)
	bounds := m.Window()

	at := func(day int) *DayInfo {
		info, ok := days[day]
		if !ok {
			info = &DayInfo{}
			days[day] = info
		}
		return info
	}

	for _, s := range seasons {
		for _, w := range windows(s) {
			if !w.Overlaps(bounds) {
				continue
			}
			if bounds.Contains(w.Start) {
				if w.kind == RangeSignup {
					at(w.Start.Day).RegOpens++
				} else {
					at(w.Start.Day).SeasonStarts++
				}
			}
			if bounds.Contains(w.End) {
				if w.kind == RangeSignup {
					at(w.End.Day).RegCloses++
				} else {
					at(w.End.Day).SeasonEnds++
				}
			}
			from, to := clip(w.Window, m)
			for day := from; day <= to; day++ {
				at(day).addActive(s)
			}
		}
	}
	return days
}

// clip returns the first and last day of m covered by w. w must overlap m.
func clip(w season.Window, m Month) (int, int) {
	from, to := 1, m.Days()
	if m.Contains(w.Start) {
		from = w.Start.Day
	}
	if m.Contains(w.End) {
		to = w.End.Day
	}
	return from, to
}

// EventsForDay expands a day's info into per-season events. Seasons that
// close registration on the day come first, then seasons with any other
// milestone, then the rest; ties keep their order in info.Active.
func EventsForDay(info *DayInfo, m Month, day int) []DayEvent {
	if info == nil || len(info.Active) == 0 {
		return nil
	}
	date := m.Date(day)

	events := make([]DayEvent, 0, len(info.Active))
	for _, s := range info.Active {
		ev := DayEvent{Season: s, Types: []RangeType{}}
		if w, ok := s.SignupWindow(); ok && w.Contains(date) {
			ev.Types = append(ev.Types, RangeSignup)
		}
		if w, ok := s.ActiveWindow(); ok && w.Contains(date) {
			ev.Types = append(ev.Types, RangeActive)
		}
		ev.RegOpens = sameDay(s.SignupStart, date)
		ev.RegCloses = sameDay(s.SignupEnd, date)
		ev.SeasonStarts = sameDay(s.SeasonStart, date)
		ev.SeasonEnds = sameDay(s.SeasonEnd, date)
		ev.HasMilestone = ev.RegOpens || ev.RegCloses || ev.SeasonStarts || ev.SeasonEnds
		events = append(events, ev)
	}

	slices.SortStableFunc(events, func(a, b DayEvent) int {
		return eventRank(a) - eventRank(b)
	})
	return events
}

func eventRank(ev DayEvent) int {
	switch {
	case ev.RegCloses:
		return 0
	case ev.HasMilestone:
		return 1
	default:
		return 2
	}
}

func sameDay(d *civil.Date, day civil.Date) bool {
	return d != nil && *d == day
}

// ClosingSoon reports the registration countdown for a signup end date.
// DaysRemaining is nil when the date is absent or already past.
func ClosingSoon(signupEnd *civil.Date, today civil.Date) Countdown {
	if signupEnd == nil {
		return Countdown{}
	}
	days := signupEnd.DaysSince(today)
	if days < 0 {
		return Countdown{}
	}
	return Countdown{IsClosingSoon: days <= ClosingSoonDays, DaysRemaining: &days}
}
