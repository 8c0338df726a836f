package main

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/ganot/playbook/internal/browse"
	"github.com/ganot/playbook/internal/domain/calendar"
	"github.com/ganot/playbook/internal/domain/season"
	"github.com/urfave/cli/v2"
)

func monthCommand() *cli.Command {
	return &cli.Command{
		Name:  "month",
		Usage: "Print one month of the calendar with its milestones and registration deadlines.",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "year", Usage: "Four digit year (default: current)"},
			&cli.IntFlag{Name: "month", Usage: "Month 1-12 (default: current)"},
			&cli.StringFlag{Name: "sport", Usage: "Only seasons of this sport"},
			&cli.StringFlag{Name: "ages", Usage: "Comma-separated children's ages, e.g. 7,10"},
		},
		Action: func(c *cli.Context) error {
			ages, err := parseAges(c.String("ages"))
			if err != nil {
				return err
			}

			a, cleanup, err := openApp(c)
			if err != nil {
				return err
			}
			defer cleanup()

			ctx := commandContext(c)
			q := browse.Query{
				Sport: c.String("sport"),
				Year:  c.Int("year"),
				Month: c.Int("month"),
				Ages:  ages,
			}
			view, err := a.Browse.Month(ctx, q)
			if err != nil {
				return err
			}
			q.Year, q.Month = view.Year, view.MonthNumber
			deadlines, err := a.Browse.Deadlines(ctx, q)
			if err != nil {
				return err
			}
			return renderMonth(c.App.Writer, view, deadlines)
		},
	}
}

func parseAges(raw string) ([]int, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	var ages []int
	for _, p := range strings.Split(raw, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid age %q", p)
		}
		ages = append(ages, n)
	}
	return ages, nil
}

// renderMonth writes a weekday grid followed by each day's events and the
// registration deadlines. Days marked * carry a milestone; days marked +
// only have a season running.
func renderMonth(w io.Writer, view *browse.MonthView, deadlines *browse.DeadlineView) error {
	m, err := calendar.NewMonth(view.Year, view.MonthNumber)
	if err != nil {
		return err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %d\n", m.Month, m.Year)
	b.WriteString("Su   Mo   Tu   We   Th   Fr   Sa\n")

	col := view.FirstWeekday
	b.WriteString(strings.Repeat("     ", col))
	for day := 1; day <= view.DaysInMonth; day++ {
		mark := " "
		if info := view.Days[day]; info != nil {
			mark = "+"
			if info.HasMilestone() {
				mark = "*"
			}
		}
		today := " "
		if view.IsCurrentMonth && view.Today.Day == day {
			today = "<"
		}
		fmt.Fprintf(&b, "%2d%s%s", day, mark, today)
		col++
		if col == 7 || day == view.DaysInMonth {
			b.WriteString("\n")
			col = 0
			continue
		}
		b.WriteString(" ")
	}

	days := make([]int, 0, len(view.Days))
	for day, info := range view.Days {
		if info.HasMilestone() {
			days = append(days, day)
		}
	}
	sort.Ints(days)

	if len(days) > 0 {
		b.WriteString("\nMilestones\n")
	}
	for _, day := range days {
		for _, ev := range calendar.EventsForDay(view.Days[day], m, day) {
			if !ev.HasMilestone {
				continue
			}
			fmt.Fprintf(&b, "  %s  %-34s %s\n", m.Date(day), seasonTitle(ev.Season), milestones(ev))
		}
	}

	if deadlines != nil && (len(deadlines.Upcoming) > 0 || len(deadlines.RecentlyClosed) > 0) {
		b.WriteString("\nRegistration deadlines\n")
		for _, e := range deadlines.Upcoming {
			fmt.Fprintf(&b, "  %s  %-34s %s\n", e.SignupEnd, seasonTitle(e.Season), e.Label())
		}
		for _, e := range deadlines.RecentlyClosed {
			fmt.Fprintf(&b, "  %s  %-34s %s\n", e.SignupEnd, seasonTitle(e.Season), e.Label())
		}
	}

	fmt.Fprintf(&b, "\n%d season(s)\n", len(view.Seasons))
	_, err = io.WriteString(w, b.String())
	return err
}

func seasonTitle(s season.Season) string {
	if s.LeagueName == "" {
		return s.Name
	}
	return s.LeagueName + " / " + s.Name
}

func milestones(ev calendar.DayEvent) string {
	var parts []string
	if ev.RegOpens {
		parts = append(parts, "registration opens")
	}
	if ev.RegCloses {
		parts = append(parts, "registration closes")
	}
	if ev.SeasonStarts {
		parts = append(parts, "season starts")
	}
	if ev.SeasonEnds {
		parts = append(parts, "season ends")
	}
	return strings.Join(parts, ", ")
}
