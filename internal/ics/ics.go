// Package ics exports season windows as an iCalendar feed.
package ics

import (
	"fmt"
	"io"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/emersion/go-ical"
	"github.com/ganot/playbook/internal/domain/season"
)

const (
	productID   = "-//playbook//season calendar//EN"
	uidDomain   = "playbook"
	defaultName = "Youth sports seasons"
)

// Options controls feed-level properties.
type Options struct {
	Name string
	// Now stamps DTSTAMP on every event. Zero means time.Now.
	Now time.Time
}

// Export writes one all-day event per complete signup or season window.
// Seasons with only one bound of a window contribute no event for it.
func Export(w io.Writer, seasons []season.Season, opts Options) error {
	cal := Build(seasons, opts)
	if err := ical.NewEncoder(w).Encode(cal); err != nil {
		return fmt.Errorf("failed to encode calendar: %w", err)
	}
	return nil
}

// Build assembles the calendar without encoding it.
func Build(seasons []season.Season, opts Options) *ical.Calendar {
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	name := opts.Name
	if name == "" {
		name = defaultName
	}

	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, productID)
	cal.Props.SetText("X-WR-CALNAME", name)

	for _, s := range seasons {
		if w, ok := s.SignupWindow(); ok {
			cal.Children = append(cal.Children, event(s, w, "signup", "registration", now))
		}
		if w, ok := s.ActiveWindow(); ok {
			cal.Children = append(cal.Children, event(s, w, "active", "season", now))
		}
	}
	return cal
}

func event(s season.Season, w season.Window, kind, label string, now time.Time) *ical.Component {
	ve := ical.NewComponent(ical.CompEvent)
	ve.Props.SetText(ical.PropUID, fmt.Sprintf("season-%d-%s@%s", s.ID, kind, uidDomain))
	ve.Props.SetText(ical.PropSummary, summary(s, label))
	ve.Props.SetDateTime(ical.PropDateTimeStamp, now.UTC())
	ve.Props.SetDate(ical.PropDateTimeStart, midnight(w.Start))
	// DTEND is exclusive for all-day events.
	ve.Props.SetDate(ical.PropDateTimeEnd, midnight(w.End.AddDays(1)))

	if desc := description(s); desc != "" {
		ve.Props.SetText(ical.PropDescription, desc)
	}
	if s.RegistrationURL != "" && kind == "signup" {
		ve.Props.SetText(ical.PropURL, s.RegistrationURL)
	} else if s.DetailsURL != "" {
		ve.Props.SetText(ical.PropURL, s.DetailsURL)
	}
	if s.Sport != "" {
		ve.Props.SetText(ical.PropCategories, s.Sport)
	}
	return ve
}

func summary(s season.Season, label string) string {
	if s.LeagueName == "" {
		return fmt.Sprintf("%s %s", s.Name, label)
	}
	return fmt.Sprintf("%s – %s %s", s.LeagueName, s.Name, label)
}

func description(s season.Season) string {
	var lines []string
	if s.Organization != "" {
		lines = append(lines, s.Organization)
	}
	if s.AgeGroup != "" {
		lines = append(lines, "Ages: "+s.AgeGroup)
	}
	if s.RegistrationURL != "" {
		lines = append(lines, "Register: "+s.RegistrationURL)
	}
	return strings.Join(lines, "\n")
}

func midnight(d civil.Date) time.Time {
	return d.In(time.UTC)
}
