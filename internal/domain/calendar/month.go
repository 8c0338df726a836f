package calendar

import (
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/civil"
	"github.com/ganot/playbook/internal/domain/season"
)

// ErrInvalidMonth indicates a year before 1 or a month outside 1..12.
var ErrInvalidMonth = errors.New("invalid calendar month")

// Month is a (year, month) pair in the proleptic Gregorian calendar.
type Month struct {
	Year  int
	Month time.Month
}

// NewMonth validates and builds a Month.
func NewMonth(year, month int) (Month, error) {
	if year < 1 || month < 1 || month > 12 {
		return Month{}, fmt.Errorf("%w: %04d-%02d", ErrInvalidMonth, year, month)
	}
	return Month{Year: year, Month: time.Month(month)}, nil
}

// MonthOf returns the month containing d.
func MonthOf(d civil.Date) Month {
	return Month{Year: d.Year, Month: d.Month}
}

// Days returns the number of days in the month.
func (m Month) Days() int {
	return time.Date(m.Year, m.Month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// First returns the first day of the month.
func (m Month) First() civil.Date {
	return civil.Date{Year: m.Year, Month: m.Month, Day: 1}
}

// Last returns the last day of the month.
func (m Month) Last() civil.Date {
	return civil.Date{Year: m.Year, Month: m.Month, Day: m.Days()}
}

// Date returns the given day of the month. The day is not range checked.
func (m Month) Date(day int) civil.Date {
	return civil.Date{Year: m.Year, Month: m.Month, Day: day}
}

// Contains reports whether d falls within the month.
func (m Month) Contains(d civil.Date) bool {
	return d.Year == m.Year && d.Month == m.Month
}

// FirstWeekday returns the weekday of the first day, for grid layout.
func (m Month) FirstWeekday() time.Weekday {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC).Weekday()
}

// Prev returns the preceding month.
func (m Month) Prev() Month {
	if m.Month == time.January {
		return Month{Year: m.Year - 1, Month: time.December}
	}
	return Month{Year: m.Year, Month: m.Month - 1}
}

// Next returns the following month.
func (m Month) Next() Month {
	if m.Month == time.December {
		return Month{Year: m.Year + 1, Month: time.January}
	}
	return Month{Year: m.Year, Month: m.Month + 1}
}

// Window returns the month as an inclusive date window.
func (m Month) Window() season.Window {
	return season.Window{Start: m.First(), End: m.Last()}
}

func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}
