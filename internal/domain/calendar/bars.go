package calendar

import (
	"cmp"
	"slices"

	"github.com/ganot/playbook/internal/domain/season"
)

// BarSegments returns one segment per season window that intersects the
// month, clipped to it, with rows assigned so segments sharing a row never
// overlap. Segments are ordered by start day; ties keep input order.
func BarSegments(seasons []season.Season, m Month) []BarSegment {
	bounds := m.Window()
	var segments []BarSegment
	for _, s := range seasons {
		for _, w := range windows(s) {
			if !w.Overlaps(bounds) {
				continue
			}
			from, to := clip(w.Window, m)
			segments = append(segments, BarSegment{
				Season:          s,
				Type:            w.kind,
				StartDay:        from,
				EndDay:          to,
				ContinuesBefore: w.Start.Before(bounds.Start),
				ContinuesAfter:  w.End.After(bounds.End),
			})
		}
	}

	slices.SortStableFunc(segments, func(a, b BarSegment) int {
		return cmp.Compare(a.StartDay, b.StartDay)
	})

	// rowEnds[r] is the last day occupied in row r.
	var rowEnds []int
	for i := range segments {
		placed := false
		for r, end := range rowEnds {
			if end < segments[i].StartDay {
				segments[i].Row = r
				rowEnds[r] = segments[i].EndDay
				placed = true
				break
			}
		}
		if !placed {
			segments[i].Row = len(rowEnds)
			rowEnds = append(rowEnds, segments[i].EndDay)
		}
	}
	return segments
}

// SegmentsOn returns the segments covering day.
func SegmentsOn(segments []BarSegment, day int) []BarSegment {
	var out []BarSegment
	for _, seg := range segments {
		if seg.StartDay <= day && day <= seg.EndDay {
			out = append(out, seg)
		}
	}
	return out
}

// SegmentsStartingOn returns the segments whose visible bar begins on day.
func SegmentsStartingOn(segments []BarSegment, day int) []BarSegment {
	var out []BarSegment
	for _, seg := range segments {
		if seg.StartDay == day {
			out = append(out, seg)
		}
	}
	return out
}

// Rows returns the number of rows used by segments.
func Rows(segments []BarSegment) int {
	n := 0
	for _, seg := range segments {
		n = max(n, seg.Row+1)
	}
	return n
}
