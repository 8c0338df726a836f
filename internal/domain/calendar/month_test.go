package calendar_test

import (
	"testing"
	"time"

	"github.com/ganot/playbook/internal/domain/calendar"
	"github.com/stretchr/testify/require"
)

func TestNewMonth(t *testing.T) {
	m, err := calendar.NewMonth(2026, 3)
	require.NoError(t, err)
	require.Equal(t, "2026-03", m.String())

	for _, tc := range []struct{ year, month int }{{2026, 0}, {2026, 13}, {0, 5}} {
		_, err := calendar.NewMonth(tc.year, tc.month)
		require.ErrorIs(t, err, calendar.ErrInvalidMonth)
	}
}

func TestMonthDays(t *testing.T) {
	tests := []struct {
		year, month, days int
	}{
		{2026, 1, 31},
		{2026, 2, 28},
		{2024, 2, 29},
		{2000, 2, 29},
		{1900, 2, 28},
		{2026, 4, 30},
		{2026, 12, 31},
	}
	for _, tt := range tests {
		m, err := calendar.NewMonth(tt.year, tt.month)
		require.NoError(t, err)
		require.Equal(t, tt.days, m.Days(), m.String())
		require.Equal(t, tt.days, m.Last().Day)
	}
}

func TestMonthNavigation(t *testing.T) {
	jan, _ := calendar.NewMonth(2026, 1)
	require.Equal(t, calendar.Month{Year: 2025, Month: time.December}, jan.Prev())
	dec, _ := calendar.NewMonth(2025, 12)
	require.Equal(t, jan, dec.Next())

	require.Equal(t, time.Sunday, calendar.Month{Year: 2026, Month: time.March}.FirstWeekday())
	require.Equal(t, time.Thursday, calendar.Month{Year: 2026, Month: time.January}.FirstWeekday())
}
