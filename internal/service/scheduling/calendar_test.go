package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/igabay/booking-api/internal/model"
)

func TestMonthGrid_SixFullWeeks(t *testing.T) {
	// March 2025 starts on a Saturday, so the grid opens on Feb 23
	month := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, 3, 5, 12, 0, 0, 0, time.UTC)

	days := MonthGrid(month, time.Time{}, nil, now)
	require.Len(t, days, GridDays)

	assert.Equal(t, time.Date(2025, 2, 23, 0, 0, 0, 0, time.UTC), days[0].Date)
	assert.Equal(t, time.Sunday, days[0].Date.Weekday())
	assert.Equal(t, time.Date(2025, 4, 5, 0, 0, 0, 0, time.UTC), days[len(days)-1].Date)

	// every consecutive pair is exactly one day apart
	for i := 1; i < len(days); i++ {
		assert.Equal(t, days[i-1].Date.AddDate(0, 0, 1), days[i].Date)
	}
}

func TestMonthGrid_StartsOnFirstWhenMonthOpensOnSunday(t *testing.T) {
	// June 2025 starts on a Sunday; no leading days from May
	month := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	days := MonthGrid(month, time.Time{}, nil, now)
	require.Len(t, days, GridDays)
	assert.Equal(t, month, days[0].Date)
	assert.True(t, days[0].IsCurrentMonth)
}

func TestMonthGrid_Flags(t *testing.T) {
	month := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, 3, 5, 15, 30, 0, 0, time.UTC)
	selected := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	days := MonthGrid(month, selected, nil, now)

	byDate := func(y int, m time.Month, d int) CalendarDay {
		target := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		for _, day := range days {
			if day.Date.Equal(target) {
				return day
			}
		}
		t.Fatalf("date %v not in grid", target)
		return CalendarDay{}
	}

	today := byDate(2025, 3, 5)
	assert.True(t, today.IsToday)
	assert.False(t, today.IsPast, "today is not past")
	assert.True(t, today.IsAvailable)

	yesterday := byDate(2025, 3, 4)
	assert.True(t, yesterday.IsPast)
	assert.False(t, yesterday.IsAvailable)

	sel := byDate(2025, 3, 10)
	assert.True(t, sel.IsSelected)

	// days spilled in from February are never available
	spill := byDate(2025, 2, 28)
	assert.False(t, spill.IsCurrentMonth)
	assert.False(t, spill.IsAvailable)
}

func TestMonthGrid_OperatingHoursGateAvailability(t *testing.T) {
	hours := model.OperatingHours{
		"monday":   {Open: "09:00", Close: "17:00"},
		"thursday": {Open: "09:00", Close: "17:00"},
	}
	month := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	days := MonthGrid(month, time.Time{}, hours, now)

	for _, day := range days {
		if !day.IsCurrentMonth || day.IsPast {
			continue
		}
		switch day.Date.Weekday() {
		case time.Monday, time.Thursday:
			assert.True(t, day.IsAvailable, "expected %v open", day.Date)
		default:
			assert.False(t, day.IsAvailable, "expected %v closed", day.Date)
		}
	}
}

func TestMonthGrid_Deterministic(t *testing.T) {
	hours := model.OperatingHours{"monday": {Open: "08:00", Close: "12:00"}}
	month := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, 7, 15, 9, 0, 0, 0, time.UTC)
	selected := time.Date(2025, 7, 21, 0, 0, 0, 0, time.UTC)

	first := MonthGrid(month, selected, hours, now)
	second := MonthGrid(month, selected, hours, now)
	assert.Equal(t, first, second)
}
