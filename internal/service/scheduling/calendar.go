package scheduling

import (
	"time"

	"github.com/igabay/booking-api/internal/model"
)

// GridDays is the fixed size of the month view: six full weeks
const GridDays = 42

// CalendarDay is one cell of the month grid. Derived data only, recomputed
// on every navigation.
type CalendarDay struct {
	Date           time.Time `json:"date"`
	IsCurrentMonth bool      `json:"is_current_month"`
	IsPast         bool      `json:"is_past"`
	IsToday        bool      `json:"is_today"`
	IsSelected     bool      `json:"is_selected"`
	IsAvailable    bool      `json:"is_available"`
}

// MonthGrid builds the 42-day view for the month containing currentMonth,
// starting on the Sunday on or before the 1st. selected may be zero. The
// result is a pure function of its arguments.
func MonthGrid(currentMonth time.Time, selected time.Time, hours model.OperatingHours, now time.Time) []CalendarDay {
	loc := currentMonth.Location()
	first := time.Date(currentMonth.Year(), currentMonth.Month(), 1, 0, 0, 0, 0, loc)
	start := first.AddDate(0, 0, -int(first.Weekday()))

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	days := make([]CalendarDay, 0, GridDays)
	for i := 0; i < GridDays; i++ {
		d := start.AddDate(0, 0, i)
		inMonth := d.Month() == first.Month()
		past := d.Before(today)

		days = append(days, CalendarDay{
			Date:           d,
			IsCurrentMonth: inMonth,
			IsPast:         past,
			IsToday:        d.Equal(today),
			IsSelected:     !selected.IsZero() && sameDate(d, selected),
			IsAvailable:    inMonth && !past && IsOpen(hours, d),
		})
	}
	return days
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
