package scheduling

import (
	"strings"
	"time"

	"github.com/igabay/booking-api/internal/model"
)

// WeekdayName returns the lowercase weekday key used by operating-hours maps
func WeekdayName(t time.Time) string {
	return strings.ToLower(t.Weekday().String())
}

// IsOpen reports whether a clinic takes bookings on the given date.
// No configured schedule means every day is open. A configured schedule
// opens a day only when both sides of its window are present.
func IsOpen(hours model.OperatingHours, date time.Time) bool {
	if len(hours) == 0 {
		return true
	}

	day, ok := hours[WeekdayName(date)]
	if !ok {
		return false
	}
	return day.Open != "" && day.Close != ""
}
