package notification

import (
	"fmt"
	"time"

	"github.com/igabay/booking-api/internal/model"
	"github.com/igabay/booking-api/internal/service/scheduling"
)

// ComposeBookingConfirmation renders the confirmation message for a booked
// appointment: clinic name, long-form date, 12-hour time.
func ComposeBookingConfirmation(clinicName, date, slot string) (subject, content string) {
	displayDate := date
	if d, err := time.Parse(model.DateLayout, date); err == nil {
		displayDate = d.Format("Monday, January 2, 2006")
	}

	subject = "Appointment confirmed"
	content = fmt.Sprintf(
		"Your appointment at %s on %s at %s has been booked.",
		clinicName, displayDate, scheduling.FormatSlot(slot),
	)
	return subject, content
}

// ComposeCancellation renders the cancellation message
func ComposeCancellation(clinicName, date, slot, reason string) (subject, content string) {
	displayDate := date
	if d, err := time.Parse(model.DateLayout, date); err == nil {
		displayDate = d.Format("Monday, January 2, 2006")
	}

	subject = "Appointment cancelled"
	content = fmt.Sprintf(
		"Your appointment at %s on %s at %s has been cancelled.",
		clinicName, displayDate, scheduling.FormatSlot(slot),
	)
	if reason != "" {
		content = fmt.Sprintf("%s Reason: %s", content, reason)
	}
	return subject, content
}
