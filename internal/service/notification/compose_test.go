package notification

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComposeBookingConfirmation(t *testing.T) {
	subject, content := ComposeBookingConfirmation("Santos Family Clinic", "2025-03-10", "14:00")

	assert.Equal(t, "Appointment confirmed", subject)
	assert.Equal(t,
		"Your appointment at Santos Family Clinic on Monday, March 10, 2025 at 2:00 PM has been booked.",
		content,
	)
}

func TestComposeBookingConfirmation_UnparseableDatePassedThrough(t *testing.T) {
	_, content := ComposeBookingConfirmation("Clinic", "soon", "09:00")
	assert.Contains(t, content, "on soon at 9:00 AM")
}

func TestComposeCancellation(t *testing.T) {
	subject, content := ComposeCancellation("Santos Family Clinic", "2025-03-10", "14:00", "schedule conflict")

	assert.Equal(t, "Appointment cancelled", subject)
	assert.Equal(t,
		"Your appointment at Santos Family Clinic on Monday, March 10, 2025 at 2:00 PM has been cancelled. Reason: schedule conflict",
		content,
	)
}

func TestComposeCancellation_NoReason(t *testing.T) {
	_, content := ComposeCancellation("Clinic", "2025-03-10", "14:00", "")
	assert.NotContains(t, content, "Reason:")
}
