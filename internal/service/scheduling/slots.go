package scheduling

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/igabay/booking-api/internal/model"
	"github.com/igabay/booking-api/internal/repository"
	apperrors "github.com/igabay/booking-api/pkg/errors"
)

// candidateSlots is the fixed slot list: 30-minute steps through the morning
// and afternoon, lunch hour left out.
var candidateSlots = []string{
	"09:00", "09:30", "10:00", "10:30", "11:00", "11:30",
	"14:00", "14:30", "15:00", "15:30", "16:00", "16:30", "17:00",
}

// TimeSlot is one candidate appointment time for a clinic and date
type TimeSlot struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
	Formatted string `json:"formatted"`
}

// CandidateSlots returns a copy of the fixed slot list
func CandidateSlots() []string {
	out := make([]string, len(candidateSlots))
	copy(out, candidateSlots)
	return out
}

// IsCandidateSlot reports whether t ("HH:MM") is a bookable slot time
func IsCandidateSlot(t string) bool {
	for _, s := range candidateSlots {
		if s == t {
			return true
		}
	}
	return false
}

// FormatSlot renders an "HH:MM" slot as a 12-hour display string
func FormatSlot(slot string) string {
	t, err := time.Parse(model.SlotLayout, slot)
	if err != nil {
		return slot
	}
	return t.Format("3:04 PM")
}

type Service struct {
	repo repository.AppointmentRepository
}

func NewService(repo repository.AppointmentRepository) *Service {
	return &Service{repo: repo}
}

// Slots resolves availability for every candidate slot on a clinic date.
// A failed lookup is an error, not an empty list: callers must be able to
// tell "no slots" apart from "couldn't load slots".
func (s *Service) Slots(ctx context.Context, clinicID uuid.UUID, date string) ([]TimeSlot, error) {
	if _, err := time.Parse(model.DateLayout, date); err != nil {
		return nil, apperrors.BadRequest("invalid date format", err)
	}

	booked, err := s.repo.BookedTimes(ctx, clinicID, date)
	if err != nil {
		return nil, apperrors.Unavailable("failed to load booked slots", fmt.Errorf("booked times for clinic %s on %s: %w", clinicID, date, err))
	}

	taken := make(map[string]struct{}, len(booked))
	for _, t := range booked {
		// minute precision, with or without the seconds suffix
		if len(t) > len(model.SlotLayout) {
			t = t[:len(model.SlotLayout)]
		}
		taken[t] = struct{}{}
	}

	slots := make([]TimeSlot, 0, len(candidateSlots))
	for _, c := range candidateSlots {
		_, isTaken := taken[c]
		slots = append(slots, TimeSlot{
			Time:      c,
			Available: !isTaken,
			Formatted: FormatSlot(c),
		})
	}
	return slots, nil
}

// Calendar builds the month grid for a clinic, gating availability on its
// operating hours.
func (s *Service) Calendar(clinic *model.Clinic, month time.Time, selected time.Time, now time.Time) []CalendarDay {
	var hours model.OperatingHours
	if clinic != nil {
		hours = clinic.OperatingHours
	}
	return MonthGrid(month, selected, hours, now)
}
