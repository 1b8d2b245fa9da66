package scheduling

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/igabay/booking-api/internal/model"
	apperrors "github.com/igabay/booking-api/pkg/errors"
)

type stubAppointmentRepo struct {
	booked []string
	err    error
}

func (s *stubAppointmentRepo) Create(ctx context.Context, apt *model.Appointment) error {
	return nil
}

func (s *stubAppointmentRepo) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	return nil, nil
}

func (s *stubAppointmentRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status model.AppointmentStatus, cancelReason *string) error {
	return nil
}

func (s *stubAppointmentRepo) List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	return nil, nil
}

func (s *stubAppointmentRepo) BookedTimes(ctx context.Context, clinicID uuid.UUID, date string) ([]string, error) {
	return s.booked, s.err
}

func TestCandidateSlots(t *testing.T) {
	slots := CandidateSlots()
	require.Len(t, slots, 13)

	assert.Equal(t, "09:00", slots[0])
	assert.Equal(t, "17:00", slots[len(slots)-1])

	// the lunch hour is not bookable
	assert.NotContains(t, slots, "12:00")
	assert.NotContains(t, slots, "12:30")
	assert.NotContains(t, slots, "13:00")
	assert.NotContains(t, slots, "13:30")

	// returned slice is a copy
	slots[0] = "00:00"
	assert.Equal(t, "09:00", CandidateSlots()[0])
}

func TestIsCandidateSlot(t *testing.T) {
	assert.True(t, IsCandidateSlot("09:00"))
	assert.True(t, IsCandidateSlot("14:30"))
	assert.False(t, IsCandidateSlot("12:00"))
	assert.False(t, IsCandidateSlot("09:15"))
	assert.False(t, IsCandidateSlot(""))
}

func TestFormatSlot(t *testing.T) {
	assert.Equal(t, "9:00 AM", FormatSlot("09:00"))
	assert.Equal(t, "2:30 PM", FormatSlot("14:30"))
	assert.Equal(t, "5:00 PM", FormatSlot("17:00"))
	assert.Equal(t, "bogus", FormatSlot("bogus"))
}

func TestSlots_MarksBookedTimes(t *testing.T) {
	repo := &stubAppointmentRepo{booked: []string{"10:00:00", "14:30:00"}}
	svc := NewService(repo)

	slots, err := svc.Slots(context.Background(), uuid.New(), "2025-03-10")
	require.NoError(t, err)
	require.Len(t, slots, 13)

	available := 0
	for _, slot := range slots {
		switch slot.Time {
		case "10:00", "14:30":
			assert.False(t, slot.Available, "slot %s should be taken", slot.Time)
		default:
			assert.True(t, slot.Available, "slot %s should be free", slot.Time)
			available++
		}
	}
	assert.Equal(t, 11, available)
}

func TestSlots_AllFreeWhenNothingBooked(t *testing.T) {
	svc := NewService(&stubAppointmentRepo{})

	slots, err := svc.Slots(context.Background(), uuid.New(), "2025-03-10")
	require.NoError(t, err)

	for _, slot := range slots {
		assert.True(t, slot.Available)
	}
}

func TestSlots_RejectsBadDate(t *testing.T) {
	svc := NewService(&stubAppointmentRepo{})

	_, err := svc.Slots(context.Background(), uuid.New(), "10-03-2025")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrBadRequest))
}

func TestSlots_QueryFailureIsAnError(t *testing.T) {
	repo := &stubAppointmentRepo{err: errors.New("connection refused")}
	svc := NewService(repo)

	slots, err := svc.Slots(context.Background(), uuid.New(), "2025-03-10")
	require.Error(t, err)
	assert.Nil(t, slots, "a failed lookup must not read as an empty day")
	assert.True(t, apperrors.IsCode(err, apperrors.ErrUnavailable))
}
