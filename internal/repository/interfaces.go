package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/igabay/booking-api/internal/model"
)

// ErrSlotTaken is returned by Create when the conditional insert loses to a
// concurrent booking for the same clinic, date and time.
var ErrSlotTaken = errors.New("slot already booked")

// ErrNotFound is the storage-level missing-row error
var ErrNotFound = errors.New("not found")

// All repository interfaces in one file
type (
	ClinicRepository interface {
		Create(ctx context.Context, clinic *model.Clinic) error
		Get(ctx context.Context, id uuid.UUID) (*model.Clinic, error)
		Update(ctx context.Context, clinic *model.Clinic) error
		List(ctx context.Context) ([]*model.Clinic, error)
	}

	PatientRepository interface {
		Create(ctx context.Context, patient *model.Patient) error
		Get(ctx context.Context, id uuid.UUID) (*model.Patient, error)
		Update(ctx context.Context, patient *model.Patient) error
	}

	AppointmentRepository interface {
		// Create performs a conditional insert and returns ErrSlotTaken when
		// an active appointment already claims the slot.
		Create(ctx context.Context, appointment *model.Appointment) error
		Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
		UpdateStatus(ctx context.Context, id uuid.UUID, status model.AppointmentStatus, cancelReason *string) error
		List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error)
		// BookedTimes returns "HH:MM:SS" times of active appointments for a
		// clinic date (status scheduled or confirmed).
		BookedTimes(ctx context.Context, clinicID uuid.UUID, date string) ([]string, error)
	}

	NotificationRepository interface {
		Create(ctx context.Context, notification *model.Notification) error
		Update(ctx context.Context, notification *model.Notification) error
		ListForPatient(ctx context.Context, patientID uuid.UUID, limit int) ([]*model.Notification, error)
		MarkRead(ctx context.Context, id, patientID uuid.UUID) error
		// FetchPending claims up to limit dispatchable notifications
		FetchPending(ctx context.Context, limit int) ([]*model.Notification, error)
	}
)
