package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/igabay/booking-api/internal/model"
	"github.com/igabay/booking-api/internal/repository"
	"github.com/igabay/booking-api/internal/service/notification"
	"github.com/igabay/booking-api/internal/service/scheduling"
	apperrors "github.com/igabay/booking-api/pkg/errors"
	"github.com/igabay/booking-api/pkg/redislock"
)

// ClinicGetter is the slice of the clinic service the booking flow needs
type ClinicGetter interface {
	GetClinic(ctx context.Context, id uuid.UUID) (*model.Clinic, error)
}

type Service struct {
	repo        repository.AppointmentRepository
	patientRepo repository.PatientRepository
	clinics     ClinicGetter
	notifSvc    notification.Service
	locker      redislock.SlotLocker
	fees        FeeSchedule
}

func NewService(
	repo repository.AppointmentRepository,
	patientRepo repository.PatientRepository,
	clinics ClinicGetter,
	notifSvc notification.Service,
	locker redislock.SlotLocker,
	fees FeeSchedule,
) *Service {
	return &Service{
		repo:        repo,
		patientRepo: patientRepo,
		clinics:     clinics,
		notifSvc:    notifSvc,
		locker:      locker,
		fees:        fees,
	}
}

// Book validates the request, claims the slot under a short Redis hold and
// a conditional insert, and fires the confirmation notification. The insert
// is the exclusion guarantee; the hold only narrows the race window so most
// concurrent attempts fail fast without touching the database.
func (s *Service) Book(ctx context.Context, req *model.BookingRequest) (*model.BookingResult, error) {
	clinic, err := s.validateBooking(ctx, req)
	if err != nil {
		return nil, err
	}

	apt := &model.Appointment{
		ClinicID:        req.ClinicID,
		PatientID:       req.PatientID,
		AppointmentDate: req.Date,
		AppointmentTime: req.Time + ":00",
		AppointmentType: req.AppointmentType,
		Status:          model.AppointmentStatusScheduled,
		PatientNotes:    composeNotes(req.Notes, req.Services),
	}

	err = s.locker.WithSlotHold(ctx, req.ClinicID, req.Date, req.Time, func(ctx context.Context) error {
		return s.repo.Create(ctx, apt)
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrSlotTaken), errors.Is(err, redislock.ErrNotAcquired):
			return nil, apperrors.Conflict("slot is no longer available", err)
		default:
			return nil, apperrors.Unavailable("failed to book appointment", err)
		}
	}

	// Best effort from here on: the booking stands even if notifications fail.
	s.notifyBooked(ctx, clinic, apt)

	return &model.BookingResult{
		Appointment: apt,
		Cost:        s.fees.Cost(),
	}, nil
}

func (s *Service) GetAppointment(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	apt, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("appointment", err)
		}
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return apt, nil
}

func (s *Service) ListAppointments(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	appointments, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}

// CancelAppointment moves an active appointment to cancelled. Appointments
// are never deleted; terminal states only.
func (s *Service) CancelAppointment(ctx context.Context, id uuid.UUID, reason string) error {
	apt, err := s.GetAppointment(ctx, id)
	if err != nil {
		return err
	}

	switch apt.Status {
	case model.AppointmentStatusCancelled:
		return apperrors.BadRequest("appointment is already cancelled", nil)
	case model.AppointmentStatusCompleted, model.AppointmentStatusNoShow:
		return apperrors.BadRequest("cannot cancel a closed appointment", nil)
	}

	if err := s.repo.UpdateStatus(ctx, id, model.AppointmentStatusCancelled, &reason); err != nil {
		return fmt.Errorf("failed to cancel appointment: %w", err)
	}

	if clinic, cerr := s.clinics.GetClinic(ctx, apt.ClinicID); cerr == nil {
		subject, content := notification.ComposeCancellation(clinic.Name, apt.AppointmentDate, apt.AppointmentTime[:5], reason)
		s.send(ctx, apt.PatientID, subject, content)
	}

	return nil
}

func (s *Service) validateBooking(ctx context.Context, req *model.BookingRequest) (*model.Clinic, error) {
	now := time.Now()
	// parse in the server's location so today's date isn't rejected as past
	date, err := time.ParseInLocation(model.DateLayout, req.Date, now.Location())
	if err != nil {
		return nil, apperrors.BadRequest("invalid date format", err)
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if date.Before(today) {
		return nil, apperrors.BadRequest("cannot book a past date", nil)
	}

	if !scheduling.IsCandidateSlot(req.Time) {
		return nil, apperrors.BadRequest("time is not a bookable slot", nil)
	}

	clinic, err := s.clinics.GetClinic(ctx, req.ClinicID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("clinic", err)
		}
		return nil, apperrors.Unavailable("failed to load clinic", err)
	}

	if clinic.Status != model.ClinicStatusActive {
		return nil, apperrors.BadRequest("clinic is not accepting bookings", nil)
	}

	if !scheduling.IsOpen(clinic.OperatingHours, date) {
		return nil, apperrors.BadRequest("clinic is closed on that day", nil)
	}

	return clinic, nil
}

func (s *Service) notifyBooked(ctx context.Context, clinic *model.Clinic, apt *model.Appointment) {
	subject, content := notification.ComposeBookingConfirmation(clinic.Name, apt.AppointmentDate, apt.AppointmentTime[:5])
	s.send(ctx, apt.PatientID, subject, content)

	if patient, err := s.patientRepo.Get(ctx, apt.PatientID); err == nil && patient.Email != "" {
		if err := s.notifSvc.Send(ctx, &model.Notification{
			PatientID: apt.PatientID,
			Channel:   model.NotificationChannelEmail,
			Subject:   subject,
			Content:   content,
			Recipient: patient.Email,
		}); err != nil {
			log.Warn().Err(err).Str("appointment_id", apt.ID.String()).Msg("failed to queue email notification")
		}
	}
}

func (s *Service) send(ctx context.Context, patientID uuid.UUID, subject, content string) {
	if err := s.notifSvc.Send(ctx, &model.Notification{
		PatientID: patientID,
		Channel:   model.NotificationChannelInApp,
		Subject:   subject,
		Content:   content,
	}); err != nil {
		log.Warn().Err(err).Str("patient_id", patientID.String()).Msg("failed to queue notification")
	}
}

func composeNotes(notes string, services []string) string {
	if len(services) == 0 {
		return notes
	}
	line := "Services: " + strings.Join(services, ", ")
	if notes == "" {
		return line
	}
	return notes + "\n" + line
}
