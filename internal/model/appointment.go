package model

import (
	"github.com/google/uuid"
)

type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "scheduled"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
	AppointmentStatusNoShow    AppointmentStatus = "no_show"
)

type AppointmentType string

const (
	AppointmentTypeConsultation AppointmentType = "consultation"
	AppointmentTypeFollowup     AppointmentType = "followup"
	AppointmentTypeCheckup      AppointmentType = "checkup"
)

// Appointment holds one booked slot. Dates and times travel as strings:
// appointment_date "YYYY-MM-DD", appointment_time "HH:MM:SS".
type Appointment struct {
	Base
	ClinicID        uuid.UUID         `db:"clinic_id" json:"clinic_id"`
	PatientID       uuid.UUID         `db:"patient_id" json:"patient_id"`
	AppointmentDate string            `db:"appointment_date" json:"appointment_date"`
	AppointmentTime string            `db:"appointment_time" json:"appointment_time"`
	AppointmentType AppointmentType   `db:"appointment_type" json:"appointment_type"`
	Status          AppointmentStatus `db:"status" json:"status"`
	PatientNotes    string            `db:"patient_notes" json:"patient_notes,omitempty"`
	CancelReason    *string           `db:"cancel_reason" json:"cancel_reason,omitempty"`
}

// BookingRequest is the booking payload. Time is the minute-precision slot
// ("HH:MM"); the seconds suffix is appended before persisting.
type BookingRequest struct {
	ClinicID        uuid.UUID       `json:"clinic_id" validate:"required"`
	PatientID       uuid.UUID       `json:"patient_id" validate:"required"`
	Date            string          `json:"date" validate:"required,datetime=2006-01-02"`
	Time            string          `json:"time" validate:"required,datetime=15:04"`
	AppointmentType AppointmentType `json:"appointment_type" validate:"required,oneof=consultation followup checkup"`
	Notes           string          `json:"notes" validate:"max=1000"`
	Services        []string        `json:"services"`
	PaymentMethod   PaymentMethod   `json:"payment_method" validate:"omitempty,oneof=none card wallet"`
}

// AppointmentCost is a computed value, never persisted on its own
type AppointmentCost struct {
	ConsultationFee int64  `json:"consultation_fee"`
	BookingFee      int64  `json:"booking_fee"`
	Total           int64  `json:"total"`
	Currency        string `json:"currency"`
}

// BookingResult is what the booking flow hands back to the caller
type BookingResult struct {
	Appointment *Appointment    `json:"appointment"`
	Cost        AppointmentCost `json:"cost"`
	Payment     *PaymentIntent  `json:"payment,omitempty"`
}

type AppointmentFilters struct {
	ClinicID  uuid.UUID
	PatientID uuid.UUID
	Status    AppointmentStatus
	DateFrom  string
	DateTo    string
}
