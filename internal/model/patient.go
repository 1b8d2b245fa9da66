package model

type PatientStatus string

const (
	PatientStatusActive   PatientStatus = "active"
	PatientStatusInactive PatientStatus = "inactive"
)

type Patient struct {
	Base
	Name   string        `db:"name" json:"name"`
	Email  string        `db:"email" json:"email"`
	Phone  string        `db:"phone" json:"phone,omitempty"`
	Status PatientStatus `db:"status" json:"status"`
}

type CreatePatientRequest struct {
	Name  string `json:"name" validate:"required,max=255"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone" validate:"max=32"`
}

type UpdatePatientRequest struct {
	Name   *string        `json:"name" validate:"omitempty,max=255"`
	Email  *string        `json:"email" validate:"omitempty,email"`
	Phone  *string        `json:"phone" validate:"omitempty,max=32"`
	Status *PatientStatus `json:"status" validate:"omitempty,oneof=active inactive"`
}
