package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

type ClinicStatus string

const (
	ClinicStatusActive   ClinicStatus = "active"
	ClinicStatusInactive ClinicStatus = "inactive"
)

// DayHours is a single weekday's opening window, times as "HH:MM" strings.
// A day with either side empty counts as closed.
type DayHours struct {
	Open  string `json:"open"`
	Close string `json:"close"`
}

// OperatingHours maps lowercase weekday names ("sunday".."saturday") to
// opening windows. A nil or empty map means no schedule is configured and
// every day is treated as open.
type OperatingHours map[string]DayHours

// Value implements driver.Valuer for the JSONB column
func (h OperatingHours) Value() (driver.Value, error) {
	if h == nil {
		return nil, nil
	}
	return json.Marshal(h)
}

// Scan implements sql.Scanner for the JSONB column
func (h *OperatingHours) Scan(src interface{}) error {
	if src == nil {
		*h = nil
		return nil
	}
	b, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("unexpected operating hours type %T", src)
	}
	return json.Unmarshal(b, h)
}

type Clinic struct {
	Base
	Name            string         `db:"name" json:"name"`
	Address         string         `db:"address" json:"address"`
	Phone           string         `db:"phone" json:"phone"`
	Email           string         `db:"email" json:"email,omitempty"`
	Status          ClinicStatus   `db:"status" json:"status"`
	OperatingHours  OperatingHours `db:"operating_hours" json:"operating_hours,omitempty"`
	ConsultationFee int64          `db:"consultation_fee" json:"consultation_fee"`
	Latitude        *float64       `db:"latitude" json:"latitude,omitempty"`
	Longitude       *float64       `db:"longitude" json:"longitude,omitempty"`
}

type CreateClinicRequest struct {
	Name            string         `json:"name" validate:"required,max=255"`
	Address         string         `json:"address" validate:"required,max=500"`
	Phone           string         `json:"phone" validate:"max=32"`
	Email           string         `json:"email" validate:"omitempty,email"`
	OperatingHours  OperatingHours `json:"operating_hours"`
	ConsultationFee int64          `json:"consultation_fee" validate:"min=0"`
	Latitude        *float64       `json:"latitude"`
	Longitude       *float64       `json:"longitude"`
}

type UpdateClinicRequest struct {
	Name            *string         `json:"name" validate:"omitempty,max=255"`
	Address         *string         `json:"address" validate:"omitempty,max=500"`
	Phone           *string         `json:"phone" validate:"omitempty,max=32"`
	Email           *string         `json:"email" validate:"omitempty,email"`
	Status          *ClinicStatus   `json:"status" validate:"omitempty,oneof=active inactive"`
	OperatingHours  *OperatingHours `json:"operating_hours"`
	ConsultationFee *int64          `json:"consultation_fee" validate:"omitempty,min=0"`
}
