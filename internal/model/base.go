package model

import (
	"time"

	"github.com/google/uuid"
)

// Base contains common fields for all models
type Base struct {
	ID        uuid.UUID `json:"id" db:"id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Pagination represents common pagination parameters
type Pagination struct {
	Page     int `json:"page" form:"page"`
	PageSize int `json:"page_size" form:"page_size"`
}

const (
	// DateLayout is the wire format for appointment dates
	DateLayout = "2006-01-02"
	// TimeLayout is the wire format for appointment times
	TimeLayout = "15:04:05"
	// SlotLayout is the minute-precision slot key
	SlotLayout = "15:04"
)
