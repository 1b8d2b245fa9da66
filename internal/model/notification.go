package model

import (
	"time"

	"github.com/google/uuid"
)

type NotificationStatus string

const (
	NotificationStatusPending  NotificationStatus = "pending"
	NotificationStatusSent     NotificationStatus = "sent"
	NotificationStatusFailed   NotificationStatus = "failed"
	NotificationStatusRetrying NotificationStatus = "retrying"
)

type NotificationChannel string

const (
	NotificationChannelInApp NotificationChannel = "in_app"
	NotificationChannelEmail NotificationChannel = "email"
)

type Notification struct {
	Base
	PatientID   uuid.UUID           `db:"patient_id" json:"patient_id"`
	Channel     NotificationChannel `db:"channel" json:"channel"`
	Subject     string              `db:"subject" json:"subject"`
	Content     string              `db:"content" json:"content"`
	Recipient   string              `db:"recipient" json:"recipient,omitempty"`
	Status      NotificationStatus  `db:"status" json:"status"`
	Read        bool                `db:"read" json:"read"`
	RetryCount  int                 `db:"retry_count" json:"retry_count"`
	LastError   string              `db:"last_error" json:"last_error,omitempty"`
	NextRetryAt *time.Time          `db:"next_retry_at" json:"next_retry_at,omitempty"`
	SentAt      *time.Time          `db:"sent_at" json:"sent_at,omitempty"`
}

// NotificationEvent is the in-app fan-out payload published to the broker
type NotificationEvent struct {
	ID             uuid.UUID `json:"id"`
	NotificationID uuid.UUID `json:"notification_id"`
	PatientID      uuid.UUID `json:"patient_id"`
	Type           string    `json:"type"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"created_at"`
}
