package model

import (
	"time"

	"github.com/google/uuid"
)

type PaymentMethod string

const (
	PaymentMethodNone   PaymentMethod = "none"
	PaymentMethodCard   PaymentMethod = "card"
	PaymentMethodWallet PaymentMethod = "wallet"
)

type PaymentStatus string

const (
	PaymentStatusProcessing         PaymentStatus = "processing"
	PaymentStatusAwaitingNextAction PaymentStatus = "awaiting_next_action"
	PaymentStatusSucceeded          PaymentStatus = "succeeded"
	PaymentStatusFailed             PaymentStatus = "failed"
	PaymentStatusCanceled           PaymentStatus = "canceled"
)

// IsTerminal reports whether the status ends the payment lifecycle
func (s PaymentStatus) IsTerminal() bool {
	switch s {
	case PaymentStatusSucceeded, PaymentStatusFailed, PaymentStatusCanceled:
		return true
	}
	return false
}

// PaymentIntent mirrors the gateway-side intent, keyed by the gateway's ID
type PaymentIntent struct {
	ID            string        `json:"id"`
	AppointmentID uuid.UUID     `json:"appointment_id"`
	Amount        int64         `json:"amount"`
	Currency      string        `json:"currency"`
	Method        PaymentMethod `json:"method"`
	Status        PaymentStatus `json:"status"`
	CheckoutURL   string        `json:"checkout_url,omitempty"`
	FailureReason string        `json:"failure_reason,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
}

type CreatePaymentRequest struct {
	AppointmentID uuid.UUID     `json:"appointment_id" validate:"required"`
	Method        PaymentMethod `json:"method" validate:"required,oneof=card wallet"`
	PayerName     string        `json:"payer_name" validate:"required,max=255"`
	PayerEmail    string        `json:"payer_email" validate:"required,email"`
	PayerPhone    string        `json:"payer_phone" validate:"max=32"`
}
