package payment

import (
	"context"

	"github.com/igabay/booking-api/internal/model"
)

// CreateIntentRequest is what the gateway needs to open a payment
type CreateIntentRequest struct {
	Amount      int64
	Currency    string
	Reference   string
	Method      model.PaymentMethod
	PayerName   string
	PayerEmail  string
	PayerPhone  string
	RedirectURL string
}

// Gateway abstracts the payment processor. Implementations return intents
// whose Status is one of the model.PaymentStatus values.
type Gateway interface {
	CreateIntent(ctx context.Context, req CreateIntentRequest) (*model.PaymentIntent, error)
	GetIntent(ctx context.Context, id string) (*model.PaymentIntent, error)
}
