package payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/igabay/booking-api/internal/model"
	apperrors "github.com/igabay/booking-api/pkg/errors"
	"github.com/igabay/booking-api/pkg/poller"
)

// ErrPollExhausted means the intent never reached a terminal status within
// the attempt cap. Callers must treat it as its own outcome, not a failure
// of the payment itself.
var ErrPollExhausted = errors.New("payment status polling exhausted")

type Service struct {
	gateway Gateway
	poller  *poller.Poller
}

func NewService(gateway Gateway, p *poller.Poller) *Service {
	if p == nil {
		p = poller.New(poller.Config{})
	}
	return &Service{
		gateway: gateway,
		poller:  p,
	}
}

func (s *Service) CreateIntent(ctx context.Context, req CreateIntentRequest) (*model.PaymentIntent, error) {
	intent, err := s.gateway.CreateIntent(ctx, req)
	if err != nil {
		return nil, apperrors.Unavailable("failed to create payment", err)
	}
	return intent, nil
}

func (s *Service) GetIntent(ctx context.Context, id string) (*model.PaymentIntent, error) {
	intent, err := s.gateway.GetIntent(ctx, id)
	if err != nil {
		return nil, apperrors.Unavailable("failed to get payment", err)
	}
	return intent, nil
}

// WaitForTerminal polls the gateway until the intent reaches a terminal
// status, the context is canceled, or the attempt cap runs out. Exhaustion
// returns the last observed intent alongside ErrPollExhausted.
func (s *Service) WaitForTerminal(ctx context.Context, id string) (*model.PaymentIntent, error) {
	var last *model.PaymentIntent

	outcome, err := s.poller.Run(ctx, func(ctx context.Context, attempt int) (bool, error) {
		intent, err := s.gateway.GetIntent(ctx, id)
		if err != nil {
			return false, fmt.Errorf("poll attempt %d: %w", attempt, err)
		}
		last = intent
		return intent.Status.IsTerminal(), nil
	})
	if err != nil {
		return last, apperrors.Unavailable("failed to poll payment status", err)
	}

	switch outcome {
	case poller.Done:
		return last, nil
	case poller.MaxAttemptsReached:
		return last, ErrPollExhausted
	default:
		return last, ctx.Err()
	}
}
