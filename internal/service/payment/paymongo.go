package payment

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/igabay/booking-api/internal/model"
	"github.com/igabay/booking-api/pkg/circuitbreaker"
)

// PayMongoGateway talks to the PayMongo REST API. Wallet payments come back
// with a checkout URL the payer is redirected to; status is then polled.
type PayMongoGateway struct {
	baseURL    string
	secretKey  string
	httpClient *http.Client
	cb         *circuitbreaker.CircuitBreaker
}

type PayMongoConfig struct {
	BaseURL   string
	SecretKey string
	Timeout   time.Duration
}

func NewPayMongoGateway(cfg PayMongoConfig) *PayMongoGateway {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.paymongo.com/v1"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	return &PayMongoGateway{
		baseURL:   cfg.BaseURL,
		secretKey: cfg.SecretKey,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		cb: circuitbreaker.NewCircuitBreaker(circuitbreaker.Settings{
			Name:        "paymongo",
			MaxFailures: 5,
			Timeout:     30 * time.Second,
		}),
	}
}

type apiIntent struct {
	Data struct {
		ID         string `json:"id"`
		Attributes struct {
			Amount           int64  `json:"amount"`
			Currency         string `json:"currency"`
			Status           string `json:"status"`
			Description      string `json:"description"`
			LastPaymentError *struct {
				Message string `json:"message"`
			} `json:"last_payment_error"`
			NextAction *struct {
				Redirect struct {
					URL string `json:"url"`
				} `json:"redirect"`
			} `json:"next_action"`
		} `json:"attributes"`
	} `json:"data"`
}

func (g *PayMongoGateway) CreateIntent(ctx context.Context, req CreateIntentRequest) (*model.PaymentIntent, error) {
	methodType := "card"
	if req.Method == model.PaymentMethodWallet {
		methodType = "gcash"
	}

	payload := map[string]interface{}{
		"data": map[string]interface{}{
			"attributes": map[string]interface{}{
				"amount":                 req.Amount * 100, // centavos
				"currency":               req.Currency,
				"description":            req.Reference,
				"payment_method_allowed": []string{methodType},
				"billing": map[string]string{
					"name":  req.PayerName,
					"email": req.PayerEmail,
					"phone": req.PayerPhone,
				},
			},
		},
	}

	var out apiIntent
	if err := g.do(ctx, http.MethodPost, "/payment_intents", payload, &out); err != nil {
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}
	return g.toIntent(&out, req.Method), nil
}

func (g *PayMongoGateway) GetIntent(ctx context.Context, id string) (*model.PaymentIntent, error) {
	var out apiIntent
	if err := g.do(ctx, http.MethodGet, "/payment_intents/"+id, nil, &out); err != nil {
		return nil, fmt.Errorf("failed to get payment intent: %w", err)
	}
	return g.toIntent(&out, ""), nil
}

func (g *PayMongoGateway) do(ctx context.Context, method, path string, payload, out interface{}) error {
	return g.cb.Execute(func() error {
		var body io.Reader
		if payload != nil {
			raw, err := json.Marshal(payload)
			if err != nil {
				return fmt.Errorf("failed to marshal payload: %w", err)
			}
			body = bytes.NewReader(raw)
		}

		req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, body)
		if err != nil {
			return fmt.Errorf("failed to build request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Basic "+base64.StdEncoding.EncodeToString([]byte(g.secretKey+":")))

		resp, err := g.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("request failed: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 400 {
			raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			return fmt.Errorf("gateway returned %d: %s", resp.StatusCode, raw)
		}

		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
		return nil
	})
}

func (g *PayMongoGateway) toIntent(raw *apiIntent, method model.PaymentMethod) *model.PaymentIntent {
	intent := &model.PaymentIntent{
		ID:        raw.Data.ID,
		Amount:    raw.Data.Attributes.Amount / 100,
		Currency:  raw.Data.Attributes.Currency,
		Method:    method,
		Status:    mapStatus(raw.Data.Attributes.Status),
		CreatedAt: time.Now(),
	}
	if na := raw.Data.Attributes.NextAction; na != nil {
		intent.CheckoutURL = na.Redirect.URL
	}
	if le := raw.Data.Attributes.LastPaymentError; le != nil {
		intent.FailureReason = le.Message
	}
	return intent
}

func mapStatus(s string) model.PaymentStatus {
	switch s {
	case "succeeded", "paid":
		return model.PaymentStatusSucceeded
	case "awaiting_next_action":
		return model.PaymentStatusAwaitingNextAction
	case "cancelled", "canceled":
		return model.PaymentStatusCanceled
	case "failed":
		return model.PaymentStatusFailed
	default:
		return model.PaymentStatusProcessing
	}
}
