package payment

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/igabay/booking-api/internal/handler"
	"github.com/igabay/booking-api/internal/model"
	"github.com/igabay/booking-api/internal/service/payment"
	"github.com/igabay/booking-api/pkg/validator"
)

// Service is the payment surface the handler depends on
type Service interface {
	CreateIntent(ctx context.Context, req payment.CreateIntentRequest) (*model.PaymentIntent, error)
	GetIntent(ctx context.Context, id string) (*model.PaymentIntent, error)
	WaitForTerminal(ctx context.Context, id string) (*model.PaymentIntent, error)
}

// CostProvider resolves the amount due for an appointment
type CostProvider interface {
	Cost() model.AppointmentCost
}

type Handler struct {
	service  Service
	cost     CostProvider
	validate validator.Validator
}

func NewHandler(service Service, cost CostProvider) *Handler {
	return &Handler{
		service:  service,
		cost:     cost,
		validate: validator.New(),
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	payments := r.Group("/payments")
	{
		payments.POST("", h.CreatePayment)
		payments.GET("/:id", h.GetPayment)
		payments.POST("/:id/wait", h.WaitPayment)
	}
}

func (h *Handler) CreatePayment(c *gin.Context) {
	var req model.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}
	if err := h.validate.Validate(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	cost := h.cost.Cost()
	intent, err := h.service.CreateIntent(c.Request.Context(), payment.CreateIntentRequest{
		Amount:     cost.Total,
		Currency:   cost.Currency,
		Reference:  req.AppointmentID.String(),
		Method:     req.Method,
		PayerName:  req.PayerName,
		PayerEmail: req.PayerEmail,
		PayerPhone: req.PayerPhone,
	})
	if err != nil {
		handler.Error(c, err)
		return
	}

	intent.AppointmentID = req.AppointmentID
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(intent))
}

func (h *Handler) GetPayment(c *gin.Context) {
	intent, err := h.service.GetIntent(c.Request.Context(), c.Param("id"))
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(intent))
}

// WaitPayment blocks until the intent reaches a terminal status or the poll
// budget runs out. Exhaustion is reported as 202 with the last known state.
func (h *Handler) WaitPayment(c *gin.Context) {
	intent, err := h.service.WaitForTerminal(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, payment.ErrPollExhausted) {
			resp := handler.NewSuccessResponse(intent)
			resp.Message = "payment still pending after polling window"
			c.JSON(http.StatusAccepted, resp)
			return
		}
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(intent))
}
