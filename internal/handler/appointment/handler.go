package appointment

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/igabay/booking-api/internal/handler"
	"github.com/igabay/booking-api/internal/model"
	"github.com/igabay/booking-api/internal/service/payment"
	apperrors "github.com/igabay/booking-api/pkg/errors"
	"github.com/igabay/booking-api/pkg/validator"
)

// BookingService is the booking surface the handler depends on
type BookingService interface {
	Book(ctx context.Context, req *model.BookingRequest) (*model.BookingResult, error)
	GetAppointment(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
	ListAppointments(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error)
	CancelAppointment(ctx context.Context, id uuid.UUID, reason string) error
}

// PaymentCreator opens a payment intent for a booked appointment
type PaymentCreator interface {
	CreateIntent(ctx context.Context, req payment.CreateIntentRequest) (*model.PaymentIntent, error)
}

type Handler struct {
	service  BookingService
	payments PaymentCreator
	validate validator.Validator
}

func NewHandler(service BookingService, payments PaymentCreator) *Handler {
	return &Handler{
		service:  service,
		payments: payments,
		validate: validator.New(),
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	appointments := r.Group("/appointments")
	{
		appointments.POST("", h.Book)
		appointments.GET("", h.ListAppointments)
		appointments.GET("/:id", h.GetAppointment)
		appointments.DELETE("/:id", h.CancelAppointment)
	}
}

// Book runs the booking flow: create the appointment, then open a payment
// intent when one was requested. A failed payment setup does not undo the
// booking; it is reported back so the caller can retry payment.
// The appointment is always booked for the token's patient.
func (h *Handler) Book(c *gin.Context) {
	authID, ok := handler.AuthPatientID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("unauthorized"))
		return
	}

	var req model.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}
	if req.PatientID == uuid.Nil {
		req.PatientID = authID
	} else if req.PatientID != authID {
		handler.Error(c, apperrors.Forbidden("cannot book for another patient", nil))
		return
	}
	if err := h.validate.Validate(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	result, err := h.service.Book(c.Request.Context(), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	resp := handler.NewSuccessResponse(result)

	if req.PaymentMethod == model.PaymentMethodCard || req.PaymentMethod == model.PaymentMethodWallet {
		intent, perr := h.payments.CreateIntent(c.Request.Context(), payment.CreateIntentRequest{
			Amount:    result.Cost.Total,
			Currency:  result.Cost.Currency,
			Reference: result.Appointment.ID.String(),
			Method:    req.PaymentMethod,
		})
		if perr != nil {
			log.Warn().Err(perr).
				Str("appointment_id", result.Appointment.ID.String()).
				Msg("failed to open payment intent")
			resp.Message = "appointment booked; payment setup failed, retry via /payments"
		} else {
			intent.AppointmentID = result.Appointment.ID
			result.Payment = intent
		}
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *Handler) GetAppointment(c *gin.Context) {
	authID, ok := handler.AuthPatientID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("unauthorized"))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid appointment ID"))
		return
	}

	appointment, err := h.service.GetAppointment(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}
	// appointments of other patients read as absent
	if appointment.PatientID != authID {
		handler.Error(c, apperrors.NotFound("appointment", nil))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(appointment))
}

// ListAppointments is always scoped to the token's patient; a patient_id
// filter naming anyone else is rejected.
func (h *Handler) ListAppointments(c *gin.Context) {
	authID, ok := handler.AuthPatientID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("unauthorized"))
		return
	}

	filters := &model.AppointmentFilters{}

	if id := c.Query("clinic_id"); id != "" {
		clinicID, err := uuid.Parse(id)
		if err != nil {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid clinic ID"))
			return
		}
		filters.ClinicID = clinicID
	}

	if id := c.Query("patient_id"); id != "" {
		patientID, err := uuid.Parse(id)
		if err != nil {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid patient ID"))
			return
		}
		if patientID != authID {
			handler.Error(c, apperrors.Forbidden("cannot list appointments for another patient", nil))
			return
		}
	}
	filters.PatientID = authID

	if status := c.Query("status"); status != "" {
		filters.Status = model.AppointmentStatus(status)
	}

	filters.DateFrom = c.Query("date_from")
	filters.DateTo = c.Query("date_to")

	appointments, err := h.service.ListAppointments(c.Request.Context(), filters)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(appointments))
}

func (h *Handler) CancelAppointment(c *gin.Context) {
	authID, ok := handler.AuthPatientID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("unauthorized"))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid appointment ID"))
		return
	}

	appointment, err := h.service.GetAppointment(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}
	if appointment.PatientID != authID {
		handler.Error(c, apperrors.NotFound("appointment", nil))
		return
	}

	var body struct {
		Reason string `json:"reason"`
	}
	_ = c.ShouldBindJSON(&body)

	if err := h.service.CancelAppointment(c.Request.Context(), id, body.Reason); err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}
