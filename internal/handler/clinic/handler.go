package clinic

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/igabay/booking-api/internal/handler"
	"github.com/igabay/booking-api/internal/model"
	"github.com/igabay/booking-api/internal/service/scheduling"
	"github.com/igabay/booking-api/pkg/validator"
)

// Service is the clinic surface the handler depends on
type Service interface {
	CreateClinic(ctx context.Context, req *model.CreateClinicRequest) (*model.Clinic, error)
	GetClinic(ctx context.Context, id uuid.UUID) (*model.Clinic, error)
	UpdateClinic(ctx context.Context, id uuid.UUID, req *model.UpdateClinicRequest) (*model.Clinic, error)
	ListClinics(ctx context.Context) ([]*model.Clinic, error)
}

// Availability is the slot-resolution surface the handler depends on
type Availability interface {
	Slots(ctx context.Context, clinicID uuid.UUID, date string) ([]scheduling.TimeSlot, error)
	Calendar(clinic *model.Clinic, month, selected, now time.Time) []scheduling.CalendarDay
}

type Handler struct {
	service      Service
	availability Availability
	validate     validator.Validator
}

func NewHandler(service Service, availability Availability) *Handler {
	return &Handler{
		service:      service,
		availability: availability,
		validate:     validator.New(),
	}
}

// RegisterRoutes wires the public read surface: discovery, calendars and
// slot availability are browsable without a token.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	clinics := r.Group("/clinics")
	{
		clinics.GET("", h.ListClinics)
		clinics.GET("/:id", h.GetClinic)
		clinics.GET("/:id/calendar", h.GetCalendar)
		clinics.GET("/:id/slots", h.GetSlots)
	}
}

// RegisterWriteRoutes wires the authenticated write surface
func (h *Handler) RegisterWriteRoutes(r *gin.RouterGroup) {
	clinics := r.Group("/clinics")
	{
		clinics.POST("", h.CreateClinic)
		clinics.PUT("/:id", h.UpdateClinic)
	}
}

func (h *Handler) CreateClinic(c *gin.Context) {
	var req model.CreateClinicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}
	if err := h.validate.Validate(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	clinic, err := h.service.CreateClinic(c.Request.Context(), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(clinic))
}

func (h *Handler) GetClinic(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid clinic ID"))
		return
	}

	clinic, err := h.service.GetClinic(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(clinic))
}

func (h *Handler) UpdateClinic(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid clinic ID"))
		return
	}

	var req model.UpdateClinicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}
	if err := h.validate.Validate(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	clinic, err := h.service.UpdateClinic(c.Request.Context(), id, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(clinic))
}

func (h *Handler) ListClinics(c *gin.Context) {
	clinics, err := h.service.ListClinics(c.Request.Context())
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(clinics))
}

// GetCalendar returns the 6-week month grid with per-day availability
func (h *Handler) GetCalendar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid clinic ID"))
		return
	}

	month, err := time.Parse("2006-01", c.Query("month"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid month, expected YYYY-MM"))
		return
	}

	var selected time.Time
	if sel := c.Query("selected"); sel != "" {
		selected, err = time.Parse(model.DateLayout, sel)
		if err != nil {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid selected date, expected YYYY-MM-DD"))
			return
		}
	}

	clinic, err := h.service.GetClinic(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}

	days := h.availability.Calendar(clinic, month, selected, time.Now())
	c.JSON(http.StatusOK, handler.NewSuccessResponse(days))
}

// GetSlots returns per-slot availability for one clinic date
func (h *Handler) GetSlots(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid clinic ID"))
		return
	}

	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("date is required"))
		return
	}

	slots, err := h.availability.Slots(c.Request.Context(), id, date)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(slots))
}
