package notification

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/igabay/booking-api/internal/handler"
	notifSvc "github.com/igabay/booking-api/internal/service/notification"
	apperrors "github.com/igabay/booking-api/pkg/errors"
)

type Handler struct {
	service notifSvc.Service
}

func NewHandler(service notifSvc.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	notifications := r.Group("/notifications")
	{
		notifications.GET("", h.ListNotifications)
		notifications.POST("/:id/read", h.MarkRead)
	}
}

// ListNotifications returns the token patient's notifications. The
// patient_id filter is accepted for compatibility but must match the token.
func (h *Handler) ListNotifications(c *gin.Context) {
	patientID, ok := handler.AuthPatientID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("unauthorized"))
		return
	}

	if q := c.Query("patient_id"); q != "" {
		queried, err := uuid.Parse(q)
		if err != nil {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid patient ID"))
			return
		}
		if queried != patientID {
			handler.Error(c, apperrors.Forbidden("cannot list notifications for another patient", nil))
			return
		}
	}

	limit := 50
	if l := c.Query("limit"); l != "" {
		if parsed, perr := strconv.Atoi(l); perr == nil {
			limit = parsed
		}
	}

	notifications, err := h.service.ListForPatient(c.Request.Context(), patientID, limit)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(notifications))
}

func (h *Handler) MarkRead(c *gin.Context) {
	patientID, ok := handler.AuthPatientID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("unauthorized"))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid notification ID"))
		return
	}

	if err := h.service.MarkRead(c.Request.Context(), id, patientID); err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}
