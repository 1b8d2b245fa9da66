package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Context keys set by the auth middleware
const (
	ContextPatientID    = "patient_id"
	ContextPatientEmail = "patient_email"
)

// AuthPatientID returns the authenticated patient identity placed in the
// request context by the auth middleware.
func AuthPatientID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(ContextPatientID)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}
