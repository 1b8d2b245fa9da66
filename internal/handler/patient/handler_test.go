package patient

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/igabay/booking-api/internal/handler"
	"github.com/igabay/booking-api/internal/model"
)

type stubPatientService struct {
	patient *model.Patient
	gets    int
	updates int
}

func (s *stubPatientService) CreatePatient(ctx context.Context, req *model.CreatePatientRequest) (*model.Patient, error) {
	return s.patient, nil
}

func (s *stubPatientService) GetPatient(ctx context.Context, id uuid.UUID) (*model.Patient, error) {
	s.gets++
	return s.patient, nil
}

func (s *stubPatientService) UpdatePatient(ctx context.Context, id uuid.UUID, req *model.UpdatePatientRequest) (*model.Patient, error) {
	s.updates++
	return s.patient, nil
}

func setupRouter(svc Service, authID uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(handler.ContextPatientID, authID)
		c.Next()
	})
	NewHandler(svc).RegisterRoutes(r.Group("/api/v1"))
	return r
}

func TestGetPatient_OwnRecord(t *testing.T) {
	patientID := uuid.New()
	svc := &stubPatientService{patient: &model.Patient{
		Base: model.Base{ID: patientID},
		Name: "Maria Santos",
	}}
	r := setupRouter(svc, patientID)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/patients/"+patientID.String(), nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, svc.gets)
}

func TestGetPatient_OtherRecordForbidden(t *testing.T) {
	svc := &stubPatientService{}
	r := setupRouter(svc, uuid.New())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/patients/"+uuid.NewString(), nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, 0, svc.gets, "the lookup must not reach the service")
}

func TestUpdatePatient_OtherRecordForbidden(t *testing.T) {
	svc := &stubPatientService{}
	r := setupRouter(svc, uuid.New())

	payload, err := json.Marshal(map[string]interface{}{"name": "New Name"})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/v1/patients/"+uuid.NewString(), bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, 0, svc.updates)
}
