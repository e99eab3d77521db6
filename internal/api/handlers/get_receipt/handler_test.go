package get_receipt

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SlotBooking/internal/service/appointments"
	"github.com/m04kA/SMC-SlotBooking/internal/service/appointments/models"
	"github.com/m04kA/SMC-SlotBooking/pkg/logger"
)

type fakeService struct {
	err error
}

func (f fakeService) GetReceipt(_ context.Context, appointmentID int64, requestingBusinessID int64) (*models.AppointmentResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.AppointmentResponse{ID: appointmentID, BusinessID: requestingBusinessID, ClientName: "Ana"}, nil
}

func serve(svc AppointmentService, target string, ownerID int64) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/appointments/{appointmentId}", NewHandler(svc, logger.NewNop()).Handle)
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if ownerID > 0 {
		req = req.WithContext(middleware.WithBusinessID(req.Context(), ownerID))
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle_Receipt(t *testing.T) {
	rec := serve(fakeService{}, "/api/v1/appointments/8", 3)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp models.AppointmentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(8), resp.ID)
	assert.Equal(t, "Ana", resp.ClientName)
}

func TestHandle_Errors(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, serve(fakeService{}, "/api/v1/appointments/0", 3).Code)
	assert.Equal(t, http.StatusUnauthorized, serve(fakeService{}, "/api/v1/appointments/8", 0).Code)
	assert.Equal(t, http.StatusNotFound, serve(fakeService{err: appointments.ErrAppointmentNotFound}, "/api/v1/appointments/8", 3).Code)
	assert.Equal(t, http.StatusForbidden, serve(fakeService{err: appointments.ErrAccessDenied}, "/api/v1/appointments/8", 3).Code)
	assert.Equal(t, http.StatusInternalServerError, serve(fakeService{err: appointments.ErrInternal}, "/api/v1/appointments/8", 3).Code)
}
