package update_schedule

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SlotBooking/internal/service/business"
	"github.com/m04kA/SMC-SlotBooking/internal/service/business/models"
	"github.com/m04kA/SMC-SlotBooking/pkg/logger"
	"github.com/m04kA/SMC-SlotBooking/pkg/types"
)

type fakeService struct {
	got *models.UpdateScheduleRequest
	err error
}

func (f *fakeService) UpdateSchedule(_ context.Context, req *models.UpdateScheduleRequest) (*models.ScheduleResponse, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.ScheduleResponse{BusinessID: req.BusinessID, OpensAt: "09:00", ClosesAt: "18:00"}, nil
}

func serve(svc BusinessService, businessID, body string, ownerID int64) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/businesses/{businessId}/schedule", NewHandler(svc, logger.NewNop()).Handle).Methods(http.MethodPut)
	req := httptest.NewRequest(http.MethodPut, "/api/v1/businesses/"+businessID+"/schedule", strings.NewReader(body))
	if ownerID > 0 {
		req = req.WithContext(middleware.WithBusinessID(req.Context(), ownerID))
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle_Updated(t *testing.T) {
	svc := &fakeService{}

	rec := serve(svc, "3", `{"opensAt":"09:00","worksSunday":false}`, 3)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.got)
	assert.Equal(t, int64(3), svc.got.OwnerBusinessID)
	assert.Equal(t, int64(3), svc.got.BusinessID)
	require.NotNil(t, svc.got.OpensAt)
	assert.Equal(t, "09:00", *svc.got.OpensAt)
	assert.Nil(t, svc.got.ClosesAt)
	assert.Contains(t, rec.Body.String(), `"opensAt":"`+string(types.TimeString("09:00"))+`"`)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		body    string
		ownerID int64
		err     error
		want    int
	}{
		{"bad id", "x", `{}`, 3, nil, http.StatusBadRequest},
		{"no owner", "3", `{}`, 0, nil, http.StatusUnauthorized},
		{"malformed body", "3", `{"opensAt":`, 3, nil, http.StatusBadRequest},
		{"wrong time length", "3", `{"opensAt":"9:00:00"}`, 3, nil, http.StatusBadRequest},
		{"foreign business", "3", `{}`, 4, business.ErrAccessDenied, http.StatusForbidden},
		{"not found", "3", `{}`, 3, business.ErrBusinessNotFound, http.StatusNotFound},
		{"opens after closes", "3", `{"opensAt":"20:00"}`, 3, fmt.Errorf("%w: details", business.ErrInvalidSchedule), http.StatusBadRequest},
		{"malformed time", "3", `{"opensAt":"ab:cd"}`, 3, fmt.Errorf("%w: details", business.ErrInvalidInput), http.StatusBadRequest},
		{"internal", "3", `{}`, 3, business.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&fakeService{err: tt.err}, tt.id, tt.body, tt.ownerID)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
