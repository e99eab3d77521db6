package delete_service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-SlotBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SlotBooking/internal/service/catalog"
	"github.com/m04kA/SMC-SlotBooking/pkg/logger"
)

type fakeService struct {
	serviceID int64
	ownerID   int64
	err       error
}

func (f *fakeService) DeleteService(_ context.Context, serviceID int64, ownerBusinessID int64) error {
	f.serviceID, f.ownerID = serviceID, ownerBusinessID
	return f.err
}

func serve(svc CatalogService, serviceID string, ownerID int64) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/services/{serviceId}", NewHandler(svc, logger.NewNop()).Handle).Methods(http.MethodDelete)
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/services/"+serviceID, nil)
	if ownerID > 0 {
		req = req.WithContext(middleware.WithBusinessID(req.Context(), ownerID))
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle_Deleted(t *testing.T) {
	svc := &fakeService{}

	rec := serve(svc, "10", 1)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, int64(10), svc.serviceID)
	assert.Equal(t, int64(1), svc.ownerID)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		ownerID int64
		err     error
		want    int
	}{
		{"bad id", "abc", 1, nil, http.StatusBadRequest},
		{"no owner", "10", 0, nil, http.StatusUnauthorized},
		{"not found", "10", 1, catalog.ErrServiceNotFound, http.StatusNotFound},
		{"foreign service", "10", 2, catalog.ErrAccessDenied, http.StatusForbidden},
		{"internal", "10", 1, catalog.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&fakeService{err: tt.err}, tt.id, tt.ownerID)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
