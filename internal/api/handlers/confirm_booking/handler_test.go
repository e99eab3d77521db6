package confirm_booking

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	confirmBooking "github.com/m04kA/SMC-SlotBooking/internal/usecase/confirm_booking"
	"github.com/m04kA/SMC-SlotBooking/pkg/logger"
	"github.com/m04kA/SMC-SlotBooking/pkg/types"
)

type fakeUseCase struct {
	got *confirmBooking.Request
	err error
}

func (f *fakeUseCase) Execute(_ context.Context, req *confirmBooking.Request) (*confirmBooking.Response, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	start := time.Date(2025, 10, 15, 9, 0, 0, 0, time.UTC)
	return &confirmBooking.Response{
		ID:           11,
		BusinessID:   req.BusinessID,
		BusinessName: "Barbearia",
		ClientName:   req.ClientName,
		ServiceNames: "Corte + Barba",
		TotalPrice:   decimal.RequireFromString("60.00"),
		StartAt:      start,
		EndAt:        start.Add(time.Hour),
		CreatedAt:    start.Add(-time.Hour),
		DisplayDate:  "15/10/2025 09:00",
	}, nil
}

const validBody = `{"clientName":"Ana","serviceIds":[1,2],"date":"2025-10-15","startTime":"09:00"}`

func serve(t *testing.T, uc ConfirmBookingUseCase, businessID, body string) *httptest.ResponseRecorder {
	t.Helper()
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/businesses/{businessId}/appointments", NewHandler(uc, logger.NewNop()).Handle).Methods(http.MethodPost)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/businesses/"+businessID+"/appointments", strings.NewReader(body))
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle_Created(t *testing.T) {
	uc := &fakeUseCase{}

	rec := serve(t, uc, "1", validBody)

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp AppointmentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(11), resp.ID)
	assert.Equal(t, "Barbearia", resp.BusinessName)
	assert.Equal(t, "15/10/2025 09:00", resp.DisplayDate)
	assert.True(t, resp.TotalPrice.Equal(decimal.NewFromInt(60)))

	require.NotNil(t, uc.got)
	assert.Equal(t, int64(1), uc.got.BusinessID)
	assert.Equal(t, types.TimeString("09:00"), uc.got.StartTime)
	assert.Equal(t, []int64{1, 2}, uc.got.ServiceIDs)
}

func TestHandle_RequestErrors(t *testing.T) {
	tests := []struct {
		name       string
		businessID string
		body       string
	}{
		{"bad business id", "x", validBody},
		{"malformed body", "1", `{"clientName":`},
		{"missing client name", "1", `{"serviceIds":[1],"date":"2025-10-15","startTime":"09:00"}`},
		{"client name too long", "1", `{"clientName":"` + strings.Repeat("a", 101) + `","serviceIds":[1],"date":"2025-10-15","startTime":"09:00"}`},
		{"negative service id", "1", `{"clientName":"Ana","serviceIds":[-1],"date":"2025-10-15","startTime":"09:00"}`},
		{"bad date", "1", `{"clientName":"Ana","serviceIds":[1],"date":"15.10.2025","startTime":"09:00"}`},
		{"bad time", "1", `{"clientName":"Ana","serviceIds":[1],"date":"2025-10-15","startTime":"9h"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &fakeUseCase{}

			rec := serve(t, uc, tt.businessID, tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Nil(t, uc.got)
		})
	}
}

func TestHandle_UseCaseErrors(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{confirmBooking.ErrSlotUnavailable, http.StatusConflict},
		{confirmBooking.ErrBusinessNotFound, http.StatusNotFound},
		{confirmBooking.ErrUnknownService, http.StatusBadRequest},
		{confirmBooking.ErrEmptySelection, http.StatusBadRequest},
		{confirmBooking.ErrInPast, http.StatusBadRequest},
		{confirmBooking.ErrClosedDay, http.StatusBadRequest},
		{confirmBooking.ErrOutsideWorkingHours, http.StatusBadRequest},
		{confirmBooking.ErrInvalidSchedule, http.StatusBadRequest},
		{confirmBooking.ErrInvalidInput, http.StatusBadRequest},
		{confirmBooking.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			uc := &fakeUseCase{err: fmt.Errorf("%w: details", tt.err)}

			rec := serve(t, uc, "1", validBody)

			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
