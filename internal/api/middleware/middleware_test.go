package middleware

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotBooking/pkg/logger"
)

const (
	testSecret = "test-secret"
	testIssuer = "slotbooking"
)

func ownerEcho() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := BusinessIDFromContext(r.Context())
		if !ok {
			w.WriteHeader(http.StatusTeapot)
			return
		}
		w.Header().Set("X-Business-ID", strconv.FormatInt(id, 10))
		w.WriteHeader(http.StatusOK)
	})
}

func validClaims() jwt.RegisteredClaims {
	return jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))}
}

func TestAuth(t *testing.T) {
	valid, err := IssueOwnerToken(7, testSecret, testIssuer, validClaims())
	require.NoError(t, err)

	expired, err := IssueOwnerToken(7, testSecret, testIssuer, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	})
	require.NoError(t, err)

	foreignSigned, err := IssueOwnerToken(7, "other-secret", testIssuer, validClaims())
	require.NoError(t, err)

	wrongIssuer, err := IssueOwnerToken(7, testSecret, "someone-else", validClaims())
	require.NoError(t, err)

	noBusiness, err := IssueOwnerToken(0, testSecret, testIssuer, validClaims())
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"valid token", "Bearer " + valid, http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized},
		{"expired", "Bearer " + expired, http.StatusUnauthorized},
		{"foreign signature", "Bearer " + foreignSigned, http.StatusUnauthorized},
		{"wrong issuer", "Bearer " + wrongIssuer, http.StatusUnauthorized},
		{"no business claim", "Bearer " + noBusiness, http.StatusUnauthorized},
	}

	handler := Auth(testSecret, testIssuer, logger.NewNop())(ownerEcho())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/appointments/1", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.want, rec.Code)
			if tt.want == http.StatusOK {
				assert.Equal(t, "7", rec.Header().Get("X-Business-ID"))
			}
		})
	}
}

func TestParseOwnerToken_BusinessID(t *testing.T) {
	token, err := IssueOwnerToken(42, testSecret, testIssuer, validClaims())
	require.NoError(t, err)

	claims, err := ParseOwnerToken(token, testSecret, testIssuer)

	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.BusinessID)
}

func TestParseOwnerToken_EmptySecret(t *testing.T) {
	token, err := IssueOwnerToken(42, testSecret, testIssuer, validClaims())
	require.NoError(t, err)

	_, err = ParseOwnerToken(token, "", testIssuer)
	assert.Error(t, err)
}

type recordedRequest struct {
	method, path string
	status       int
}

type fakeHTTPMetrics struct {
	mu       sync.Mutex
	requests []recordedRequest
}

func (f *fakeHTTPMetrics) RecordHTTPRequest(method, path string, status int, _ time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, recordedRequest{method, path, status})
}

func TestMetricsMiddleware_UsesRouteTemplate(t *testing.T) {
	m := &fakeHTTPMetrics{}
	r := mux.NewRouter()
	r.Use(MetricsMiddleware(m))
	r.HandleFunc("/api/v1/appointments/{appointmentId}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/appointments/123", nil))

	require.Len(t, m.requests, 1)
	assert.Equal(t, recordedRequest{http.MethodGet, "/api/v1/appointments/{appointmentId}", http.StatusNotFound}, m.requests[0])
}

func TestRateLimit(t *testing.T) {
	handler := RateLimit(2)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/b/demo", nil)
		req.RemoteAddr = "10.0.0.1:5000"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	other := httptest.NewRequest(http.MethodGet, "/api/v1/b/demo", nil)
	other.RemoteAddr = "10.0.0.2:5000"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, other)
	assert.Equal(t, http.StatusOK, rec.Code)
}
