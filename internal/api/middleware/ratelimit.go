package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/httprate"

	"github.com/m04kA/SMC-SlotBooking/internal/api/handlers"
)

const msgTooManyRequests = "слишком много запросов, попробуйте позже"

// RateLimit ограничивает число запросов с одного IP в минуту
func RateLimit(requestsPerMinute int) func(http.Handler) http.Handler {
	return httprate.Limit(
		requestsPerMinute,
		time.Minute,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			handlers.RespondError(w, http.StatusTooManyRequests, msgTooManyRequests)
		}),
	)
}
