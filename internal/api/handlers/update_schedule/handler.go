package update_schedule

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SlotBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SlotBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SlotBooking/internal/service/business"
	"github.com/m04kA/SMC-SlotBooking/internal/service/business/models"
)

const (
	msgInvalidBusinessID  = "некорректный ID бизнеса"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgUnauthorized       = "требуется авторизация"
	msgForbidden          = "доступ запрещен"
	msgBusinessNotFound   = "бизнес не найден"
	msgInvalidSchedule    = "время открытия должно быть раньше времени закрытия"
	msgInvalidData        = "некорректные данные расписания, ожидается HH:MM"
)

type Handler struct {
	service BusinessService
	logger  Logger
}

func NewHandler(service BusinessService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/businesses/{businessId}/schedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	businessID, err := handlers.ParseID(mux.Vars(r)["businessId"])
	if err != nil {
		h.logger.Warn("PUT /businesses/{id}/schedule - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	ownerID, ok := middleware.BusinessIDFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req models.UpdateScheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /businesses/{id}/schedule - Invalid request body: business_id=%d, error=%v", businessID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.OwnerBusinessID = ownerID
	req.BusinessID = businessID

	result, err := h.service.UpdateSchedule(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, business.ErrAccessDenied):
			h.logger.Warn("PUT /businesses/{id}/schedule - Access denied: business_id=%d, owner=%d", businessID, ownerID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, business.ErrBusinessNotFound):
			handlers.RespondNotFound(w, msgBusinessNotFound)

		case errors.Is(err, business.ErrInvalidSchedule):
			handlers.RespondBadRequest(w, msgInvalidSchedule)

		case errors.Is(err, business.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("PUT /businesses/{id}/schedule - Failed to update schedule: business_id=%d, error=%v", businessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /businesses/{id}/schedule - Schedule updated: business_id=%d", businessID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
