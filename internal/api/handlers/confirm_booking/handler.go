package confirm_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SlotBooking/internal/api/handlers"
	confirmBooking "github.com/m04kA/SMC-SlotBooking/internal/usecase/confirm_booking"
)

const (
	msgInvalidBusinessID   = "некорректный ID бизнеса"
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidDateOrTime   = "некорректная дата или время, ожидается YYYY-MM-DD и HH:MM"
	msgEmptySelection      = "выберите хотя бы одну услугу"
	msgBusinessNotFound    = "бизнес не найден"
	msgUnknownService      = "услуга не найдена"
	msgInPast              = "нельзя записаться на прошедшее время"
	msgClosedDay           = "в выбранный день бизнес не работает"
	msgOutsideWorkingHours = "выбранное время выходит за рабочие часы"
	msgInvalidSchedule     = "расписание бизнеса настроено некорректно"
	msgSlotUnavailable     = "выбранное время уже занято, обновите список слотов"
	msgInvalidData         = "некорректные данные бронирования"
)

type Handler struct {
	useCase ConfirmBookingUseCase
	logger  Logger
}

func NewHandler(useCase ConfirmBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/businesses/{businessId}/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	businessID, err := handlers.ParseID(mux.Vars(r)["businessId"])
	if err != nil {
		h.logger.Warn("POST /businesses/{id}/appointments - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	var req ConfirmBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /businesses/{id}/appointments - Invalid request body: business_id=%d, error=%v", businessID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(businessID)
	if err != nil {
		h.logger.Warn("POST /businesses/{id}/appointments - Failed to parse date/time: business_id=%d, error=%v", businessID, err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, confirmBooking.ErrSlotUnavailable):
			h.logger.Warn("POST /businesses/{id}/appointments - Slot unavailable: business_id=%d, date=%s, start=%s",
				businessID, req.Date, req.StartTime)
			handlers.RespondConflict(w, msgSlotUnavailable)

		case errors.Is(err, confirmBooking.ErrBusinessNotFound):
			h.logger.Warn("POST /businesses/{id}/appointments - Business not found: business_id=%d", businessID)
			handlers.RespondNotFound(w, msgBusinessNotFound)

		case errors.Is(err, confirmBooking.ErrUnknownService):
			h.logger.Warn("POST /businesses/{id}/appointments - Unknown service: business_id=%d, services=%v", businessID, req.ServiceIDs)
			handlers.RespondBadRequest(w, msgUnknownService)

		case errors.Is(err, confirmBooking.ErrEmptySelection):
			handlers.RespondBadRequest(w, msgEmptySelection)

		case errors.Is(err, confirmBooking.ErrInPast):
			h.logger.Warn("POST /businesses/{id}/appointments - Start in the past: business_id=%d, date=%s, start=%s",
				businessID, req.Date, req.StartTime)
			handlers.RespondBadRequest(w, msgInPast)

		case errors.Is(err, confirmBooking.ErrClosedDay):
			handlers.RespondBadRequest(w, msgClosedDay)

		case errors.Is(err, confirmBooking.ErrOutsideWorkingHours):
			handlers.RespondBadRequest(w, msgOutsideWorkingHours)

		case errors.Is(err, confirmBooking.ErrInvalidSchedule):
			h.logger.Error("POST /businesses/{id}/appointments - Misconfigured schedule: business_id=%d, error=%v", businessID, err)
			handlers.RespondBadRequest(w, msgInvalidSchedule)

		case errors.Is(err, confirmBooking.ErrInvalidInput):
			h.logger.Warn("POST /businesses/{id}/appointments - Invalid data: business_id=%d, error=%v", businessID, err)
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("POST /businesses/{id}/appointments - Failed to confirm booking: business_id=%d, error=%v", businessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /businesses/{id}/appointments - Appointment confirmed: appointment_id=%d, business_id=%d, start=%s",
		result.ID, businessID, result.DisplayDate)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
