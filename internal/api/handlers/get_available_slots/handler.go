package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SlotBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SlotBooking/internal/domain"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/businesses/{businessId}/available-slots
// Query params: date (YYYY-MM-DD), serviceIds (1,2,3)
// Для любого неразрешимого ввода возвращается пустой список, 500 только при сбое инфраструктуры
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	businessIDStr := mux.Vars(r)["businessId"]
	query := r.URL.Query()

	useCaseReq, err := ToUseCaseRequest(businessIDStr, query.Get("date"), query.Get("serviceIds"))
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/available-slots - Unresolvable request: business=%s, error=%v", businessIDStr, err)
		handlers.RespondJSON(w, http.StatusOK, []string{})
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidSchedule):
			// Ошибка настройки бизнеса, клиенту отдаем пустой день
			h.logger.Error("GET /businesses/{id}/available-slots - Misconfigured schedule: business_id=%d, error=%v",
				useCaseReq.BusinessID, err)
			handlers.RespondJSON(w, http.StatusOK, []string{})

		case errors.Is(err, domain.ErrValidation):
			h.logger.Warn("GET /businesses/{id}/available-slots - Unresolvable request: business_id=%d, error=%v",
				useCaseReq.BusinessID, err)
			handlers.RespondJSON(w, http.StatusOK, []string{})

		default:
			h.logger.Error("GET /businesses/{id}/available-slots - Failed to get slots: business_id=%d, error=%v",
				useCaseReq.BusinessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /businesses/{id}/available-slots - Slots retrieved: business_id=%d, date=%s, slots_count=%d",
		result.BusinessID, result.Date.Format(domain.DateFormat), len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
