package get_available_slots

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SlotBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SlotBooking/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-SlotBooking/internal/usecase/get_available_slots"
)

// FromUseCaseResponse конвертирует ответ use case в список времен "HH:MM"
func FromUseCaseResponse(resp *getAvailableSlots.Response) []string {
	slots := make([]string, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = slot.String()
	}
	return slots
}

// ToUseCaseRequest создает запрос use case из параметров пути и query
func ToUseCaseRequest(businessIDStr, dateStr, serviceIDsStr string) (*getAvailableSlots.Request, error) {
	businessID, err := handlers.ParseID(businessIDStr)
	if err != nil {
		return nil, fmt.Errorf("businessId: %w", err)
	}

	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, fmt.Errorf("date: %w", err)
	}

	serviceIDs, err := handlers.ParseIDList(serviceIDsStr)
	if err != nil {
		return nil, fmt.Errorf("serviceIds: %w", err)
	}

	return &getAvailableSlots.Request{
		BusinessID: businessID,
		Date:       date,
		ServiceIDs: serviceIDs,
	}, nil
}
