package list_appointments

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SlotBooking/internal/domain"
	"github.com/m04kA/SMC-SlotBooking/internal/service/appointments/models"
)

// ToServiceRequest создает запрос сервиса из query параметров from/to (YYYY-MM-DD, опционально)
func ToServiceRequest(ownerID, businessID int64, fromStr, toStr string) (*models.ListRequest, error) {
	req := &models.ListRequest{
		RequestingBusinessID: ownerID,
		BusinessID:           businessID,
	}

	if fromStr != "" {
		from, err := time.Parse(domain.DateFormat, fromStr)
		if err != nil {
			return nil, fmt.Errorf("from: %w", err)
		}
		req.From = &from
	}

	if toStr != "" {
		to, err := time.Parse(domain.DateFormat, toStr)
		if err != nil {
			return nil, fmt.Errorf("to: %w", err)
		}
		req.To = &to
	}

	return req, nil
}
