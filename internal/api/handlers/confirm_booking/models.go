package confirm_booking

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SlotBooking/internal/domain"
	confirmBooking "github.com/m04kA/SMC-SlotBooking/internal/usecase/confirm_booking"
	"github.com/m04kA/SMC-SlotBooking/pkg/types"
)

// ConfirmBookingRequest HTTP request model
type ConfirmBookingRequest struct {
	ClientName string  `json:"clientName" validate:"required,max=100"`
	ServiceIDs []int64 `json:"serviceIds" validate:"dive,gt=0"`
	Date       string  `json:"date" validate:"required"`      // "2025-10-15"
	StartTime  string  `json:"startTime" validate:"required"` // "10:00"
	Note       *string `json:"note,omitempty" validate:"omitempty,max=255"`
}

// AppointmentResponse HTTP response model (данные экрана подтверждения)
type AppointmentResponse struct {
	ID           int64           `json:"id"`
	BusinessID   int64           `json:"businessId"`
	BusinessName string          `json:"businessName"`
	ClientName   string          `json:"clientName"`
	ServiceNames string          `json:"serviceNames"`
	TotalPrice   decimal.Decimal `json:"totalPrice"`
	StartAt      string          `json:"startAt"`
	EndAt        string          `json:"endAt"`
	DisplayDate  string          `json:"displayDate"`
	Note         *string         `json:"note,omitempty"`
	CreatedAt    string          `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ConfirmBookingRequest) ToUseCaseRequest(businessID int64) (*confirmBooking.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &confirmBooking.Request{
		BusinessID: businessID,
		ClientName: r.ClientName,
		ServiceIDs: r.ServiceIDs,
		Date:       date,
		StartTime:  startTime,
		Note:       r.Note,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *confirmBooking.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:           resp.ID,
		BusinessID:   resp.BusinessID,
		BusinessName: resp.BusinessName,
		ClientName:   resp.ClientName,
		ServiceNames: resp.ServiceNames,
		TotalPrice:   resp.TotalPrice,
		StartAt:      resp.StartAt.Format(time.RFC3339),
		EndAt:        resp.EndAt.Format(time.RFC3339),
		DisplayDate:  resp.DisplayDate,
		Note:         resp.Note,
		CreatedAt:    resp.CreatedAt.Format(time.RFC3339),
	}
}
