package models

import (
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SlotBooking/internal/domain"
)

// Request модели

// CreateServiceRequest запрос на добавление услуги в каталог
type CreateServiceRequest struct {
	OwnerBusinessID int64           `json:"-"`
	BusinessID      int64           `json:"-"`
	Name            string          `json:"name" validate:"required,max=50"`
	Price           decimal.Decimal `json:"price"`
	DurationMinutes *int            `json:"durationMinutes,omitempty"` // по умолчанию domain.DefaultServiceDuration
}

// UpdatePriceRequest запрос на изменение цены услуги
type UpdatePriceRequest struct {
	OwnerBusinessID int64            `json:"-"`
	ServiceID       int64            `json:"-"`
	Price           *decimal.Decimal `json:"price" validate:"required"`
}

// Response модели

// ServiceResponse услуга каталога
type ServiceResponse struct {
	ID              int64           `json:"id"`
	BusinessID      int64           `json:"businessId"`
	Name            string          `json:"name"`
	DurationMinutes int             `json:"durationMinutes"`
	Price           decimal.Decimal `json:"price"`
}

// FromDomainService конвертирует услугу в response
func FromDomainService(s *domain.ServiceSpec) *ServiceResponse {
	return &ServiceResponse{
		ID:              s.ID,
		BusinessID:      s.BusinessID,
		Name:            s.Name,
		DurationMinutes: s.DurationMinutes,
		Price:           s.Price,
	}
}

// FromDomainServices конвертирует каталог в список response
func FromDomainServices(services []*domain.ServiceSpec) []ServiceResponse {
	result := make([]ServiceResponse, 0, len(services))
	for _, s := range services {
		result = append(result, *FromDomainService(s))
	}
	return result
}
