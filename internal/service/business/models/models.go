package models

import (
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SlotBooking/internal/domain"
	"github.com/m04kA/SMC-SlotBooking/pkg/types"
)

// Request модели

// UpdateScheduleRequest запрос на изменение рабочих часов
// Все поля опциональны - обновляются только переданные значения
type UpdateScheduleRequest struct {
	OwnerBusinessID int64   `json:"-"`
	BusinessID      int64   `json:"-"`
	OpensAt         *string `json:"opensAt,omitempty" validate:"omitempty,len=5"`
	ClosesAt        *string `json:"closesAt,omitempty" validate:"omitempty,len=5"`
	WorksSaturday   *bool   `json:"worksSaturday,omitempty"`
	WorksSunday     *bool   `json:"worksSunday,omitempty"`
}

// Response модели

// ScheduleResponse рабочие часы бизнеса
type ScheduleResponse struct {
	BusinessID    int64            `json:"businessId"`
	OpensAt       types.TimeString `json:"opensAt"`
	ClosesAt      types.TimeString `json:"closesAt"`
	WorksSaturday bool             `json:"worksSaturday"`
	WorksSunday   bool             `json:"worksSunday"`
}

// ServiceResponse услуга каталога
type ServiceResponse struct {
	ID              int64           `json:"id"`
	Name            string          `json:"name"`
	DurationMinutes int             `json:"durationMinutes"`
	Price           decimal.Decimal `json:"price"`
}

// PublicPageResponse публичная страница бизнеса: название, часы и каталог услуг
type PublicPageResponse struct {
	ID       int64             `json:"id"`
	Slug     string            `json:"slug"`
	Name     string            `json:"name"`
	Schedule ScheduleResponse  `json:"schedule"`
	Services []ServiceResponse `json:"services"`
}

// FromDomainSchedule конвертирует расписание бизнеса в response
func FromDomainSchedule(b *domain.Business) *ScheduleResponse {
	return &ScheduleResponse{
		BusinessID:    b.ID,
		OpensAt:       b.Schedule.OpensAt,
		ClosesAt:      b.Schedule.ClosesAt,
		WorksSaturday: b.Schedule.WorksSaturday,
		WorksSunday:   b.Schedule.WorksSunday,
	}
}

// FromDomainPublicPage конвертирует бизнес и его каталог в response
func FromDomainPublicPage(b *domain.Business, services []*domain.ServiceSpec) *PublicPageResponse {
	result := &PublicPageResponse{
		ID:       b.ID,
		Slug:     b.Slug,
		Name:     b.Name,
		Schedule: *FromDomainSchedule(b),
		Services: make([]ServiceResponse, 0, len(services)),
	}
	for _, s := range services {
		result.Services = append(result.Services, ServiceResponse{
			ID:              s.ID,
			Name:            s.Name,
			DurationMinutes: s.DurationMinutes,
			Price:           s.Price,
		})
	}
	return result
}
