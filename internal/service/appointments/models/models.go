package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SlotBooking/internal/domain"
	catalogModels "github.com/m04kA/SMC-SlotBooking/internal/service/catalog/models"
)

// Request модели

// ListRequest запрос на получение бронирований бизнеса для панели владельца
type ListRequest struct {
	RequestingBusinessID int64      // Бизнес владельца из токена
	BusinessID           int64      // Бизнес из пути запроса
	From                 *time.Time // Начало периода (опционально, включительно)
	To                   *time.Time // Конец периода (опционально, не включительно)
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListRequest) ToDomainFilter() domain.AppointmentsFilter {
	return domain.AppointmentsFilter{
		BusinessID: r.BusinessID,
		From:       r.From,
		To:         r.To,
	}
}

// Response модели

// AppointmentResponse бронирование для владельца и для квитанции
type AppointmentResponse struct {
	ID           int64           `json:"id"`
	BusinessID   int64           `json:"businessId"`
	ClientName   string          `json:"clientName"`
	ServiceNames string          `json:"serviceNames"`
	TotalPrice   decimal.Decimal `json:"totalPrice"`
	StartAt      time.Time       `json:"startAt"`
	EndAt        time.Time       `json:"endAt"`
	DisplayDate  string          `json:"displayDate"`
	Note         *string         `json:"note,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// DashboardResponse бронирования бизнеса и сумма выручки по ним
type DashboardResponse struct {
	Appointments []AppointmentResponse            `json:"appointments"`
	Total        int                              `json:"total"`
	Revenue      decimal.Decimal                  `json:"revenue"`
	Services     []catalogModels.ServiceResponse `json:"services"`
}

// FromDomainAppointment конвертирует доменное бронирование в response
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	return &AppointmentResponse{
		ID:           a.ID,
		BusinessID:   a.BusinessID,
		ClientName:   a.ClientName,
		ServiceNames: a.ServiceNames,
		TotalPrice:   a.TotalPrice,
		StartAt:      a.StartAt,
		EndAt:        a.EndAt,
		DisplayDate:  a.StartAt.Format(domain.DisplayDateFormat),
		Note:         a.Note,
		CreatedAt:    a.CreatedAt,
	}
}

// FromDomainDashboard конвертирует список бронирований, считает выручку и добавляет каталог услуг
func FromDomainDashboard(appointments []*domain.Appointment, services []*domain.ServiceSpec) *DashboardResponse {
	result := &DashboardResponse{
		Appointments: make([]AppointmentResponse, 0, len(appointments)),
		Revenue:      decimal.Zero,
		Services:     catalogModels.FromDomainServices(services),
	}
	for _, a := range appointments {
		result.Appointments = append(result.Appointments, *FromDomainAppointment(a))
		result.Revenue = result.Revenue.Add(a.TotalPrice)
	}
	result.Total = len(result.Appointments)
	return result
}
