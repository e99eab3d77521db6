package appointments

import (
	"context"

	"github.com/m04kA/SMC-SlotBooking/internal/domain"
)

// AppointmentRepository интерфейс репозитория бронирований
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	Delete(ctx context.Context, id int64) error
	ListByBusiness(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error)
}

// CatalogRepository интерфейс каталога услуг для панели владельца
type CatalogRepository interface {
	ListByBusiness(ctx context.Context, businessID int64) ([]*domain.ServiceSpec, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
