package business

import (
	"context"

	"github.com/m04kA/SMC-SlotBooking/internal/domain"
)

// BusinessRepository интерфейс репозитория бизнесов
type BusinessRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Business, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Business, error)
	UpdateSchedule(ctx context.Context, id int64, schedule domain.BusinessSchedule) (*domain.Business, error)
}

// CatalogRepository интерфейс репозитория каталога услуг
type CatalogRepository interface {
	ListByBusiness(ctx context.Context, businessID int64) ([]*domain.ServiceSpec, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
