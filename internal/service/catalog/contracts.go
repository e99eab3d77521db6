package catalog

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SlotBooking/internal/domain"
)

// CatalogRepository интерфейс репозитория каталога услуг
type CatalogRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.ServiceSpec, error)
	Create(ctx context.Context, service *domain.ServiceSpec) (*domain.ServiceSpec, error)
	UpdatePrice(ctx context.Context, id int64, price decimal.Decimal) (*domain.ServiceSpec, error)
	Delete(ctx context.Context, id int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
