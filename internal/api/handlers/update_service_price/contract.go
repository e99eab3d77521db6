package update_service_price

import (
	"context"

	"github.com/m04kA/SMC-SlotBooking/internal/service/catalog/models"
)

type CatalogService interface {
	UpdatePrice(ctx context.Context, req *models.UpdatePriceRequest) (*models.ServiceResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
