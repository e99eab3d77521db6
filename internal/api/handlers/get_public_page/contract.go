package get_public_page

import (
	"context"

	"github.com/m04kA/SMC-SlotBooking/internal/service/business/models"
)

type BusinessService interface {
	GetPublicPage(ctx context.Context, slug string) (*models.PublicPageResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
