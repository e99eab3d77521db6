package get_schedule

import (
	"context"

	"github.com/m04kA/SMC-SlotBooking/internal/service/business/models"
)

type BusinessService interface {
	GetSchedule(ctx context.Context, businessID int64) (*models.ScheduleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
