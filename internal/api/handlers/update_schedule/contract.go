package update_schedule

import (
	"context"

	"github.com/m04kA/SMC-SlotBooking/internal/service/business/models"
)

type BusinessService interface {
	UpdateSchedule(ctx context.Context, req *models.UpdateScheduleRequest) (*models.ScheduleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
