package list_appointments

import (
	"context"

	"github.com/m04kA/SMC-SlotBooking/internal/service/appointments/models"
)

type AppointmentService interface {
	ListForDashboard(ctx context.Context, req *models.ListRequest) (*models.DashboardResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
