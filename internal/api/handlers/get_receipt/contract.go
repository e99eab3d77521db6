package get_receipt

import (
	"context"

	"github.com/m04kA/SMC-SlotBooking/internal/service/appointments/models"
)

type AppointmentService interface {
	GetReceipt(ctx context.Context, appointmentID int64, requestingBusinessID int64) (*models.AppointmentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
