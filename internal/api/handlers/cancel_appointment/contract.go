package cancel_appointment

import "context"

type AppointmentService interface {
	Cancel(ctx context.Context, appointmentID int64, requestingBusinessID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
