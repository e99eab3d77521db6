package appointments

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SlotBooking/internal/domain"
)

var (
	// ErrAppointmentNotFound возвращается, когда бронирование не найдено
	ErrAppointmentNotFound = errors.New("appointment not found")

	// ErrAccessDenied возвращается при попытке работать с бронированием чужого бизнеса
	ErrAccessDenied = fmt.Errorf("access denied: %w", domain.ErrAuthorization)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("invalid input data: %w", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
