package business

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SlotBooking/internal/domain"
)

var (
	// ErrBusinessNotFound возвращается, когда бизнес не найден
	ErrBusinessNotFound = errors.New("business not found")

	// ErrAccessDenied возвращается при попытке изменить чужой бизнес
	ErrAccessDenied = fmt.Errorf("access denied: %w", domain.ErrAuthorization)

	// ErrInvalidSchedule возвращается, когда время открытия не раньше времени закрытия
	ErrInvalidSchedule = fmt.Errorf("invalid schedule: %w", domain.ErrInvalidSchedule)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("invalid input data: %w", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
