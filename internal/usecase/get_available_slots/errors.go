package get_available_slots

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SlotBooking/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("invalid input data: %w", domain.ErrValidation)

	// ErrBusinessNotFound возвращается, когда бизнес не найден
	ErrBusinessNotFound = fmt.Errorf("business not found: %w", domain.ErrValidation)

	// ErrServiceNotFound возвращается, когда услуга не найдена в каталоге бизнеса
	ErrServiceNotFound = fmt.Errorf("service not found: %w", domain.ErrValidation)

	// ErrInvalidSchedule возвращается, когда рабочие часы бизнеса настроены некорректно
	ErrInvalidSchedule = fmt.Errorf("business schedule is misconfigured: %w", domain.ErrInvalidSchedule)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
