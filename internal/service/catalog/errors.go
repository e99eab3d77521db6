package catalog

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SlotBooking/internal/domain"
)

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("service not found")

	// ErrBusinessNotFound возвращается, когда бизнес не найден
	ErrBusinessNotFound = errors.New("business not found")

	// ErrAccessDenied возвращается при попытке изменить каталог чужого бизнеса
	ErrAccessDenied = fmt.Errorf("access denied: %w", domain.ErrAuthorization)

	// ErrInvalidInput возвращается при некорректных данных услуги
	ErrInvalidInput = fmt.Errorf("invalid service data: %w", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
