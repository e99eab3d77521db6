package catalog

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SlotBooking/internal/domain"
)

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("catalog.repository: service not found")

	// ErrBusinessNotFound возвращается, когда услугу добавляют несуществующему бизнесу
	ErrBusinessNotFound = errors.New("catalog.repository: business not found")

	// ErrServiceConstraint возвращается, когда БД отклонила услугу (duration_minutes <= 0, price < 0)
	ErrServiceConstraint = fmt.Errorf("catalog.repository: %w", domain.ErrValidation)

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("catalog.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("catalog.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("catalog.repository: failed to scan row")
)
