package business

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SlotBooking/internal/domain"
)

var (
	// ErrBusinessNotFound возвращается, когда бизнес не найден
	ErrBusinessNotFound = errors.New("business.repository: business not found")

	// ErrScheduleConstraint возвращается, когда БД отклонила расписание (opens_at >= closes_at)
	ErrScheduleConstraint = fmt.Errorf("business.repository: %w", domain.ErrInvalidSchedule)

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("business.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("business.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("business.repository: failed to scan row")
)
