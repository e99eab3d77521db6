package confirm_booking

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SlotBooking/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("confirm_booking: invalid input data: %w", domain.ErrValidation)

	// ErrEmptySelection возвращается, когда не выбрано ни одной услуги
	ErrEmptySelection = fmt.Errorf("confirm_booking: no services selected: %w", domain.ErrValidation)

	// ErrBusinessNotFound возвращается, когда бизнес не найден
	ErrBusinessNotFound = fmt.Errorf("confirm_booking: business not found: %w", domain.ErrValidation)

	// ErrUnknownService возвращается, когда услуги нет в каталоге бизнеса
	ErrUnknownService = fmt.Errorf("confirm_booking: unknown service: %w", domain.ErrValidation)

	// ErrInPast возвращается при попытке забронировать прошедшее время
	ErrInPast = fmt.Errorf("confirm_booking: start time is in the past: %w", domain.ErrValidation)

	// ErrClosedDay возвращается, когда бизнес не работает в выбранный день
	ErrClosedDay = fmt.Errorf("confirm_booking: business is closed on this day: %w", domain.ErrValidation)

	// ErrOutsideWorkingHours возвращается, когда интервал выходит за рабочие часы
	ErrOutsideWorkingHours = fmt.Errorf("confirm_booking: interval is outside working hours: %w", domain.ErrValidation)

	// ErrInvalidSchedule возвращается, когда рабочие часы бизнеса настроены некорректно
	ErrInvalidSchedule = fmt.Errorf("confirm_booking: business schedule is misconfigured: %w", domain.ErrInvalidSchedule)

	// ErrSlotUnavailable возвращается, когда интервал занят другим бронированием
	// Клиент может обновить список слотов и повторить попытку
	ErrSlotUnavailable = fmt.Errorf("confirm_booking: slot is no longer available: %w", domain.ErrConflict)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("confirm_booking: internal error")
)
