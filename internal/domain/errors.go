package domain

import "errors"

// Виды ошибок ядра бронирования
// Каждая ошибка usecase/service оборачивает ровно один из них, поэтому вызывающий код
// различает их через errors.Is
var (
	// ErrValidation некорректные или отсутствующие входные данные, исправляется пользователем
	ErrValidation = errors.New("validation error")

	// ErrConflict слот занят параллельным бронированием, можно повторить после обновления слотов
	ErrConflict = errors.New("conflict error")

	// ErrAuthorization попытка действовать с данными чужого бизнеса
	ErrAuthorization = errors.New("authorization error")

	// ErrInvalidSchedule рабочие часы бизнеса настроены некорректно (открытие не раньше закрытия)
	ErrInvalidSchedule = errors.New("invalid schedule")
)
