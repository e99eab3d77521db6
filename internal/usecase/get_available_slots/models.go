package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-SlotBooking/pkg/types"
)

// Request модель запроса на получение свободных слотов
type Request struct {
	BusinessID int64     // ID бизнеса
	Date       time.Time // Дата (время суток игнорируется)
	ServiceIDs []int64   // Выбранные услуги, длительности суммируются
}

// Response модель ответа со списком свободных времен начала
type Response struct {
	Date                 time.Time
	BusinessID           int64
	TotalDurationMinutes int
	Slots                []types.TimeString // По возрастанию, формат HH:MM
}
