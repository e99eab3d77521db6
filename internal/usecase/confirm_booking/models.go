package confirm_booking

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SlotBooking/pkg/types"
)

// Request модель запроса на подтверждение бронирования
type Request struct {
	BusinessID int64
	ClientName string
	ServiceIDs []int64          // Порядок определяет порядок названий в записи
	Date       time.Time        // Дата (время суток игнорируется)
	StartTime  types.TimeString // Время начала, HH:MM
	Note       *string          // Комментарий клиента (опционально)
}

// Response подтвержденное бронирование с данными для экрана подтверждения
type Response struct {
	ID           int64
	BusinessID   int64
	BusinessName string
	ClientName   string
	ServiceNames string
	TotalPrice   decimal.Decimal
	StartAt      time.Time
	EndAt        time.Time
	Note         *string
	CreatedAt    time.Time

	// DisplayDate дата и время начала в формате 02/01/2006 15:04
	DisplayDate string
}
