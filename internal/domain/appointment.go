package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Appointment подтвержденное бронирование
// Создается только координатором бронирований, после создания не изменяется (только удаляется)
type Appointment struct {
	ID         int64
	BusinessID int64
	ClientName string

	// Денормализованные данные услуг на момент бронирования
	ServiceNames string
	TotalPrice   decimal.Decimal

	StartAt time.Time
	EndAt   time.Time
	Note    *string

	CreatedAt time.Time
}

// Interval интервал, занятый бронированием
func (a *Appointment) Interval() Interval {
	return Interval{Start: a.StartAt, End: a.EndAt}
}

// BelongsTo возвращает true, если бронирование принадлежит бизнесу
func (a *Appointment) BelongsTo(businessID int64) bool {
	return a.BusinessID == businessID
}

// AppointmentsFilter фильтр бронирований бизнеса для панели владельца
type AppointmentsFilter struct {
	BusinessID int64      // Обязательный параметр
	From       *time.Time // Начало периода (опционально)
	To         *time.Time // Конец периода (опционально)
}
