package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SlotBooking/pkg/types"
)

// BusinessSchedule рабочие часы бизнеса
// Одинаковы для всех рабочих дней, выходные включаются флагами
type BusinessSchedule struct {
	OpensAt       types.TimeString
	ClosesAt      types.TimeString
	WorksSaturday bool
	WorksSunday   bool
}

// Validate проверяет, что время открытия строго раньше времени закрытия
func (s BusinessSchedule) Validate() error {
	if err := s.OpensAt.Validate(); err != nil {
		return fmt.Errorf("%w: opensAt: %v", ErrInvalidSchedule, err)
	}
	if err := s.ClosesAt.Validate(); err != nil {
		return fmt.Errorf("%w: closesAt: %v", ErrInvalidSchedule, err)
	}
	if !s.OpensAt.IsBefore(s.ClosesAt) {
		return fmt.Errorf("%w: opensAt %s must be before closesAt %s", ErrInvalidSchedule, s.OpensAt, s.ClosesAt)
	}
	return nil
}

// IsServiceDay возвращает false для субботы и воскресенья, если бизнес в эти дни не работает
func IsServiceDay(schedule BusinessSchedule, date time.Time) bool {
	switch date.Weekday() {
	case time.Saturday:
		return schedule.WorksSaturday
	case time.Sunday:
		return schedule.WorksSunday
	default:
		return true
	}
}

// DayWindow возвращает рабочее окно дня [открытие, закрытие)
func DayWindow(schedule BusinessSchedule, date time.Time) (Interval, error) {
	if err := schedule.Validate(); err != nil {
		return Interval{}, err
	}

	start, err := schedule.OpensAt.OnDate(date)
	if err != nil {
		return Interval{}, fmt.Errorf("%w: %v", ErrInvalidSchedule, err)
	}
	end, err := schedule.ClosesAt.OnDate(date)
	if err != nil {
		return Interval{}, fmt.Errorf("%w: %v", ErrInvalidSchedule, err)
	}

	return Interval{Start: start, End: end}, nil
}

// Combine совмещает дату и время суток в один момент времени
func Combine(date time.Time, at types.TimeString) (time.Time, error) {
	t, err := at.OnDate(date)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return t, nil
}

// DateOnly отбрасывает время, оставляя полночь той же даты
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// WallClock переносит показания часов t в UTC без пересчета
// Часы работы и бронирования хранятся как местное время бизнеса без часового пояса
func WallClock(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}
