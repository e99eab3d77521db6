// Package availability вычисляет свободные времена начала для набора услуг на конкретный день.
// Функции пакета чистые: без ввода-вывода и общего состояния, безопасны для параллельного вызова.
package availability

import (
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-SlotBooking/internal/domain"
	"github.com/m04kA/SMC-SlotBooking/pkg/types"
)

// DefaultStep шаг сетки кандидатов
const DefaultStep = domain.DefaultSlotStep

type options struct {
	step time.Duration
}

// Option настройка вычисления слотов
type Option func(*options)

// WithStep задает шаг сетки кандидатов
func WithStep(step time.Duration) Option {
	return func(o *options) {
		o.step = step
	}
}

// ComputeFreeSlots возвращает свободные времена начала в порядке возрастания
//
// Кандидаты идут от открытия с шагом step, пока кандидат + totalDuration не выходит за закрытие.
// Кандидат свободен, если [t, t+totalDuration) не пересекается ни с одним бронированием.
// Нерабочий день дает пустой результат без ошибки.
func ComputeFreeSlots(
	schedule domain.BusinessSchedule,
	existing []*domain.Appointment,
	date time.Time,
	totalDuration time.Duration,
	opts ...Option,
) ([]time.Time, error) {
	o := options{step: DefaultStep}
	for _, opt := range opts {
		opt(&o)
	}

	if totalDuration <= 0 {
		return nil, fmt.Errorf("%w: total duration must be positive, got %s", domain.ErrValidation, totalDuration)
	}
	if o.step <= 0 {
		return nil, fmt.Errorf("%w: step must be positive, got %s", domain.ErrValidation, o.step)
	}

	if !domain.IsServiceDay(schedule, date) {
		return []time.Time{}, nil
	}

	window, err := domain.DayWindow(schedule, date)
	if err != nil {
		return nil, err
	}

	busy := busyIntervals(existing, window)

	slots := make([]time.Time, 0)
	for t := window.Start; !t.Add(totalDuration).After(window.End); t = t.Add(o.step) {
		if isFree(domain.NewInterval(t, totalDuration), busy) {
			slots = append(slots, t)
		}
	}

	return slots, nil
}

// FormatSlots переводит времена начала в строки HH:MM
func FormatSlots(slots []time.Time) []types.TimeString {
	result := make([]types.TimeString, len(slots))
	for i, slot := range slots {
		result[i] = types.NewTimeString(slot)
	}
	return result
}

// busyIntervals оставляет бронирования, пересекающие рабочее окно, и сортирует их по началу
// Вызывающий код может передать более широкую выборку, поэтому фильтруем повторно
func busyIntervals(existing []*domain.Appointment, window domain.Interval) []domain.Interval {
	busy := make([]domain.Interval, 0, len(existing))
	for _, appointment := range existing {
		if appointment == nil {
			continue
		}
		interval := appointment.Interval()
		if !interval.IsValid() {
			continue
		}
		if domain.Overlaps(interval, window) {
			busy = append(busy, interval)
		}
	}

	sort.Slice(busy, func(i, j int) bool {
		return busy[i].Start.Before(busy[j].Start)
	})

	return busy
}

func isFree(candidate domain.Interval, busy []domain.Interval) bool {
	for _, interval := range busy {
		// busy отсортирован: дальше только интервалы, начинающиеся после конца кандидата
		if !interval.Start.Before(candidate.End) {
			return true
		}
		if domain.Overlaps(candidate, interval) {
			return false
		}
	}
	return true
}
