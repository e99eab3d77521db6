package domain

import "time"

// Interval полуоткрытый интервал времени [Start, End)
type Interval struct {
	Start time.Time
	End   time.Time
}

// NewInterval создает интервал заданной длительности
func NewInterval(start time.Time, duration time.Duration) Interval {
	return Interval{Start: start, End: start.Add(duration)}
}

// IsValid возвращает true, если Start строго раньше End
func (i Interval) IsValid() bool {
	return i.Start.Before(i.End)
}

// Contains возвращает true, если other целиком лежит внутри i
func (i Interval) Contains(other Interval) bool {
	return !other.Start.Before(i.Start) && !other.End.After(i.End)
}

// Overlaps проверяет пересечение полуоткрытых интервалов
// Интервалы, которые только касаются границей ([9:00,10:00) и [10:00,11:00)), не пересекаются
func Overlaps(a, b Interval) bool {
	return a.Start.Before(b.End) && b.Start.Before(a.End)
}
