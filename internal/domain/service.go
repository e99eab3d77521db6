package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ServiceSpec услуга из каталога бизнеса
type ServiceSpec struct {
	ID              int64
	BusinessID      int64
	Name            string
	DurationMinutes int
	Price           decimal.Decimal
}

// Duration длительность услуги
func (s *ServiceSpec) Duration() time.Duration {
	return time.Duration(s.DurationMinutes) * time.Minute
}

// IsValid проверяет положительную длительность и неотрицательную цену
func (s *ServiceSpec) IsValid() bool {
	return s.DurationMinutes > 0 && !s.Price.IsNegative()
}

// BelongsTo возвращает true, если услуга входит в каталог бизнеса
func (s *ServiceSpec) BelongsTo(businessID int64) bool {
	return s.BusinessID == businessID
}

// ServiceBundle снимок выбранных услуг на момент бронирования
// Последующие изменения каталога не влияют на уже созданное бронирование
type ServiceBundle struct {
	services []ServiceSpec
}

// NewServiceBundle копирует услуги в снимок
func NewServiceBundle(services []*ServiceSpec) ServiceBundle {
	snapshot := make([]ServiceSpec, 0, len(services))
	for _, s := range services {
		if s != nil {
			snapshot = append(snapshot, *s)
		}
	}
	return ServiceBundle{services: snapshot}
}

// Len количество услуг в снимке
func (b ServiceBundle) Len() int {
	return len(b.services)
}

// TotalDuration суммарная длительность услуг
func (b ServiceBundle) TotalDuration() time.Duration {
	var total time.Duration
	for i := range b.services {
		total += b.services[i].Duration()
	}
	return total
}

// TotalPrice суммарная цена услуг
func (b ServiceBundle) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for i := range b.services {
		total = total.Add(b.services[i].Price)
	}
	return total
}

// JoinedNames названия услуг через " + " в порядке выбора
func (b ServiceBundle) JoinedNames() string {
	names := make([]string, len(b.services))
	for i := range b.services {
		names[i] = b.services[i].Name
	}
	return strings.Join(names, ServiceNamesSeparator)
}

// UniqueIDs убирает повторяющиеся ID, сохраняя порядок первого появления
func UniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	result := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}

// SelectServices раскладывает услуги каталога в порядке запрошенных ID
// Второе значение - ID, которых в каталоге нет
func SelectServices(ids []int64, catalog []*ServiceSpec) ([]*ServiceSpec, []int64) {
	byID := make(map[int64]*ServiceSpec, len(catalog))
	for _, s := range catalog {
		if s != nil {
			byID[s.ID] = s
		}
	}

	selected := make([]*ServiceSpec, 0, len(ids))
	var missing []int64
	for _, id := range ids {
		s, ok := byID[id]
		if !ok {
			missing = append(missing, id)
			continue
		}
		selected = append(selected, s)
	}

	return selected, missing
}
