package confirm_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SlotBooking/internal/domain"
)

// AppointmentRepository интерфейс репозитория бронирований
type AppointmentRepository interface {
	Create(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error)
	// FindOverlapping внутри транзакции блокирует найденные строки
	FindOverlapping(ctx context.Context, businessID int64, window domain.Interval) ([]*domain.Appointment, error)
}

// BusinessRepository интерфейс репозитория бизнесов
type BusinessRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Business, error)
}

// CatalogRepository интерфейс репозитория каталога услуг
type CatalogRepository interface {
	GetByIDs(ctx context.Context, businessID int64, ids []int64) ([]*domain.ServiceSpec, error)
}

// Locker взаимное исключение бронирований одного бизнеса
// Реализации: keylock (один процесс) и redislock (несколько экземпляров)
type Locker interface {
	Acquire(ctx context.Context, key string) (release func(), err error)
	Backend() string
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics метрики подтверждения бронирований
type Metrics interface {
	RecordBookingResult(result string)
	ObserveLockWait(backend string, wait time.Duration)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
