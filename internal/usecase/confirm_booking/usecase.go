package confirm_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/m04kA/SMC-SlotBooking/internal/domain"
	businessRepo "github.com/m04kA/SMC-SlotBooking/internal/infra/storage/business"
	"github.com/m04kA/SMC-SlotBooking/pkg/keylock"
	"github.com/m04kA/SMC-SlotBooking/pkg/metrics"
	"github.com/m04kA/SMC-SlotBooking/pkg/txmanager"
)

// UseCase координатор бронирований: проверка и запись выполняются атомарно
// относительно других подтверждений того же бизнеса
type UseCase struct {
	appointmentRepo AppointmentRepository
	businessRepo    BusinessRepository
	catalogRepo     CatalogRepository
	locker          Locker
	txManager       TransactionManager
	metrics         Metrics
	timeProvider    TimeProvider
	logger          Logger
}

// Option настройка use case
type Option func(*UseCase)

// WithTimeProvider подменяет источник текущего времени
func WithTimeProvider(tp TimeProvider) Option {
	return func(uc *UseCase) {
		uc.timeProvider = tp
	}
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	businessRepo BusinessRepository,
	catalogRepo CatalogRepository,
	locker Locker,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
	opts ...Option,
) *UseCase {
	uc := &UseCase{
		appointmentRepo: appointmentRepo,
		businessRepo:    businessRepo,
		catalogRepo:     catalogRepo,
		locker:          locker,
		txManager:       txManager,
		metrics:         metrics,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Execute подтверждает бронирование
// Проверка пересечений и запись выполняются под блокировкой бизнеса внутри сериализуемой транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ConfirmBooking: business=%d, date=%s, time=%s, services=%v",
		req.BusinessID, req.Date.Format(domain.DateFormat), req.StartTime, req.ServiceIDs)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ConfirmBooking: validation failed: %v", err)
		uc.metrics.RecordBookingResult(metrics.BookingResultValidation)
		return nil, err
	}

	// 2. Получаем бизнес
	business, err := uc.businessRepo.GetByID(ctx, req.BusinessID)
	if err != nil {
		if errors.Is(err, businessRepo.ErrBusinessNotFound) {
			uc.logger.Warn("ConfirmBooking: business id=%d not found", req.BusinessID)
			uc.metrics.RecordBookingResult(metrics.BookingResultValidation)
			return nil, ErrBusinessNotFound
		}
		uc.logger.Error("ConfirmBooking: failed to get business id=%d: %v", req.BusinessID, err)
		uc.metrics.RecordBookingResult(metrics.BookingResultError)
		return nil, fmt.Errorf("%w: failed to get business: %v", ErrInternal, err)
	}

	// 3. Снимок выбранных услуг
	bundle, err := uc.resolveBundle(ctx, business.ID, req.ServiceIDs)
	if err != nil {
		return nil, err
	}

	// 4. Интервал бронирования и проверка по расписанию
	startAt, err := domain.Combine(domain.DateOnly(req.Date), req.StartTime)
	if err != nil {
		uc.logger.Warn("ConfirmBooking: invalid start time %s: %v", req.StartTime, err)
		uc.metrics.RecordBookingResult(metrics.BookingResultValidation)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	interval := domain.NewInterval(startAt, bundle.TotalDuration())

	now := domain.WallClock(uc.timeProvider.Now())
	if err := validateInterval(business.Schedule, interval, now); err != nil {
		if errors.Is(err, ErrInvalidSchedule) {
			uc.logger.Error("ConfirmBooking: business id=%d has invalid schedule: %v", business.ID, err)
			uc.metrics.RecordBookingResult(metrics.BookingResultError)
		} else {
			uc.logger.Warn("ConfirmBooking: interval rejected: %v", err)
			uc.metrics.RecordBookingResult(metrics.BookingResultValidation)
		}
		return nil, err
	}

	// 5. Блокировка бизнеса
	lockStart := time.Now()
	release, err := uc.locker.Acquire(ctx, lockKey(business.ID))
	uc.metrics.ObserveLockWait(uc.locker.Backend(), time.Since(lockStart))
	if err != nil {
		if errors.Is(err, keylock.ErrLockTimeout) {
			uc.logger.Warn("ConfirmBooking: lock for business id=%d not acquired: %v", business.ID, err)
			uc.metrics.RecordBookingResult(metrics.BookingResultLockTimeout)
			return nil, fmt.Errorf("%w: %v", ErrSlotUnavailable, err)
		}
		uc.logger.Error("ConfirmBooking: failed to acquire lock for business id=%d: %v", business.ID, err)
		uc.metrics.RecordBookingResult(metrics.BookingResultError)
		return nil, fmt.Errorf("%w: failed to acquire lock: %v", ErrInternal, err)
	}
	defer release()

	// 6. Проверка пересечений и запись в одной транзакции
	var created *domain.Appointment
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 6.1. Бронирования, пересекающие интервал (FOR UPDATE)
		overlapping, err := uc.appointmentRepo.FindOverlapping(txCtx, business.ID, interval)
		if err != nil {
			return fmt.Errorf("failed to get overlapping appointments: %w", err)
		}

		// 6.2. Проверяем, что интервал свободен
		for _, existing := range overlapping {
			if domain.Overlaps(interval, existing.Interval()) {
				uc.logger.Warn("ConfirmBooking: [%s, %s) overlaps appointment id=%d",
					interval.Start.Format(domain.TimeFormat), interval.End.Format(domain.TimeFormat), existing.ID)
				return ErrSlotUnavailable
			}
		}

		// 6.3. Сохраняем бронирование с денормализацией услуг
		appointment := &domain.Appointment{
			BusinessID:   business.ID,
			ClientName:   strings.TrimSpace(req.ClientName),
			ServiceNames: bundle.JoinedNames(),
			TotalPrice:   bundle.TotalPrice(),
			StartAt:      interval.Start,
			EndAt:        interval.End,
			Note:         req.Note,
		}

		created, err = uc.appointmentRepo.Create(txCtx, appointment)
		if err != nil {
			return fmt.Errorf("failed to create appointment: %w", err)
		}
		return nil
	})

	if err != nil {
		return nil, uc.classifyTxError(business.ID, err)
	}

	uc.metrics.RecordBookingResult(metrics.BookingResultConfirmed)
	uc.logger.Info("ConfirmBooking: created appointment id=%d for business=%d at %s (%d services, %s)",
		created.ID, business.ID, created.StartAt.Format(domain.DisplayDateFormat), bundle.Len(), created.TotalPrice.StringFixed(2))

	return &Response{
		ID:           created.ID,
		BusinessID:   created.BusinessID,
		BusinessName: business.Name,
		ClientName:   created.ClientName,
		ServiceNames: created.ServiceNames,
		TotalPrice:   created.TotalPrice,
		StartAt:      created.StartAt,
		EndAt:        created.EndAt,
		Note:         created.Note,
		CreatedAt:    created.CreatedAt,
		DisplayDate:  created.StartAt.Format(domain.DisplayDateFormat),
	}, nil
}

// resolveBundle получает услуги в порядке запроса и проверяет, что все они из каталога бизнеса
func (uc *UseCase) resolveBundle(ctx context.Context, businessID int64, requested []int64) (domain.ServiceBundle, error) {
	serviceIDs := domain.UniqueIDs(requested)

	catalog, err := uc.catalogRepo.GetByIDs(ctx, businessID, serviceIDs)
	if err != nil {
		uc.logger.Error("ConfirmBooking: failed to get services %v: %v", serviceIDs, err)
		uc.metrics.RecordBookingResult(metrics.BookingResultError)
		return domain.ServiceBundle{}, fmt.Errorf("%w: failed to get services: %v", ErrInternal, err)
	}

	selected, missing := domain.SelectServices(serviceIDs, catalog)
	if len(missing) > 0 {
		uc.logger.Warn("ConfirmBooking: services %v not found for business id=%d", missing, businessID)
		uc.metrics.RecordBookingResult(metrics.BookingResultValidation)
		return domain.ServiceBundle{}, fmt.Errorf("%w: ids=%v", ErrUnknownService, missing)
	}

	bundle := domain.NewServiceBundle(selected)
	if bundle.TotalDuration() <= 0 {
		uc.logger.Error("ConfirmBooking: services %v have non-positive total duration", serviceIDs)
		uc.metrics.RecordBookingResult(metrics.BookingResultError)
		return domain.ServiceBundle{}, fmt.Errorf("%w: services have non-positive duration", ErrInternal)
	}
	if utf8.RuneCountInString(bundle.JoinedNames()) > domain.MaxServiceNamesLength {
		uc.logger.Warn("ConfirmBooking: joined service names exceed %d characters", domain.MaxServiceNamesLength)
		uc.metrics.RecordBookingResult(metrics.BookingResultValidation)
		return domain.ServiceBundle{}, fmt.Errorf("%w: too many services selected", ErrInvalidInput)
	}

	return bundle, nil
}

// classifyTxError сводит ошибку транзакции к конфликту или внутренней ошибке
func (uc *UseCase) classifyTxError(businessID int64, err error) error {
	switch {
	case errors.Is(err, ErrSlotUnavailable):
		uc.metrics.RecordBookingResult(metrics.BookingResultConflict)
		return err
	case errors.Is(err, txmanager.ErrSerializationFailure), errors.Is(err, txmanager.ErrLockNotAvailable):
		uc.logger.Warn("ConfirmBooking: concurrent write for business id=%d: %v", businessID, err)
		uc.metrics.RecordBookingResult(metrics.BookingResultConflict)
		return fmt.Errorf("%w: %v", ErrSlotUnavailable, err)
	default:
		uc.logger.Error("ConfirmBooking: transaction failed for business id=%d: %v", businessID, err)
		uc.metrics.RecordBookingResult(metrics.BookingResultError)
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}

func lockKey(businessID int64) string {
	return fmt.Sprintf("business:%d", businessID)
}
