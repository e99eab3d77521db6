package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SlotBooking/internal/availability"
	"github.com/m04kA/SMC-SlotBooking/internal/domain"
	businessRepo "github.com/m04kA/SMC-SlotBooking/internal/infra/storage/business"
	"github.com/m04kA/SMC-SlotBooking/pkg/txmanager"
	"github.com/m04kA/SMC-SlotBooking/pkg/types"
)

// UseCase use case для получения свободных слотов под набор услуг
type UseCase struct {
	appointmentRepo AppointmentRepository
	businessRepo    BusinessRepository
	catalogRepo     CatalogRepository
	txManager       TransactionManager
	metrics         Metrics
	timeProvider    TimeProvider
	logger          Logger
	slotStep        time.Duration
}

// Option настройка use case
type Option func(*UseCase)

// WithSlotStep задает шаг сетки слотов
func WithSlotStep(step time.Duration) Option {
	return func(uc *UseCase) {
		if step > 0 {
			uc.slotStep = step
		}
	}
}

// WithTimeProvider подменяет источник текущего времени
func WithTimeProvider(tp TimeProvider) Option {
	return func(uc *UseCase) {
		uc.timeProvider = tp
	}
}

// WithTransactionManager читает бизнес, каталог и бронирования в одной read-only транзакции
func WithTransactionManager(tm TransactionManager) Option {
	return func(uc *UseCase) {
		if tm != nil {
			uc.txManager = tm
		}
	}
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	businessRepo BusinessRepository,
	catalogRepo CatalogRepository,
	metrics Metrics,
	logger Logger,
	opts ...Option,
) *UseCase {
	uc := &UseCase{
		appointmentRepo: appointmentRepo,
		businessRepo:    businessRepo,
		catalogRepo:     catalogRepo,
		txManager:       directReads{},
		metrics:         metrics,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
		slotStep:        availability.DefaultStep,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Execute выполняет use case получения свободных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: business=%d, date=%s, services=%v",
		req.BusinessID, req.Date.Format(domain.DateFormat), req.ServiceIDs)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	var response *Response
	err := uc.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		var err error
		response, err = uc.compute(txCtx, req)
		return err
	})
	if err != nil {
		if errors.Is(err, txmanager.ErrBeginTx) || errors.Is(err, txmanager.ErrCommit) {
			uc.logger.Error("GetAvailableSlots: read transaction failed: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}
		return nil, err
	}

	return response, nil
}

// compute выполняет чтения и расчет слотов, ctx может нести открытую транзакцию
func (uc *UseCase) compute(ctx context.Context, req *Request) (*Response, error) {
	date := domain.DateOnly(req.Date)
	serviceIDs := domain.UniqueIDs(req.ServiceIDs)

	// 2. Получаем бизнес
	business, err := uc.businessRepo.GetByID(ctx, req.BusinessID)
	if err != nil {
		if errors.Is(err, businessRepo.ErrBusinessNotFound) {
			uc.logger.Warn("GetAvailableSlots: business id=%d not found", req.BusinessID)
			return nil, ErrBusinessNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get business id=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: failed to get business: %v", ErrInternal, err)
	}

	// 3. Получаем выбранные услуги и суммарную длительность
	catalog, err := uc.catalogRepo.GetByIDs(ctx, business.ID, serviceIDs)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get services %v: %v", serviceIDs, err)
		return nil, fmt.Errorf("%w: failed to get services: %v", ErrInternal, err)
	}

	selected, missing := domain.SelectServices(serviceIDs, catalog)
	if len(missing) > 0 {
		uc.logger.Warn("GetAvailableSlots: services %v not found for business id=%d", missing, business.ID)
		return nil, fmt.Errorf("%w: ids=%v", ErrServiceNotFound, missing)
	}

	bundle := domain.NewServiceBundle(selected)
	response := &Response{
		Date:                 date,
		BusinessID:           business.ID,
		TotalDurationMinutes: int(bundle.TotalDuration() / time.Minute),
		Slots:                []types.TimeString{},
	}

	// 4. Прошедшие даты и нерабочие дни не дают слотов
	now := domain.WallClock(uc.timeProvider.Now())
	if date.Before(domain.DateOnly(now)) {
		uc.logger.Info("GetAvailableSlots: date %s is in the past", date.Format(domain.DateFormat))
		return response, nil
	}

	if !domain.IsServiceDay(business.Schedule, date) {
		uc.logger.Info("GetAvailableSlots: business id=%d is closed on %s", business.ID, date.Format(domain.DateFormat))
		uc.metrics.ObserveSlotsReturned(0)
		return response, nil
	}

	window, err := domain.DayWindow(business.Schedule, date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: business id=%d has invalid schedule: %v", business.ID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidSchedule, err)
	}

	// 5. Получаем бронирования, пересекающие рабочее окно дня
	existing, err := uc.appointmentRepo.FindOverlapping(ctx, business.ID, window)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	// 6. Вычисляем свободные слоты
	slots, err := availability.ComputeFreeSlots(business.Schedule, existing, date, bundle.TotalDuration(),
		availability.WithStep(uc.slotStep))
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to compute slots: %v", err)
		return nil, fmt.Errorf("%w: failed to compute slots: %v", ErrInternal, err)
	}

	// 7. На сегодня отбрасываем уже прошедшие времена начала
	if date.Equal(domain.DateOnly(now)) {
		slots = dropBefore(slots, now)
	}

	response.Slots = availability.FormatSlots(slots)
	uc.metrics.ObserveSlotsReturned(len(response.Slots))

	uc.logger.Info("GetAvailableSlots: found %d slots for business=%d, date=%s, duration=%dm",
		len(response.Slots), business.ID, date.Format(domain.DateFormat), response.TotalDurationMinutes)

	return response, nil
}

func dropBefore(slots []time.Time, now time.Time) []time.Time {
	for i, slot := range slots {
		if !slot.Before(now) {
			return slots[i:]
		}
	}
	return slots[:0]
}
