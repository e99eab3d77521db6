package business

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SlotBooking/internal/domain"
	businessRepo "github.com/m04kA/SMC-SlotBooking/internal/infra/storage/business"
	"github.com/m04kA/SMC-SlotBooking/internal/service/business/models"
	"github.com/m04kA/SMC-SlotBooking/pkg/types"
)

// Service сервис публичной страницы и расписания бизнеса
type Service struct {
	businessRepo BusinessRepository
	catalogRepo  CatalogRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса бизнеса
func NewService(businessRepo BusinessRepository, catalogRepo CatalogRepository, logger Logger) *Service {
	return &Service{
		businessRepo: businessRepo,
		catalogRepo:  catalogRepo,
		logger:       logger,
	}
}

// GetPublicPage получает бизнес по slug вместе с каталогом услуг
func (s *Service) GetPublicPage(ctx context.Context, slug string) (*models.PublicPageResponse, error) {
	s.logger.Info("GetPublicPage: slug=%s", slug)

	if slug == "" {
		return nil, fmt.Errorf("%w: slug is required", ErrInvalidInput)
	}

	business, err := s.businessRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, s.mapRepoError("GetPublicPage", err)
	}

	services, err := s.catalogRepo.ListByBusiness(ctx, business.ID)
	if err != nil {
		s.logger.Error("GetPublicPage: failed to list services for business=%d: %v", business.ID, err)
		return nil, fmt.Errorf("%w: GetPublicPage - catalog error: %v", ErrInternal, err)
	}

	return models.FromDomainPublicPage(business, services), nil
}

// GetSchedule получает рабочие часы бизнеса
func (s *Service) GetSchedule(ctx context.Context, businessID int64) (*models.ScheduleResponse, error) {
	s.logger.Info("GetSchedule: business=%d", businessID)

	business, err := s.businessRepo.GetByID(ctx, businessID)
	if err != nil {
		return nil, s.mapRepoError("GetSchedule", err)
	}

	return models.FromDomainSchedule(business), nil
}

// UpdateSchedule изменяет рабочие часы бизнеса
// Доступно только владельцу; время открытия должно быть строго раньше закрытия
func (s *Service) UpdateSchedule(ctx context.Context, req *models.UpdateScheduleRequest) (*models.ScheduleResponse, error) {
	s.logger.Info("UpdateSchedule: business=%d by owner of business=%d", req.BusinessID, req.OwnerBusinessID)

	// 1. Проверяем права доступа
	if req.OwnerBusinessID != req.BusinessID {
		s.logger.Warn("UpdateSchedule: access denied for business=%d to business=%d", req.OwnerBusinessID, req.BusinessID)
		return nil, ErrAccessDenied
	}

	// 2. Получаем текущее расписание
	business, err := s.businessRepo.GetByID(ctx, req.BusinessID)
	if err != nil {
		return nil, s.mapRepoError("UpdateSchedule", err)
	}

	// 3. Применяем переданные поля
	schedule, err := applyScheduleUpdate(business.Schedule, req)
	if err != nil {
		s.logger.Warn("UpdateSchedule: invalid input for business=%d: %v", req.BusinessID, err)
		return nil, err
	}

	// 4. Проверяем расписание до записи
	if err := schedule.Validate(); err != nil {
		s.logger.Warn("UpdateSchedule: rejected schedule for business=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidSchedule, err)
	}

	// 5. Сохраняем
	updated, err := s.businessRepo.UpdateSchedule(ctx, req.BusinessID, schedule)
	if err != nil {
		if errors.Is(err, businessRepo.ErrScheduleConstraint) {
			s.logger.Warn("UpdateSchedule: database rejected schedule for business=%d: %v", req.BusinessID, err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidSchedule, err)
		}
		return nil, s.mapRepoError("UpdateSchedule", err)
	}

	s.logger.Info("UpdateSchedule: business=%d now opens %s-%s, saturday=%t, sunday=%t",
		updated.ID, updated.Schedule.OpensAt, updated.Schedule.ClosesAt,
		updated.Schedule.WorksSaturday, updated.Schedule.WorksSunday)

	return models.FromDomainSchedule(updated), nil
}

func applyScheduleUpdate(current domain.BusinessSchedule, req *models.UpdateScheduleRequest) (domain.BusinessSchedule, error) {
	schedule := current

	if req.OpensAt != nil {
		opensAt, err := types.NewTimeStringFromString(*req.OpensAt)
		if err != nil {
			return schedule, fmt.Errorf("%w: opensAt: %v", ErrInvalidInput, err)
		}
		schedule.OpensAt = opensAt
	}
	if req.ClosesAt != nil {
		closesAt, err := types.NewTimeStringFromString(*req.ClosesAt)
		if err != nil {
			return schedule, fmt.Errorf("%w: closesAt: %v", ErrInvalidInput, err)
		}
		schedule.ClosesAt = closesAt
	}
	if req.WorksSaturday != nil {
		schedule.WorksSaturday = *req.WorksSaturday
	}
	if req.WorksSunday != nil {
		schedule.WorksSunday = *req.WorksSunday
	}

	return schedule, nil
}

func (s *Service) mapRepoError(op string, err error) error {
	if errors.Is(err, businessRepo.ErrBusinessNotFound) {
		s.logger.Warn("%s: business not found", op)
		return ErrBusinessNotFound
	}
	s.logger.Error("%s: repository error: %v", op, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}
