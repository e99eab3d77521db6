package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-SlotBooking/internal/domain"
	catalogRepo "github.com/m04kA/SMC-SlotBooking/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-SlotBooking/internal/service/catalog/models"
)

// Service сервис управления каталогом услуг владельцем бизнеса
type Service struct {
	catalogRepo CatalogRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(catalogRepo CatalogRepository, logger Logger) *Service {
	return &Service{
		catalogRepo: catalogRepo,
		logger:      logger,
	}
}

// AddService добавляет услугу в каталог своего бизнеса
func (s *Service) AddService(ctx context.Context, req *models.CreateServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("AddService: business=%d by owner of business=%d", req.BusinessID, req.OwnerBusinessID)

	// 1. Проверяем права доступа
	if req.OwnerBusinessID != req.BusinessID {
		s.logger.Warn("AddService: access denied for business=%d to business=%d", req.OwnerBusinessID, req.BusinessID)
		return nil, ErrAccessDenied
	}

	// 2. Валидируем данные услуги
	duration := domain.DefaultServiceDuration
	if req.DurationMinutes != nil {
		duration = *req.DurationMinutes
	}

	spec := &domain.ServiceSpec{
		BusinessID:      req.BusinessID,
		Name:            strings.TrimSpace(req.Name),
		DurationMinutes: duration,
		Price:           req.Price.Round(2),
	}
	if err := validateService(spec); err != nil {
		s.logger.Warn("AddService: invalid service for business=%d: %v", req.BusinessID, err)
		return nil, err
	}

	// 3. Сохраняем
	created, err := s.catalogRepo.Create(ctx, spec)
	if err != nil {
		return nil, s.mapRepoError("AddService", err)
	}

	s.logger.Info("AddService: service=%d added to business=%d (%s, %d min, %s)",
		created.ID, created.BusinessID, created.Name, created.DurationMinutes, created.Price.StringFixed(2))

	return models.FromDomainService(created), nil
}

// UpdatePrice меняет цену услуги своего бизнеса
// Подтвержденные бронирования хранят цену на момент записи и не пересчитываются
func (s *Service) UpdatePrice(ctx context.Context, req *models.UpdatePriceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("UpdatePrice: service=%d by owner of business=%d", req.ServiceID, req.OwnerBusinessID)

	if req.Price == nil {
		return nil, fmt.Errorf("%w: price is required", ErrInvalidInput)
	}
	price := req.Price.Round(2)
	if price.IsNegative() {
		return nil, fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}

	if _, err := s.getOwned(ctx, "UpdatePrice", req.ServiceID, req.OwnerBusinessID); err != nil {
		return nil, err
	}

	updated, err := s.catalogRepo.UpdatePrice(ctx, req.ServiceID, price)
	if err != nil {
		return nil, s.mapRepoError("UpdatePrice", err)
	}

	s.logger.Info("UpdatePrice: service=%d now costs %s", updated.ID, updated.Price.StringFixed(2))

	return models.FromDomainService(updated), nil
}

// DeleteService удаляет услугу из каталога своего бизнеса
func (s *Service) DeleteService(ctx context.Context, serviceID int64, ownerBusinessID int64) error {
	s.logger.Info("DeleteService: service=%d by owner of business=%d", serviceID, ownerBusinessID)

	if _, err := s.getOwned(ctx, "DeleteService", serviceID, ownerBusinessID); err != nil {
		return err
	}

	if err := s.catalogRepo.Delete(ctx, serviceID); err != nil {
		return s.mapRepoError("DeleteService", err)
	}

	s.logger.Info("DeleteService: service=%d deleted", serviceID)
	return nil
}

func (s *Service) getOwned(ctx context.Context, op string, serviceID, ownerBusinessID int64) (*domain.ServiceSpec, error) {
	service, err := s.catalogRepo.GetByID(ctx, serviceID)
	if err != nil {
		return nil, s.mapRepoError(op, err)
	}

	if !service.BelongsTo(ownerBusinessID) {
		s.logger.Warn("%s: access denied for business=%d to service=%d of business=%d",
			op, ownerBusinessID, serviceID, service.BusinessID)
		return nil, ErrAccessDenied
	}

	return service, nil
}

func validateService(spec *domain.ServiceSpec) error {
	if spec.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(spec.Name) > domain.MaxServiceNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidInput, domain.MaxServiceNameLength)
	}
	if !spec.IsValid() {
		return fmt.Errorf("%w: duration must be positive and price not negative (duration=%d, price=%s)",
			ErrInvalidInput, spec.DurationMinutes, spec.Price.StringFixed(2))
	}
	return nil
}

func (s *Service) mapRepoError(op string, err error) error {
	switch {
	case errors.Is(err, catalogRepo.ErrServiceNotFound):
		s.logger.Warn("%s: service not found", op)
		return ErrServiceNotFound
	case errors.Is(err, catalogRepo.ErrBusinessNotFound):
		s.logger.Warn("%s: business not found", op)
		return ErrBusinessNotFound
	case errors.Is(err, catalogRepo.ErrServiceConstraint):
		s.logger.Warn("%s: database rejected service: %v", op, err)
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	s.logger.Error("%s: repository error: %v", op, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}
