package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SlotBooking/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-SlotBooking/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-SlotBooking/internal/service/appointments/models"
)

// Service сервис владельца бизнеса: отмена, квитанция и список бронирований
type Service struct {
	appointmentRepo AppointmentRepository
	catalogRepo     CatalogRepository
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(appointmentRepo AppointmentRepository, catalogRepo CatalogRepository, logger Logger) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		catalogRepo:     catalogRepo,
		logger:          logger,
	}
}

// Cancel удаляет бронирование, если оно принадлежит бизнесу владельца
// Освободившийся интервал сразу появляется в свободных слотах
func (s *Service) Cancel(ctx context.Context, appointmentID int64, requestingBusinessID int64) error {
	s.logger.Info("Cancel: cancelling appointment id=%d by business=%d", appointmentID, requestingBusinessID)

	if _, err := s.getOwned(ctx, "Cancel", appointmentID, requestingBusinessID); err != nil {
		return err
	}

	if err := s.appointmentRepo.Delete(ctx, appointmentID); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Cancel: appointment id=%d already removed", appointmentID)
			return ErrAppointmentNotFound
		}
		s.logger.Error("Cancel: repository error for appointment id=%d: %v", appointmentID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: appointment id=%d removed", appointmentID)
	return nil
}

// GetReceipt получает бронирование для квитанции
func (s *Service) GetReceipt(ctx context.Context, appointmentID int64, requestingBusinessID int64) (*models.AppointmentResponse, error) {
	s.logger.Info("GetReceipt: fetching appointment id=%d for business=%d", appointmentID, requestingBusinessID)

	appointment, err := s.getOwned(ctx, "GetReceipt", appointmentID, requestingBusinessID)
	if err != nil {
		return nil, err
	}

	return models.FromDomainAppointment(appointment), nil
}

// ListForDashboard получает бронирования бизнеса, отсортированные по началу, и выручку за период
func (s *Service) ListForDashboard(ctx context.Context, req *models.ListRequest) (*models.DashboardResponse, error) {
	s.logger.Info("ListForDashboard: business=%d requested by business=%d", req.BusinessID, req.RequestingBusinessID)

	if req.BusinessID != req.RequestingBusinessID {
		s.logger.Warn("ListForDashboard: access denied for business=%d to business=%d", req.RequestingBusinessID, req.BusinessID)
		return nil, ErrAccessDenied
	}

	if req.From != nil && req.To != nil && !req.From.Before(*req.To) {
		s.logger.Warn("ListForDashboard: invalid period %s - %s", req.From, req.To)
		return nil, fmt.Errorf("%w: from must be before to", ErrInvalidInput)
	}

	appointments, err := s.appointmentRepo.ListByBusiness(ctx, req.ToDomainFilter())
	if err != nil {
		s.logger.Error("ListForDashboard: repository error for business=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: ListForDashboard - repository error: %v", ErrInternal, err)
	}

	services, err := s.catalogRepo.ListByBusiness(ctx, req.BusinessID)
	if err != nil {
		s.logger.Error("ListForDashboard: catalog error for business=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: ListForDashboard - catalog error: %v", ErrInternal, err)
	}

	result := models.FromDomainDashboard(appointments, services)
	s.logger.Info("ListForDashboard: fetched %d appointments and %d services for business=%d, revenue=%s",
		result.Total, len(result.Services), req.BusinessID, result.Revenue.StringFixed(2))

	return result, nil
}

// getOwned получает бронирование и проверяет, что оно принадлежит бизнесу владельца
func (s *Service) getOwned(ctx context.Context, op string, appointmentID, requestingBusinessID int64) (*domain.Appointment, error) {
	appointment, err := s.appointmentRepo.GetByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("%s: appointment id=%d not found", op, appointmentID)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("%s: repository error for appointment id=%d: %v", op, appointmentID, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	if !appointment.BelongsTo(requestingBusinessID) {
		s.logger.Warn("%s: access denied for business=%d to appointment id=%d of business=%d",
			op, requestingBusinessID, appointmentID, appointment.BusinessID)
		return nil, ErrAccessDenied
	}

	return appointment, nil
}
