package reservations

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-ParkingService/internal/service/reservations/models"
)

// Service чтение бронирований: история водителя, активные бронирования, проверка билета
type Service struct {
	reservationRepo ReservationRepository
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(reservationRepo ReservationRepository, logger Logger) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		logger:          logger,
	}
}

// ListByUser возвращает бронирования водителя, сначала новые
func (s *Service) ListByUser(ctx context.Context, userID int64) ([]*models.ReservationResponse, error) {
	list, err := s.reservationRepo.ListDetails(ctx, domain.ReservationFilter{UserID: &userID})
	if err != nil {
		s.logger.Error("ListByUser: repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: ListByUser - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainDetailsList(list), nil
}

// ListActive возвращает все активные бронирования по времени начала
func (s *Service) ListActive(ctx context.Context) ([]*models.ReservationResponse, error) {
	status := domain.ReservationActive
	list, err := s.reservationRepo.ListDetails(ctx, domain.ReservationFilter{Status: &status})
	if err != nil {
		s.logger.Error("ListActive: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListActive - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainDetailsList(list), nil
}

// GetTicket возвращает бронирование с деталями для проверки билета
func (s *Service) GetTicket(ctx context.Context, id int64) (*models.ReservationResponse, error) {
	details, err := s.reservationRepo.GetDetails(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("GetTicket: reservation id=%d not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("GetTicket: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetTicket - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainDetails(details), nil
}
