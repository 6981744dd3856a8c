package vehicles

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	vehicleRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/vehicle"
	"github.com/m04kA/SMC-ParkingService/internal/service/vehicles/models"
)

// Service сервис автомобилей водителя
type Service struct {
	vehicleRepo     VehicleRepository
	reservationRepo ReservationRepository
	txManager       TransactionManager
	logger          Logger
}

// NewService создает новый экземпляр сервиса автомобилей
func NewService(
	vehicleRepo VehicleRepository,
	reservationRepo ReservationRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		vehicleRepo:     vehicleRepo,
		reservationRepo: reservationRepo,
		txManager:       txManager,
		logger:          logger,
	}
}

// Add регистрирует автомобиль пользователя. Номер приводится к верхнему регистру
func (s *Service) Add(ctx context.Context, userID int64, req *models.AddVehicleRequest) (*models.VehicleResponse, error) {
	number := strings.ToUpper(strings.TrimSpace(req.Number))
	s.logger.Info("Add: user=%d, number=%s", userID, number)

	if !domain.IsValidVehicleNumber(number) {
		return nil, fmt.Errorf("%w: vehicle number %q has invalid format", ErrInvalidInput, req.Number)
	}

	var model *string
	if req.Model != nil {
		trimmed := strings.TrimSpace(*req.Model)
		if len(trimmed) > domain.MaxVehicleModelLen {
			return nil, fmt.Errorf("%w: model is too long", ErrInvalidInput)
		}
		if trimmed != "" {
			model = &trimmed
		}
	}

	created, err := s.vehicleRepo.Create(ctx, &domain.Vehicle{
		UserID: userID,
		Number: number,
		Model:  model,
	})
	if err != nil {
		if errors.Is(err, vehicleRepo.ErrVehicleAlreadyExists) {
			s.logger.Warn("Add: vehicle %s already registered", number)
			return nil, ErrVehicleAlreadyExists
		}
		s.logger.Error("Add: repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: Add - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Add: vehicle id=%d registered for user=%d", created.ID, userID)
	return models.FromDomainVehicle(created), nil
}

// List возвращает автомобили пользователя
func (s *Service) List(ctx context.Context, userID int64) ([]*models.VehicleResponse, error) {
	vehicles, err := s.vehicleRepo.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("List: repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainVehicles(vehicles), nil
}

// Delete удаляет автомобиль пользователя.
// Автомобиль блокируется так же, как при бронировании, поэтому удаление
// не может пройти одновременно с созданием бронирования на этот автомобиль
func (s *Service) Delete(ctx context.Context, userID, vehicleID int64) error {
	s.logger.Info("Delete: user=%d, vehicle=%d", userID, vehicleID)

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		v, err := s.vehicleRepo.LockByID(txCtx, vehicleID)
		if err != nil {
			if errors.Is(err, vehicleRepo.ErrVehicleNotFound) {
				return ErrVehicleNotFound
			}
			return fmt.Errorf("%w: Delete - lock vehicle: %w", ErrInternal, err)
		}
		if !v.IsOwnedBy(userID) {
			return ErrVehicleNotFound
		}

		active, err := s.reservationRepo.HasActiveForVehicle(txCtx, vehicleID)
		if err != nil {
			return fmt.Errorf("%w: Delete - check reservations: %w", ErrInternal, err)
		}
		if active {
			return ErrVehicleInUse
		}

		if err := s.vehicleRepo.Delete(txCtx, vehicleID); err != nil {
			return fmt.Errorf("%w: Delete - delete vehicle: %w", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrVehicleNotFound) || errors.Is(err, ErrVehicleInUse) {
			s.logger.Warn("Delete: vehicle=%d: %v", vehicleID, err)
			return err
		}
		s.logger.Error("Delete: vehicle=%d: %v", vehicleID, err)
		if !errors.Is(err, ErrInternal) {
			return fmt.Errorf("%w: %w", ErrInternal, err)
		}
		return err
	}

	s.logger.Info("Delete: vehicle=%d deleted", vehicleID)
	return nil
}
