package slotstate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	slotRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/slot"
)

// Service пересчитывает и сохраняет статус слота.
// Статус слота записывается только здесь
type Service struct {
	slotRepo        SlotRepository
	reservationRepo ReservationRepository
	txManager       TransactionManager
	metrics         Metrics
}

// NewService создает сервис пересчета статуса. metrics может быть nil
func NewService(
	slotRepo SlotRepository,
	reservationRepo ReservationRepository,
	txManager TransactionManager,
	metrics Metrics,
) *Service {
	return &Service{
		slotRepo:        slotRepo,
		reservationRepo: reservationRepo,
		txManager:       txManager,
		metrics:         metrics,
	}
}

// Result итог пересчета
type Result struct {
	Status  domain.SlotStatus
	Changed bool
}

// Refresh блокирует слот, вычисляет статус на момент now по активным
// бронированиям и записывает его, если он изменился.
// Внутри уже открытой транзакции выполняется в ней
func (s *Service) Refresh(ctx context.Context, slotID int64, now time.Time) (Result, error) {
	var result Result

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		slot, err := s.slotRepo.LockByID(txCtx, slotID)
		if err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				return ErrSlotNotFound
			}
			return fmt.Errorf("%w: Refresh - lock slot: %w", ErrInternal, err)
		}

		reservations, err := s.reservationRepo.ListActiveBySlot(txCtx, slotID)
		if err != nil {
			return fmt.Errorf("%w: Refresh - list reservations: %w", ErrInternal, err)
		}

		result.Status = domain.DeriveSlotStatus(reservations, now)
		if result.Status == slot.Status {
			return nil
		}

		if err := s.slotRepo.UpdateStatus(txCtx, slotID, result.Status); err != nil {
			return fmt.Errorf("%w: Refresh - update status: %w", ErrInternal, err)
		}
		result.Changed = true

		return nil
	})
	if err != nil {
		return Result{}, err
	}

	if result.Changed && s.metrics != nil {
		s.metrics.IncSlotStatusChange(string(result.Status))
	}

	return result, nil
}
