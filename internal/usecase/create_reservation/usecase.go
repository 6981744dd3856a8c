package create_reservation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/reservation"
	slotRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/slot"
	vehicleRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/vehicle"
)

// UseCase use case для создания бронирования парковочного места
type UseCase struct {
	slotRepo        SlotRepository
	vehicleRepo     VehicleRepository
	reservationRepo ReservationRepository
	slotState       SlotStateRefresher
	txManager       TransactionManager
	conflicts       ConflictRecorder
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

// WithConflictRecorder включает подсчет конфликтов
func WithConflictRecorder(r ConflictRecorder) Option {
	return func(uc *UseCase) {
		uc.conflicts = r
	}
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slotRepo SlotRepository,
	vehicleRepo VehicleRepository,
	reservationRepo ReservationRepository,
	slotState SlotStateRefresher,
	txManager TransactionManager,
	logger Logger,
	opts ...Option,
) *UseCase {
	uc := &UseCase{
		slotRepo:        slotRepo,
		vehicleRepo:     vehicleRepo,
		reservationRepo: reservationRepo,
		slotState:       slotState,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Execute выполняет use case создания бронирования.
// Проверки пересечений, запись бронирования и пересчет статуса слота выполняются
// в одной сериализуемой транзакции; строки автомобиля и слота блокируются
// (сначала автомобиль, потом слот), поэтому два конкурентных запроса
// на один слот не могут оба пройти проверку
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: user=%d, vehicle=%d, slotId=%v, slotNumber=%v, startAt=%s",
		req.UserID, req.VehicleID, req.SlotID, req.SlotNumber, req.StartAt.Format(domain.TimeFormat))

	now := uc.timeProvider.Now()

	// 1. Валидация входных данных
	durationHours, err := validateRequest(req, now)
	if err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	startAt := req.StartAt
	endAt := domain.EndAt(startAt, durationHours)

	var result *Response

	// 2. Все изменения в одной транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Автомобиль должен принадлежать пользователю
		vehicle, err := uc.vehicleRepo.LockByID(txCtx, req.VehicleID)
		if err != nil {
			if errors.Is(err, vehicleRepo.ErrVehicleNotFound) {
				return ErrVehicleNotFound
			}
			return fmt.Errorf("%w: failed to get vehicle: %w", ErrInternal, err)
		}
		if !vehicle.IsOwnedBy(req.UserID) {
			return ErrVehicleNotFound
		}

		// 2.2. Слот по ID или номеру, с блокировкой строки
		slot, err := uc.lockSlot(txCtx, req)
		if err != nil {
			return err
		}

		// 2.3. Пересечения по автомобилю
		if err := uc.checkOverlap(txCtx, ConflictVehicle, domain.OverlapFilter{
			VehicleID: &vehicle.ID, StartAt: startAt, EndAt: endAt,
		}); err != nil {
			return err
		}

		// 2.4. Пересечения по слоту
		if err := uc.checkOverlap(txCtx, ConflictSlot, domain.OverlapFilter{
			SlotID: &slot.ID, StartAt: startAt, EndAt: endAt,
		}); err != nil {
			return err
		}

		// 2.5. Создаем бронирование
		created, err := uc.reservationRepo.Create(txCtx, &domain.Reservation{
			UserID:        req.UserID,
			VehicleID:     vehicle.ID,
			SlotID:        &slot.ID,
			StartAt:       startAt,
			EndAt:         endAt,
			DurationHours: durationHours,
			TotalAmount:   domain.TotalAmountFor(durationHours),
			PaymentStatus: domain.PaymentPending,
			Status:        domain.ReservationActive,
		})
		if err != nil {
			switch {
			case errors.Is(err, reservationRepo.ErrVehicleOverlap):
				return &ConflictError{Kind: ConflictVehicle}
			case errors.Is(err, reservationRepo.ErrSlotOverlap):
				return &ConflictError{Kind: ConflictSlot}
			}
			return fmt.Errorf("%w: failed to create reservation: %w", ErrInternal, err)
		}

		// 2.6. Пересчитываем статус слота
		state, err := uc.slotState.Refresh(txCtx, slot.ID, now)
		if err != nil {
			return fmt.Errorf("%w: failed to refresh slot status: %w", ErrInternal, err)
		}

		result = &Response{
			Reservation: created,
			SlotNumber:  slot.SlotNumber,
			SlotStatus:  state.Status,
		}
		return nil
	})

	if err != nil {
		var conflict *ConflictError
		switch {
		case errors.As(err, &conflict):
			uc.logger.Warn("CreateReservation: %v", conflict)
			if uc.conflicts != nil {
				uc.conflicts.IncReservationConflict(string(conflict.Kind))
			}
			return nil, conflict
		case errors.Is(err, ErrVehicleNotFound), errors.Is(err, ErrSlotNotFound):
			uc.logger.Warn("CreateReservation: %v", err)
			return nil, err
		case errors.Is(err, ErrInternal):
			uc.logger.Error("CreateReservation: %v", err)
			return nil, err
		default:
			uc.logger.Error("CreateReservation: transaction failed: %v", err)
			return nil, fmt.Errorf("%w: %w", ErrInternal, err)
		}
	}

	uc.logger.Info("CreateReservation: created reservation id=%d on slot %s [%s, %s), amount=%.2f",
		result.Reservation.ID, result.SlotNumber,
		startAt.Format(domain.TimeFormat), endAt.Format(domain.TimeFormat), result.Reservation.TotalAmount)

	return result, nil
}

func (uc *UseCase) lockSlot(ctx context.Context, req *Request) (*domain.Slot, error) {
	slotID := int64(0)
	if req.SlotID != nil {
		slotID = *req.SlotID
	} else {
		slot, err := uc.slotRepo.GetByNumber(ctx, strings.TrimSpace(*req.SlotNumber))
		if err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				return nil, ErrSlotNotFound
			}
			return nil, fmt.Errorf("%w: failed to resolve slot number: %w", ErrInternal, err)
		}
		slotID = slot.ID
	}

	slot, err := uc.slotRepo.LockByID(ctx, slotID)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			return nil, ErrSlotNotFound
		}
		return nil, fmt.Errorf("%w: failed to lock slot: %w", ErrInternal, err)
	}

	return slot, nil
}

func (uc *UseCase) checkOverlap(ctx context.Context, kind ConflictKind, filter domain.OverlapFilter) error {
	overlapping, err := uc.reservationRepo.ListActiveOverlapping(ctx, filter)
	if err != nil {
		return fmt.Errorf("%w: failed to check %s overlap: %w", ErrInternal, kind, err)
	}
	if len(overlapping) == 0 {
		return nil
	}

	existing := overlapping[0]
	return &ConflictError{
		Kind:          kind,
		ReservationID: &existing.ID,
		StartAt:       &existing.StartAt,
		EndAt:         &existing.EndAt,
	}
}
