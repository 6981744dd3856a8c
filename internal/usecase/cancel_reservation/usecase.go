package cancel_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/reservation"
	slotRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/slot"
)

// UseCase use case для отмены бронирования
type UseCase struct {
	slotRepo        SlotRepository
	reservationRepo ReservationRepository
	slotState       SlotStateRefresher
	txManager       TransactionManager
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
	slotRepo SlotRepository,
	reservationRepo ReservationRepository,
	slotState SlotStateRefresher,
	txManager TransactionManager,
	logger Logger,
	opts ...Option,
) *UseCase {
	uc := &UseCase{
		slotRepo:        slotRepo,
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

// Execute отменяет активное бронирование пользователя и пересчитывает статус слота.
// Если конец бронирования уже наступил, а фоновый обработчик еще не успел его
// завершить, бронирование завершается здесь же и возвращается ErrInvalidState.
//
// Порядок блокировок как у фонового обработчика: сначала слот, потом бронирование
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelReservation: user=%d, reservation=%d", req.UserID, req.ReservationID)

	now := uc.timeProvider.Now()

	var result *Response
	lazyCompleted := false

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		lazyCompleted = false

		// 1. Бронирование должно принадлежать пользователю
		res, err := uc.reservationRepo.GetByID(txCtx, req.ReservationID)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				return ErrReservationNotFound
			}
			return fmt.Errorf("%w: failed to get reservation: %w", ErrInternal, err)
		}
		if res.UserID != req.UserID {
			return ErrReservationNotFound
		}

		// 2. Блокируем слот, затем перечитываем бронирование под блокировкой
		if res.SlotID != nil {
			if _, err := uc.slotRepo.LockByID(txCtx, *res.SlotID); err != nil && !errors.Is(err, slotRepo.ErrSlotNotFound) {
				return fmt.Errorf("%w: failed to lock slot: %w", ErrInternal, err)
			}
		}

		res, err = uc.reservationRepo.LockByID(txCtx, req.ReservationID)
		if err != nil {
			return fmt.Errorf("%w: failed to lock reservation: %w", ErrInternal, err)
		}

		// 3. Конечные статусы неизменяемы
		if res.IsTerminal() {
			return fmt.Errorf("%w: reservation is %s", ErrInvalidState, res.Status)
		}

		// 4. Меняем статус
		if res.HasEnded(now) {
			if err := uc.reservationRepo.Complete(txCtx, res.ID, now); err != nil {
				return fmt.Errorf("%w: failed to complete reservation: %w", ErrInternal, err)
			}
			res.Status = domain.ReservationCompleted
			res.CompletedAt = &now
			lazyCompleted = true
		} else {
			if err := uc.reservationRepo.Cancel(txCtx, res.ID, now); err != nil {
				return fmt.Errorf("%w: failed to cancel reservation: %w", ErrInternal, err)
			}
			res.Status = domain.ReservationCancelled
			res.CancelledAt = &now
		}

		result = &Response{Reservation: res}

		// 5. Пересчитываем статус слота
		if res.SlotID != nil {
			state, err := uc.slotState.Refresh(txCtx, *res.SlotID, now)
			if err != nil {
				return fmt.Errorf("%w: failed to refresh slot status: %w", ErrInternal, err)
			}
			result.SlotStatus = &state.Status
		}

		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, ErrReservationNotFound), errors.Is(err, ErrInvalidState):
			uc.logger.Warn("CancelReservation: reservation=%d: %v", req.ReservationID, err)
			return nil, err
		case errors.Is(err, ErrInternal):
			uc.logger.Error("CancelReservation: reservation=%d: %v", req.ReservationID, err)
			return nil, err
		default:
			uc.logger.Error("CancelReservation: reservation=%d: transaction failed: %v", req.ReservationID, err)
			return nil, fmt.Errorf("%w: %w", ErrInternal, err)
		}
	}

	if lazyCompleted {
		uc.logger.Warn("CancelReservation: reservation=%d already ended, marked Completed", req.ReservationID)
		return nil, fmt.Errorf("%w: reservation has already ended", ErrInvalidState)
	}

	uc.logger.Info("CancelReservation: reservation=%d cancelled", req.ReservationID)
	return result, nil
}
