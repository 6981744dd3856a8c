package list_available_slots

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// UseCase запрос доступности слотов на окно времени
type UseCase struct {
	slotRepo        SlotRepository
	reservationRepo ReservationRepository
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
	txManager TransactionManager,
	logger Logger,
	opts ...Option,
) *UseCase {
	uc := &UseCase{
		slotRepo:        slotRepo,
		reservationRepo: reservationRepo,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Execute возвращает все слоты со статусом для запрошенного окна.
// Сохраненный статус слота не используется: слот Reserved, если у него есть
// активное бронирование, пересекающееся с окном, иначе Available
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	startAt, endAt, err := uc.window(req)
	if err != nil {
		uc.logger.Warn("ListAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("ListAvailableSlots: window [%s, %s)", startAt.Format(domain.TimeFormat), endAt.Format(domain.TimeFormat))

	var slots []*domain.Slot
	var overlapping []*domain.Reservation

	// Слоты и бронирования читаются из одного снимка
	err = uc.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		var err error
		slots, err = uc.slotRepo.List(txCtx)
		if err != nil {
			return fmt.Errorf("%w: failed to list slots: %w", ErrInternal, err)
		}

		overlapping, err = uc.reservationRepo.ListActiveOverlapping(txCtx, domain.OverlapFilter{
			StartAt: startAt,
			EndAt:   endAt,
		})
		if err != nil {
			return fmt.Errorf("%w: failed to list reservations: %w", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		uc.logger.Error("ListAvailableSlots: %v", err)
		return nil, err
	}

	busy := make(map[int64]struct{}, len(overlapping))
	for _, res := range overlapping {
		if res.SlotID != nil && res.ConflictsWith(startAt, endAt) {
			busy[*res.SlotID] = struct{}{}
		}
	}

	result := &Response{
		StartAt: startAt,
		EndAt:   endAt,
		Slots:   make([]domain.SlotAvailability, 0, len(slots)),
	}
	for _, slot := range slots {
		status := domain.SlotAvailable
		if _, ok := busy[slot.ID]; ok {
			status = domain.SlotReserved
		}
		result.Slots = append(result.Slots, domain.SlotAvailability{Slot: *slot, Status: status})
	}

	return result, nil
}

func (uc *UseCase) window(req *Request) (startAt, endAt time.Time, err error) {
	startAt = uc.timeProvider.Now()
	if req.StartAt != nil {
		startAt = *req.StartAt
	}

	if req.DurationHours == nil {
		return startAt, startAt.Add(domain.DefaultAvailabilityWindow), nil
	}

	hours := *req.DurationHours
	if hours <= 0 || hours > domain.MaxDurationHours || domain.HoursToDuration(hours) <= 0 {
		return startAt, startAt, fmt.Errorf("%w: duration must be in (0, %v] hours", ErrInvalidInput, domain.MaxDurationHours)
	}

	return startAt, domain.EndAt(startAt, hours), nil
}
