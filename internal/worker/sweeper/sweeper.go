package sweeper

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/reservation"
	slotRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/slot"
	"github.com/m04kA/SMC-ParkingService/internal/service/slotstate"
	"github.com/m04kA/SMC-ParkingService/pkg/metrics"
)

// DefaultInterval период тика по умолчанию
const DefaultInterval = 60 * time.Second

// Stats итог одного тика
type Stats struct {
	Skipped      bool // Тик пропущен: предыдущий еще идет или блокировку держит другая реплика
	Completed    int  // Бронирований переведено в Completed
	SlotsChanged int  // Слотов со сменившимся статусом
}

// Sweeper фоновый обработчик: завершает закончившиеся бронирования
// и пересчитывает статусы всех слотов. Тик идемпотентен, поэтому ошибка
// тика только логируется, а следующий тик продолжает с текущего состояния
type Sweeper struct {
	slotRepo        SlotRepository
	reservationRepo ReservationRepository
	slotState       SlotStateRefresher
	txManager       TransactionManager
	logger          Logger

	interval time.Duration
	clock    Clock
	locker   Locker
	metrics  Metrics

	running atomic.Bool
}

// Option настройка обработчика
type Option func(*Sweeper)

// WithInterval задает период тика
func WithInterval(d time.Duration) Option {
	return func(s *Sweeper) {
		if d > 0 {
			s.interval = d
		}
	}
}

// WithClock подменяет источник времени
func WithClock(c Clock) Option {
	return func(s *Sweeper) {
		s.clock = c
	}
}

// WithLocker включает межрепликовую блокировку тика
func WithLocker(l Locker) Option {
	return func(s *Sweeper) {
		s.locker = l
	}
}

// WithMetrics включает метрики тиков
func WithMetrics(m Metrics) Option {
	return func(s *Sweeper) {
		s.metrics = m
	}
}

// New создает обработчик
func New(
	slotRepo SlotRepository,
	reservationRepo ReservationRepository,
	slotState SlotStateRefresher,
	txManager TransactionManager,
	logger Logger,
	opts ...Option,
) *Sweeper {
	s := &Sweeper{
		slotRepo:        slotRepo,
		reservationRepo: reservationRepo,
		slotState:       slotState,
		txManager:       txManager,
		logger:          logger,
		interval:        DefaultInterval,
		clock:           RealClock{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Interval период тика
func (s *Sweeper) Interval() time.Duration {
	return s.interval
}

// Run выполняет тики до отмены ctx. Первый тик выполняется сразу
func (s *Sweeper) Run(ctx context.Context) {
	s.logger.Info("Sweeper: started, interval=%s", s.interval)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		s.runTick(ctx)

		select {
		case <-ctx.Done():
			s.logger.Info("Sweeper: stopped")
			return
		case <-ticker.C:
		}
	}
}

// runTick тик с таймаутом, равным периоду: зависший тик не накладывается на следующий
func (s *Sweeper) runTick(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}

	tickCtx, cancel := context.WithTimeout(ctx, s.interval)
	defer cancel()

	stats, err := s.Tick(tickCtx)
	if err != nil {
		s.logger.Error("Sweeper: tick failed: %v", err)
		return
	}
	if stats.Completed > 0 || stats.SlotsChanged > 0 {
		s.logger.Info("Sweeper: completed %d reservations, %d slots changed status", stats.Completed, stats.SlotsChanged)
	}
}

// Tick выполняет один проход:
//  1. завершает активные бронирования, чей конец наступил (под блокировкой их слота);
//  2. пересчитывает статус каждого слота, записывая только изменения.
//
// Если предыдущий тик еще выполняется, тик пропускается
func (s *Sweeper) Tick(ctx context.Context) (stats Stats, err error) {
	if !s.running.CompareAndSwap(false, true) {
		s.logger.Warn("Sweeper: previous tick is still running, skipping")
		s.observe(metrics.TickResultSkipped, 0)
		return Stats{Skipped: true}, nil
	}
	defer s.running.Store(false)

	started := time.Now()
	defer func() {
		switch {
		case err != nil:
			s.observe(metrics.TickResultFailed, time.Since(started))
		case !stats.Skipped:
			s.observe(metrics.TickResultOK, time.Since(started))
		}
	}()

	if s.locker != nil {
		release, ok, err := s.locker.TryAcquire(ctx, s.interval)
		if err != nil {
			return Stats{}, fmt.Errorf("%w: %w", ErrLock, err)
		}
		if !ok {
			s.logger.Info("Sweeper: tick lock is held by another replica, skipping")
			s.observe(metrics.TickResultSkipped, 0)
			return Stats{Skipped: true}, nil
		}
		defer func() {
			// Освобождаем даже после таймаута тика
			if err := release(context.WithoutCancel(ctx)); err != nil {
				s.logger.Warn("Sweeper: failed to release tick lock: %v", err)
			}
		}()
	}

	now := s.clock.Now()

	completed, err := s.completeEnded(ctx, now)
	stats.Completed = completed
	if completed > 0 && s.metrics != nil {
		s.metrics.AddReservationsCompleted(completed)
	}
	if err != nil {
		return stats, err
	}

	stats.SlotsChanged, err = s.refreshAll(ctx, now)
	return stats, err
}

// completeEnded завершает закончившиеся бронирования, по одной транзакции на слот
func (s *Sweeper) completeEnded(ctx context.Context, now time.Time) (int, error) {
	ended, err := s.reservationRepo.ListEndedActive(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrListReservations, err)
	}
	if len(ended) == 0 {
		return 0, nil
	}

	// Группируем по слоту, сохраняя порядок
	order := make([]int64, 0)
	bySlot := make(map[int64][]*domain.Reservation)
	var withoutSlot []*domain.Reservation
	for _, res := range ended {
		if res.SlotID == nil {
			withoutSlot = append(withoutSlot, res)
			continue
		}
		if _, seen := bySlot[*res.SlotID]; !seen {
			order = append(order, *res.SlotID)
		}
		bySlot[*res.SlotID] = append(bySlot[*res.SlotID], res)
	}

	total := 0

	for _, slotID := range order {
		n, err := s.completeForSlot(ctx, &slotID, bySlot[slotID], now)
		if err != nil {
			return total, err
		}
		total += n
	}

	if len(withoutSlot) > 0 {
		n, err := s.completeForSlot(ctx, nil, withoutSlot, now)
		if err != nil {
			return total, err
		}
		total += n
	}

	return total, nil
}

func (s *Sweeper) completeForSlot(ctx context.Context, slotID *int64, reservations []*domain.Reservation, now time.Time) (int, error) {
	completed := 0

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		completed = 0

		if slotID != nil {
			if _, err := s.slotRepo.LockByID(txCtx, *slotID); err != nil && !errors.Is(err, slotRepo.ErrSlotNotFound) {
				return err
			}
		}

		for _, res := range reservations {
			err := s.reservationRepo.Complete(txCtx, res.ID, now)
			if errors.Is(err, reservationRepo.ErrReservationNotActive) {
				// Отменено параллельно
				continue
			}
			if err != nil {
				return err
			}
			completed++
		}

		if slotID != nil {
			if _, err := s.slotState.Refresh(txCtx, *slotID, now); err != nil && !errors.Is(err, slotstate.ErrSlotNotFound) {
				return err
			}
		}

		return nil
	})
	if err != nil {
		if slotID != nil {
			return 0, fmt.Errorf("%w: slot=%d: %w", ErrCompleteReservations, *slotID, err)
		}
		return 0, fmt.Errorf("%w: %w", ErrCompleteReservations, err)
	}

	return completed, nil
}

// refreshAll пересчитывает статус каждого слота в отдельной транзакции
func (s *Sweeper) refreshAll(ctx context.Context, now time.Time) (int, error) {
	ids, err := s.slotRepo.ListIDs(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrListSlots, err)
	}

	changed := 0
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return changed, fmt.Errorf("%w: %w", ErrRefreshSlot, err)
		}

		result, err := s.slotState.Refresh(ctx, id, now)
		if errors.Is(err, slotstate.ErrSlotNotFound) {
			// Слот удален между ListIDs и Refresh
			continue
		}
		if err != nil {
			return changed, fmt.Errorf("%w: slot=%d: %w", ErrRefreshSlot, id, err)
		}
		if result.Changed {
			changed++
		}
	}

	return changed, nil
}

func (s *Sweeper) observe(result string, d time.Duration) {
	if s.metrics != nil {
		s.metrics.ObserveSweeperTick(result, d)
	}
}
