package sweeper

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/service/slotstate"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	LockByID(ctx context.Context, id int64) (*domain.Slot, error)
	ListIDs(ctx context.Context) ([]int64, error)
}

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	ListEndedActive(ctx context.Context, now time.Time) ([]*domain.Reservation, error)
	Complete(ctx context.Context, id int64, at time.Time) error
}

// SlotStateRefresher пересчет статуса слота
type SlotStateRefresher interface {
	Refresh(ctx context.Context, slotID int64, now time.Time) (slotstate.Result, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Locker блокировка тика между репликами (необязательна)
type Locker interface {
	TryAcquire(ctx context.Context, ttl time.Duration) (release func(ctx context.Context) error, ok bool, err error)
}

// Metrics метрики тиков
type Metrics interface {
	ObserveSweeperTick(result string, duration time.Duration)
	AddReservationsCompleted(n int)
}

// Clock источник текущего времени
type Clock interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealClock системное время
type RealClock struct{}

// Now возвращает текущее время
func (RealClock) Now() time.Time {
	return time.Now()
}
