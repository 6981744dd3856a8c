package slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/service/slotstate"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	Create(ctx context.Context, slot *domain.Slot) (*domain.Slot, error)
	LockByID(ctx context.Context, id int64) (*domain.Slot, error)
	List(ctx context.Context) ([]*domain.Slot, error)
	UpdateNumber(ctx context.Context, id int64, number string) (*domain.Slot, error)
	Count(ctx context.Context, status *domain.SlotStatus) (int64, error)
}

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	CountActive(ctx context.Context) (int64, error)
}

// PaymentRepository интерфейс репозитория платежей
type PaymentRepository interface {
	Stats(ctx context.Context) (count int64, revenue float64, err error)
}

// SlotStateRefresher пересчет статуса слота
type SlotStateRefresher interface {
	Refresh(ctx context.Context, slotID int64, now time.Time) (slotstate.Result, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
