package create_reservation

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/service/slotstate"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	GetByNumber(ctx context.Context, number string) (*domain.Slot, error)
	LockByID(ctx context.Context, id int64) (*domain.Slot, error)
}

// VehicleRepository интерфейс репозитория автомобилей
type VehicleRepository interface {
	LockByID(ctx context.Context, id int64) (*domain.Vehicle, error)
}

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error)
	ListActiveOverlapping(ctx context.Context, filter domain.OverlapFilter) ([]*domain.Reservation, error)
}

// SlotStateRefresher пересчет статуса слота
type SlotStateRefresher interface {
	Refresh(ctx context.Context, slotID int64, now time.Time) (slotstate.Result, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// ConflictRecorder счетчик отклоненных из-за пересечения бронирований
type ConflictRecorder interface {
	IncReservationConflict(kind string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
