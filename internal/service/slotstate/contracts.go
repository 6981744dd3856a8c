package slotstate

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	LockByID(ctx context.Context, id int64) (*domain.Slot, error)
	UpdateStatus(ctx context.Context, id int64, status domain.SlotStatus) error
}

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	ListActiveBySlot(ctx context.Context, slotID int64) ([]*domain.Reservation, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics счетчик смен статуса слотов
type Metrics interface {
	IncSlotStatusChange(status string)
}
