package payments

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// PaymentRepository интерфейс репозитория платежей
type PaymentRepository interface {
	Create(ctx context.Context, p *domain.Payment) (*domain.Payment, error)
	List(ctx context.Context) ([]*domain.Payment, error)
}

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	LockByID(ctx context.Context, id int64) (*domain.Reservation, error)
	MarkPaid(ctx context.Context, id int64) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
