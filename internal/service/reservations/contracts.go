package reservations

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetDetails(ctx context.Context, id int64) (*domain.ReservationDetails, error)
	ListDetails(ctx context.Context, filter domain.ReservationFilter) ([]*domain.ReservationDetails, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
