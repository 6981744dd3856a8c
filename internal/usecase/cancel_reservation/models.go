package cancel_reservation

import "github.com/m04kA/SMC-ParkingService/internal/domain"

// Request запрос на отмену бронирования
type Request struct {
	UserID        int64
	ReservationID int64
}

// Response отмененное бронирование и статус слота после пересчета
type Response struct {
	Reservation *domain.Reservation
	SlotStatus  *domain.SlotStatus // nil, если слот у бронирования не указан
}
