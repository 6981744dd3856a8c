package create_reservation

import (
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// Request модель запроса на создание бронирования
type Request struct {
	UserID        int64     // ID водителя
	VehicleID     int64     // ID автомобиля водителя
	SlotID        *int64    // ID слота (или SlotNumber)
	SlotNumber    *string   // Номер слота (или SlotID)
	StartAt       time.Time // Начало бронирования
	DurationHours *float64  // Длительность в часах (по умолчанию 1)
}

// Response созданное бронирование
type Response struct {
	Reservation *domain.Reservation
	SlotNumber  string
	SlotStatus  domain.SlotStatus // Статус слота после пересчета
}
