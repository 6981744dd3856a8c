package list_available_slots

import (
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// Request окно запроса. Без StartAt окно начинается сейчас, без DurationHours длится час
type Request struct {
	StartAt       *time.Time
	DurationHours *float64
}

// Response слоты со статусом, вычисленным для окна [StartAt, EndAt)
type Response struct {
	StartAt time.Time
	EndAt   time.Time
	Slots   []domain.SlotAvailability
}
