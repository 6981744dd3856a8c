package list_available_slots

import (
	"time"

	listAvailableSlots "github.com/m04kA/SMC-ParkingService/internal/usecase/list_available_slots"
)

// SlotAvailabilityResponse слот со статусом в запрошенном окне
type SlotAvailabilityResponse struct {
	ID         int64  `json:"id"`
	SlotNumber string `json:"slotNumber"`
	Status     string `json:"status"`
}

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	StartAt time.Time                   `json:"startAt"`
	EndAt   time.Time                   `json:"endAt"`
	Slots   []*SlotAvailabilityResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *listAvailableSlots.Response) *AvailabilityResponse {
	slots := make([]*SlotAvailabilityResponse, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, &SlotAvailabilityResponse{
			ID:         s.Slot.ID,
			SlotNumber: s.Slot.SlotNumber,
			Status:     string(s.Status),
		})
	}
	return &AvailabilityResponse{
		StartAt: resp.StartAt,
		EndAt:   resp.EndAt,
		Slots:   slots,
	}
}
