package cancel_reservation

import (
	reservationModels "github.com/m04kA/SMC-ParkingService/internal/service/reservations/models"
	cancelReservation "github.com/m04kA/SMC-ParkingService/internal/usecase/cancel_reservation"
)

// CancelReservationResponse HTTP response model
type CancelReservationResponse struct {
	Reservation *reservationModels.ReservationResponse `json:"reservation"`
	SlotStatus  *string                                `json:"slotStatus,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *cancelReservation.Response) *CancelReservationResponse {
	result := &CancelReservationResponse{
		Reservation: reservationModels.FromDomainReservation(resp.Reservation),
	}
	if resp.SlotStatus != nil {
		status := string(*resp.SlotStatus)
		result.SlotStatus = &status
	}
	return result
}
