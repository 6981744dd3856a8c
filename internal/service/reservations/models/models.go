package models

import (
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// ReservationResponse бронирование с номерами слота и автомобиля
type ReservationResponse struct {
	ID            int64      `json:"id"`
	UserID        int64      `json:"userId"`
	VehicleID     int64      `json:"vehicleId"`
	VehicleNumber *string    `json:"vehicleNumber,omitempty"`
	VehicleModel  *string    `json:"vehicleModel,omitempty"`
	SlotID        *int64     `json:"slotId,omitempty"`
	SlotNumber    *string    `json:"slotNumber,omitempty"`
	StartAt       time.Time  `json:"startAt"`
	EndAt         time.Time  `json:"endAt"`
	DurationHours float64    `json:"durationHours"`
	TotalAmount   float64    `json:"totalAmount"`
	PaymentStatus string     `json:"paymentStatus"`
	Status        string     `json:"status"`
	CancelledAt   *time.Time `json:"cancelledAt,omitempty"`
	CompletedAt   *time.Time `json:"completedAt,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// FromDomainReservation конвертирует бронирование без деталей
func FromDomainReservation(r *domain.Reservation) *ReservationResponse {
	return &ReservationResponse{
		ID:            r.ID,
		UserID:        r.UserID,
		VehicleID:     r.VehicleID,
		SlotID:        r.SlotID,
		StartAt:       r.StartAt,
		EndAt:         r.EndAt,
		DurationHours: r.DurationHours,
		TotalAmount:   r.TotalAmount,
		PaymentStatus: string(r.PaymentStatus),
		Status:        string(r.Status),
		CancelledAt:   r.CancelledAt,
		CompletedAt:   r.CompletedAt,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

// FromDomainDetails конвертирует бронирование с деталями
func FromDomainDetails(d *domain.ReservationDetails) *ReservationResponse {
	resp := FromDomainReservation(&d.Reservation)
	resp.SlotNumber = d.SlotNumber
	resp.VehicleNumber = d.VehicleNumber
	resp.VehicleModel = d.VehicleModel
	return resp
}

// FromDomainDetailsList конвертирует список
func FromDomainDetailsList(list []*domain.ReservationDetails) []*ReservationResponse {
	result := make([]*ReservationResponse, 0, len(list))
	for _, d := range list {
		result = append(result, FromDomainDetails(d))
	}
	return result
}
