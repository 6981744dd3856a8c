package create_reservation

import (
	"strings"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	reservationModels "github.com/m04kA/SMC-ParkingService/internal/service/reservations/models"
	createReservation "github.com/m04kA/SMC-ParkingService/internal/usecase/create_reservation"
)

// CreateReservationRequest HTTP request model. Нужен slotId или slotNumber
type CreateReservationRequest struct {
	VehicleID     int64    `json:"vehicleId" validate:"required,gt=0"`
	SlotID        *int64   `json:"slotId,omitempty" validate:"required_without=SlotNumber,omitempty,gt=0"`
	SlotNumber    *string  `json:"slotNumber,omitempty" validate:"required_without=SlotID,omitempty,min=1,max=20"`
	StartAt       string   `json:"startAt" validate:"required"` // RFC3339
	DurationHours *float64 `json:"durationHours,omitempty" validate:"omitempty,gt=0,lte=168"`
}

// CreateReservationResponse HTTP response model
type CreateReservationResponse struct {
	Reservation *reservationModels.ReservationResponse `json:"reservation"`
	SlotStatus  string                                 `json:"slotStatus"`
}

// ConflictResponse ответ 409 с пересекающимся бронированием, если оно известно
type ConflictResponse struct {
	Error         string     `json:"error"`
	Conflict      string     `json:"conflict"`
	ReservationID *int64     `json:"reservationId,omitempty"`
	StartAt       *time.Time `json:"startAt,omitempty"`
	EndAt         *time.Time `json:"endAt,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateReservationRequest) ToUseCaseRequest(userID int64) (*createReservation.Request, error) {
	startAt, err := time.Parse(domain.TimeFormat, r.StartAt)
	if err != nil {
		return nil, err
	}

	var slotNumber *string
	if r.SlotNumber != nil {
		trimmed := strings.TrimSpace(*r.SlotNumber)
		slotNumber = &trimmed
	}

	return &createReservation.Request{
		UserID:        userID,
		VehicleID:     r.VehicleID,
		SlotID:        r.SlotID,
		SlotNumber:    slotNumber,
		StartAt:       startAt,
		DurationHours: r.DurationHours,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createReservation.Response) *CreateReservationResponse {
	reservation := reservationModels.FromDomainReservation(resp.Reservation)
	slotNumber := resp.SlotNumber
	reservation.SlotNumber = &slotNumber

	return &CreateReservationResponse{
		Reservation: reservation,
		SlotStatus:  string(resp.SlotStatus),
	}
}

func conflictResponse(msg string, conflict *createReservation.ConflictError) *ConflictResponse {
	return &ConflictResponse{
		Error:         msg,
		Conflict:      string(conflict.Kind),
		ReservationID: conflict.ReservationID,
		StartAt:       conflict.StartAt,
		EndAt:         conflict.EndAt,
	}
}
