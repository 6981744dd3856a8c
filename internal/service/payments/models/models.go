package models

import (
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// PaymentRequest оплата бронирования. Сумма и способ оплаты не проверяются на соответствие бронированию
type PaymentRequest struct {
	ReservationID int64   `json:"reservationId" validate:"required,gt=0"`
	Amount        float64 `json:"amount" validate:"gt=0"`
	Method        string  `json:"method" validate:"required,min=2,max=50"`
}

// PaymentResponse платеж
type PaymentResponse struct {
	ID            int64     `json:"id"`
	UserID        int64     `json:"userId"`
	ReservationID int64     `json:"reservationId"`
	Amount        float64   `json:"amount"`
	Method        string    `json:"method"`
	CreatedAt     time.Time `json:"createdAt"`
}

// FromDomainPayment конвертирует доменную модель
func FromDomainPayment(p *domain.Payment) *PaymentResponse {
	return &PaymentResponse{
		ID:            p.ID,
		UserID:        p.UserID,
		ReservationID: p.ReservationID,
		Amount:        p.Amount,
		Method:        p.Method,
		CreatedAt:     p.CreatedAt,
	}
}

// FromDomainPayments конвертирует список
func FromDomainPayments(list []*domain.Payment) []*PaymentResponse {
	result := make([]*PaymentResponse, 0, len(list))
	for _, p := range list {
		result = append(result, FromDomainPayment(p))
	}
	return result
}
