package models

import (
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// SlotRequest создание или переименование слота
type SlotRequest struct {
	SlotNumber string `json:"slotNumber" validate:"required,max=20"`
}

// SlotResponse слот с сохраненным статусом
type SlotResponse struct {
	ID         int64     `json:"id"`
	SlotNumber string    `json:"slotNumber"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// ReportResponse сводка для администратора
type ReportResponse struct {
	TotalSlots         int64   `json:"totalSlots"`
	OccupiedSlots      int64   `json:"occupiedSlots"`
	ActiveReservations int64   `json:"activeReservations"`
	TotalPayments      int64   `json:"totalPayments"`
	TotalRevenue       float64 `json:"totalRevenue"`
}

// FromDomainSlot конвертирует доменную модель
func FromDomainSlot(s *domain.Slot) *SlotResponse {
	return &SlotResponse{
		ID:         s.ID,
		SlotNumber: s.SlotNumber,
		Status:     string(s.Status),
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
}

// FromDomainSlots конвертирует список
func FromDomainSlots(slots []*domain.Slot) []*SlotResponse {
	result := make([]*SlotResponse, 0, len(slots))
	for _, s := range slots {
		result = append(result, FromDomainSlot(s))
	}
	return result
}

// FromDomainReport конвертирует сводку
func FromDomainReport(r *domain.Report) *ReportResponse {
	return &ReportResponse{
		TotalSlots:         r.TotalSlots,
		OccupiedSlots:      r.OccupiedSlots,
		ActiveReservations: r.ActiveReservations,
		TotalPayments:      r.TotalPayments,
		TotalRevenue:       r.TotalRevenue,
	}
}
