package models

import (
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// AddVehicleRequest запрос на регистрацию автомобиля
type AddVehicleRequest struct {
	Number string  `json:"vehicleNumber" validate:"required,vehicle_number"`
	Model  *string `json:"model,omitempty" validate:"omitempty,max=100"`
}

// VehicleResponse автомобиль
type VehicleResponse struct {
	ID        int64     `json:"id"`
	Number    string    `json:"vehicleNumber"`
	Model     *string   `json:"model,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// FromDomainVehicle конвертирует доменную модель
func FromDomainVehicle(v *domain.Vehicle) *VehicleResponse {
	return &VehicleResponse{
		ID:        v.ID,
		Number:    v.Number,
		Model:     v.Model,
		CreatedAt: v.CreatedAt,
	}
}

// FromDomainVehicles конвертирует список
func FromDomainVehicles(vs []*domain.Vehicle) []*VehicleResponse {
	result := make([]*VehicleResponse, 0, len(vs))
	for _, v := range vs {
		result = append(result, FromDomainVehicle(v))
	}
	return result
}
