package add_vehicle

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/service/vehicles/models"
)

type VehicleService interface {
	Add(ctx context.Context, userID int64, req *models.AddVehicleRequest) (*models.VehicleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
