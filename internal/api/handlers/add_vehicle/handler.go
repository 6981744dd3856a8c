package add_vehicle

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/api/middleware"
	"github.com/m04kA/SMC-ParkingService/internal/service/vehicles"
	"github.com/m04kA/SMC-ParkingService/internal/service/vehicles/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidVehicle     = "некорректный номер или модель автомобиля"
	msgAlreadyExists      = "автомобиль с таким номером уже зарегистрирован"
)

type Handler struct {
	service VehicleService
	logger  Logger
}

func NewHandler(service VehicleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/vehicles
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w)
		return
	}

	var req models.AddVehicleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /vehicles - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if err := handlers.Validate(&req); err != nil {
		h.logger.Warn("POST /vehicles - Validation failed: user_id=%d, error=%v", userID, err)
		handlers.RespondBadRequest(w, msgInvalidVehicle)
		return
	}

	vehicle, err := h.service.Add(r.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, vehicles.ErrVehicleAlreadyExists):
			h.logger.Warn("POST /vehicles - Vehicle already exists: user_id=%d", userID)
			handlers.RespondConflict(w, msgAlreadyExists)

		case errors.Is(err, vehicles.ErrInvalidInput):
			h.logger.Warn("POST /vehicles - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidVehicle)

		default:
			h.logger.Error("POST /vehicles - Failed to add vehicle: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /vehicles - Vehicle added: vehicle_id=%d, user_id=%d", vehicle.ID, userID)
	handlers.RespondJSON(w, http.StatusCreated, vehicle)
}
