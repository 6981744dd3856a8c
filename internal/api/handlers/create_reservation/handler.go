package create_reservation

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/api/middleware"
	createReservation "github.com/m04kA/SMC-ParkingService/internal/usecase/create_reservation"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidStartAt     = "некорректный формат startAt, ожидается RFC3339"
	msgValidation         = "некорректные параметры бронирования"
	msgSlotNotFound       = "парковочное место не найдено"
	msgVehicleNotFound    = "автомобиль не найден"
	msgSlotConflict       = "парковочное место уже забронировано на это время"
	msgVehicleConflict    = "у автомобиля уже есть бронирование на это время"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w)
		return
	}

	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if err := handlers.Validate(&req); err != nil {
		h.logger.Warn("POST /reservations - Validation failed: user_id=%d, error=%v", userID, err)
		handlers.RespondBadRequest(w, msgValidation)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /reservations - Failed to parse startAt: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStartAt)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		var conflict *createReservation.ConflictError
		switch {
		case errors.As(err, &conflict):
			msg := msgSlotConflict
			if conflict.Kind == createReservation.ConflictVehicle {
				msg = msgVehicleConflict
			}
			h.logger.Warn("POST /reservations - Conflict: user_id=%d, vehicle_id=%d, error=%v", userID, req.VehicleID, err)
			handlers.RespondJSON(w, http.StatusConflict, conflictResponse(msg, conflict))

		case errors.Is(err, createReservation.ErrSlotNotFound):
			h.logger.Warn("POST /reservations - Slot not found: user_id=%d", userID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, createReservation.ErrVehicleNotFound):
			h.logger.Warn("POST /reservations - Vehicle not found: user_id=%d, vehicle_id=%d", userID, req.VehicleID)
			handlers.RespondNotFound(w, msgVehicleNotFound)

		case errors.Is(err, createReservation.ErrInvalidInput):
			h.logger.Warn("POST /reservations - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgValidation)

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations - Reservation created: reservation_id=%d, user_id=%d, slot=%s",
		result.Reservation.ID, userID, result.SlotNumber)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
