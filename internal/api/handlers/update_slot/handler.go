package update_slot

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/service/slots"
	"github.com/m04kA/SMC-ParkingService/internal/service/slots/models"
)

const (
	msgInvalidSlotID      = "некорректный ID парковочного места"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidSlotNumber  = "некорректный номер парковочного места"
	msgNotFound           = "парковочное место не найдено"
	msgAlreadyExists      = "парковочное место с таким номером уже существует"
)

type Handler struct {
	service SlotService
	logger  Logger
}

func NewHandler(service SlotService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/admin/slots/{slotId}
// Меняется только номер, статус пересчитывается сервером
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	slotID, err := strconv.ParseInt(mux.Vars(r)["slotId"], 10, 64)
	if err != nil || slotID <= 0 {
		h.logger.Warn("PUT /admin/slots/{id} - Invalid slot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	var req models.SlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/slots/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if err := handlers.Validate(&req); err != nil {
		h.logger.Warn("PUT /admin/slots/{id} - Validation failed: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotNumber)
		return
	}

	slot, err := h.service.Rename(r.Context(), slotID, &req)
	if err != nil {
		switch {
		case errors.Is(err, slots.ErrSlotNotFound):
			h.logger.Warn("PUT /admin/slots/{id} - Slot not found: slot_id=%d", slotID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, slots.ErrSlotAlreadyExists):
			h.logger.Warn("PUT /admin/slots/{id} - Slot number taken: %s", req.SlotNumber)
			handlers.RespondConflict(w, msgAlreadyExists)

		case errors.Is(err, slots.ErrInvalidInput):
			h.logger.Warn("PUT /admin/slots/{id} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidSlotNumber)

		default:
			h.logger.Error("PUT /admin/slots/{id} - Failed to update slot: slot_id=%d, error=%v", slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /admin/slots/{id} - Slot updated: slot_id=%d, number=%s, status=%s", slot.ID, slot.SlotNumber, slot.Status)
	handlers.RespondJSON(w, http.StatusOK, slot)
}
