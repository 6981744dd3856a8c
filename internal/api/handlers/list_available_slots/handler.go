package list_available_slots

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/domain"
	listAvailableSlots "github.com/m04kA/SMC-ParkingService/internal/usecase/list_available_slots"
)

const (
	msgInvalidStartAt  = "некорректный формат startAt, ожидается RFC3339"
	msgInvalidDuration = "некорректная длительность"
)

type Handler struct {
	useCase ListAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase ListAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/slots
// Query params: startAt (optional, RFC3339), duration (optional, hours)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &listAvailableSlots.Request{}

	if s := query.Get("startAt"); s != "" {
		startAt, err := time.Parse(domain.TimeFormat, s)
		if err != nil {
			h.logger.Warn("GET /slots - Invalid startAt: %v", err)
			handlers.RespondBadRequest(w, msgInvalidStartAt)
			return
		}
		req.StartAt = &startAt
	}

	if s := query.Get("duration"); s != "" {
		duration, err := strconv.ParseFloat(s, 64)
		if err != nil {
			h.logger.Warn("GET /slots - Invalid duration: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDuration)
			return
		}
		req.DurationHours = &duration
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		if errors.Is(err, listAvailableSlots.ErrInvalidInput) {
			h.logger.Warn("GET /slots - Invalid window: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDuration)
			return
		}
		h.logger.Error("GET /slots - Failed to list slots: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /slots - Returned %d slots for [%s, %s)",
		len(result.Slots), result.StartAt.Format(domain.TimeFormat), result.EndAt.Format(domain.TimeFormat))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
