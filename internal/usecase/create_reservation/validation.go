package create_reservation

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// validateRequest проверяет запрос и возвращает длительность с учетом значения по умолчанию
func validateRequest(req *Request, now time.Time) (float64, error) {
	if req.VehicleID <= 0 {
		return 0, fmt.Errorf("%w: vehicleId is required", ErrInvalidInput)
	}

	hasID := req.SlotID != nil
	hasNumber := req.SlotNumber != nil && strings.TrimSpace(*req.SlotNumber) != ""
	if !hasID && !hasNumber {
		return 0, fmt.Errorf("%w: one of slotId or slotNumber is required", ErrInvalidInput)
	}
	if hasID && *req.SlotID <= 0 {
		return 0, fmt.Errorf("%w: slotId must be positive", ErrInvalidInput)
	}

	if req.StartAt.IsZero() {
		return 0, fmt.Errorf("%w: startAt is required", ErrInvalidInput)
	}

	duration := domain.DefaultDurationHours
	if req.DurationHours != nil {
		duration = *req.DurationHours
	}
	if duration <= 0 || duration > domain.MaxDurationHours {
		return 0, fmt.Errorf("%w: durationHours must be in (0, %v]", ErrInvalidInput, domain.MaxDurationHours)
	}
	if domain.HoursToDuration(duration) <= 0 {
		return 0, fmt.Errorf("%w: durationHours is too small", ErrInvalidInput)
	}

	if !domain.EndAt(req.StartAt, duration).After(now) {
		return 0, fmt.Errorf("%w: reservation must end in the future", ErrInvalidInput)
	}

	return duration, nil
}
