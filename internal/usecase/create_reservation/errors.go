package create_reservation

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrSlotNotFound возвращается, когда слот не найден ни по ID, ни по номеру
	ErrSlotNotFound = errors.New("create_reservation: slot not found")

	// ErrVehicleNotFound возвращается, когда автомобиль не найден или принадлежит другому пользователю
	ErrVehicleNotFound = errors.New("create_reservation: vehicle not found")

	// ErrVehicleConflict возвращается, когда у автомобиля есть пересекающееся активное бронирование
	ErrVehicleConflict = errors.New("create_reservation: vehicle already has an overlapping active reservation")

	// ErrSlotConflict возвращается, когда у слота есть пересекающееся активное бронирование
	ErrSlotConflict = errors.New("create_reservation: slot already has an overlapping active reservation")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)

// ConflictKind с чем пересеклось бронирование
type ConflictKind string

const (
	ConflictVehicle ConflictKind = "vehicle"
	ConflictSlot    ConflictKind = "slot"
)

// ConflictError пересечение с существующим активным бронированием.
// errors.Is(err, ErrVehicleConflict) / errors.Is(err, ErrSlotConflict) работают через Unwrap.
// ReservationID и интервал пустые, если конфликт обнаружило ограничение БД
type ConflictError struct {
	Kind          ConflictKind
	ReservationID *int64
	StartAt       *time.Time
	EndAt         *time.Time
}

func (e *ConflictError) Error() string {
	if e.ReservationID == nil {
		return e.Unwrap().Error()
	}
	return fmt.Sprintf("%s: reservation id=%d [%s, %s)",
		e.Unwrap().Error(), *e.ReservationID, e.StartAt.Format(time.RFC3339), e.EndAt.Format(time.RFC3339))
}

func (e *ConflictError) Unwrap() error {
	if e.Kind == ConflictVehicle {
		return ErrVehicleConflict
	}
	return ErrSlotConflict
}
