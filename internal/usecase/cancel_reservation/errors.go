package cancel_reservation

import "errors"

var (
	// ErrReservationNotFound возвращается, когда у пользователя нет такого бронирования
	ErrReservationNotFound = errors.New("cancel_reservation: reservation not found")

	// ErrInvalidState возвращается при отмене завершенного или уже отмененного бронирования
	ErrInvalidState = errors.New("cancel_reservation: reservation cannot be cancelled")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("cancel_reservation: internal error")
)
