package payments

import "errors"

var (
	// ErrReservationNotFound возвращается, когда у пользователя нет такого бронирования
	ErrReservationNotFound = errors.New("payments: reservation not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("payments: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("payments: internal error")
)
