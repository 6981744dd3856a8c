package list_available_slots

import "errors"

var (
	// ErrInvalidInput возвращается при некорректном окне запроса
	ErrInvalidInput = errors.New("list_available_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("list_available_slots: internal error")
)
