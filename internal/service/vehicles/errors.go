package vehicles

import "errors"

var (
	// ErrVehicleNotFound возвращается, когда у пользователя нет такого автомобиля
	ErrVehicleNotFound = errors.New("vehicles: vehicle not found")

	// ErrVehicleAlreadyExists возвращается, когда номер уже зарегистрирован
	ErrVehicleAlreadyExists = errors.New("vehicles: vehicle number already registered")

	// ErrVehicleInUse возвращается при удалении автомобиля с активным бронированием
	ErrVehicleInUse = errors.New("vehicles: vehicle has active reservations")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("vehicles: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("vehicles: internal error")
)
