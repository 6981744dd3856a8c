package reservation

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("reservation.repository: reservation not found")

	// ErrReservationNotActive возвращается при попытке перевести неактивное бронирование в конечный статус
	ErrReservationNotActive = errors.New("reservation.repository: reservation is not active")

	// ErrSlotOverlap возвращается, когда БД отклонила пересекающееся активное бронирование слота
	ErrSlotOverlap = errors.New("reservation.repository: overlapping active reservation for slot")

	// ErrVehicleOverlap возвращается, когда БД отклонила пересекающееся активное бронирование автомобиля
	ErrVehicleOverlap = errors.New("reservation.repository: overlapping active reservation for vehicle")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("reservation.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("reservation.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("reservation.repository: failed to scan row")
)
