package sweeper

import "errors"

var (
	// ErrListReservations возвращается, если не удалось получить завершившиеся бронирования
	ErrListReservations = errors.New("sweeper: failed to list ended reservations")

	// ErrCompleteReservations возвращается, если не удалось завершить бронирования слота
	ErrCompleteReservations = errors.New("sweeper: failed to complete reservations")

	// ErrListSlots возвращается, если не удалось получить список слотов
	ErrListSlots = errors.New("sweeper: failed to list slots")

	// ErrRefreshSlot возвращается, если не удалось пересчитать статус слота
	ErrRefreshSlot = errors.New("sweeper: failed to refresh slot status")

	// ErrLock возвращается при ошибке межрепликовой блокировки
	ErrLock = errors.New("sweeper: failed to acquire tick lock")
)
