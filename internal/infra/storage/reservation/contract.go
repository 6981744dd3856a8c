package reservation

import "github.com/m04kA/SMC-ParkingService/pkg/dbmetrics"

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// Имена ограничений исключения из миграции
const (
	ConstraintSlotNoOverlap    = "reservations_slot_active_no_overlap"
	ConstraintVehicleNoOverlap = "reservations_vehicle_active_no_overlap"
)
