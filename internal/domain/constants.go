package domain

import "time"

// Pricing
const (
	HourlyRate = 10.0 // Стоимость часа парковки
)

// Reservation defaults and limits
const (
	DefaultDurationHours = 1.0
	MaxDurationHours     = 168.0 // 1 week
	MaxPaymentMethodLen  = 50
	MinPaymentMethodLen  = 2
	MaxSlotNumberLength  = 20
	MaxVehicleModelLen   = 100
)

// DefaultAvailabilityWindow окно запроса доступности по умолчанию: [now, now+1h)
const DefaultAvailabilityWindow = time.Hour

// Time format constants
const (
	TimeFormat = time.RFC3339
)
