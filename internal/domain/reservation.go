package domain

import "time"

// ReservationStatus represents the lifecycle status of a reservation
type ReservationStatus string

const (
	ReservationActive    ReservationStatus = "Active"
	ReservationCompleted ReservationStatus = "Completed"
	ReservationCancelled ReservationStatus = "Cancelled"
)

// PaymentStatus represents the payment state of a reservation
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
)

// Reservation is a claim by a vehicle on a slot for [StartAt, EndAt)
type Reservation struct {
	ID            int64
	UserID        int64
	VehicleID     int64
	SlotID        *int64
	StartAt       time.Time
	EndAt         time.Time
	DurationHours float64
	TotalAmount   float64
	PaymentStatus PaymentStatus
	Status        ReservationStatus

	CancelledAt *time.Time
	CompletedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the reservation still counts for conflicts and occupancy
func (r *Reservation) IsActive() bool {
	return r.Status == ReservationActive
}

// IsTerminal returns true for Completed and Cancelled reservations, which are immutable
func (r *Reservation) IsTerminal() bool {
	return r.Status == ReservationCompleted || r.Status == ReservationCancelled
}

// OccupiesAt returns true if the reservation is active and covers instant t
func (r *Reservation) OccupiesAt(t time.Time) bool {
	return r.IsActive() && !t.Before(r.StartAt) && t.Before(r.EndAt)
}

// HasEnded returns true once the end instant has been reached
func (r *Reservation) HasEnded(now time.Time) bool {
	return !now.Before(r.EndAt)
}

// ConflictsWith returns true if the reservation is active and its interval
// overlaps [start, end)
func (r *Reservation) ConflictsWith(start, end time.Time) bool {
	return r.IsActive() && Overlaps(start, end, r.StartAt, r.EndAt)
}

// ReservationDetails reservation joined with slot and vehicle labels
type ReservationDetails struct {
	Reservation
	SlotNumber    *string
	VehicleNumber *string
	VehicleModel  *string
}

// ReservationFilter фильтр для выборки бронирований
type ReservationFilter struct {
	UserID *int64             // Только бронирования пользователя (опционально)
	Status *ReservationStatus // Фильтр по статусу (опционально)
}

// TotalAmountFor returns the price of a reservation of the given length
func TotalAmountFor(durationHours float64) float64 {
	return durationHours * HourlyRate
}

// OverlapFilter выборка активных бронирований, пересекающихся с [StartAt, EndAt)
type OverlapFilter struct {
	SlotID    *int64 // Только бронирования слота (опционально)
	VehicleID *int64 // Только бронирования автомобиля (опционально)
	StartAt   time.Time
	EndAt     time.Time
}
