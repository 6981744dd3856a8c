package domain

import "time"

// Payment is a record of a completed payment action for a reservation.
// Amount and Method are caller-supplied.
type Payment struct {
	ID            int64
	UserID        int64
	ReservationID int64
	Amount        float64
	Method        string
	CreatedAt     time.Time
}

// Report aggregated figures for the admin dashboard
type Report struct {
	TotalSlots         int64
	OccupiedSlots      int64
	ActiveReservations int64
	TotalPayments      int64
	TotalRevenue       float64
}
