package domain

import "time"

// SlotStatus is the cached, derived occupancy status of a parking slot
type SlotStatus string

const (
	SlotAvailable SlotStatus = "Available"
	SlotReserved  SlotStatus = "Reserved"
	SlotOccupied  SlotStatus = "Occupied"
)

// IsValid returns true for a known slot status
func (s SlotStatus) IsValid() bool {
	switch s {
	case SlotAvailable, SlotReserved, SlotOccupied:
		return true
	}
	return false
}

// Slot represents a single parking space
type Slot struct {
	ID         int64
	SlotNumber string
	Status     SlotStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// DeriveSlotStatus computes what a slot is doing at instant now from the
// reservations referencing it:
//   - Occupied if an Active reservation covers now (start <= now < end);
//   - Reserved if an Active reservation starts after now;
//   - Available otherwise.
//
// Non-active reservations are ignored, so callers may pass the full history.
// This is the only place slot status is computed.
func DeriveSlotStatus(reservations []*Reservation, now time.Time) SlotStatus {
	status := SlotAvailable

	for _, r := range reservations {
		if r == nil || !r.IsActive() {
			continue
		}
		if r.OccupiesAt(now) {
			return SlotOccupied
		}
		if r.StartAt.After(now) {
			status = SlotReserved
		}
	}

	return status
}

// SlotAvailability is a slot with a status computed for a requested window,
// independent of its cached Status
type SlotAvailability struct {
	Slot   Slot
	Status SlotStatus
}
