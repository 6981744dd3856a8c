package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func clock(h, m int) time.Time {
	return time.Date(2026, 10, 15, h, m, 0, 0, time.UTC)
}

func TestDeriveSlotStatus_SingleReservation(t *testing.T) {
	r := &Reservation{StartAt: clock(10, 0), EndAt: clock(11, 0), Status: ReservationActive}
	reservations := []*Reservation{r}

	assert.Equal(t, SlotOccupied, DeriveSlotStatus(reservations, clock(10, 30)))
	assert.Equal(t, SlotReserved, DeriveSlotStatus(reservations, clock(9, 0)))
	assert.Equal(t, SlotAvailable, DeriveSlotStatus(reservations, clock(12, 0)))

	// Полуоткрытый интервал: в момент начала занят, в момент конца свободен
	assert.Equal(t, SlotOccupied, DeriveSlotStatus(reservations, clock(10, 0)))
	assert.Equal(t, SlotAvailable, DeriveSlotStatus(reservations, clock(11, 0)))
}

func TestDeriveSlotStatus_IgnoresInactive(t *testing.T) {
	reservations := []*Reservation{
		{StartAt: clock(10, 0), EndAt: clock(11, 0), Status: ReservationCancelled},
		{StartAt: clock(12, 0), EndAt: clock(13, 0), Status: ReservationCompleted},
	}

	assert.Equal(t, SlotAvailable, DeriveSlotStatus(reservations, clock(10, 30)))
	assert.Equal(t, SlotAvailable, DeriveSlotStatus(nil, clock(10, 30)))
}

func TestDeriveSlotStatus_OccupiedWinsOverReserved(t *testing.T) {
	reservations := []*Reservation{
		{StartAt: clock(14, 0), EndAt: clock(15, 0), Status: ReservationActive},
		{StartAt: clock(10, 0), EndAt: clock(11, 0), Status: ReservationActive},
	}

	assert.Equal(t, SlotOccupied, DeriveSlotStatus(reservations, clock(10, 15)))
	assert.Equal(t, SlotReserved, DeriveSlotStatus(reservations, clock(11, 30)))
}

func TestReservation_ConflictsWith(t *testing.T) {
	r := &Reservation{StartAt: clock(10, 0), EndAt: clock(11, 0), Status: ReservationActive}

	assert.True(t, r.ConflictsWith(clock(10, 30), clock(11, 30)))
	assert.False(t, r.ConflictsWith(clock(11, 0), clock(12, 0)))

	r.Status = ReservationCancelled
	assert.False(t, r.ConflictsWith(clock(10, 30), clock(11, 30)))
}

func TestIsValidVehicleNumber(t *testing.T) {
	assert.True(t, IsValidVehicleNumber("MH12AB1234"))
	assert.True(t, IsValidVehicleNumber("DL01A1234"))
	assert.False(t, IsValidVehicleNumber("mh12ab1234"))
	assert.False(t, IsValidVehicleNumber("MH12ABC1234"))
}
