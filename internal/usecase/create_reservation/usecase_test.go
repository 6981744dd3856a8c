package create_reservation

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-ParkingService/internal/service/slotstate"
	"github.com/m04kA/SMC-ParkingService/pkg/logger"
)

type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time { return c.now }

type conflictCounter struct {
	mu     sync.Mutex
	counts map[string]int
}

func (c *conflictCounter) IncReservationConflict(kind string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.counts == nil {
		c.counts = make(map[string]int)
	}
	c.counts[kind]++
}

type fixture struct {
	store     *memory.Store
	uc        *UseCase
	clock     *fixedClock
	conflicts *conflictCounter
	slots     map[string]int64
	vehicles  map[string]int64
}

const (
	driverA = int64(100)
	driverB = int64(200)
)

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	store := memory.NewStore()
	clock := &fixedClock{now: time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC)}
	conflicts := &conflictCounter{}

	f := &fixture{
		store:     store,
		clock:     clock,
		conflicts: conflicts,
		slots:     make(map[string]int64),
		vehicles:  make(map[string]int64),
	}

	for _, number := range []string{"A1", "A2"} {
		slot, err := store.Slots().Create(ctx, &domain.Slot{SlotNumber: number})
		require.NoError(t, err)
		f.slots[number] = slot.ID
	}

	for number, userID := range map[string]int64{"MH12AB1234": driverA, "MH12AB5678": driverA, "KA01C0001": driverB} {
		v, err := store.Vehicles().Create(ctx, &domain.Vehicle{UserID: userID, Number: number})
		require.NoError(t, err)
		f.vehicles[number] = v.ID
	}

	state := slotstate.NewService(store.Slots(), store.Reservations(), store.TxManager(), nil)
	f.uc = NewUseCase(
		store.Slots(),
		store.Vehicles(),
		store.Reservations(),
		state,
		store.TxManager(),
		logger.NewNop(),
		WithTimeProvider(clock),
		WithConflictRecorder(conflicts),
	)

	return f
}

func int64Ptr(v int64) *int64       { return &v }
func float64Ptr(v float64) *float64 { return &v }
func stringPtr(v string) *string    { return &v }

func TestExecute_BookNowMakesSlotOccupied(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	resp, err := f.uc.Execute(ctx, &Request{
		UserID:     driverA,
		VehicleID:  f.vehicles["MH12AB1234"],
		SlotNumber: stringPtr("A1"),
		StartAt:    f.clock.now,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.ReservationActive, resp.Reservation.Status)
	assert.Equal(t, domain.PaymentPending, resp.Reservation.PaymentStatus)
	assert.Equal(t, f.clock.now.Add(time.Hour), resp.Reservation.EndAt)
	assert.InDelta(t, domain.HourlyRate, resp.Reservation.TotalAmount, 1e-9)
	assert.Equal(t, domain.SlotOccupied, resp.SlotStatus)

	slot, err := f.store.Slots().GetByID(ctx, f.slots["A1"])
	require.NoError(t, err)
	assert.Equal(t, domain.SlotOccupied, slot.Status)
}

func TestExecute_FutureBookingMakesSlotReserved(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.Execute(context.Background(), &Request{
		UserID:        driverA,
		VehicleID:     f.vehicles["MH12AB1234"],
		SlotID:        int64Ptr(f.slots["A2"]),
		StartAt:       f.clock.now.Add(3 * time.Hour),
		DurationHours: float64Ptr(2.5),
	})
	require.NoError(t, err)

	assert.Equal(t, domain.SlotReserved, resp.SlotStatus)
	assert.InDelta(t, 25.0, resp.Reservation.TotalAmount, 1e-9)
	assert.Equal(t, f.clock.now.Add(5*time.Hour+30*time.Minute), resp.Reservation.EndAt)
}

func TestExecute_Conflicts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	start := f.clock.now.Add(time.Hour)

	_, err := f.uc.Execute(ctx, &Request{
		UserID: driverA, VehicleID: f.vehicles["MH12AB1234"], SlotNumber: stringPtr("A1"),
		StartAt: start, DurationHours: float64Ptr(2),
	})
	require.NoError(t, err)

	t.Run("same slot overlapping window by another vehicle", func(t *testing.T) {
		_, err := f.uc.Execute(ctx, &Request{
			UserID: driverB, VehicleID: f.vehicles["KA01C0001"], SlotNumber: stringPtr("A1"),
			StartAt: start.Add(time.Hour),
		})
		require.ErrorIs(t, err, ErrSlotConflict)

		var conflict *ConflictError
		require.True(t, errors.As(err, &conflict))
		assert.Equal(t, ConflictSlot, conflict.Kind)
		require.NotNil(t, conflict.ReservationID)
	})

	t.Run("same vehicle overlapping window on another slot", func(t *testing.T) {
		_, err := f.uc.Execute(ctx, &Request{
			UserID: driverA, VehicleID: f.vehicles["MH12AB1234"], SlotNumber: stringPtr("A2"),
			StartAt: start.Add(30 * time.Minute),
		})
		assert.ErrorIs(t, err, ErrVehicleConflict)
	})

	t.Run("touching window is allowed", func(t *testing.T) {
		_, err := f.uc.Execute(ctx, &Request{
			UserID: driverB, VehicleID: f.vehicles["KA01C0001"], SlotNumber: stringPtr("A1"),
			StartAt: start.Add(2 * time.Hour),
		})
		assert.NoError(t, err)
	})

	assert.Equal(t, 1, f.conflicts.counts["slot"])
	assert.Equal(t, 1, f.conflicts.counts["vehicle"])
}

func TestExecute_NotFound(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		req     *Request
		wantErr error
	}{
		{
			name:    "unknown slot number",
			req:     &Request{UserID: driverA, VehicleID: f.vehicles["MH12AB1234"], SlotNumber: stringPtr("Z9"), StartAt: f.clock.now},
			wantErr: ErrSlotNotFound,
		},
		{
			name:    "unknown slot id",
			req:     &Request{UserID: driverA, VehicleID: f.vehicles["MH12AB1234"], SlotID: int64Ptr(999), StartAt: f.clock.now},
			wantErr: ErrSlotNotFound,
		},
		{
			name:    "unknown vehicle",
			req:     &Request{UserID: driverA, VehicleID: 999, SlotNumber: stringPtr("A1"), StartAt: f.clock.now},
			wantErr: ErrVehicleNotFound,
		},
		{
			name:    "vehicle of another driver",
			req:     &Request{UserID: driverA, VehicleID: f.vehicles["KA01C0001"], SlotNumber: stringPtr("A1"), StartAt: f.clock.now},
			wantErr: ErrVehicleNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.uc.Execute(ctx, tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	count, err := f.store.Reservations().CountActive(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestExecute_InvalidInput(t *testing.T) {
	f := newFixture(t)
	vehicleID := f.vehicles["MH12AB1234"]

	tests := []struct {
		name string
		req  *Request
	}{
		{"no slot reference", &Request{UserID: driverA, VehicleID: vehicleID, StartAt: f.clock.now}},
		{"blank slot number", &Request{UserID: driverA, VehicleID: vehicleID, SlotNumber: stringPtr("  "), StartAt: f.clock.now}},
		{"missing start", &Request{UserID: driverA, VehicleID: vehicleID, SlotNumber: stringPtr("A1")}},
		{"zero duration", &Request{UserID: driverA, VehicleID: vehicleID, SlotNumber: stringPtr("A1"), StartAt: f.clock.now, DurationHours: float64Ptr(0)}},
		{"too long", &Request{UserID: driverA, VehicleID: vehicleID, SlotNumber: stringPtr("A1"), StartAt: f.clock.now, DurationHours: float64Ptr(169)}},
		{"already ended", &Request{UserID: driverA, VehicleID: vehicleID, SlotNumber: stringPtr("A1"), StartAt: f.clock.now.Add(-2 * time.Hour)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_ConcurrentBookingsOfSameSlot(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	start := f.clock.now.Add(time.Hour)

	requests := []*Request{
		{UserID: driverA, VehicleID: f.vehicles["MH12AB1234"], SlotNumber: stringPtr("A1"), StartAt: start},
		{UserID: driverA, VehicleID: f.vehicles["MH12AB5678"], SlotNumber: stringPtr("A1"), StartAt: start.Add(15 * time.Minute)},
		{UserID: driverB, VehicleID: f.vehicles["KA01C0001"], SlotNumber: stringPtr("A1"), StartAt: start.Add(30 * time.Minute)},
	}

	var wg sync.WaitGroup
	errs := make([]error, len(requests))
	for i, req := range requests {
		wg.Add(1)
		go func(i int, req *Request) {
			defer wg.Done()
			_, errs[i] = f.uc.Execute(ctx, req)
		}(i, req)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, ErrSlotConflict)
	}
	assert.Equal(t, 1, succeeded)

	count, err := f.store.Reservations().CountActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
