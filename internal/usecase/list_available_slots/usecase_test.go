package list_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-ParkingService/pkg/logger"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func statuses(resp *Response) map[string]domain.SlotStatus {
	result := make(map[string]domain.SlotStatus, len(resp.Slots))
	for _, s := range resp.Slots {
		result[s.Slot.SlotNumber] = s.Status
	}
	return result
}

func TestExecute(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 2, 2, 10, 0, 0, 0, time.UTC)
	store := memory.NewStore()

	a1, err := store.Slots().Create(ctx, &domain.Slot{SlotNumber: "A1"})
	require.NoError(t, err)
	_, err = store.Slots().Create(ctx, &domain.Slot{SlotNumber: "A2"})
	require.NoError(t, err)
	a3, err := store.Slots().Create(ctx, &domain.Slot{SlotNumber: "A3"})
	require.NoError(t, err)

	// A1 занят сейчас на час, у A3 отмененное бронирование
	_, err = store.Reservations().Create(ctx, &domain.Reservation{
		VehicleID: 1, SlotID: &a1.ID, StartAt: now, EndAt: now.Add(time.Hour), Status: domain.ReservationActive,
	})
	require.NoError(t, err)
	_, err = store.Reservations().Create(ctx, &domain.Reservation{
		VehicleID: 2, SlotID: &a3.ID, StartAt: now, EndAt: now.Add(time.Hour), Status: domain.ReservationCancelled,
	})
	require.NoError(t, err)

	// Сохраненный статус намеренно не соответствует бронированиям
	require.NoError(t, store.Slots().UpdateStatus(ctx, a3.ID, domain.SlotOccupied))

	uc := NewUseCase(store.Slots(), store.Reservations(), store.TxManager(), logger.NewNop(),
		WithTimeProvider(&fakeClock{now: now}))

	t.Run("default window is the next hour", func(t *testing.T) {
		resp, err := uc.Execute(ctx, &Request{})
		require.NoError(t, err)

		assert.Equal(t, now, resp.StartAt)
		assert.Equal(t, now.Add(time.Hour), resp.EndAt)
		assert.Equal(t, map[string]domain.SlotStatus{
			"A1": domain.SlotReserved,
			"A2": domain.SlotAvailable,
			"A3": domain.SlotAvailable,
		}, statuses(resp))
	})

	t.Run("window touching the end is available", func(t *testing.T) {
		start := now.Add(time.Hour)
		resp, err := uc.Execute(ctx, &Request{StartAt: &start})
		require.NoError(t, err)
		assert.Equal(t, domain.SlotAvailable, statuses(resp)["A1"])
	})

	t.Run("long window overlapping reservation", func(t *testing.T) {
		start := now.Add(-3 * time.Hour)
		hours := 3.5
		resp, err := uc.Execute(ctx, &Request{StartAt: &start, DurationHours: &hours})
		require.NoError(t, err)
		assert.Equal(t, domain.SlotReserved, statuses(resp)["A1"])
	})

	t.Run("invalid duration", func(t *testing.T) {
		hours := -1.0
		_, err := uc.Execute(ctx, &Request{DurationHours: &hours})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
