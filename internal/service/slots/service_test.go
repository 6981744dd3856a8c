package slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-ParkingService/internal/service/slots/models"
	"github.com/m04kA/SMC-ParkingService/internal/service/slotstate"
	"github.com/m04kA/SMC-ParkingService/pkg/logger"
)

func newService(store *memory.Store) *Service {
	state := slotstate.NewService(store.Slots(), store.Reservations(), store.TxManager(), nil)
	return NewService(store.Slots(), store.Reservations(), store.Payments(), state, store.TxManager(), logger.NewNop())
}

func TestService_CreateListRename(t *testing.T) {
	store := memory.NewStore()
	svc := newService(store)
	ctx := context.Background()

	a1, err := svc.Create(ctx, &models.SlotRequest{SlotNumber: " A1 "})
	require.NoError(t, err)
	assert.Equal(t, "A1", a1.SlotNumber)
	assert.Equal(t, string(domain.SlotAvailable), a1.Status)

	_, err = svc.Create(ctx, &models.SlotRequest{SlotNumber: "A2"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, &models.SlotRequest{SlotNumber: "A1"})
	assert.ErrorIs(t, err, ErrSlotAlreadyExists)

	_, err = svc.Create(ctx, &models.SlotRequest{SlotNumber: "   "})
	assert.ErrorIs(t, err, ErrInvalidInput)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "A1", list[0].SlotNumber)

	// Переименование пересчитывает статус по бронированиям
	now := time.Now()
	_, err = store.Reservations().Create(ctx, &domain.Reservation{
		VehicleID: 1, SlotID: &a1.ID, StartAt: now.Add(-time.Minute), EndAt: now.Add(time.Hour), Status: domain.ReservationActive,
	})
	require.NoError(t, err)

	renamed, err := svc.Rename(ctx, a1.ID, &models.SlotRequest{SlotNumber: "B1"})
	require.NoError(t, err)
	assert.Equal(t, "B1", renamed.SlotNumber)
	assert.Equal(t, string(domain.SlotOccupied), renamed.Status)

	_, err = svc.Rename(ctx, a1.ID, &models.SlotRequest{SlotNumber: "A2"})
	assert.ErrorIs(t, err, ErrSlotAlreadyExists)

	_, err = svc.Rename(ctx, 999, &models.SlotRequest{SlotNumber: "C1"})
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestService_Report(t *testing.T) {
	store := memory.NewStore()
	svc := newService(store)
	ctx := context.Background()

	a1, err := store.Slots().Create(ctx, &domain.Slot{SlotNumber: "A1"})
	require.NoError(t, err)
	_, err = store.Slots().Create(ctx, &domain.Slot{SlotNumber: "A2"})
	require.NoError(t, err)
	require.NoError(t, store.Slots().UpdateStatus(ctx, a1.ID, domain.SlotOccupied))

	now := time.Now()
	res, err := store.Reservations().Create(ctx, &domain.Reservation{
		VehicleID: 1, SlotID: &a1.ID, StartAt: now, EndAt: now.Add(time.Hour), Status: domain.ReservationActive,
	})
	require.NoError(t, err)
	_, err = store.Payments().Create(ctx, &domain.Payment{UserID: 1, ReservationID: res.ID, Amount: 10, Method: "card"})
	require.NoError(t, err)

	report, err := svc.Report(ctx)
	require.NoError(t, err)
	assert.Equal(t, &models.ReportResponse{
		TotalSlots:         2,
		OccupiedSlots:      1,
		ActiveReservations: 1,
		TotalPayments:      1,
		TotalRevenue:       10,
	}, report)
}
