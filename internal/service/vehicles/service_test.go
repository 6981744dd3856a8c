package vehicles

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-ParkingService/internal/service/vehicles/models"
	"github.com/m04kA/SMC-ParkingService/pkg/logger"
)

func newService() (*Service, *memory.Store) {
	store := memory.NewStore()
	return NewService(store.Vehicles(), store.Reservations(), store.TxManager(), logger.NewNop()), store
}

func TestService_AddAndList(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()
	model := "  Swift  "

	created, err := svc.Add(ctx, 1, &models.AddVehicleRequest{Number: "mh12ab1234", Model: &model})
	require.NoError(t, err)
	assert.Equal(t, "MH12AB1234", created.Number)
	require.NotNil(t, created.Model)
	assert.Equal(t, "Swift", *created.Model)

	_, err = svc.Add(ctx, 2, &models.AddVehicleRequest{Number: "MH12AB1234"})
	assert.ErrorIs(t, err, ErrVehicleAlreadyExists)

	_, err = svc.Add(ctx, 1, &models.AddVehicleRequest{Number: "12345"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	list, err := svc.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0].ID)

	list, err = svc.List(ctx, 2)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestService_Delete(t *testing.T) {
	svc, store := newService()
	ctx := context.Background()

	v, err := svc.Add(ctx, 1, &models.AddVehicleRequest{Number: "KA01C0001"})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(ctx, 2, v.ID), ErrVehicleNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, 1, 999), ErrVehicleNotFound)

	start := time.Now().Add(time.Hour)
	res, err := store.Reservations().Create(ctx, &domain.Reservation{
		UserID: 1, VehicleID: v.ID, StartAt: start, EndAt: start.Add(time.Hour), Status: domain.ReservationActive,
	})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(ctx, 1, v.ID), ErrVehicleInUse)

	require.NoError(t, store.Reservations().Cancel(ctx, res.ID, time.Now()))
	require.NoError(t, svc.Delete(ctx, 1, v.ID))

	list, err := svc.List(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, list)
}
