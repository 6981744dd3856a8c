package payments

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-ParkingService/internal/service/payments/models"
	"github.com/m04kA/SMC-ParkingService/pkg/logger"
)

func TestService_Pay(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := NewService(store.Payments(), store.Reservations(), store.TxManager(), logger.NewNop())

	start := time.Now().Add(time.Hour)
	res, err := store.Reservations().Create(ctx, &domain.Reservation{
		UserID: 1, VehicleID: 1, StartAt: start, EndAt: start.Add(time.Hour),
		Status: domain.ReservationActive, PaymentStatus: domain.PaymentPending, TotalAmount: 10,
	})
	require.NoError(t, err)

	t.Run("foreign reservation", func(t *testing.T) {
		_, err := svc.Pay(ctx, 2, &models.PaymentRequest{ReservationID: res.ID, Amount: 10, Method: "card"})
		assert.ErrorIs(t, err, ErrReservationNotFound)
	})

	t.Run("unknown reservation", func(t *testing.T) {
		_, err := svc.Pay(ctx, 1, &models.PaymentRequest{ReservationID: 999, Amount: 10, Method: "card"})
		assert.ErrorIs(t, err, ErrReservationNotFound)
	})

	t.Run("invalid method", func(t *testing.T) {
		_, err := svc.Pay(ctx, 1, &models.PaymentRequest{ReservationID: res.ID, Amount: 10, Method: "x"})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	payment, err := svc.Pay(ctx, 1, &models.PaymentRequest{ReservationID: res.ID, Amount: 12.5, Method: " upi "})
	require.NoError(t, err)
	assert.Equal(t, "upi", payment.Method)
	assert.InDelta(t, 12.5, payment.Amount, 1e-9)

	got, err := store.Reservations().GetByID(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentPaid, got.PaymentStatus)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, payment.ID, list[0].ID)
}
