package reservations

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-ParkingService/pkg/logger"
)

type repoMock struct {
	mock.Mock
}

func (m *repoMock) GetDetails(ctx context.Context, id int64) (*domain.ReservationDetails, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReservationDetails), args.Error(1)
}

func (m *repoMock) ListDetails(ctx context.Context, filter domain.ReservationFilter) ([]*domain.ReservationDetails, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ReservationDetails), args.Error(1)
}

func TestService_GetTicket(t *testing.T) {
	ctx := context.Background()
	repo := &repoMock{}
	svc := NewService(repo, logger.NewNop())

	slotNumber := "A1"
	vehicleNumber := "MH12AB1234"
	start := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)

	repo.On("GetDetails", ctx, int64(5)).Return(&domain.ReservationDetails{
		Reservation: domain.Reservation{
			ID: 5, UserID: 1, VehicleID: 2, StartAt: start, EndAt: start.Add(time.Hour),
			Status: domain.ReservationActive, PaymentStatus: domain.PaymentPaid, TotalAmount: 10,
		},
		SlotNumber:    &slotNumber,
		VehicleNumber: &vehicleNumber,
	}, nil)
	repo.On("GetDetails", ctx, int64(6)).Return(nil, reservationRepo.ErrReservationNotFound)
	repo.On("GetDetails", ctx, int64(7)).Return(nil, errors.New("db down"))

	ticket, err := svc.GetTicket(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, "Active", ticket.Status)
	assert.Equal(t, "paid", ticket.PaymentStatus)
	assert.Equal(t, &slotNumber, ticket.SlotNumber)
	assert.Equal(t, &vehicleNumber, ticket.VehicleNumber)

	_, err = svc.GetTicket(ctx, 6)
	assert.ErrorIs(t, err, ErrReservationNotFound)

	_, err = svc.GetTicket(ctx, 7)
	assert.ErrorIs(t, err, ErrInternal)

	repo.AssertExpectations(t)
}

func TestService_Lists(t *testing.T) {
	ctx := context.Background()
	repo := &repoMock{}
	svc := NewService(repo, logger.NewNop())

	userID := int64(3)
	active := domain.ReservationActive

	repo.On("ListDetails", ctx, domain.ReservationFilter{UserID: &userID}).
		Return([]*domain.ReservationDetails{{Reservation: domain.Reservation{ID: 1, UserID: 3}}}, nil)
	repo.On("ListDetails", ctx, domain.ReservationFilter{Status: &active}).
		Return([]*domain.ReservationDetails{}, nil)

	own, err := svc.ListByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, int64(1), own[0].ID)

	list, err := svc.ListActive(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	repo.AssertExpectations(t)
}
