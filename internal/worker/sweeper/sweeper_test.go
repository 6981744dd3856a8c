package sweeper

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-ParkingService/internal/service/slotstate"
	"github.com/m04kA/SMC-ParkingService/internal/usecase/create_reservation"
	"github.com/m04kA/SMC-ParkingService/pkg/logger"
	"github.com/m04kA/SMC-ParkingService/pkg/metrics"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// recordingLogger запоминает сообщения уровня Error
type recordingLogger struct {
	mu     sync.Mutex
	errors []string
}

func (l *recordingLogger) Info(string, ...interface{}) {}
func (l *recordingLogger) Warn(string, ...interface{}) {}
func (l *recordingLogger) Error(format string, v ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errors = append(l.errors, fmt.Sprintf(format, v...))
}

func (l *recordingLogger) Errors() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.errors...)
}

type metricsMock struct {
	mock.Mock
}

func (m *metricsMock) ObserveSweeperTick(result string, _ time.Duration) {
	m.Called(result)
}

func (m *metricsMock) AddReservationsCompleted(n int) {
	m.Called(n)
}

type env struct {
	store   *memory.Store
	clock   *fakeClock
	state   *slotstate.Service
	sweeper *Sweeper
	booking *create_reservation.UseCase
	slotID  int64
	vehicle int64
}

const driverID = int64(1)

func newEnv(t *testing.T, opts ...Option) *env {
	t.Helper()
	ctx := context.Background()

	store := memory.NewStore()
	clock := &fakeClock{now: time.Date(2026, 9, 1, 14, 0, 0, 0, time.UTC)}

	slot, err := store.Slots().Create(ctx, &domain.Slot{SlotNumber: "A1"})
	require.NoError(t, err)
	v, err := store.Vehicles().Create(ctx, &domain.Vehicle{UserID: driverID, Number: "MH12AB1234"})
	require.NoError(t, err)

	state := slotstate.NewService(store.Slots(), store.Reservations(), store.TxManager(), nil)

	opts = append([]Option{WithClock(clock), WithInterval(time.Minute)}, opts...)

	return &env{
		store:   store,
		clock:   clock,
		state:   state,
		slotID:  slot.ID,
		vehicle: v.ID,
		sweeper: New(store.Slots(), store.Reservations(), state, store.TxManager(), logger.NewNop(), opts...),
		booking: create_reservation.NewUseCase(store.Slots(), store.Vehicles(), store.Reservations(), state,
			store.TxManager(), logger.NewNop(), create_reservation.WithTimeProvider(clock)),
	}
}

func (e *env) slotStatus(t *testing.T) domain.SlotStatus {
	t.Helper()
	slot, err := e.store.Slots().GetByID(context.Background(), e.slotID)
	require.NoError(t, err)
	return slot.Status
}

func TestTick_CompletesEndedReservationAndFreesSlot(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	number := "A1"

	resp, err := e.booking.Execute(ctx, &create_reservation.Request{
		UserID:     driverID,
		VehicleID:  e.vehicle,
		SlotNumber: &number,
		StartAt:    e.clock.Now(),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.SlotOccupied, e.slotStatus(t))

	// До конца бронирования тик ничего не меняет
	stats, err := e.sweeper.Tick(ctx)
	require.NoError(t, err)
	assert.Equal(t, Stats{}, stats)

	e.clock.Advance(time.Hour)

	stats, err = e.sweeper.Tick(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Completed)

	res, err := e.store.Reservations().GetByID(ctx, resp.Reservation.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ReservationCompleted, res.Status)
	require.NotNil(t, res.CompletedAt)
	assert.Equal(t, domain.SlotAvailable, e.slotStatus(t))

	// Повторный тик идемпотентен
	stats, err = e.sweeper.Tick(ctx)
	require.NoError(t, err)
	assert.Equal(t, Stats{}, stats)
}

func TestTick_ReservedBecomesOccupiedThenReservedAgain(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	number := "A1"
	now := e.clock.Now()

	_, err := e.booking.Execute(ctx, &create_reservation.Request{
		UserID: driverID, VehicleID: e.vehicle, SlotNumber: &number, StartAt: now.Add(30 * time.Minute),
	})
	require.NoError(t, err)
	_, err = e.booking.Execute(ctx, &create_reservation.Request{
		UserID: driverID, VehicleID: e.vehicle, SlotNumber: &number, StartAt: now.Add(3 * time.Hour),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.SlotReserved, e.slotStatus(t))

	e.clock.Advance(45 * time.Minute)
	stats, err := e.sweeper.Tick(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.SlotsChanged)
	assert.Equal(t, domain.SlotOccupied, e.slotStatus(t))

	e.clock.Advance(time.Hour)
	stats, err = e.sweeper.Tick(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Completed)
	assert.Equal(t, domain.SlotReserved, e.slotStatus(t))
}

func TestTick_RepairsStaleStatus(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	require.NoError(t, e.store.Slots().UpdateStatus(ctx, e.slotID, domain.SlotOccupied))

	stats, err := e.sweeper.Tick(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.SlotsChanged)
	assert.Equal(t, domain.SlotAvailable, e.slotStatus(t))
}

// blockingReservations останавливает ListEndedActive, пока тест не отпустит его
type blockingReservations struct {
	ReservationRepository
	entered chan struct{}
	release chan struct{}
}

func (b *blockingReservations) ListEndedActive(ctx context.Context, now time.Time) ([]*domain.Reservation, error) {
	close(b.entered)
	<-b.release
	return b.ReservationRepository.ListEndedActive(ctx, now)
}

func TestTick_SkipsWhilePreviousTickRuns(t *testing.T) {
	store := memory.NewStore()
	state := slotstate.NewService(store.Slots(), store.Reservations(), store.TxManager(), nil)
	blocking := &blockingReservations{
		ReservationRepository: store.Reservations(),
		entered:               make(chan struct{}),
		release:               make(chan struct{}),
	}

	m := &metricsMock{}
	m.On("ObserveSweeperTick", metrics.TickResultSkipped).Once()
	m.On("ObserveSweeperTick", metrics.TickResultOK).Once()

	s := New(store.Slots(), blocking, state, store.TxManager(), logger.NewNop(), WithMetrics(m))

	done := make(chan error, 1)
	go func() {
		_, err := s.Tick(context.Background())
		done <- err
	}()

	<-blocking.entered

	stats, err := s.Tick(context.Background())
	require.NoError(t, err)
	assert.True(t, stats.Skipped)

	close(blocking.release)
	require.NoError(t, <-done)

	m.AssertExpectations(t)
}

type failingReservations struct {
	ReservationRepository
}

func (failingReservations) ListEndedActive(context.Context, time.Time) ([]*domain.Reservation, error) {
	return nil, errors.New("connection reset by peer")
}

func TestRun_TickFailureIsLoggedAndDoesNotStopWorker(t *testing.T) {
	store := memory.NewStore()
	state := slotstate.NewService(store.Slots(), store.Reservations(), store.TxManager(), nil)
	log := &recordingLogger{}

	s := New(store.Slots(), failingReservations{store.Reservations()}, state, store.TxManager(), log,
		WithInterval(10*time.Millisecond))

	_, err := s.Tick(context.Background())
	require.ErrorIs(t, err, ErrListReservations)

	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(stopped)
	}()

	require.Eventually(t, func() bool {
		return len(log.Errors()) >= 2
	}, time.Second, 5*time.Millisecond, "worker keeps ticking after failures")

	cancel()
	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop after context cancellation")
	}

	assert.Contains(t, log.Errors()[0], "tick failed")
}

type lockerStub struct {
	held     bool
	released int
}

func (l *lockerStub) TryAcquire(context.Context, time.Duration) (func(context.Context) error, bool, error) {
	if l.held {
		return nil, false, nil
	}
	return func(context.Context) error {
		l.released++
		return nil
	}, true, nil
}

func TestTick_Locker(t *testing.T) {
	locker := &lockerStub{held: true}
	e := newEnv(t, WithLocker(locker))

	stats, err := e.sweeper.Tick(context.Background())
	require.NoError(t, err)
	assert.True(t, stats.Skipped)

	locker.held = false
	stats, err = e.sweeper.Tick(context.Background())
	require.NoError(t, err)
	assert.False(t, stats.Skipped)
	assert.Equal(t, 1, locker.released)
}
