// Package memory хранилище в памяти процесса с теми же контрактами и ошибками,
// что и репозитории PostgreSQL. Используется для локального запуска и тестов.
//
// Транзакция захватывает общий мьютекс хранилища на всё время выполнения
// и откатывает изменения при ошибке, поэтому транзакции выполняются строго
// последовательно (это сильнее, чем блокировка строки слота в PostgreSQL).
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// Store общее состояние всех репозиториев в памяти
type Store struct {
	mu   sync.Mutex
	data *state
	now  func() time.Time
}

type state struct {
	nextSlotID        int64
	nextReservationID int64
	nextVehicleID     int64
	nextPaymentID     int64

	slots        map[int64]domain.Slot
	reservations map[int64]domain.Reservation
	vehicles     map[int64]domain.Vehicle
	payments     map[int64]domain.Payment
}

func newState() *state {
	return &state{
		slots:        make(map[int64]domain.Slot),
		reservations: make(map[int64]domain.Reservation),
		vehicles:     make(map[int64]domain.Vehicle),
		payments:     make(map[int64]domain.Payment),
	}
}

// clone копирует состояние для отката транзакции.
// Поля-указатели в записях никогда не изменяются на месте, только заменяются,
// поэтому достаточно копирования значений
func (s *state) clone() *state {
	c := &state{
		nextSlotID:        s.nextSlotID,
		nextReservationID: s.nextReservationID,
		nextVehicleID:     s.nextVehicleID,
		nextPaymentID:     s.nextPaymentID,
		slots:             make(map[int64]domain.Slot, len(s.slots)),
		reservations:      make(map[int64]domain.Reservation, len(s.reservations)),
		vehicles:          make(map[int64]domain.Vehicle, len(s.vehicles)),
		payments:          make(map[int64]domain.Payment, len(s.payments)),
	}
	for k, v := range s.slots {
		c.slots[k] = v
	}
	for k, v := range s.reservations {
		c.reservations[k] = v
	}
	for k, v := range s.vehicles {
		c.vehicles[k] = v
	}
	for k, v := range s.payments {
		c.payments[k] = v
	}
	return c
}

// NewStore создает пустое хранилище
func NewStore() *Store {
	return &Store{
		data: newState(),
		now:  time.Now,
	}
}

// Slots репозиторий слотов
func (s *Store) Slots() *SlotRepository {
	return &SlotRepository{store: s}
}

// Reservations репозиторий бронирований
func (s *Store) Reservations() *ReservationRepository {
	return &ReservationRepository{store: s}
}

// Vehicles репозиторий автомобилей
func (s *Store) Vehicles() *VehicleRepository {
	return &VehicleRepository{store: s}
}

// Payments репозиторий платежей
func (s *Store) Payments() *PaymentRepository {
	return &PaymentRepository{store: s}
}

// TxManager менеджер транзакций хранилища
func (s *Store) TxManager() *TxManager {
	return &TxManager{store: s}
}

type txKey struct{}

func (s *Store) inTx(ctx context.Context) bool {
	owner, ok := ctx.Value(txKey{}).(*Store)
	return ok && owner == s
}

// acquire захватывает мьютекс, если вызов идет не из транзакции этого хранилища
func (s *Store) acquire(ctx context.Context) func() {
	if s.inTx(ctx) {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

// TxManager транзакции хранилища в памяти
type TxManager struct {
	store *Store
}

// Do выполняет fn атомарно: при ошибке или панике состояние откатывается
func (m *TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	s := m.store
	if s.inTx(ctx) {
		return fn(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.data.clone()
	committed := false
	defer func() {
		if !committed {
			s.data = snapshot
		}
	}()

	if err := fn(context.WithValue(ctx, txKey{}, s)); err != nil {
		return err
	}

	committed = true
	return nil
}

// DoSerializable то же, что Do: транзакции в памяти и так последовательны
func (m *TxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.Do(ctx, fn)
}

// DoReadOnly то же, что Do
func (m *TxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.Do(ctx, fn)
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

func cloneInt64(p *int64) *int64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneString(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
