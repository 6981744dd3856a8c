package memory

import (
	"context"
	"sort"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/reservation"
)

// ReservationRepository бронирования в памяти
type ReservationRepository struct {
	store *Store
}

func cloneReservation(r domain.Reservation) *domain.Reservation {
	r.SlotID = cloneInt64(r.SlotID)
	r.CancelledAt = cloneTime(r.CancelledAt)
	r.CompletedAt = cloneTime(r.CompletedAt)
	return &r
}

// Create повторяет ограничения исключения схемы PostgreSQL:
// активные бронирования одного слота или автомобиля не пересекаются
func (r *ReservationRepository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	defer r.store.acquire(ctx)()
	data := r.store.data

	if res.IsActive() {
		for _, existing := range data.reservations {
			if !existing.ConflictsWith(res.StartAt, res.EndAt) {
				continue
			}
			if existing.VehicleID == res.VehicleID {
				return nil, reservationRepo.ErrVehicleOverlap
			}
			if existing.SlotID != nil && res.SlotID != nil && *existing.SlotID == *res.SlotID {
				return nil, reservationRepo.ErrSlotOverlap
			}
		}
	}

	now := r.store.now()
	data.nextReservationID++
	res.ID = data.nextReservationID
	res.CreatedAt = now
	res.UpdatedAt = now
	data.reservations[res.ID] = *cloneReservation(*res)

	return cloneReservation(*res), nil
}

func (r *ReservationRepository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	defer r.store.acquire(ctx)()

	res, ok := r.store.data.reservations[id]
	if !ok {
		return nil, reservationRepo.ErrReservationNotFound
	}
	return cloneReservation(res), nil
}

func (r *ReservationRepository) LockByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	return r.GetByID(ctx, id)
}

func (r *ReservationRepository) GetDetails(ctx context.Context, id int64) (*domain.ReservationDetails, error) {
	defer r.store.acquire(ctx)()

	res, ok := r.store.data.reservations[id]
	if !ok {
		return nil, reservationRepo.ErrReservationNotFound
	}
	return r.details(res), nil
}

func (r *ReservationRepository) ListDetails(ctx context.Context, filter domain.ReservationFilter) ([]*domain.ReservationDetails, error) {
	defer r.store.acquire(ctx)()

	result := make([]*domain.ReservationDetails, 0)
	for _, res := range r.store.data.reservations {
		if filter.UserID != nil && res.UserID != *filter.UserID {
			continue
		}
		if filter.Status != nil && res.Status != *filter.Status {
			continue
		}
		result = append(result, r.details(res))
	}

	if filter.UserID != nil {
		sort.Slice(result, func(i, j int) bool {
			if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
				return result[i].CreatedAt.After(result[j].CreatedAt)
			}
			return result[i].ID > result[j].ID
		})
	} else {
		sort.Slice(result, func(i, j int) bool {
			if !result[i].StartAt.Equal(result[j].StartAt) {
				return result[i].StartAt.Before(result[j].StartAt)
			}
			return result[i].ID < result[j].ID
		})
	}

	return result, nil
}

// details собирает представление с номерами слота и автомобиля. Вызывается под мьютексом
func (r *ReservationRepository) details(res domain.Reservation) *domain.ReservationDetails {
	d := &domain.ReservationDetails{Reservation: *cloneReservation(res)}

	if res.SlotID != nil {
		if slot, ok := r.store.data.slots[*res.SlotID]; ok {
			d.SlotNumber = cloneString(&slot.SlotNumber)
		}
	}
	if v, ok := r.store.data.vehicles[res.VehicleID]; ok {
		d.VehicleNumber = cloneString(&v.Number)
		d.VehicleModel = cloneString(v.Model)
	}

	return d
}

func (r *ReservationRepository) ListActiveBySlot(ctx context.Context, slotID int64) ([]*domain.Reservation, error) {
	return r.filter(ctx, func(res domain.Reservation) bool {
		return res.IsActive() && res.SlotID != nil && *res.SlotID == slotID
	}), nil
}

func (r *ReservationRepository) ListActiveOverlapping(ctx context.Context, filter domain.OverlapFilter) ([]*domain.Reservation, error) {
	return r.filter(ctx, func(res domain.Reservation) bool {
		if !res.ConflictsWith(filter.StartAt, filter.EndAt) {
			return false
		}
		if filter.SlotID != nil && (res.SlotID == nil || *res.SlotID != *filter.SlotID) {
			return false
		}
		if filter.VehicleID != nil && res.VehicleID != *filter.VehicleID {
			return false
		}
		return true
	}), nil
}

func (r *ReservationRepository) ListEndedActive(ctx context.Context, now time.Time) ([]*domain.Reservation, error) {
	return r.filter(ctx, func(res domain.Reservation) bool {
		return res.IsActive() && res.HasEnded(now)
	}), nil
}

// filter возвращает подходящие бронирования по времени начала
func (r *ReservationRepository) filter(ctx context.Context, match func(domain.Reservation) bool) []*domain.Reservation {
	defer r.store.acquire(ctx)()

	result := make([]*domain.Reservation, 0)
	for _, res := range r.store.data.reservations {
		if match(res) {
			result = append(result, cloneReservation(res))
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].StartAt.Equal(result[j].StartAt) {
			return result[i].StartAt.Before(result[j].StartAt)
		}
		return result[i].ID < result[j].ID
	})
	return result
}

func (r *ReservationRepository) Complete(ctx context.Context, id int64, at time.Time) error {
	return r.finish(ctx, id, func(res *domain.Reservation) {
		res.Status = domain.ReservationCompleted
		res.CompletedAt = &at
	})
}

func (r *ReservationRepository) Cancel(ctx context.Context, id int64, at time.Time) error {
	return r.finish(ctx, id, func(res *domain.Reservation) {
		res.Status = domain.ReservationCancelled
		res.CancelledAt = &at
	})
}

func (r *ReservationRepository) finish(ctx context.Context, id int64, apply func(res *domain.Reservation)) error {
	defer r.store.acquire(ctx)()

	res, ok := r.store.data.reservations[id]
	if !ok || !res.IsActive() {
		return reservationRepo.ErrReservationNotActive
	}

	apply(&res)
	res.UpdatedAt = r.store.now()
	r.store.data.reservations[id] = res
	return nil
}

func (r *ReservationRepository) MarkPaid(ctx context.Context, id int64) error {
	defer r.store.acquire(ctx)()

	res, ok := r.store.data.reservations[id]
	if !ok {
		return reservationRepo.ErrReservationNotFound
	}
	res.PaymentStatus = domain.PaymentPaid
	res.UpdatedAt = r.store.now()
	r.store.data.reservations[id] = res
	return nil
}

func (r *ReservationRepository) CountActive(ctx context.Context) (int64, error) {
	defer r.store.acquire(ctx)()

	var count int64
	for _, res := range r.store.data.reservations {
		if res.IsActive() {
			count++
		}
	}
	return count, nil
}

func (r *ReservationRepository) HasActiveForVehicle(ctx context.Context, vehicleID int64) (bool, error) {
	defer r.store.acquire(ctx)()

	for _, res := range r.store.data.reservations {
		if res.IsActive() && res.VehicleID == vehicleID {
			return true, nil
		}
	}
	return false, nil
}
