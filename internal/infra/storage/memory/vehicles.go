package memory

import (
	"context"
	"sort"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	vehicleRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/vehicle"
)

// VehicleRepository автомобили в памяти
type VehicleRepository struct {
	store *Store
}

func cloneVehicle(v domain.Vehicle) *domain.Vehicle {
	v.Model = cloneString(v.Model)
	return &v
}

func (r *VehicleRepository) Create(ctx context.Context, v *domain.Vehicle) (*domain.Vehicle, error) {
	defer r.store.acquire(ctx)()
	data := r.store.data

	for _, existing := range data.vehicles {
		if existing.Number == v.Number {
			return nil, vehicleRepo.ErrVehicleAlreadyExists
		}
	}

	data.nextVehicleID++
	v.ID = data.nextVehicleID
	v.CreatedAt = r.store.now()
	data.vehicles[v.ID] = *cloneVehicle(*v)

	return cloneVehicle(*v), nil
}

func (r *VehicleRepository) GetByID(ctx context.Context, id int64) (*domain.Vehicle, error) {
	defer r.store.acquire(ctx)()

	v, ok := r.store.data.vehicles[id]
	if !ok {
		return nil, vehicleRepo.ErrVehicleNotFound
	}
	return cloneVehicle(v), nil
}

func (r *VehicleRepository) LockByID(ctx context.Context, id int64) (*domain.Vehicle, error) {
	return r.GetByID(ctx, id)
}

func (r *VehicleRepository) ListByUser(ctx context.Context, userID int64) ([]*domain.Vehicle, error) {
	defer r.store.acquire(ctx)()

	vehicles := make([]*domain.Vehicle, 0)
	for _, v := range r.store.data.vehicles {
		if v.UserID == userID {
			vehicles = append(vehicles, cloneVehicle(v))
		}
	}
	sort.Slice(vehicles, func(i, j int) bool { return vehicles[i].ID > vehicles[j].ID })
	return vehicles, nil
}

func (r *VehicleRepository) Delete(ctx context.Context, id int64) error {
	defer r.store.acquire(ctx)()

	if _, ok := r.store.data.vehicles[id]; !ok {
		return vehicleRepo.ErrVehicleNotFound
	}
	delete(r.store.data.vehicles, id)
	return nil
}
