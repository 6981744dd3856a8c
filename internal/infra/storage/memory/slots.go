package memory

import (
	"context"
	"sort"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	slotRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/slot"
)

// SlotRepository слоты в памяти
type SlotRepository struct {
	store *Store
}

func (r *SlotRepository) Create(ctx context.Context, slot *domain.Slot) (*domain.Slot, error) {
	defer r.store.acquire(ctx)()
	data := r.store.data

	for _, existing := range data.slots {
		if existing.SlotNumber == slot.SlotNumber {
			return nil, slotRepo.ErrSlotAlreadyExists
		}
	}

	now := r.store.now()
	data.nextSlotID++
	slot.ID = data.nextSlotID
	slot.Status = domain.SlotAvailable
	slot.CreatedAt = now
	slot.UpdatedAt = now
	data.slots[slot.ID] = *slot

	created := *slot
	return &created, nil
}

func (r *SlotRepository) GetByID(ctx context.Context, id int64) (*domain.Slot, error) {
	defer r.store.acquire(ctx)()

	slot, ok := r.store.data.slots[id]
	if !ok {
		return nil, slotRepo.ErrSlotNotFound
	}
	return &slot, nil
}

func (r *SlotRepository) GetByNumber(ctx context.Context, number string) (*domain.Slot, error) {
	defer r.store.acquire(ctx)()

	for _, slot := range r.store.data.slots {
		if slot.SlotNumber == number {
			found := slot
			return &found, nil
		}
	}
	return nil, slotRepo.ErrSlotNotFound
}

// LockByID внутри транзакции хранилище уже захвачено целиком
func (r *SlotRepository) LockByID(ctx context.Context, id int64) (*domain.Slot, error) {
	return r.GetByID(ctx, id)
}

func (r *SlotRepository) List(ctx context.Context) ([]*domain.Slot, error) {
	defer r.store.acquire(ctx)()

	slots := make([]*domain.Slot, 0, len(r.store.data.slots))
	for _, slot := range r.store.data.slots {
		s := slot
		slots = append(slots, &s)
	}
	sort.Slice(slots, func(i, j int) bool {
		return slots[i].SlotNumber < slots[j].SlotNumber
	})
	return slots, nil
}

func (r *SlotRepository) ListIDs(ctx context.Context) ([]int64, error) {
	defer r.store.acquire(ctx)()

	ids := make([]int64, 0, len(r.store.data.slots))
	for id := range r.store.data.slots {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (r *SlotRepository) UpdateStatus(ctx context.Context, id int64, status domain.SlotStatus) error {
	defer r.store.acquire(ctx)()

	slot, ok := r.store.data.slots[id]
	if !ok {
		return slotRepo.ErrSlotNotFound
	}
	slot.Status = status
	slot.UpdatedAt = r.store.now()
	r.store.data.slots[id] = slot
	return nil
}

func (r *SlotRepository) UpdateNumber(ctx context.Context, id int64, number string) (*domain.Slot, error) {
	defer r.store.acquire(ctx)()
	data := r.store.data

	slot, ok := data.slots[id]
	if !ok {
		return nil, slotRepo.ErrSlotNotFound
	}
	for otherID, other := range data.slots {
		if otherID != id && other.SlotNumber == number {
			return nil, slotRepo.ErrSlotAlreadyExists
		}
	}

	slot.SlotNumber = number
	slot.UpdatedAt = r.store.now()
	data.slots[id] = slot

	updated := slot
	return &updated, nil
}

func (r *SlotRepository) Count(ctx context.Context, status *domain.SlotStatus) (int64, error) {
	defer r.store.acquire(ctx)()

	var count int64
	for _, slot := range r.store.data.slots {
		if status == nil || slot.Status == *status {
			count++
		}
	}
	return count, nil
}
