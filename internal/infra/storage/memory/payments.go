package memory

import (
	"context"
	"sort"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// PaymentRepository платежи в памяти
type PaymentRepository struct {
	store *Store
}

func (r *PaymentRepository) Create(ctx context.Context, p *domain.Payment) (*domain.Payment, error) {
	defer r.store.acquire(ctx)()
	data := r.store.data

	data.nextPaymentID++
	p.ID = data.nextPaymentID
	p.CreatedAt = r.store.now()
	data.payments[p.ID] = *p

	created := *p
	return &created, nil
}

func (r *PaymentRepository) List(ctx context.Context) ([]*domain.Payment, error) {
	defer r.store.acquire(ctx)()

	payments := make([]*domain.Payment, 0, len(r.store.data.payments))
	for _, p := range r.store.data.payments {
		payment := p
		payments = append(payments, &payment)
	}
	sort.Slice(payments, func(i, j int) bool { return payments[i].ID > payments[j].ID })
	return payments, nil
}

func (r *PaymentRepository) Stats(ctx context.Context) (count int64, revenue float64, err error) {
	defer r.store.acquire(ctx)()

	for _, p := range r.store.data.payments {
		count++
		revenue += p.Amount
	}
	return count, revenue, nil
}
