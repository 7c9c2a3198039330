package memory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/Apurer/food-order-api/internal/domains/orders/domain"
	"github.com/Apurer/food-order-api/internal/domains/orders/ports"
	"github.com/Apurer/food-order-api/internal/shared/pagination"
	"github.com/Apurer/food-order-api/internal/shared/txn"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory order persistence adapter.
type Repository struct {
	mu         sync.RWMutex
	orders     map[int64]*domain.Order
	rowLocks   map[int64]chan struct{}
	nextID     int64
	nextLineID int64
}

func NewRepository() *Repository {
	return &Repository{orders: map[int64]*domain.Order{}, rowLocks: map[int64]chan struct{}{}}
}

func (r *Repository) Save(_ context.Context, order *domain.Order) (*domain.Order, error) {
	if order == nil {
		return nil, errors.New("order is nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if order.ID == 0 {
		clone := order.Clone()
		r.nextID++
		clone.ID = r.nextID
		for i := range clone.Lines {
			r.nextLineID++
			clone.Lines[i].ID = r.nextLineID
		}
		r.orders[clone.ID] = clone
		return clone.Clone(), nil
	}
	stored, ok := r.orders[order.ID]
	if !ok {
		return nil, ports.ErrNotFound
	}
	stored.Status = order.Status
	return stored.Clone(), nil
}

func (r *Repository) GetByID(_ context.Context, id int64) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return order.Clone(), nil
}

// GetByIDForUpdate locks the order until the inline unit of work bound to ctx ends.
// Without one the lock is released as soon as the read completes.
func (r *Repository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Order, error) {
	release, err := r.lockRow(ctx, id)
	if err != nil {
		return nil, err
	}
	if !txn.OnFinish(ctx, release) {
		defer release()
	}
	return r.GetByID(ctx, id)
}

func (r *Repository) lockRow(ctx context.Context, id int64) (func(), error) {
	r.mu.Lock()
	lock, ok := r.rowLocks[id]
	if !ok {
		lock = make(chan struct{}, 1)
		r.rowLocks[id] = lock
	}
	r.mu.Unlock()
	select {
	case lock <- struct{}{}:
		return func() { <-lock }, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (r *Repository) ListByStore(_ context.Context, storeID int64, page pagination.Request) (pagination.Page[*domain.Order], error) {
	r.mu.RLock()
	matched := make([]*domain.Order, 0)
	for _, order := range r.orders {
		if order.StoreID == storeID {
			matched = append(matched, order.Clone())
		}
	}
	r.mu.RUnlock()
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].OrderedAt.Equal(matched[j].OrderedAt) {
			return matched[i].OrderedAt.After(matched[j].OrderedAt)
		}
		return matched[i].ID > matched[j].ID
	})
	return pagination.Slice(matched, page), nil
}

func (r *Repository) CountByStoreAndStatus(_ context.Context, storeID int64, status domain.Status) (int64, error) {
	if !domain.IsValidStatus(status) {
		return 0, fmt.Errorf("unknown order status %q", status)
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var count int64
	for _, order := range r.orders {
		if order.StoreID == storeID && order.Status == status {
			count++
		}
	}
	return count, nil
}
