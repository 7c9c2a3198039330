package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/Apurer/food-order-api/internal/domains/stores/domain"
	"github.com/Apurer/food-order-api/internal/domains/stores/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory store persistence adapter.
type Repository struct {
	mu     sync.RWMutex
	stores map[int64]*domain.Store
	nextID int64
}

func NewRepository() *Repository {
	return &Repository{stores: map[int64]*domain.Store{}}
}

func (r *Repository) Save(_ context.Context, store *domain.Store) (*domain.Store, error) {
	if store == nil {
		return nil, errors.New("store is nil")
	}
	clone := *store
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if clone.ID == 0 {
		r.nextID++
		clone.ID = r.nextID
	} else if clone.ID > r.nextID {
		r.nextID = clone.ID
	}
	r.stores[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *Repository) GetByID(_ context.Context, id int64) (*domain.Store, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	store, ok := r.stores[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *store
	return &clone, nil
}
