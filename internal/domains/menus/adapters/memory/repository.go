package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/Apurer/food-order-api/internal/domains/menus/domain"
	"github.com/Apurer/food-order-api/internal/domains/menus/ports"
	"github.com/Apurer/food-order-api/internal/shared/pagination"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory menu persistence adapter.
type Repository struct {
	mu     sync.RWMutex
	menus  map[int64]*domain.Menu
	nextID int64
}

func NewRepository() *Repository {
	return &Repository{menus: map[int64]*domain.Menu{}}
}

func (r *Repository) Save(_ context.Context, menu *domain.Menu) (*domain.Menu, error) {
	if menu == nil {
		return nil, errors.New("menu is nil")
	}
	clone := *menu
	r.mu.Lock()
	defer r.mu.Unlock()
	if clone.ID == 0 {
		r.nextID++
		clone.ID = r.nextID
	} else if clone.ID > r.nextID {
		r.nextID = clone.ID
	}
	r.menus[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *Repository) GetByID(_ context.Context, id int64) (*domain.Menu, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	menu, ok := r.menus[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *menu
	return &clone, nil
}

func (r *Repository) ListActiveByStore(_ context.Context, storeID int64, page pagination.Request) (pagination.Page[*domain.Menu], error) {
	r.mu.RLock()
	active := make([]*domain.Menu, 0)
	for _, menu := range r.menus {
		if menu.StoreID == storeID && !menu.Deleted {
			clone := *menu
			active = append(active, &clone)
		}
	}
	r.mu.RUnlock()
	sort.Slice(active, func(i, j int) bool { return active[i].ID < active[j].ID })
	return pagination.Slice(active, page), nil
}

func (r *Repository) ImagePaths(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	seen := map[string]struct{}{}
	paths := make([]string, 0, len(r.menus))
	for _, menu := range r.menus {
		if _, ok := seen[menu.ImagePath]; ok {
			continue
		}
		seen[menu.ImagePath] = struct{}{}
		paths = append(paths, menu.ImagePath)
	}
	sort.Strings(paths)
	return paths, nil
}
