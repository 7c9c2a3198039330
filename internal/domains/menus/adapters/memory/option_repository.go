package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/Apurer/food-order-api/internal/domains/menus/domain"
	"github.com/Apurer/food-order-api/internal/domains/menus/ports"
)

var _ ports.OptionRepository = (*OptionRepository)(nil)

type OptionRepository struct {
	mu      sync.RWMutex
	options map[int64]*domain.Option
	nextID  int64
}

func NewOptionRepository() *OptionRepository {
	return &OptionRepository{options: map[int64]*domain.Option{}}
}

func (r *OptionRepository) Save(_ context.Context, option *domain.Option) (*domain.Option, error) {
	if option == nil {
		return nil, errors.New("option is nil")
	}
	clone := *option
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
	r.options[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *OptionRepository) GetByID(_ context.Context, id int64) (*domain.Option, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	option, ok := r.options[id]
	if !ok {
		return nil, ports.ErrOptionNotFound
	}
	clone := *option
	return &clone, nil
}

func (r *OptionRepository) ListByMenu(_ context.Context, menuID int64) ([]*domain.Option, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Option, 0)
	for _, option := range r.options {
		if option.MenuID == menuID {
			clone := *option
			list = append(list, &clone)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}
