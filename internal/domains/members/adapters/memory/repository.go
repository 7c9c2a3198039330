package memory

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/Apurer/food-order-api/internal/domains/members/domain"
	"github.com/Apurer/food-order-api/internal/domains/members/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory member store keyed by id with an email index.
type Repository struct {
	mu      sync.RWMutex
	members map[int64]*domain.Member
	byEmail map[string]int64
	nextID  int64
}

func NewRepository() *Repository {
	return &Repository{members: map[int64]*domain.Member{}, byEmail: map[string]int64{}}
}

func (r *Repository) Save(_ context.Context, member *domain.Member) (*domain.Member, error) {
	if member == nil {
		return nil, errors.New("member is nil")
	}
	clone := *member
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	key := emailKey(clone.Email)
	if existing, ok := r.byEmail[key]; ok && existing != clone.ID {
		if clone.ID != 0 {
			return nil, errors.New("email already registered")
		}
		clone.ID = existing
	}
	if clone.ID == 0 {
		r.nextID++
		clone.ID = r.nextID
	} else if clone.ID > r.nextID {
		r.nextID = clone.ID
	}
	if prev, ok := r.members[clone.ID]; ok {
		delete(r.byEmail, emailKey(prev.Email))
	}
	r.members[clone.ID] = &clone
	r.byEmail[key] = clone.ID
	out := clone
	return &out, nil
}

func (r *Repository) GetByID(_ context.Context, id int64) (*domain.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	member, ok := r.members[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *member
	return &clone, nil
}

func (r *Repository) GetByEmail(_ context.Context, email string) (*domain.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byEmail[emailKey(email)]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *r.members[id]
	return &clone, nil
}

func emailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
