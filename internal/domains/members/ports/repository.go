package ports

import (
	"context"
	"errors"

	"github.com/Apurer/food-order-api/internal/domains/members/domain"
)

var ErrNotFound = errors.New("member not found")

// Repository resolves members by id or by their email identity.
type Repository interface {
	Save(ctx context.Context, member *domain.Member) (*domain.Member, error)
	GetByID(ctx context.Context, id int64) (*domain.Member, error)
	GetByEmail(ctx context.Context, email string) (*domain.Member, error)
}
