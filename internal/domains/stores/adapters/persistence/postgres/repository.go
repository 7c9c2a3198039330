package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/food-order-api/internal/domains/stores/domain"
	"github.com/Apurer/food-order-api/internal/domains/stores/ports"
	platformpostgres "github.com/Apurer/food-order-api/internal/platform/postgres"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists stores in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type storeRecord struct {
	ID        int64     `gorm:"primaryKey;column:id"`
	Name      string    `gorm:"column:name"`
	OwnerID   int64     `gorm:"column:owner_id;index"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (storeRecord) TableName() string { return "stores" }

// Save inserts a new store or updates an existing one.
func (r *Repository) Save(ctx context.Context, store *domain.Store) (*domain.Store, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if store == nil {
		return nil, errors.New("store is nil")
	}
	if err := store.Validate(); err != nil {
		return nil, err
	}
	record := storeRecord{ID: store.ID, Name: store.Name, OwnerID: store.OwnerID}
	if err := platformpostgres.Conn(ctx, r.db).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"name":       record.Name,
				"owner_id":   record.OwnerID,
				"updated_at": gorm.Expr("NOW()"),
			}),
		}).Create(&record).Error; err != nil {
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Store, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record storeRecord
	if err := platformpostgres.Conn(ctx, r.db).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres store repository not configured")
	}
	return nil
}

func (r storeRecord) toDomain() *domain.Store {
	return &domain.Store{ID: r.ID, Name: r.Name, OwnerID: r.OwnerID}
}
