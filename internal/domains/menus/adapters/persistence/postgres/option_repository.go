package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Apurer/food-order-api/internal/domains/menus/domain"
	"github.com/Apurer/food-order-api/internal/domains/menus/ports"
	platformpostgres "github.com/Apurer/food-order-api/internal/platform/postgres"
)

var _ ports.OptionRepository = (*OptionRepository)(nil)

// OptionRepository persists menu options in PostgreSQL using GORM.
type OptionRepository struct {
	db *gorm.DB
}

func NewOptionRepository(db *gorm.DB) *OptionRepository {
	return &OptionRepository{db: db}
}

type menuOptionRecord struct {
	ID        int64     `gorm:"primaryKey;column:id"`
	MenuID    int64     `gorm:"column:menu_id;index"`
	Name      string    `gorm:"column:name"`
	Price     int64     `gorm:"column:price"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (menuOptionRecord) TableName() string { return "menu_options" }

func (r *OptionRepository) Save(ctx context.Context, option *domain.Option) (*domain.Option, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if option == nil {
		return nil, errors.New("option is nil")
	}
	if err := option.Validate(); err != nil {
		return nil, err
	}
	record := menuOptionRecord{ID: option.ID, MenuID: option.MenuID, Name: option.Name, Price: option.Price}
	if err := platformpostgres.Conn(ctx, r.db).Save(&record).Error; err != nil {
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *OptionRepository) GetByID(ctx context.Context, id int64) (*domain.Option, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record menuOptionRecord
	if err := platformpostgres.Conn(ctx, r.db).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrOptionNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *OptionRepository) ListByMenu(ctx context.Context, menuID int64) ([]*domain.Option, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []menuOptionRecord
	if err := platformpostgres.Conn(ctx, r.db).Where("menu_id = ?", menuID).Order("id ASC").Find(&records).Error; err != nil {
		return nil, err
	}
	options := make([]*domain.Option, 0, len(records))
	for i := range records {
		options = append(options, records[i].toDomain())
	}
	return options, nil
}

func (r *OptionRepository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres menu option repository not configured")
	}
	return nil
}

func (r menuOptionRecord) toDomain() *domain.Option {
	return &domain.Option{ID: r.ID, MenuID: r.MenuID, Name: r.Name, Price: r.Price}
}
