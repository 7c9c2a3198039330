package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/food-order-api/internal/domains/menus/domain"
	"github.com/Apurer/food-order-api/internal/domains/menus/ports"
	platformpostgres "github.com/Apurer/food-order-api/internal/platform/postgres"
	"github.com/Apurer/food-order-api/internal/shared/pagination"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists menus in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle and migrations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// menuRecord maps the menu aggregate to a relational table.
type menuRecord struct {
	ID          int64     `gorm:"primaryKey;column:id"`
	StoreID     int64     `gorm:"column:store_id;index:idx_menus_store_deleted"`
	Name        string    `gorm:"column:name"`
	Description string    `gorm:"column:description"`
	Price       int64     `gorm:"column:price"`
	ImagePath   string    `gorm:"column:image_path"`
	Deleted     bool      `gorm:"column:deleted;not null;default:false;index:idx_menus_store_deleted"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (menuRecord) TableName() string { return "menus" }

// Save inserts a new menu or updates an existing one in place.
func (r *Repository) Save(ctx context.Context, menu *domain.Menu) (*domain.Menu, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if menu == nil {
		return nil, errors.New("menu is nil")
	}
	record := toRecord(menu)
	if err := platformpostgres.Conn(ctx, r.db).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"name":        record.Name,
				"description": record.Description,
				"price":       record.Price,
				"image_path":  record.ImagePath,
				"deleted":     record.Deleted,
				"updated_at":  gorm.Expr("NOW()"),
			}),
		}).Create(&record).Error; err != nil {
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Menu, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record menuRecord
	if err := platformpostgres.Conn(ctx, r.db).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) ListActiveByStore(ctx context.Context, storeID int64, page pagination.Request) (pagination.Page[*domain.Menu], error) {
	if err := r.ensureDB(); err != nil {
		return pagination.Page[*domain.Menu]{}, err
	}
	page = page.Normalize()
	scope := platformpostgres.Conn(ctx, r.db).Model(&menuRecord{}).Where("store_id = ? AND deleted = ?", storeID, false)
	var total int64
	if err := scope.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return pagination.Page[*domain.Menu]{}, err
	}
	var records []menuRecord
	if err := scope.Session(&gorm.Session{}).
		Order("id ASC").
		Offset(page.Offset()).
		Limit(page.Size).
		Find(&records).Error; err != nil {
		return pagination.Page[*domain.Menu]{}, err
	}
	menus := make([]*domain.Menu, 0, len(records))
	for i := range records {
		menus = append(menus, records[i].toDomain())
	}
	return pagination.NewPage(menus, page, total), nil
}

func (r *Repository) ImagePaths(ctx context.Context) ([]string, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var paths []string
	if err := platformpostgres.Conn(ctx, r.db).
		Model(&menuRecord{}).
		Distinct().
		Order("image_path").
		Pluck("image_path", &paths).Error; err != nil {
		return nil, err
	}
	return paths, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres menu repository not configured")
	}
	return nil
}

func toRecord(menu *domain.Menu) menuRecord {
	return menuRecord{
		ID:          menu.ID,
		StoreID:     menu.StoreID,
		Name:        menu.Name,
		Description: menu.Description,
		Price:       menu.Price,
		ImagePath:   menu.ImagePath,
		Deleted:     menu.Deleted,
	}
}

func (r menuRecord) toDomain() *domain.Menu {
	return &domain.Menu{
		ID:          r.ID,
		StoreID:     r.StoreID,
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		ImagePath:   r.ImagePath,
		Deleted:     r.Deleted,
	}
}
