package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/food-order-api/internal/domains/orders/domain"
	"github.com/Apurer/food-order-api/internal/domains/orders/ports"
	platformpostgres "github.com/Apurer/food-order-api/internal/platform/postgres"
	"github.com/Apurer/food-order-api/internal/shared/pagination"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists orders and their lines in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle and migrations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type orderRecord struct {
	ID         int64             `gorm:"primaryKey;column:id"`
	MemberID   int64             `gorm:"column:member_id"`
	StoreID    int64             `gorm:"column:store_id"`
	TotalPrice int64             `gorm:"column:total_price"`
	Status     string            `gorm:"column:status"`
	OrderedAt  time.Time         `gorm:"column:ordered_at"`
	CreatedAt  time.Time         `gorm:"column:created_at"`
	UpdatedAt  time.Time         `gorm:"column:updated_at"`
	Lines      []orderMenuRecord `gorm:"foreignKey:OrderID"`
}

func (orderRecord) TableName() string { return "orders" }

// orderMenuRecord stores one line; option snapshots live in parallel arrays.
type orderMenuRecord struct {
	ID           int64          `gorm:"primaryKey;column:id"`
	OrderID      int64          `gorm:"column:order_id"`
	MenuID       int64          `gorm:"column:menu_id"`
	MenuName     string         `gorm:"column:menu_name"`
	MenuPrice    int64          `gorm:"column:menu_price"`
	Quantity     int            `gorm:"column:quantity"`
	OptionIDs    pq.Int64Array  `gorm:"column:option_ids;type:bigint[]"`
	OptionNames  pq.StringArray `gorm:"column:option_names;type:text[]"`
	OptionPrices pq.Int64Array  `gorm:"column:option_prices;type:bigint[]"`
}

func (orderMenuRecord) TableName() string { return "order_menus" }

// Save inserts a new order with its lines, or writes the status of an existing one.
func (r *Repository) Save(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if order == nil {
		return nil, errors.New("order is nil")
	}
	db := platformpostgres.Conn(ctx, r.db)
	if order.ID == 0 {
		record := toRecord(order)
		if err := db.Create(&record).Error; err != nil {
			return nil, err
		}
		return record.toDomain(), nil
	}
	result := db.Model(&orderRecord{}).
		Where("id = ?", order.ID).
		Updates(map[string]any{"status": string(order.Status), "updated_at": gorm.Expr("NOW()")})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ports.ErrNotFound
	}
	return r.GetByID(ctx, order.ID)
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	return r.get(platformpostgres.Conn(ctx, r.db), id)
}

// GetByIDForUpdate issues SELECT ... FOR UPDATE; it only locks inside a transaction.
func (r *Repository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	return r.get(platformpostgres.Conn(ctx, r.db).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *Repository) ListByStore(ctx context.Context, storeID int64, page pagination.Request) (pagination.Page[*domain.Order], error) {
	if err := r.ensureDB(); err != nil {
		return pagination.Page[*domain.Order]{}, err
	}
	page = page.Normalize()
	scope := platformpostgres.Conn(ctx, r.db).Model(&orderRecord{}).Where("store_id = ?", storeID)
	var total int64
	if err := scope.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return pagination.Page[*domain.Order]{}, err
	}
	var records []orderRecord
	if err := scope.Session(&gorm.Session{}).
		Preload("Lines", orderLines).
		Order("ordered_at DESC, id DESC").
		Offset(page.Offset()).
		Limit(page.Size).
		Find(&records).Error; err != nil {
		return pagination.Page[*domain.Order]{}, err
	}
	orders := make([]*domain.Order, 0, len(records))
	for i := range records {
		orders = append(orders, records[i].toDomain())
	}
	return pagination.NewPage(orders, page, total), nil
}

func (r *Repository) CountByStoreAndStatus(ctx context.Context, storeID int64, status domain.Status) (int64, error) {
	if err := r.ensureDB(); err != nil {
		return 0, err
	}
	if !domain.IsValidStatus(status) {
		return 0, fmt.Errorf("unknown order status %q", status)
	}
	var count int64
	err := platformpostgres.Conn(ctx, r.db).
		Model(&orderRecord{}).
		Where("store_id = ? AND status = ?", storeID, string(status)).
		Count(&count).Error
	return count, err
}

func (r *Repository) get(db *gorm.DB, id int64) (*domain.Order, error) {
	var record orderRecord
	if err := db.Preload("Lines", orderLines).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres order repository not configured")
	}
	return nil
}

func orderLines(db *gorm.DB) *gorm.DB {
	return db.Order("order_menus.id ASC")
}

func toRecord(order *domain.Order) orderRecord {
	record := orderRecord{
		ID:         order.ID,
		MemberID:   order.MemberID,
		StoreID:    order.StoreID,
		TotalPrice: order.TotalPrice,
		Status:     string(order.Status),
		OrderedAt:  order.OrderedAt,
		Lines:      make([]orderMenuRecord, 0, len(order.Lines)),
	}
	for _, line := range order.Lines {
		lr := orderMenuRecord{
			ID:           line.ID,
			MenuID:       line.MenuID,
			MenuName:     line.MenuName,
			MenuPrice:    line.MenuPrice,
			Quantity:     line.Quantity,
			OptionIDs:    make(pq.Int64Array, 0, len(line.Options)),
			OptionNames:  make(pq.StringArray, 0, len(line.Options)),
			OptionPrices: make(pq.Int64Array, 0, len(line.Options)),
		}
		for _, option := range line.Options {
			lr.OptionIDs = append(lr.OptionIDs, option.OptionID)
			lr.OptionNames = append(lr.OptionNames, option.Name)
			lr.OptionPrices = append(lr.OptionPrices, option.Price)
		}
		record.Lines = append(record.Lines, lr)
	}
	return record
}

func (r orderRecord) toDomain() *domain.Order {
	order := &domain.Order{
		ID:         r.ID,
		MemberID:   r.MemberID,
		StoreID:    r.StoreID,
		TotalPrice: r.TotalPrice,
		Status:     domain.Status(r.Status),
		OrderedAt:  r.OrderedAt,
		Lines:      make([]domain.Line, 0, len(r.Lines)),
	}
	for _, lr := range r.Lines {
		line := domain.Line{
			ID:        lr.ID,
			MenuID:    lr.MenuID,
			MenuName:  lr.MenuName,
			MenuPrice: lr.MenuPrice,
			Quantity:  lr.Quantity,
		}
		for i, optionID := range lr.OptionIDs {
			option := domain.LineOption{OptionID: optionID}
			if i < len(lr.OptionNames) {
				option.Name = lr.OptionNames[i]
			}
			if i < len(lr.OptionPrices) {
				option.Price = lr.OptionPrices[i]
			}
			line.Options = append(line.Options, option)
		}
		order.Lines = append(order.Lines, line)
	}
	return order
}
