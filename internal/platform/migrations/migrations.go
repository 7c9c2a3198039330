package migrations

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Run applies the schema for the bounded contexts. Repositories do not migrate on their own.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&memberRecord{},
		&storeRecord{},
		&menuRecord{},
		&menuOptionRecord{},
		&orderRecord{},
		&orderMenuRecord{},
	)
}

// Member schema mirrors the members Postgres adapter.
type memberRecord struct {
	ID        int64     `gorm:"primaryKey;column:id"`
	Email     string    `gorm:"column:email;uniqueIndex;size:320"`
	Name      string    `gorm:"column:name"`
	Role      string    `gorm:"column:role;type:varchar(16)"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (memberRecord) TableName() string { return "members" }

// Store schema mirrors the stores Postgres adapter.
type storeRecord struct {
	ID        int64     `gorm:"primaryKey;column:id"`
	Name      string    `gorm:"column:name"`
	OwnerID   int64     `gorm:"column:owner_id;index"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (storeRecord) TableName() string { return "stores" }

// Menu schema mirrors the menus Postgres adapter.
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

type menuOptionRecord struct {
	ID        int64     `gorm:"primaryKey;column:id"`
	MenuID    int64     `gorm:"column:menu_id;index"`
	Name      string    `gorm:"column:name"`
	Price     int64     `gorm:"column:price"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (menuOptionRecord) TableName() string { return "menu_options" }

// Order schema mirrors the orders Postgres adapter.
type orderRecord struct {
	ID         int64     `gorm:"primaryKey;column:id"`
	MemberID   int64     `gorm:"column:member_id;index"`
	StoreID    int64     `gorm:"column:store_id;index:idx_orders_store_status"`
	TotalPrice int64     `gorm:"column:total_price"`
	Status     string    `gorm:"column:status;type:varchar(16);index:idx_orders_store_status"`
	OrderedAt  time.Time `gorm:"column:ordered_at;index"`
	CreatedAt  time.Time `gorm:"column:created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (orderRecord) TableName() string { return "orders" }

// Order line schema; option snapshots are stored as parallel arrays.
type orderMenuRecord struct {
	ID           int64          `gorm:"primaryKey;column:id"`
	OrderID      int64          `gorm:"column:order_id;index"`
	MenuID       int64          `gorm:"column:menu_id;index"`
	MenuName     string         `gorm:"column:menu_name"`
	MenuPrice    int64          `gorm:"column:menu_price"`
	Quantity     int            `gorm:"column:quantity"`
	OptionIDs    pq.Int64Array  `gorm:"column:option_ids;type:bigint[]"`
	OptionNames  pq.StringArray `gorm:"column:option_names;type:text[]"`
	OptionPrices pq.Int64Array  `gorm:"column:option_prices;type:bigint[]"`
}

func (orderMenuRecord) TableName() string { return "order_menus" }
