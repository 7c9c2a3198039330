package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/food-order-api/internal/domains/members/domain"
	"github.com/Apurer/food-order-api/internal/domains/members/ports"
	platformpostgres "github.com/Apurer/food-order-api/internal/platform/postgres"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists members in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle and migrations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type memberRecord struct {
	ID        int64     `gorm:"primaryKey;column:id"`
	Email     string    `gorm:"column:email;uniqueIndex;size:320"`
	Name      string    `gorm:"column:name"`
	Role      string    `gorm:"column:role;type:varchar(16)"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (memberRecord) TableName() string { return "members" }

// Save inserts or updates a member keyed by email.
func (r *Repository) Save(ctx context.Context, member *domain.Member) (*domain.Member, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if member == nil {
		return nil, errors.New("member is nil")
	}
	if err := member.Validate(); err != nil {
		return nil, err
	}
	record := toRecord(member)
	if err := platformpostgres.Conn(ctx, r.db).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "email"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "role", "updated_at"}),
		}).
		Create(&record).Error; err != nil {
		return nil, err
	}
	return r.GetByEmail(ctx, record.Email)
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Member, error) {
	return r.first(ctx, "id = ?", id)
}

// GetByEmail matches the identity case-insensitively.
func (r *Repository) GetByEmail(ctx context.Context, email string) (*domain.Member, error) {
	return r.first(ctx, "LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email)))
}

func (r *Repository) first(ctx context.Context, query string, arg any) (*domain.Member, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record memberRecord
	if err := platformpostgres.Conn(ctx, r.db).First(&record, query, arg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres member repository not configured")
	}
	return nil
}

func toRecord(member *domain.Member) memberRecord {
	return memberRecord{
		ID:    member.ID,
		Email: strings.TrimSpace(member.Email),
		Name:  member.Name,
		Role:  string(member.Role),
	}
}

func (r memberRecord) toDomain() *domain.Member {
	return &domain.Member{
		ID:    r.ID,
		Email: r.Email,
		Name:  r.Name,
		Role:  domain.Role(r.Role),
	}
}
