//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Apurer/food-order-api/internal/domains/menus/domain"
	"github.com/Apurer/food-order-api/internal/domains/menus/ports"
	"github.com/Apurer/food-order-api/internal/platform/migrations"
	"github.com/Apurer/food-order-api/internal/shared/pagination"
)

func setupMenuPostgresContainer(t *testing.T) (*gorm.DB, func()) {
	ctx := context.Background()

	pgContainer, err := tcpostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcpostgres.WithDatabase("food_order_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, migrations.Run(db))

	cleanup := func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		pgContainer.Terminate(ctx)
	}
	return db, cleanup
}

func TestRepository_SaveUpdateAndSoftDelete(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	db, cleanup := setupMenuPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	menu, err := domain.NewMenu(1, "Bibimbap", "rice bowl", 9000, "/images/no_image.jpg")
	require.NoError(t, err)
	saved, err := repo.Save(ctx, menu)
	require.NoError(t, err)
	require.NotZero(t, saved.ID)

	require.NoError(t, saved.Update("Dolsot Bibimbap", "stone pot", 11000))
	saved.MarkDeleted()
	_, err = repo.Save(ctx, saved)
	require.NoError(t, err)

	fetched, err := repo.GetByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dolsot Bibimbap", fetched.Name)
	assert.Equal(t, int64(11000), fetched.Price)
	assert.True(t, fetched.Deleted)

	_, err = repo.GetByID(ctx, saved.ID+100)
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestRepository_ListActiveByStore(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	db, cleanup := setupMenuPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	for i, name := range []string{"A", "B", "C"} {
		menu, err := domain.NewMenu(1, name, "", int64(1000*(i+1)), "/images/no_image.jpg")
		require.NoError(t, err)
		if name == "B" {
			menu.MarkDeleted()
		}
		_, err = repo.Save(ctx, menu)
		require.NoError(t, err)
	}
	other, err := domain.NewMenu(2, "Other", "", 1000, "/images/other.png")
	require.NoError(t, err)
	_, err = repo.Save(ctx, other)
	require.NoError(t, err)

	page, err := repo.ListActiveByStore(ctx, 1, pagination.Request{Page: 0, Size: 10})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, int64(2), page.TotalItems)
	assert.Equal(t, "A", page.Items[0].Name)
	assert.Equal(t, "C", page.Items[1].Name)

	paths, err := repo.ImagePaths(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"/images/no_image.jpg", "/images/other.png"}, paths)
}

func TestOptionRepository_SaveAndList(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	db, cleanup := setupMenuPostgresContainer(t)
	defer cleanup()

	repo := NewOptionRepository(db)
	ctx := context.Background()

	option, err := domain.NewOption(5, "Extra egg", 1000)
	require.NoError(t, err)
	saved, err := repo.Save(ctx, option)
	require.NoError(t, err)

	fetched, err := repo.GetByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "Extra egg", fetched.Name)

	list, err := repo.ListByMenu(ctx, 5)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = repo.GetByID(ctx, saved.ID+1)
	assert.ErrorIs(t, err, ports.ErrOptionNotFound)
}
