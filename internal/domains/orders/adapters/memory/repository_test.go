package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/food-order-api/internal/domains/orders/domain"
	"github.com/Apurer/food-order-api/internal/domains/orders/ports"
	"github.com/Apurer/food-order-api/internal/shared/pagination"
	"github.com/Apurer/food-order-api/internal/shared/txn"
)

func placeOrder(t *testing.T, repo *Repository, storeID int64, at time.Time) *domain.Order {
	t.Helper()
	line, err := domain.NewLine(1, "M1", 1000, 1, nil)
	require.NoError(t, err)
	order, err := domain.NewOrder(1, storeID, []domain.Line{line}, at)
	require.NoError(t, err)
	saved, err := repo.Save(context.Background(), order)
	require.NoError(t, err)
	return saved
}

func TestRepository_SaveAssignsIDsAndOnlyUpdatesStatus(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()
	saved := placeOrder(t, repo, 1, time.Now())
	require.NotZero(t, saved.ID)
	require.NotZero(t, saved.Lines[0].ID)

	saved.Status = domain.StatusConfirm
	saved.TotalPrice = 1
	_, err := repo.Save(ctx, saved)
	require.NoError(t, err)

	fetched, err := repo.GetByIDForUpdate(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirm, fetched.Status)
	assert.Equal(t, int64(1000), fetched.TotalPrice)

	_, err = repo.GetByID(ctx, 999)
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestRepository_ListNewestFirstAndCount(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	old := placeOrder(t, repo, 1, base)
	recent := placeOrder(t, repo, 1, base.Add(time.Hour))
	placeOrder(t, repo, 2, base)

	page, err := repo.ListByStore(ctx, 1, pagination.Request{Size: 10})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, recent.ID, page.Items[0].ID)
	assert.Equal(t, old.ID, page.Items[1].ID)

	require.NoError(t, old.Confirm())
	_, err = repo.Save(ctx, old)
	require.NoError(t, err)
	count, err := repo.CountByStoreAndStatus(ctx, 1, domain.StatusConfirm)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	_, err = repo.CountByStoreAndStatus(ctx, 1, domain.Status("SHIPPED"))
	assert.Error(t, err)
}

func TestRepository_GetByIDForUpdateHoldsLockUntilUnitEnds(t *testing.T) {
	repo := NewRepository()
	saved := placeOrder(t, repo, 1, time.Now())

	err := txn.Inline{}.WithinTx(context.Background(), func(ctx context.Context) error {
		_, err := repo.GetByIDForUpdate(ctx, saved.ID)
		require.NoError(t, err)

		waitCtx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		err = txn.Inline{}.WithinTx(waitCtx, func(ctx context.Context) error {
			_, err := repo.GetByIDForUpdate(ctx, saved.ID)
			return err
		})
		assert.ErrorIs(t, err, context.DeadlineExceeded)

		_, err = repo.GetByID(ctx, saved.ID)
		return err
	})
	require.NoError(t, err)

	err = txn.Inline{}.WithinTx(context.Background(), func(ctx context.Context) error {
		_, err := repo.GetByIDForUpdate(ctx, saved.ID)
		return err
	})
	require.NoError(t, err)

	_, err = repo.GetByIDForUpdate(context.Background(), saved.ID)
	require.NoError(t, err)
	_, err = repo.GetByIDForUpdate(context.Background(), saved.ID)
	require.NoError(t, err)
}
