package bootstrap

import (
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	menutypes "github.com/Apurer/food-order-api/internal/domains/menus/application/types"
	ordertypes "github.com/Apurer/food-order-api/internal/domains/orders/application/types"
	orderports "github.com/Apurer/food-order-api/internal/domains/orders/ports"
	platformobservability "github.com/Apurer/food-order-api/internal/platform/observability"
	"github.com/Apurer/food-order-api/internal/shared/identity"
	"github.com/Apurer/food-order-api/internal/shared/pagination"
	"github.com/Apurer/food-order-api/internal/shared/txn"
)

func memoryConfig() Config {
	return Config{ImagePath: "/images", SeedDemoData: true}
}

func TestBuild_InMemoryWithDemoData(t *testing.T) {
	ctx := context.Background()
	deps, cleanup, err := Build(ctx, memoryConfig(), platformobservability.NewNop(), Options{Fs: afero.NewMemMapFs()})
	require.NoError(t, err)
	defer cleanup()

	assert.IsType(t, txn.Inline{}, deps.Tx)
	assert.IsType(t, orderports.NopPublisher{}, deps.Events)

	owner, err := deps.Members.GetByEmail(ctx, DemoOwnerEmail)
	require.NoError(t, err)
	menus, err := deps.MenuService().FindMenus(ctx, menutypes.FindMenusInput{StoreID: 1, Page: pagination.Request{Size: 10}})
	require.NoError(t, err)
	require.Len(t, menus.Items, len(demoMenus))

	customer := identity.Principal{Email: DemoCustomerEmail}
	detail, err := deps.OrderService().CreateOrder(ctx, customer, ordertypes.CreateOrderInput{
		StoreID:    1,
		TotalPrice: 20000,
		Items:      []ordertypes.OrderItemInput{{MenuID: menus.Items[0].ID, Quantity: 2}},
	})
	require.NoError(t, err)
	assert.Equal(t, "Demo Kitchen", detail.StoreName)

	page, err := deps.OrderService().GetOrders(ctx, identity.Principal{Email: owner.Email}, ordertypes.ListOrdersInput{StoreID: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.TotalItems)
}

func TestSeedDemoData_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	deps, cleanup, err := Build(ctx, memoryConfig(), platformobservability.NewNop(), Options{Fs: afero.NewMemMapFs()})
	require.NoError(t, err)
	defer cleanup()

	require.NoError(t, SeedDemoData(ctx, deps))

	_, err = deps.Stores.GetByID(ctx, 2)
	assert.Error(t, err)
}

func TestBuild_RejectsMissingImagePath(t *testing.T) {
	_, _, err := Build(context.Background(), Config{}, nil, Options{Fs: afero.NewMemMapFs()})
	assert.Error(t, err)
}

func TestBuild_RequirePostgres(t *testing.T) {
	_, _, err := Build(context.Background(), memoryConfig(), nil, Options{Fs: afero.NewMemMapFs(), RequirePostgres: true})
	assert.ErrorIs(t, err, ErrPostgresRequired)
}
