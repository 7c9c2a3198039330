package bootstrap

import (
	"context"
	"errors"

	memberdomain "github.com/Apurer/food-order-api/internal/domains/members/domain"
	memberports "github.com/Apurer/food-order-api/internal/domains/members/ports"
	menudomain "github.com/Apurer/food-order-api/internal/domains/menus/domain"
	storedomain "github.com/Apurer/food-order-api/internal/domains/stores/domain"
)

const (
	DemoOwnerEmail    = "owner@example.com"
	DemoCustomerEmail = "customer@example.com"
)

type demoMenu struct {
	name        string
	description string
	price       int64
	options     []demoOption
}

type demoOption struct {
	name  string
	price int64
}

var demoMenus = []demoMenu{
	{name: "Bibimbap", description: "rice bowl with vegetables", price: 10000, options: []demoOption{{"Extra egg", 1000}, {"Large rice", 500}}},
	{name: "Bulgogi", description: "marinated beef", price: 15000, options: []demoOption{{"Extra meat", 4000}}},
	{name: "Kimchi stew", description: "", price: 9000},
}

// SeedDemoData creates a demo owner, a customer and one store with menus. It is a no-op
// when the demo owner already exists.
func SeedDemoData(ctx context.Context, deps *Dependencies) error {
	_, err := deps.Members.GetByEmail(ctx, DemoOwnerEmail)
	switch {
	case err == nil:
		deps.logger.Info("demo data already present")
		return nil
	case !errors.Is(err, memberports.ErrNotFound):
		return err
	}

	return deps.Tx.WithinTx(ctx, func(ctx context.Context) error {
		owner, err := saveMember(ctx, deps, DemoOwnerEmail, "Demo Owner", memberdomain.RoleOwner)
		if err != nil {
			return err
		}
		if _, err := saveMember(ctx, deps, DemoCustomerEmail, "Demo Customer", memberdomain.RoleCustomer); err != nil {
			return err
		}
		store, err := storedomain.NewStore("Demo Kitchen", owner.ID)
		if err != nil {
			return err
		}
		if store, err = deps.Stores.Save(ctx, store); err != nil {
			return err
		}
		for _, item := range demoMenus {
			menu, err := menudomain.NewMenu(store.ID, item.name, item.description, item.price, deps.Images.DefaultPath())
			if err != nil {
				return err
			}
			if menu, err = deps.Menus.Save(ctx, menu); err != nil {
				return err
			}
			for _, o := range item.options {
				option, err := menudomain.NewOption(menu.ID, o.name, o.price)
				if err != nil {
					return err
				}
				if _, err := deps.Options.Save(ctx, option); err != nil {
					return err
				}
			}
		}
		deps.logger.Info("demo data seeded")
		return nil
	})
}

func saveMember(ctx context.Context, deps *Dependencies, email, name string, role memberdomain.Role) (*memberdomain.Member, error) {
	member, err := memberdomain.NewMember(email, name, role)
	if err != nil {
		return nil, err
	}
	return deps.Members.Save(ctx, member)
}
