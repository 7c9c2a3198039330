package application

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	memberdomain "github.com/Apurer/food-order-api/internal/domains/members/domain"
	memberports "github.com/Apurer/food-order-api/internal/domains/members/ports"
	menudomain "github.com/Apurer/food-order-api/internal/domains/menus/domain"
	menuports "github.com/Apurer/food-order-api/internal/domains/menus/ports"
	types "github.com/Apurer/food-order-api/internal/domains/orders/application/types"
	"github.com/Apurer/food-order-api/internal/domains/orders/domain"
	"github.com/Apurer/food-order-api/internal/domains/orders/ports"
	storedomain "github.com/Apurer/food-order-api/internal/domains/stores/domain"
	storeports "github.com/Apurer/food-order-api/internal/domains/stores/ports"
	"github.com/Apurer/food-order-api/internal/shared/failure"
	"github.com/Apurer/food-order-api/internal/shared/identity"
	"github.com/Apurer/food-order-api/internal/shared/txn"
)

// Repositories groups the gateways the order use cases read and write.
type Repositories struct {
	Members memberports.Repository
	Stores  storeports.Repository
	Menus   menuports.Repository
	Options menuports.OptionRepository
	Orders  ports.Repository
}

// Service orchestrates the orders bounded context use cases.
type Service struct {
	members   memberports.Repository
	stores    storeports.Repository
	menus     menuports.Repository
	options   menuports.OptionRepository
	orders    ports.Repository
	tx        txn.Manager
	publisher ports.EventPublisher
	logger    *slog.Logger
	now       func() time.Time
}

type Option func(*Service)

func WithTransactor(tx txn.Manager) Option {
	return func(s *Service) {
		s.tx = txn.OrInline(tx)
	}
}

// WithEventPublisher ships order events once their transaction has committed.
func WithEventPublisher(publisher ports.EventPublisher) Option {
	return func(s *Service) {
		if publisher != nil {
			s.publisher = publisher
		}
	}
}

// WithLogger receives event publishing failures, which never fail the operation.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func NewService(repos Repositories, opts ...Option) *Service {
	s := &Service{
		members:   repos.Members,
		stores:    repos.Stores,
		menus:     repos.Menus,
		options:   repos.Options,
		orders:    repos.Orders,
		tx:        txn.Inline{},
		publisher: ports.NopPublisher{},
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:       time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// CreateOrder prices the cart from stored menus and options and places the order only
// when the computed total equals the claimed one.
func (s *Service) CreateOrder(ctx context.Context, principal identity.Principal, input types.CreateOrderInput) (*types.OrderDetail, error) {
	if len(input.Items) == 0 {
		return nil, failure.InvalidInput.Wrap(domain.ErrEmptyOrder)
	}
	var (
		detail *types.OrderDetail
		events []domain.Event
	)
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		member, err := s.loadMember(ctx, principal)
		if err != nil {
			return err
		}
		store, err := s.loadStore(ctx, input.StoreID)
		if err != nil {
			return err
		}
		lines := make([]domain.Line, 0, len(input.Items))
		for _, item := range input.Items {
			line, err := s.priceLine(ctx, store, item)
			if err != nil {
				return err
			}
			lines = append(lines, line)
		}
		computed, err := domain.ComputeTotal(lines)
		if err != nil {
			return mapError(err)
		}
		if computed != input.TotalPrice {
			return failure.InvalidTotalPrice.With("claimed total %d does not match computed total %d", input.TotalPrice, computed)
		}
		order, err := domain.NewOrder(member.ID, store.ID, lines, s.now().UTC())
		if err != nil {
			return mapError(err)
		}
		saved, err := s.orders.Save(ctx, order)
		if err != nil {
			return mapError(err)
		}
		order.ID = saved.ID
		events = order.Events()
		detail = &types.OrderDetail{Order: saved, StoreName: store.Name}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events)
	return detail, nil
}

// CancelOrder locks the order and moves it to CANCELED after the ownership checks.
func (s *Service) CancelOrder(ctx context.Context, principal identity.Principal, id types.OrderIdentifier) (*types.OrderDetail, error) {
	var (
		detail *types.OrderDetail
		events []domain.Event
	)
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		order, store, err := s.loadOwnedOrder(ctx, principal, id, s.orders.GetByIDForUpdate)
		if err != nil {
			return err
		}
		if err := order.Cancel(s.now().UTC()); err != nil {
			if errors.Is(err, domain.ErrAlreadyCanceled) {
				return failure.OrderAlreadyCanceled.With("order %d is already canceled", order.ID)
			}
			return mapError(err)
		}
		saved, err := s.orders.Save(ctx, order)
		if err != nil {
			return mapError(err)
		}
		events = order.Events()
		detail = &types.OrderDetail{Order: saved, StoreName: store.Name}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events)
	return detail, nil
}

func (s *Service) GetOrderDetail(ctx context.Context, principal identity.Principal, id types.OrderIdentifier) (*types.OrderDetail, error) {
	order, store, err := s.loadOwnedOrder(ctx, principal, id, s.orders.GetByID)
	if err != nil {
		return nil, err
	}
	return &types.OrderDetail{Order: order, StoreName: store.Name}, nil
}

// GetOrders pages a store's orders for its owner.
func (s *Service) GetOrders(ctx context.Context, principal identity.Principal, input types.ListOrdersInput) (*types.OrderPage, error) {
	store, err := s.loadStore(ctx, input.StoreID)
	if err != nil {
		return nil, err
	}
	member, err := s.loadMember(ctx, principal)
	if err != nil {
		return nil, err
	}
	if !store.IsOwnedBy(member.ID) {
		return nil, failure.AccessDenied.With("not the owner of %s", store.Name)
	}
	page, err := s.orders.ListByStore(ctx, store.ID, input.Page.Normalize())
	if err != nil {
		return nil, mapError(err)
	}
	return &page, nil
}

// GetCount counts the confirmed orders of a store.
func (s *Service) GetCount(ctx context.Context, storeID int64) (*types.ConfirmedCount, error) {
	store, err := s.loadStore(ctx, storeID)
	if err != nil {
		return nil, err
	}
	count, err := s.orders.CountByStoreAndStatus(ctx, store.ID, domain.StatusConfirm)
	if err != nil {
		return nil, mapError(err)
	}
	return &types.ConfirmedCount{StoreID: store.ID, StoreName: store.Name, Count: count}, nil
}

// priceLine resolves the menu and options of one cart item from storage.
func (s *Service) priceLine(ctx context.Context, store *storedomain.Store, item types.OrderItemInput) (domain.Line, error) {
	if item.Quantity <= 0 || item.Quantity > domain.MaxQuantity {
		return domain.Line{}, failure.InvalidInput.With("quantity of menu %d must be between 1 and %d", item.MenuID, domain.MaxQuantity)
	}
	menu, err := s.loadMenu(ctx, item.MenuID)
	if err != nil {
		return domain.Line{}, err
	}
	if !menu.BelongsTo(store.ID) {
		return domain.Line{}, failure.StoreMenuMismatch.With("menu %d is not sold by store %d", menu.ID, store.ID)
	}
	options := make([]domain.LineOption, 0, len(item.OptionIDs))
	for _, optionID := range item.OptionIDs {
		option, err := s.options.GetByID(ctx, optionID)
		if errors.Is(err, menuports.ErrOptionNotFound) {
			return domain.Line{}, failure.MenuOptionNotFound.With("menu option %d not found", optionID)
		}
		if err != nil {
			return domain.Line{}, err
		}
		if !option.BelongsTo(menu.ID) {
			return domain.Line{}, failure.MenuOptionNotFound.With("menu option %d not found on menu %d", optionID, menu.ID)
		}
		options = append(options, domain.LineOption{OptionID: option.ID, Name: option.Name, Price: option.Price})
	}
	line, err := domain.NewLine(menu.ID, menu.Name, menu.Price, item.Quantity, options)
	if err != nil {
		return domain.Line{}, mapError(err)
	}
	return line, nil
}

type orderLoader func(ctx context.Context, id int64) (*domain.Order, error)

// loadOwnedOrder resolves member, order and store, then rejects orders of another member or store.
func (s *Service) loadOwnedOrder(ctx context.Context, principal identity.Principal, id types.OrderIdentifier, load orderLoader) (*domain.Order, *storedomain.Store, error) {
	member, err := s.loadMember(ctx, principal)
	if err != nil {
		return nil, nil, err
	}
	order, err := load(ctx, id.OrderID)
	if errors.Is(err, ports.ErrNotFound) {
		return nil, nil, failure.OrderNotFound.With("order %d not found", id.OrderID)
	}
	if err != nil {
		return nil, nil, err
	}
	store, err := s.loadStore(ctx, id.StoreID)
	if err != nil {
		return nil, nil, err
	}
	if !order.PlacedBy(member.ID) {
		return nil, nil, failure.MemberOrderMismatch.With("order %d was not placed by %s", order.ID, member.Email)
	}
	if !order.PlacedAt(store.ID) {
		return nil, nil, failure.StoreOrderMismatch.With("order %d was not placed at store %d", order.ID, store.ID)
	}
	return order, store, nil
}

func (s *Service) loadMember(ctx context.Context, principal identity.Principal) (*memberdomain.Member, error) {
	if principal.IsAnonymous() {
		return nil, failure.AccessDenied.Wrap(identity.ErrAnonymous)
	}
	member, err := s.members.GetByEmail(ctx, principal.Email)
	if errors.Is(err, memberports.ErrNotFound) {
		return nil, failure.MemberNotFound.With("member %s not found", principal.Email)
	}
	if err != nil {
		return nil, err
	}
	return member, nil
}

func (s *Service) loadStore(ctx context.Context, id int64) (*storedomain.Store, error) {
	store, err := s.stores.GetByID(ctx, id)
	if errors.Is(err, storeports.ErrNotFound) {
		return nil, failure.StoreNotFound.With("store %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	return store, nil
}

// loadMenu treats soft-deleted menus as absent for new orders.
func (s *Service) loadMenu(ctx context.Context, id int64) (*menudomain.Menu, error) {
	menu, err := s.menus.GetByID(ctx, id)
	if errors.Is(err, menuports.ErrNotFound) || (err == nil && !menu.IsAvailable()) {
		return nil, failure.MenuNotFound.With("menu %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	return menu, nil
}

func (s *Service) publish(ctx context.Context, events []domain.Event) {
	if len(events) == 0 {
		return
	}
	if err := s.publisher.Publish(ctx, events...); err != nil {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "failed to publish order events",
			slog.Int("events", len(events)), slog.String("error", err.Error()))
	}
}

var _ ports.Service = (*Service)(nil)
