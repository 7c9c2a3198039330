// Package bootstrap assembles repositories, adapters and services from Config for the
// process entrypoints.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/spf13/afero"
	"gorm.io/gorm"

	membermemory "github.com/Apurer/food-order-api/internal/domains/members/adapters/memory"
	memberpostgres "github.com/Apurer/food-order-api/internal/domains/members/adapters/persistence/postgres"
	memberports "github.com/Apurer/food-order-api/internal/domains/members/ports"
	"github.com/Apurer/food-order-api/internal/domains/menus/adapters/imagestore"
	menumemory "github.com/Apurer/food-order-api/internal/domains/menus/adapters/memory"
	menuobs "github.com/Apurer/food-order-api/internal/domains/menus/adapters/observability"
	menupostgres "github.com/Apurer/food-order-api/internal/domains/menus/adapters/persistence/postgres"
	menuapp "github.com/Apurer/food-order-api/internal/domains/menus/application"
	menuports "github.com/Apurer/food-order-api/internal/domains/menus/ports"
	ordercache "github.com/Apurer/food-order-api/internal/domains/orders/adapters/cache/redis"
	orderevents "github.com/Apurer/food-order-api/internal/domains/orders/adapters/events/kafka"
	ordermemory "github.com/Apurer/food-order-api/internal/domains/orders/adapters/memory"
	orderobs "github.com/Apurer/food-order-api/internal/domains/orders/adapters/observability"
	orderpostgres "github.com/Apurer/food-order-api/internal/domains/orders/adapters/persistence/postgres"
	orderapp "github.com/Apurer/food-order-api/internal/domains/orders/application"
	orderports "github.com/Apurer/food-order-api/internal/domains/orders/ports"
	storememory "github.com/Apurer/food-order-api/internal/domains/stores/adapters/memory"
	storepostgres "github.com/Apurer/food-order-api/internal/domains/stores/adapters/persistence/postgres"
	storeports "github.com/Apurer/food-order-api/internal/domains/stores/ports"
	"github.com/Apurer/food-order-api/internal/platform/migrations"
	platformobservability "github.com/Apurer/food-order-api/internal/platform/observability"
	platformpostgres "github.com/Apurer/food-order-api/internal/platform/postgres"
	"github.com/Apurer/food-order-api/internal/shared/txn"
)

// Dependencies holds the adapters every process shares.
type Dependencies struct {
	Members memberports.Repository
	Stores  storeports.Repository
	Menus   menuports.Repository
	Options menuports.OptionRepository
	Orders  orderports.Repository
	Tx      txn.Manager
	Images  menuports.ImageStore
	Events  orderports.EventPublisher

	instruments *platformobservability.Instruments
	logger      *slog.Logger
}

// Options tune how Build resolves adapters. Tests inject an in-memory filesystem.
type Options struct {
	Fs afero.Fs
	// RequirePostgres fails Build instead of falling back to memory. Processes that
	// delete image files need the shared menu table to know which files are referenced.
	RequirePostgres bool
}

// ErrPostgresRequired is returned by Build when RequirePostgres is set and no database is reachable.
var ErrPostgresRequired = errors.New("POSTGRES_DSN not set or connection failed")

// Build resolves the persistence, cache, image and event adapters. PostgreSQL, Redis and
// Kafka are optional; a missing or unreachable backend falls back to the in-memory or
// no-op adapter. The returned cleanup releases every opened connection.
func Build(ctx context.Context, cfg Config, instruments *platformobservability.Instruments, opts Options) (*Dependencies, func(), error) {
	logger := instruments.SlogLogger()
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	deps := &Dependencies{instruments: instruments, logger: logger}
	db, closeDB := platformpostgres.ConnectOptional(ctx, cfg.PostgresDSN, logger)
	closers = append(closers, closeDB)
	if db != nil {
		if err := migrations.Run(db); err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("migrate schema: %w", err)
		}
		deps.usePostgres(db)
	} else if opts.RequirePostgres {
		cleanup()
		return nil, nil, ErrPostgresRequired
	} else {
		deps.useMemory()
	}

	fs := opts.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	images, err := imagestore.New(fs, cfg.ImagePath)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	deps.Images = images

	if client := connectRedis(ctx, cfg, logger); client != nil {
		closers = append(closers, func() { _ = client.Close() })
		deps.Orders = ordercache.NewCountCache(deps.Orders, client,
			ordercache.WithTTL(cfg.CountCacheTTL),
			ordercache.WithLogger(logger),
		)
		logger.Info("confirmed order counts cached in redis", slog.String("addr", cfg.RedisAddr))
	}

	deps.Events = orderports.NopPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		writer := orderevents.NewWriter(cfg.KafkaBrokers, cfg.OrderEventsTopic)
		closers = append(closers, closerFunc(logger, "kafka writer", writer))
		deps.Events = orderevents.NewPublisher(writer)
		logger.Info("order events published to kafka", slog.String("topic", cfg.OrderEventsTopic))
	} else {
		logger.Warn("KAFKA_BROKERS not set, order events are dropped")
	}

	if cfg.SeedDemoData {
		if err := SeedDemoData(ctx, deps); err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("seed demo data: %w", err)
		}
	}
	return deps, cleanup, nil
}

func (d *Dependencies) usePostgres(db *gorm.DB) {
	d.Members = memberpostgres.NewRepository(db)
	d.Stores = storepostgres.NewRepository(db)
	d.Menus = menupostgres.NewRepository(db)
	d.Options = menupostgres.NewOptionRepository(db)
	d.Orders = orderpostgres.NewRepository(db)
	d.Tx = platformpostgres.NewTransactor(db)
	d.logger.Info("repositories configured with postgres")
}

func (d *Dependencies) useMemory() {
	d.Members = membermemory.NewRepository()
	d.Stores = storememory.NewRepository()
	d.Menus = menumemory.NewRepository()
	d.Options = menumemory.NewOptionRepository()
	d.Orders = ordermemory.NewRepository()
	d.Tx = txn.Inline{}
}

// MenuService returns the instrumented menus use cases.
func (d *Dependencies) MenuService() menuports.Service {
	core := menuapp.NewService(d.Stores, d.Menus, d.Options, d.Images, menuapp.WithTransactor(d.Tx))
	return menuobs.New(core,
		menuobs.WithLogger(d.logger),
		menuobs.WithTracer(d.instruments.Tracer("internal.menus.application")),
		menuobs.WithMeter(d.instruments.Meter("internal.menus.application")),
	)
}

// OrderService returns the instrumented orders use cases.
func (d *Dependencies) OrderService() orderports.Service {
	core := orderapp.NewService(orderapp.Repositories{
		Members: d.Members,
		Stores:  d.Stores,
		Menus:   d.Menus,
		Options: d.Options,
		Orders:  d.Orders,
	},
		orderapp.WithTransactor(d.Tx),
		orderapp.WithEventPublisher(d.Events),
		orderapp.WithLogger(d.logger),
	)
	return orderobs.New(core,
		orderobs.WithLogger(d.logger),
		orderobs.WithTracer(d.instruments.Tracer("internal.orders.application")),
		orderobs.WithMeter(d.instruments.Meter("internal.orders.application")),
	)
}

func connectRedis(ctx context.Context, cfg Config, logger *slog.Logger) *goredis.Client {
	if cfg.RedisAddr == "" {
		return nil
	}
	client := goredis.NewClient(&goredis.Options{Addr: cfg.RedisAddr})
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.Warn("redis unreachable, order counts served uncached", slog.String("addr", cfg.RedisAddr), slog.String("error", err.Error()))
		_ = client.Close()
		return nil
	}
	return client
}

func closerFunc(logger *slog.Logger, name string, c io.Closer) func() {
	return func() {
		if err := c.Close(); err != nil {
			logger.Warn("failed to close "+name, slog.String("error", err.Error()))
		}
	}
}
