package observability

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	types "github.com/Apurer/food-order-api/internal/domains/orders/application/types"
	"github.com/Apurer/food-order-api/internal/domains/orders/ports"
	"github.com/Apurer/food-order-api/internal/shared/failure"
	"github.com/Apurer/food-order-api/internal/shared/identity"
)

const tracerName = "github.com/Apurer/food-order-api/internal/domains/orders/adapters/observability/service"

// Service decorates the orders application port with tracing, logging, and metrics.
type Service struct {
	inner   ports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wraps the core orders service.
func New(inner ports.Service, opts ...Option) ports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return s
}

func (s *Service) CreateOrder(ctx context.Context, principal identity.Principal, input types.CreateOrderInput) (*types.OrderDetail, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.CreateOrder", trace.WithAttributes(
		attribute.Int64("store.id", input.StoreID),
		attribute.Int("order.items", len(input.Items)),
		attribute.Int64("order.claimed_total", input.TotalPrice),
	))
	defer span.End()

	s.logger.LogAttrs(ctx, slog.LevelInfo, "placing order",
		slog.Int64("store.id", input.StoreID),
		slog.Int("order.items", len(input.Items)),
	)
	result, err := s.inner.CreateOrder(ctx, principal, input)
	if err != nil {
		s.metrics.recordRejected(ctx, failure.CodeOf(err))
		return nil, s.handleError(ctx, span, err, "failed to place order", slog.Int64("store.id", input.StoreID))
	}
	span.SetAttributes(attribute.Int64("order.id", result.Order.ID))
	s.metrics.recordPlaced(ctx, input.StoreID)
	s.logger.LogAttrs(ctx, slog.LevelInfo, "order placed",
		slog.Int64("order.id", result.Order.ID),
		slog.Int64("order.total_price", result.Order.TotalPrice),
	)
	return result, nil
}

func (s *Service) CancelOrder(ctx context.Context, principal identity.Principal, id types.OrderIdentifier) (*types.OrderDetail, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.CancelOrder", trace.WithAttributes(
		attribute.Int64("store.id", id.StoreID),
		attribute.Int64("order.id", id.OrderID),
	))
	defer span.End()

	s.logger.LogAttrs(ctx, slog.LevelInfo, "canceling order", slog.Int64("order.id", id.OrderID))
	result, err := s.inner.CancelOrder(ctx, principal, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to cancel order", slog.Int64("order.id", id.OrderID))
	}
	s.metrics.recordCanceled(ctx, id.StoreID)
	s.logger.LogAttrs(ctx, slog.LevelInfo, "order canceled", slog.Int64("order.id", id.OrderID))
	return result, nil
}

func (s *Service) GetOrderDetail(ctx context.Context, principal identity.Principal, id types.OrderIdentifier) (*types.OrderDetail, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.GetOrderDetail", trace.WithAttributes(
		attribute.Int64("store.id", id.StoreID),
		attribute.Int64("order.id", id.OrderID),
	))
	defer span.End()

	result, err := s.inner.GetOrderDetail(ctx, principal, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load order", slog.Int64("order.id", id.OrderID))
	}
	span.SetAttributes(attribute.String("order.status", string(result.Order.Status)))
	return result, nil
}

func (s *Service) GetOrders(ctx context.Context, principal identity.Principal, input types.ListOrdersInput) (*types.OrderPage, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.GetOrders", trace.WithAttributes(
		attribute.Int64("store.id", input.StoreID),
		attribute.Int("page.number", input.Page.Page),
		attribute.Int("page.size", input.Page.Size),
	))
	defer span.End()

	result, err := s.inner.GetOrders(ctx, principal, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list orders", slog.Int64("store.id", input.StoreID))
	}
	span.SetAttributes(
		attribute.Int("order.result.count", len(result.Items)),
		attribute.Int64("order.result.total", result.TotalItems),
	)
	return result, nil
}

func (s *Service) GetCount(ctx context.Context, storeID int64) (*types.ConfirmedCount, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.GetCount", trace.WithAttributes(attribute.Int64("store.id", storeID)))
	defer span.End()

	result, err := s.inner.GetCount(ctx, storeID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to count confirmed orders", slog.Int64("store.id", storeID))
	}
	span.SetAttributes(attribute.Int64("order.confirmed.count", result.Count))
	return result, nil
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	attrs = append(attrs, slog.String("error", err.Error()))
	level := slog.LevelError
	if code := failure.CodeOf(err); code != "" {
		attrs = append(attrs, slog.String("error.code", string(code)))
		level = slog.LevelWarn
	}
	s.logger.LogAttrs(ctx, level, msg, attrs...)
	return err
}

type serviceMetrics struct {
	placed   metric.Int64Counter
	canceled metric.Int64Counter
	rejected metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	placed, _ := m.Int64Counter("orders.service.placed", metric.WithDescription("Number of orders placed"))
	canceled, _ := m.Int64Counter("orders.service.canceled", metric.WithDescription("Number of orders canceled"))
	rejected, _ := m.Int64Counter("orders.service.rejected", metric.WithDescription("Number of order placements rejected"))
	return serviceMetrics{placed: placed, canceled: canceled, rejected: rejected}
}

func (m serviceMetrics) recordPlaced(ctx context.Context, storeID int64) {
	if m.placed != nil {
		m.placed.Add(ctx, 1, metric.WithAttributes(attribute.Int64("store.id", storeID)))
	}
}

func (m serviceMetrics) recordCanceled(ctx context.Context, storeID int64) {
	if m.canceled != nil {
		m.canceled.Add(ctx, 1, metric.WithAttributes(attribute.Int64("store.id", storeID)))
	}
}

func (m serviceMetrics) recordRejected(ctx context.Context, code failure.Code) {
	if m.rejected == nil {
		return
	}
	reason := string(code)
	if reason == "" {
		reason = "INTERNAL"
	}
	m.rejected.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", reason)))
}

var _ ports.Service = (*Service)(nil)
