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

	types "github.com/Apurer/food-order-api/internal/domains/menus/application/types"
	"github.com/Apurer/food-order-api/internal/domains/menus/domain"
	"github.com/Apurer/food-order-api/internal/domains/menus/ports"
	"github.com/Apurer/food-order-api/internal/shared/failure"
)

const tracerName = "github.com/Apurer/food-order-api/internal/domains/menus/adapters/observability/service"

// Service decorates the menus application port with tracing, logging, and metrics.
type Service struct {
	inner   ports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

// WithLogger injects a slog logger.
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

// WithMeter injects the meter used to create service metrics instruments.
func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wraps the core menus service.
func New(inner ports.Service, opts ...Option) ports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  defaultLogger(),
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
		s.logger = defaultLogger()
	}
	return s
}

func (s *Service) CreateMenu(ctx context.Context, input types.CreateMenuInput) (*domain.Menu, error) {
	ctx, span := s.startSpan(ctx, "MenuService.CreateMenu",
		attribute.Int64("store.id", input.StoreID),
		attribute.Bool("menu.image.uploaded", input.Image != nil),
	)
	defer span.End()

	s.logInfo(ctx, "creating menu", slog.Int64("store.id", input.StoreID), slog.String("menu.name", input.Name))
	result, err := s.inner.CreateMenu(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to create menu", slog.Int64("store.id", input.StoreID))
	}
	span.SetAttributes(attribute.Int64("menu.id", result.ID))
	s.metrics.recordCreated(ctx)
	s.logInfo(ctx, "menu created", slog.Int64("menu.id", result.ID), slog.String("menu.image_path", result.ImagePath))
	return result, nil
}

func (s *Service) UpdateMenu(ctx context.Context, input types.UpdateMenuInput) (*domain.Menu, error) {
	ctx, span := s.startSpan(ctx, "MenuService.UpdateMenu",
		attribute.Int64("store.id", input.StoreID),
		attribute.Int64("menu.id", input.MenuID),
	)
	defer span.End()

	s.logInfo(ctx, "updating menu", slog.Int64("store.id", input.StoreID), slog.Int64("menu.id", input.MenuID))
	result, err := s.inner.UpdateMenu(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to update menu", slog.Int64("menu.id", input.MenuID))
	}
	s.metrics.recordUpdated(ctx)
	s.logInfo(ctx, "menu updated", slog.Int64("menu.id", result.ID))
	return result, nil
}

func (s *Service) DeleteMenu(ctx context.Context, id types.MenuIdentifier) error {
	ctx, span := s.startSpan(ctx, "MenuService.DeleteMenu",
		attribute.Int64("store.id", id.StoreID),
		attribute.Int64("menu.id", id.MenuID),
	)
	defer span.End()

	s.logInfo(ctx, "deleting menu", slog.Int64("store.id", id.StoreID), slog.Int64("menu.id", id.MenuID))
	if err := s.inner.DeleteMenu(ctx, id); err != nil {
		return s.handleError(ctx, span, err, "failed to delete menu", slog.Int64("menu.id", id.MenuID))
	}
	s.metrics.recordDeleted(ctx)
	s.logInfo(ctx, "menu deleted", slog.Int64("menu.id", id.MenuID))
	return nil
}

func (s *Service) FindImage(ctx context.Context, id types.MenuIdentifier) (*types.MenuImage, error) {
	ctx, span := s.startSpan(ctx, "MenuService.FindImage",
		attribute.Int64("store.id", id.StoreID),
		attribute.Int64("menu.id", id.MenuID),
	)
	defer span.End()

	result, err := s.inner.FindImage(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to open menu image", slog.Int64("menu.id", id.MenuID))
	}
	span.SetAttributes(attribute.String("menu.image_path", result.Path))
	return result, nil
}

func (s *Service) FindMenus(ctx context.Context, input types.FindMenusInput) (*types.MenuPage, error) {
	ctx, span := s.startSpan(ctx, "MenuService.FindMenus",
		attribute.Int64("store.id", input.StoreID),
		attribute.Int("page.number", input.Page.Page),
		attribute.Int("page.size", input.Page.Size),
	)
	defer span.End()

	result, err := s.inner.FindMenus(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list menus", slog.Int64("store.id", input.StoreID))
	}
	span.SetAttributes(
		attribute.Int("menu.result.count", len(result.Items)),
		attribute.Int64("menu.result.total", result.TotalItems),
	)
	return result, nil
}

func (s *Service) AddOption(ctx context.Context, input types.AddOptionInput) (*domain.Option, error) {
	ctx, span := s.startSpan(ctx, "MenuService.AddOption",
		attribute.Int64("store.id", input.StoreID),
		attribute.Int64("menu.id", input.MenuID),
	)
	defer span.End()

	s.logInfo(ctx, "adding menu option", slog.Int64("menu.id", input.MenuID), slog.String("option.name", input.Name))
	result, err := s.inner.AddOption(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to add menu option", slog.Int64("menu.id", input.MenuID))
	}
	s.logInfo(ctx, "menu option added", slog.Int64("menu.id", result.MenuID), slog.Int64("option.id", result.ID))
	return result, nil
}

func (s *Service) PurgeOrphanImages(ctx context.Context, input types.PurgeOrphanImagesInput) (*types.PurgeOrphanImagesResult, error) {
	ctx, span := s.startSpan(ctx, "MenuService.PurgeOrphanImages")
	defer span.End()

	s.logInfo(ctx, "purging orphan images", slog.Time("older_than", input.OlderThan))
	result, err := s.inner.PurgeOrphanImages(ctx, input)
	if result != nil {
		s.metrics.recordPurged(ctx, len(result.Removed))
		span.SetAttributes(attribute.Int("image.removed.count", len(result.Removed)))
	}
	if err != nil {
		return result, s.handleError(ctx, span, err, "failed to purge orphan images")
	}
	s.logInfo(ctx, "orphan images purged", slog.Int("removed", len(result.Removed)))
	return result, nil
}

func (s *Service) startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	tracer := s.tracer
	if tracer == nil {
		tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

// handleError records the failure on the span. Classified business failures are
// logged at warn since they are caller mistakes rather than faults.
func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if err == nil {
		return nil
	}
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	if s.logger == nil {
		return err
	}
	attrs = append(attrs, slog.String("error", err.Error()))
	level := slog.LevelError
	if code := failure.CodeOf(err); code != "" {
		attrs = append(attrs, slog.String("error.code", string(code)))
		level = slog.LevelWarn
	}
	s.logger.LogAttrs(ctx, level, msg, attrs...)
	return err
}

func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type serviceMetrics struct {
	menusCreated metric.Int64Counter
	menusUpdated metric.Int64Counter
	menusDeleted metric.Int64Counter
	imagesPurged metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	created, _ := m.Int64Counter("menus.service.created", metric.WithDescription("Number of menus created"))
	updated, _ := m.Int64Counter("menus.service.updated", metric.WithDescription("Number of menus updated"))
	deleted, _ := m.Int64Counter("menus.service.deleted", metric.WithDescription("Number of menus soft-deleted"))
	purged, _ := m.Int64Counter("menus.images.purged", metric.WithDescription("Number of orphan image files removed"))
	return serviceMetrics{
		menusCreated: created,
		menusUpdated: updated,
		menusDeleted: deleted,
		imagesPurged: purged,
	}
}

func (m serviceMetrics) recordCreated(ctx context.Context) {
	addCounter(ctx, m.menusCreated, 1)
}

func (m serviceMetrics) recordUpdated(ctx context.Context) {
	addCounter(ctx, m.menusUpdated, 1)
}

func (m serviceMetrics) recordDeleted(ctx context.Context) {
	addCounter(ctx, m.menusDeleted, 1)
}

func (m serviceMetrics) recordPurged(ctx context.Context, n int) {
	if n == 0 {
		return
	}
	addCounter(ctx, m.imagesPurged, int64(n))
}

func addCounter(ctx context.Context, counter metric.Int64Counter, value int64, attrs ...attribute.KeyValue) {
	if counter == nil {
		return
	}
	counter.Add(ctx, value, metric.WithAttributes(attrs...))
}

var _ ports.Service = (*Service)(nil)
