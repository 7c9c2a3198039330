package workflows

import (
	"context"
	"errors"
	"fmt"
	"time"

	oteltrace "go.opentelemetry.io/otel/trace"
	"go.temporal.io/api/enums/v1"
	"go.temporal.io/sdk/client"

	types "github.com/Apurer/food-order-api/internal/domains/menus/application/types"
	"github.com/Apurer/food-order-api/internal/domains/menus/ports"
	imageworkflows "github.com/Apurer/food-order-api/internal/durable/temporal/workflows/images"
)

var (
	_ ports.ImageReconciler = (*TemporalImageReconciler)(nil)
	_ ports.ImageReconciler = (*InlineImageReconciler)(nil)
)

// TemporalImageReconciler runs the orphan image workflow on a Temporal cluster.
type TemporalImageReconciler struct {
	client    client.Client
	taskQueue string
	now       func() time.Time
}

func NewTemporalImageReconciler(c client.Client) *TemporalImageReconciler {
	return &TemporalImageReconciler{client: c, taskQueue: imageworkflows.OrphanImageTaskQueue, now: time.Now}
}

// ReconcileImages starts the workflow and waits for its result. Concurrent triggers within
// the same minute share one execution.
func (r *TemporalImageReconciler) ReconcileImages(ctx context.Context, grace time.Duration) (*types.PurgeOrphanImagesResult, error) {
	if r == nil || r.client == nil {
		return nil, errors.New("temporal image reconciler not configured")
	}
	traceID := workflowTraceID(ctx)
	options := client.StartWorkflowOptions{
		ID:                    fmt.Sprintf("menu-image-reconciliation-%s", r.now().UTC().Format("200601021504")),
		TaskQueue:             r.taskQueue,
		WorkflowIDReusePolicy: enums.WORKFLOW_ID_REUSE_POLICY_ALLOW_DUPLICATE,
	}
	run, err := r.client.ExecuteWorkflow(ctx, options, imageworkflows.OrphanImageWorkflowName,
		imageworkflows.OrphanImageWorkflowInput{Grace: grace, TraceID: traceID})
	if err != nil {
		return nil, err
	}
	var result types.PurgeOrphanImagesResult
	if err := run.Get(ctx, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// InlineImageReconciler purges directly through the service when Temporal is unavailable.
type InlineImageReconciler struct {
	service ports.Service
	now     func() time.Time
}

func NewInlineImageReconciler(service ports.Service) *InlineImageReconciler {
	return &InlineImageReconciler{service: service, now: time.Now}
}

func (r *InlineImageReconciler) ReconcileImages(ctx context.Context, grace time.Duration) (*types.PurgeOrphanImagesResult, error) {
	if r == nil || r.service == nil {
		return nil, errors.New("inline image reconciler not configured")
	}
	return r.service.PurgeOrphanImages(ctx, types.PurgeOrphanImagesInput{OlderThan: r.now().Add(-grace)})
}

func workflowTraceID(ctx context.Context) string {
	spanCtx := oteltrace.SpanFromContext(ctx).SpanContext()
	if !spanCtx.IsValid() {
		return ""
	}
	return spanCtx.TraceID().String()
}
