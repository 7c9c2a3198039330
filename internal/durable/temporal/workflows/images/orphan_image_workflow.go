package images

import (
	"time"

	"go.temporal.io/sdk/workflow"

	menutypes "github.com/Apurer/food-order-api/internal/domains/menus/application/types"
	"github.com/Apurer/food-order-api/internal/durable/temporal/sequences"
)

const (
	// OrphanImageWorkflowName is the public identifier for registering the workflow.
	OrphanImageWorkflowName = "menus.workflows.OrphanImageReconciliation"
	// OrphanImageTaskQueue is the queue consumed by the worker processing image workflows.
	OrphanImageTaskQueue = "MENU_IMAGES"
)

// OrphanImageWorkflowInput carries the grace period protecting freshly written files.
type OrphanImageWorkflowInput struct {
	Grace   time.Duration
	TraceID string
}

// OrphanImageWorkflow removes unreferenced image files older than the grace period.
// The cutoff is taken from workflow time so replays compute the same value.
func OrphanImageWorkflow(ctx workflow.Context, input OrphanImageWorkflowInput) (*menutypes.PurgeOrphanImagesResult, error) {
	logger := workflow.GetLogger(ctx)
	cutoff := workflow.Now(ctx).Add(-input.Grace)
	logger.Info("OrphanImageWorkflow started", withTraceID(input.TraceID, "cutoff", cutoff)...)
	result, err := sequences.RunImageReconciliationSequence(ctx, cutoff)
	if err != nil {
		logger.Error("OrphanImageWorkflow failed", withTraceID(input.TraceID, "error", err)...)
		return nil, err
	}
	logger.Info("OrphanImageWorkflow completed", withTraceID(input.TraceID, "removed", len(result.Removed))...)
	return result, nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
