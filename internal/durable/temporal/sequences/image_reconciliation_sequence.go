package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	menutypes "github.com/Apurer/food-order-api/internal/domains/menus/application/types"
	imageactivities "github.com/Apurer/food-order-api/internal/durable/temporal/activities/images"
)

// RunImageReconciliationSequence purges image files left behind by menu writes that never committed.
func RunImageReconciliationSequence(ctx workflow.Context, olderThan time.Time) (*menutypes.PurgeOrphanImagesResult, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("image reconciliation sequence started", "olderThan", olderThan)
	options := workflow.ActivityOptions{
		StartToCloseTimeout: 5 * time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    5 * time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    time.Minute,
			MaximumAttempts:    3,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, options)

	var result menutypes.PurgeOrphanImagesResult
	input := menutypes.PurgeOrphanImagesInput{OlderThan: olderThan}
	if err := workflow.ExecuteActivity(ctx, imageactivities.PurgeOrphanImagesActivityName, input).Get(ctx, &result); err != nil {
		logger.Error("image reconciliation sequence failed", "error", err)
		return nil, err
	}
	logger.Info("image reconciliation sequence completed", "removed", len(result.Removed))
	return &result, nil
}
